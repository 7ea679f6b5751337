/*
Package observability exposes Prometheus metrics for the HTTP surface:
request counts and latency, labeled by route pattern, method and
status.
*/
package observability
