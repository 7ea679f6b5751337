/*
Package ports defines the driven ports (interfaces) for Curio.

These interfaces decouple the HTTP adapter from external
implementations, so the login limiter can be backed by Redis in
production and by an in-memory fake in tests.
*/
package ports
