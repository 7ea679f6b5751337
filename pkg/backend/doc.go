/*
Package backend is the client for the hosted auth + database service.

A Client is a per-request capability object: it is constructed by the
session bridge with a pair of cookie callbacks and must not outlive the
request it was created for. Auth calls that issue or rotate session
tokens report the new cookies through the write callback; the bridge
turns them into Set-Cookie response headers.

Table access goes through From, which builds a thin pass-through query
against the service's REST surface. The service's query semantics are
not reimplemented here; the builder only assembles the request.
*/
package backend
