/*
Package session bridges cookie-based session state between an inbound
HTTP request and the eventual response.

A Bridge is created once at process start from the backend
configuration. For each request, Bind produces a backend client bound
to that request's cookies plus an Accumulator that collects every
Set-Cookie header the remote service asks for during handling (token
issue, rotation, clearing). The handler flushes the accumulator onto
the response exactly once, after all backend calls are done, so
mid-request cookie updates are never lost or reordered.

Nothing here is shared across requests: one Bind call, one cookie
snapshot, one accumulator.
*/
package session
