package session

import (
	"net/http"
	"sync"
)

// Accumulator collects serialized Set-Cookie header values for one
// request. It is append-only and order-preserving; appends are safe
// under concurrent use within the request, and the accumulator must
// not be reused across requests.
type Accumulator struct {
	mu      sync.Mutex
	headers []string
}

func (a *Accumulator) append(values ...string) {
	if len(values) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.headers = append(a.headers, values...)
}

// Headers returns the accumulated Set-Cookie values in append order.
func (a *Accumulator) Headers() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.headers))
	copy(out, a.headers)
	return out
}

// Len reports how many Set-Cookie headers have accumulated.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.headers)
}

// Apply adds every accumulated header to dst as a Set-Cookie entry,
// preserving order. Call it once, after all backend calls are done and
// before the response status is written.
func (a *Accumulator) Apply(dst http.Header) {
	for _, h := range a.Headers() {
		dst.Add("Set-Cookie", h)
	}
}
