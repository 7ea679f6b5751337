package session

import "net/http"

// Pair is one name/value cookie pair as presented by the request.
type Pair struct {
	Name  string
	Value string
}

// CookieSet is an immutable, ordered snapshot of the cookies one
// request presented. It is taken once, at Bind time.
type CookieSet struct {
	pairs []Pair
}

// newCookieSet snapshots the request's Cookie header. Parsing is best
// effort: malformed pairs are skipped, a missing or unparsable header
// degrades to an empty set. It never fails.
func newCookieSet(r *http.Request) CookieSet {
	cookies := r.Cookies()
	pairs := make([]Pair, 0, len(cookies))
	for _, c := range cookies {
		pairs = append(pairs, Pair{Name: c.Name, Value: c.Value})
	}
	return CookieSet{pairs: pairs}
}

// ParseCookieHeader parses a raw Cookie header value into a CookieSet,
// with the same best-effort semantics as newCookieSet.
func ParseCookieHeader(header string) CookieSet {
	r := &http.Request{Header: http.Header{"Cookie": []string{header}}}
	return newCookieSet(r)
}

// Get returns the value presented for name. When the request sent the
// same name twice, the last occurrence wins, matching what a server
// applying pairs in order would observe.
func (s CookieSet) Get(name string) (string, bool) {
	for i := len(s.pairs) - 1; i >= 0; i-- {
		if s.pairs[i].Name == name {
			return s.pairs[i].Value, true
		}
	}
	return "", false
}

// Map returns the set as a name→value mapping (last value wins for
// duplicated names). The returned map is a fresh copy each call.
func (s CookieSet) Map() map[string]string {
	m := make(map[string]string, len(s.pairs))
	for _, p := range s.pairs {
		m[p.Name] = p.Value
	}
	return m
}

// Pairs returns the ordered pairs as parsed.
func (s CookieSet) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Len reports the number of presented pairs.
func (s CookieSet) Len() int {
	return len(s.pairs)
}
