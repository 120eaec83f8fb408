package middleware

import (
	"net/http"
	"sync"
)

// SubmissionGate allows one submission in flight per client. A second
// submission arriving while the first is still being handled is rejected.
type SubmissionGate struct {
	mtx  sync.Mutex
	busy map[string]struct{}
}

func NewSubmissionGate() *SubmissionGate {
	return &SubmissionGate{busy: make(map[string]struct{})}
}

// acquire marks key busy and reports whether it was free.
func (g *SubmissionGate) acquire(key string) bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	if _, taken := g.busy[key]; taken {
		return false
	}
	g.busy[key] = struct{}{}
	return true
}

func (g *SubmissionGate) release(key string) {
	g.mtx.Lock()
	delete(g.busy, key)
	g.mtx.Unlock()
}

// Busy reports whether a submission from key is in flight.
func (g *SubmissionGate) Busy(key string) bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	_, taken := g.busy[key]
	return taken
}

// Middleware gates non-safe methods only; page loads pass through.
func (g *SubmissionGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		key := clientIP(r)
		if !g.acquire(key) {
			http.Error(w, "submission already in progress", http.StatusTooManyRequests)
			return
		}
		defer g.release(key)

		next.ServeHTTP(w, r)
	})
}
