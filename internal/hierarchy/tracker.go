package hierarchy

import "sync"

// Tracker guards against applying stale async results. Each Begin supersedes
// every earlier token; Commit reports whether the token is still current so
// the caller can discard results from superseded requests.
type Tracker struct {
	mu      sync.Mutex
	current uint64
}

// Token identifies one in-flight request.
type Token struct {
	id uint64
}

// Begin marks a new request as the current one.
func (t *Tracker) Begin() Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current++
	return Token{id: t.current}
}

// Commit reports whether the token still represents the latest request.
func (t *Tracker) Commit(token Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token.id == t.current
}
