package sessions

import "sync"

// Session is an authenticated login's runtime identity. Sessions live only
// in process memory; a restart invalidates all of them.
type Session struct {
	Token    string
	Username string
	Role     string
}

// Registry is the in-memory token → session map. Insert on login, erase on
// logout and lookup on every authorized request must not race, so every
// access goes through the lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

func (r *Registry) Put(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Token] = s
}

func (r *Registry) Get(token string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	return s, ok
}

// Delete removes the session if present. Deleting an unknown token is a
// no-op.
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
