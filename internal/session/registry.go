package session

import (
	"sync"

	"medextract/internal/models"
)

// Registry is the in-process session store. Entries live only in memory
// and vanish on restart; there is no expiry job. Concurrent writers to
// the same id resolve last-write-wins.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]models.Session)}
}

// Put stores or overwrites the record for id.
func (r *Registry) Put(id string, s models.Session) {
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
}

// Delete removes the record for id and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Snapshot returns a copy of all current session records.
func (r *Registry) Snapshot() map[string]models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]models.Session, len(r.sessions))
	for id, s := range r.sessions {
		out[id] = s
	}
	return out
}

// Count reports the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
