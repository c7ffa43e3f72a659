package session

import (
	"sync"

	"go.uber.org/zap"

	"freight-netback/internal/errors"
	"freight-netback/internal/logging"
)

// Registry holds the live sessions of a server. Sessions are kept in
// memory only; once more than max are held the oldest is evicted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	max      int
	onEvict  func(*Session)
}

// NewRegistry creates a registry; max <= 0 means unbounded
func NewRegistry(max int) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		max:      max,
	}
}

// OnEvict registers a hook called for every session removed by eviction,
// replacement or Delete. It runs with the registry lock held and must not
// call back into the registry.
func (r *Registry) OnEvict(fn func(*Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEvict = fn
}

// Put stores a session, replacing any session with the same id
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.sessions[s.ID()]; ok {
		r.removeLocked(old.ID())
	}
	r.sessions[s.ID()] = s
	r.order = append(r.order, s.ID())

	for r.max > 0 && len(r.order) > r.max {
		oldest := r.order[0]
		logging.Named("session").Info("session evicted", zap.String("id", oldest))
		r.removeLocked(oldest)
	}
}

// Get returns a session by id
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.NotFound("session", id)
	}
	return s, nil
}

// Delete removes a session
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return errors.NotFound("session", id)
	}
	r.removeLocked(id)
	return nil
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns summaries of all sessions, oldest first
func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sessions[id].Summary())
	}
	return out
}

func (r *Registry) removeLocked(id string) {
	s := r.sessions[id]
	delete(r.sessions, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.onEvict != nil && s != nil {
		r.onEvict(s)
	}
}
