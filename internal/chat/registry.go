package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/gurumate/gurumate/internal/dispatch"
	"github.com/gurumate/gurumate/internal/llm"
)

// Registry tracks live sessions for the running process. Sessions are not
// persisted: a session is bounded by one run of the application.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	client     llm.Client
	dispatcher *dispatch.Dispatcher
	window     int
}

func NewRegistry(client llm.Client, d *dispatch.Dispatcher, window int) *Registry {
	return &Registry{
		sessions:   make(map[string]*Session),
		client:     client,
		dispatcher: d,
		window:     window,
	}
}

// Create starts a new session under a fresh id.
func (r *Registry) Create() *Session {
	s := NewSession(uuid.NewString(), r.client, r.dispatcher, r.window)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get looks up a session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// DropAll forgets every session (logout/reset).
func (r *Registry) DropAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]*Session)
}
