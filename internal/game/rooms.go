package game

import (
	"log"
	"sync"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/gen"
)

// =============================================================================
// SESSION REGISTRY
// =============================================================================

// Registry tracks the live sessions of one process. Sessions share nothing
// but the registry map itself.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	generator gen.Generator
	listing   RoomListing
}

func NewRegistry(generator gen.Generator, listing RoomListing) *Registry {
	return &Registry{
		sessions:  make(map[string]*Session),
		generator: generator,
		listing:   listing,
	}
}

// Create opens a fresh room with the caller as host.
func (r *Registry) Create(host internal.Identity) *Session {
	s := NewSession(host, r.generator, r.listing, nil)
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	log.Printf("[Registry.Create] room=%s: registered", s.ID())
	return s
}

func (r *Registry) Get(roomID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[roomID]
	return s, ok
}

func (r *Registry) Remove(roomID string) {
	r.mu.Lock()
	delete(r.sessions, roomID)
	r.mu.Unlock()
	log.Printf("[Registry.Remove] room=%s: unregistered", roomID)
}

// Count reports the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
