package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"uptask/internal/core"
)

type sessionEntry struct {
	sender core.Sender
	rooms  map[string]struct{}
	cancel context.CancelFunc
}

// Registry tracks live websocket sessions and which rooms each one has
// joined, so a disconnect can sweep the session out of all of them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[core.SessionID]*sessionEntry)}
}

// Bind registers a freshly connected session. Rebinding the same sid
// replaces the previous entry and cancels its connection context, so a
// superseded connection's pumps stop instead of lingering until a
// transport error.
func (r *Registry) Bind(sid core.SessionID, sender core.Sender, cancel context.CancelFunc) {
	r.mu.Lock()
	old := r.sessions[sid]
	r.sessions[sid] = &sessionEntry{
		sender: sender,
		rooms:  make(map[string]struct{}),
		cancel: cancel,
	}
	r.mu.Unlock()
	if old != nil && old.cancel != nil {
		old.cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound session")
}

func (r *Registry) Sender(sid core.SessionID) (core.Sender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.sender, true
	}
	return nil, false
}

// TrackJoin records that sid is a member of the room for key.
func (r *Registry) TrackJoin(sid core.SessionID, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		e.rooms[key] = struct{}{}
	}
}

func (r *Registry) TrackLeave(sid core.SessionID, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[sid]; ok {
		delete(e.rooms, key)
	}
}

// RoomsOf returns a snapshot of the room keys sid has joined.
func (r *Registry) RoomsOf(sid core.SessionID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[sid]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.rooms))
	for k := range e.rooms {
		out = append(out, k)
	}
	return out
}

// Unbind drops the session entry and cancels its connection context.
// Room membership cleanup is the caller's job via RoomsOf before this.
func (r *Registry) Unbind(sid core.SessionID) {
	r.mu.Lock()
	e, ok := r.sessions[sid]
	delete(r.sessions, sid)
	r.mu.Unlock()
	if ok && e.cancel != nil {
		e.cancel()
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind session")
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
