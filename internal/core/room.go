package core

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Frame is an encoded event payload, opaque to the room.
type Frame []byte

// SessionID identifies one connection, not one user or one browser:
// the same account open in two tabs holds two session ids, each with
// its own room memberships and lifetime.
type SessionID string

// Sender is a session's outbound endpoint. Owned by the adapter; the
// adapter must Close() it. TrySend never blocks.
type Sender interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats for one broadcast.
type PublishResult struct {
	SentTo  int
	Dropped int
}

// Room is the ephemeral membership set of sessions viewing one project.
// It carries no durable authority: joining is trusted to happen only
// after a view check, and membership dies with the process.
type Room struct {
	key string

	mu      sync.RWMutex
	members map[SessionID]Sender
}

func NewRoom(key string) *Room {
	return &Room{key: key, members: make(map[SessionID]Sender)}
}

func (r *Room) Key() string { return r.key }

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Join is purely additive; joining twice just replaces the sender.
func (r *Room) Join(sid SessionID, s Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[sid] = s
	log.Debug().Str("module", "core.room").Str("room", r.key).Str("sid", string(sid)).Msg("session joined")
}

func (r *Room) Leave(sid SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, sid)
	log.Debug().Str("module", "core.room").Str("room", r.key).Str("sid", string(sid)).Msg("session left")
}

func (r *Room) Has(sid SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[sid]
	return ok
}

// Broadcast delivers frame to every member except from. Delivery is
// best-effort: a member whose send fails is counted and skipped, never
// retried, and the failure never reaches the originating caller.
func (r *Room) Broadcast(from SessionID, frame Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for sid, m := range r.members {
		if sid == from {
			continue
		}
		if err := m.TrySend(frame); err != nil {
			res.Dropped++
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", r.key).Str("from", string(from)).
		Int("sent_to", res.SentTo).Int("dropped", res.Dropped).Msg("broadcast result")
	return res
}
