// Package app wires the core services to live connections: the room
// registry and the session registry both live for the process and are
// injected where needed, never reached through a global.
package app

import (
	"sync"

	"uptask/internal/core"
)

// Rooms maps project id (hex) to its live room. Rooms come into being
// on first join and are dropped again once empty; there is no explicit
// teardown call.
type Rooms struct {
	mu    sync.RWMutex
	rooms map[string]*core.Room
}

func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[string]*core.Room)}
}

func (f *Rooms) GetOrCreate(key string) *core.Room {
	f.mu.RLock()
	room, ok := f.rooms[key]
	f.mu.RUnlock()
	if ok {
		return room
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[key]; ok {
		return room
	}
	room = core.NewRoom(key)
	f.rooms[key] = room
	return room
}

func (f *Rooms) Get(key string) (*core.Room, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[key]
	return room, ok
}

// Broadcast fans frame out to the room for key, excluding the sender.
// A missing room means nobody is watching; the event is dropped.
func (f *Rooms) Broadcast(key string, from core.SessionID, frame core.Frame) core.PublishResult {
	room, ok := f.Get(key)
	if !ok {
		return core.PublishResult{}
	}
	return room.Broadcast(from, frame)
}

// Leave removes sid from the room for key and drops the room when that
// left it empty.
func (f *Rooms) Leave(key string, sid core.SessionID) {
	room, ok := f.Get(key)
	if !ok {
		return
	}
	room.Leave(sid)
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rooms[key]; ok && r.MemberCount() == 0 {
		delete(f.rooms, key)
	}
}

func (f *Rooms) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms)
}
