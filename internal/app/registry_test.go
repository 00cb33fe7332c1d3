package app

import (
	"sort"
	"testing"

	"uptask/internal/core"
)

func TestRegistry_TrackAndSweep(t *testing.T) {
	reg := NewRegistry()
	s := &stubSender{}
	cancelled := false
	reg.Bind("sid-1", s, func() { cancelled = true })

	reg.TrackJoin("sid-1", "p1")
	reg.TrackJoin("sid-1", "p2")
	reg.TrackLeave("sid-1", "p1")

	got := reg.RoomsOf("sid-1")
	sort.Strings(got)
	if len(got) != 1 || got[0] != "p2" {
		t.Fatalf("rooms = %v, want [p2]", got)
	}

	reg.Unbind("sid-1")
	if !cancelled {
		t.Error("unbind must cancel the connection context")
	}
	if reg.RoomsOf("sid-1") != nil {
		t.Error("rooms survived unbind")
	}
	if reg.Count() != 0 {
		t.Error("session survived unbind")
	}
}

func TestRegistry_RebindReplaces(t *testing.T) {
	reg := NewRegistry()
	first, second := &stubSender{}, &stubSender{}
	reg.Bind("sid-1", first, nil)
	reg.TrackJoin("sid-1", "p1")
	reg.Bind("sid-1", second, nil)

	// A reconnect starts with a clean room set.
	if rooms := reg.RoomsOf("sid-1"); len(rooms) != 0 {
		t.Errorf("rooms = %v, want empty after rebind", rooms)
	}
	sender, ok := reg.Sender("sid-1")
	if !ok || sender != core.Sender(second) {
		t.Error("rebind did not replace the sender")
	}
}

func TestRegistry_RebindCancelsDisplacedConnection(t *testing.T) {
	reg := NewRegistry()
	firstCancelled, secondCancelled := false, false
	reg.Bind("sid-1", &stubSender{}, func() { firstCancelled = true })
	reg.Bind("sid-1", &stubSender{}, func() { secondCancelled = true })

	if !firstCancelled {
		t.Error("displaced connection's context must be cancelled on rebind")
	}
	if secondCancelled {
		t.Error("live connection cancelled by its own bind")
	}

	reg.Unbind("sid-1")
	if !secondCancelled {
		t.Error("unbind must cancel the live connection")
	}
}

func TestRegistry_UnknownSession(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Sender("ghost"); ok {
		t.Error("unknown session resolved a sender")
	}
	// Tracking calls for unknown sessions are silently ignored.
	reg.TrackJoin("ghost", "p1")
	reg.TrackLeave("ghost", "p1")
	reg.Unbind("ghost")
}
