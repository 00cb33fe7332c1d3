package realtime

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"uptask/internal/core"
)

// envelope is the wire shape in both directions: a type tag plus the
// fields the type needs.
type envelope struct {
	Type    string          `json:"type"`
	Project string          `json:"project,omitempty"`
	Task    json.RawMessage `json:"task,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (ctl *Controller) sendJSON(c *wsConn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "realtime").Msg("marshal outbound")
		return
	}
	// Best effort, same as a broadcast leg.
	_ = c.TrySend(data)
}

func (ctl *Controller) sendError(c *wsConn, msg string) {
	ctl.sendJSON(c, envelope{Type: "error", Error: msg})
}

func (ctl *Controller) handleEvent(sid core.SessionID, c *wsConn, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "realtime").Msg("bad json")
		ctl.sendError(c, "bad_payload")
		return
	}

	switch env.Type {
	case "open-project":
		ctl.handleJoin(sid, c, env)
	case "close-project":
		ctl.handleLeave(sid, c, env)
	case "task-created":
		ctl.relayTask(sid, c, env, core.TaskAdded)
	case "task-deleted":
		ctl.relayTask(sid, c, env, core.TaskRemoved)
	case "task-edited":
		ctl.relayTask(sid, c, env, core.TaskUpdated)
	case "task-completed":
		ctl.relayTask(sid, c, env, core.TaskToggled)
	default:
		log.Debug().Str("module", "realtime").Str("type", env.Type).Msg("unknown event type")
		ctl.sendError(c, "unknown_type")
	}
}

// handleJoin puts the session into the project's room. No view check
// happens here: the client only learns project ids through the gated
// HTTP reads, and membership carries no durable authority.
func (ctl *Controller) handleJoin(sid core.SessionID, c *wsConn, env envelope) {
	if env.Project == "" {
		ctl.sendError(c, "missing_project")
		return
	}
	room := ctl.Rooms.GetOrCreate(env.Project)
	room.Join(sid, c)
	ctl.Registry.TrackJoin(sid, env.Project)
	log.Info().Str("module", "realtime").Str("sid", string(sid)).Str("room", env.Project).Msg("join")
	ctl.sendJSON(c, envelope{Type: "project-opened", Project: env.Project})
}

func (ctl *Controller) handleLeave(sid core.SessionID, c *wsConn, env envelope) {
	if env.Project == "" {
		ctl.sendError(c, "missing_project")
		return
	}
	ctl.Rooms.Leave(env.Project, sid)
	ctl.Registry.TrackLeave(sid, env.Project)
	log.Info().Str("module", "realtime").Str("sid", string(sid)).Str("room", env.Project).Msg("leave")
	ctl.sendJSON(c, envelope{Type: "project-closed", Project: env.Project})
}

// relayTask fans the task payload out to the owning project's room,
// never back to the sender. The payload passes through opaque; only
// the owning project id is extracted for routing.
func (ctl *Controller) relayTask(sid core.SessionID, c *wsConn, env envelope, kind core.EventKind) {
	key := env.Project
	if key == "" {
		key = projectKeyFromTask(env.Task)
	}
	if key == "" {
		ctl.sendError(c, "missing_project")
		return
	}
	out, err := json.Marshal(envelope{Type: string(kind), Project: key, Task: env.Task})
	if err != nil {
		log.Error().Err(err).Str("module", "realtime").Msg("marshal broadcast")
		return
	}
	ctl.Rooms.Broadcast(key, sid, out)
}

// projectKeyFromTask digs the owning project id out of a task payload.
// Clients send it either as a bare id string or as an embedded project
// object, so both shapes are accepted.
func projectKeyFromTask(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var probe struct {
		Project json.RawMessage `json:"project"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || len(probe.Project) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(probe.Project, &id); err == nil {
		return id
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(probe.Project, &obj); err == nil {
		return obj.ID
	}
	return ""
}
