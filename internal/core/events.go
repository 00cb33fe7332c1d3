package core

// EventKind names a task mutation carried over the fan-out channel.
// The channel never persists these; they exist only to keep other
// viewers' screens current.
type EventKind string

const (
	TaskAdded   EventKind = "task-added"
	TaskRemoved EventKind = "task-removed"
	TaskUpdated EventKind = "task-updated"
	TaskToggled EventKind = "task-toggled"
)
