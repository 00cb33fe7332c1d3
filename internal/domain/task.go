package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority buckets for a task, free-form beyond these at the API edge.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task belongs to exactly one project. CompletedBy is empty until a
// viewer marks the task done.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	DueDate     time.Time          `bson:"due_date" json:"dueDate"`
	Priority    string             `bson:"priority" json:"priority"`
	Project     primitive.ObjectID `bson:"project" json:"project"`
	Done        bool               `bson:"done" json:"done"`
	CompletedBy primitive.ObjectID `bson:"completed_by,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"-"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"-"`
}

// TaskDetail is a task with the completer expanded to a redacted view.
type TaskDetail struct {
	Task
	Completer *UserRef `json:"completedBy,omitempty"`
}
