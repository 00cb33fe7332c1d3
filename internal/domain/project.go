package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project groups tasks under one creator plus a set of collaborators.
// Invariants kept by the core services: the creator is never listed in
// Collaborators, and Collaborators holds no duplicates.
type Project struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Description   string               `bson:"description" json:"description"`
	DueDate       time.Time            `bson:"due_date" json:"dueDate"`
	Client        string               `bson:"client" json:"client"`
	Creator       primitive.ObjectID   `bson:"creator" json:"creator"`
	Collaborators []primitive.ObjectID `bson:"collaborators" json:"collaborators"`
	Tasks         []primitive.ObjectID `bson:"tasks" json:"tasks,omitempty"`
	CreatedAt     time.Time            `bson:"created_at" json:"-"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"-"`
}

// HasCollaborator reports membership by id comparison only.
func (p *Project) HasCollaborator(id primitive.ObjectID) bool {
	for _, c := range p.Collaborators {
		if c == id {
			return true
		}
	}
	return false
}

// AddCollaborator appends id unless it is already present. Duplicate
// inserts are rejected at the model layer, not only at call sites.
func (p *Project) AddCollaborator(id primitive.ObjectID) bool {
	if p.HasCollaborator(id) {
		return false
	}
	p.Collaborators = append(p.Collaborators, id)
	return true
}

// RemoveCollaborator removes id if present. Removing a non-member is a
// no-op, set semantics.
func (p *Project) RemoveCollaborator(id primitive.ObjectID) bool {
	for i, c := range p.Collaborators {
		if c == id {
			p.Collaborators = append(p.Collaborators[:i], p.Collaborators[i+1:]...)
			return true
		}
	}
	return false
}

// ProjectDetail is a project with its relations expanded: tasks carry
// the redacted completer identity, collaborators are redacted views.
type ProjectDetail struct {
	Project
	ExpandedTasks         []TaskDetail `json:"tasks"`
	ExpandedCollaborators []UserRef    `json:"collaborators"`
}
