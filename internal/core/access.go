package core

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/domain"
)

// Access checks are pure functions of (requester id, creator id,
// collaborator set). No cached permission objects, no role hierarchy.

// CanManage holds only for the project creator. Gates project edits,
// deletion and collaborator changes.
func CanManage(p *domain.Project, userID primitive.ObjectID) bool {
	return p.Creator == userID
}

// CanView holds for the creator and every collaborator. Gates reading
// the expanded project detail.
func CanView(p *domain.Project, userID primitive.ObjectID) bool {
	return p.Creator == userID || p.HasCollaborator(userID)
}
