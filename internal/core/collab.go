package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/domain"
)

// CollabService mutates a project's collaborator set. All mutations are
// creator-gated; membership itself only grants view access.
type CollabService struct {
	projects ProjectStore
	users    UserStore
}

func NewCollabService(projects ProjectStore, users UserStore) *CollabService {
	return &CollabService{projects: projects, users: users}
}

// ResolveCandidate looks an identity up by email and returns the
// redacted view. Used by the invite search box before an add.
func (s *CollabService) ResolveCandidate(ctx context.Context, email string) (domain.UserRef, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.UserRef{}, err
	}
	return u.Ref(), nil
}

// Add appends the user identified by email to the project's
// collaborator set. Preconditions, checked in order:
//
//  1. requester manages the project, else ErrForbidden
//  2. a user with that email exists, else ErrNotFound
//  3. the candidate is not the creator, else ErrCreatorCollaborator
//  4. the candidate is not already a member, else ErrAlreadyCollaborator
//
// Nothing is persisted unless all four hold.
func (s *CollabService) Add(ctx context.Context, requester *domain.User, projectID primitive.ObjectID, email string) error {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !CanManage(p, requester.ID) {
		return ErrForbidden
	}

	email = strings.ToLower(strings.TrimSpace(email))
	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if target.ID == p.Creator {
		return ErrCreatorCollaborator
	}
	if !p.AddCollaborator(target.ID) {
		return ErrAlreadyCollaborator
	}

	if err := s.projects.Save(ctx, p); err != nil {
		return fmt.Errorf("add collaborator: %w", err)
	}
	log.Info().Str("module", "core.collab").
		Str("project", p.ID.Hex()).Str("user", target.ID.Hex()).
		Msg("collaborator added")
	return nil
}

// Remove deletes the target from the collaborator set. Removing a
// non-member succeeds without touching the store, set semantics.
func (s *CollabService) Remove(ctx context.Context, requester *domain.User, projectID, targetID primitive.ObjectID) error {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !CanManage(p, requester.ID) {
		return ErrForbidden
	}
	if !p.RemoveCollaborator(targetID) {
		return nil
	}
	if err := s.projects.Save(ctx, p); err != nil {
		return fmt.Errorf("remove collaborator: %w", err)
	}
	log.Info().Str("module", "core.collab").
		Str("project", p.ID.Hex()).Str("user", targetID.Hex()).
		Msg("collaborator removed")
	return nil
}

// IsConflict reports whether err is any collaborator conflict. Handy at
// the transport edge where conflicts are expected outcomes, not
// anomalies worth an error log.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
