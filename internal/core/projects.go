package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/domain"
)

// ProjectService gates every project read and mutation through the
// access predicates before touching the store.
type ProjectService struct {
	projects ProjectStore
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

// ProjectInput carries the caller-editable fields. On edit, zero values
// leave the stored field untouched.
type ProjectInput struct {
	Name        string
	Description string
	DueDate     time.Time
	Client      string
}

// List returns every project the requester created or collaborates on.
// Membership is resolved by the store query itself, not by filtering
// per item.
func (s *ProjectService) List(ctx context.Context, requester *domain.User) ([]domain.Project, error) {
	out, err := s.projects.FindAllFor(ctx, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// Create stores a new project with the requester as immutable creator.
func (s *ProjectService) Create(ctx context.Context, requester *domain.User, in ProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameEmpty
	}
	now := time.Now().UTC()
	p := &domain.Project{
		Name:          name,
		Description:   in.Description,
		DueDate:       in.DueDate,
		Client:        in.Client,
		Creator:       requester.ID,
		Collaborators: []primitive.ObjectID{},
		Tasks:         []primitive.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// Get returns the expanded project detail. Unknown ids surface as
// ErrNotFound before any access check; a found project the requester
// may not view surfaces as ErrForbidden, never as an empty detail.
func (s *ProjectService) Get(ctx context.Context, requester *domain.User, id primitive.ObjectID) (*domain.ProjectDetail, error) {
	detail, err := s.projects.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(&detail.Project, requester.ID) {
		return nil, ErrForbidden
	}
	return detail, nil
}

// Edit updates the caller-editable fields, creator only.
func (s *ProjectService) Edit(ctx context.Context, requester *domain.User, id primitive.ObjectID, in ProjectInput) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanManage(p, requester.ID) {
		return nil, ErrForbidden
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if !in.DueDate.IsZero() {
		p.DueDate = in.DueDate
	}
	if in.Client != "" {
		p.Client = in.Client
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("edit project: %w", err)
	}
	return p, nil
}

// Delete removes the project, creator only.
func (s *ProjectService) Delete(ctx context.Context, requester *domain.User, id primitive.ObjectID) error {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanManage(p, requester.ID) {
		return ErrForbidden
	}
	if err := s.projects.Delete(ctx, p); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
