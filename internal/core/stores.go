package core

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/domain"
)

// UserStore is the identity lookup surface the core needs. Absent
// records surface as ErrNotFound, never as a nil user with nil error.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProjectStore owns project documents and their task reference list.
type ProjectStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error)
	// FindDetail expands tasks (with completer) and collaborators.
	FindDetail(ctx context.Context, id primitive.ObjectID) (*domain.ProjectDetail, error)
	// FindAllFor returns every project the user created or collaborates
	// on, with the task reference list omitted.
	FindAllFor(ctx context.Context, userID primitive.ObjectID) ([]domain.Project, error)
	Save(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, p *domain.Project) error
}

// TaskStore owns task documents.
type TaskStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error)
	Save(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, t *domain.Task) error
}
