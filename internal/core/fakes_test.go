package core

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/domain"
)

// In-memory stores for service tests. FindByID hands out copies the
// way a decoded document would be, so unsaved mutations never leak
// back into the store.

type fakeUsers struct {
	users []*domain.User
}

func (f *fakeUsers) add(name, email string) *domain.User {
	u := &domain.User{ID: primitive.NewObjectID(), Name: name, Email: email, PasswordHash: "x", Confirmed: true}
	f.users = append(f.users, u)
	return u
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

type fakeProjects struct {
	projects map[primitive.ObjectID]*domain.Project
	saves    int
	saveErr  error
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{projects: make(map[primitive.ObjectID]*domain.Project)}
}

func (f *fakeProjects) add(creator primitive.ObjectID, collaborators ...primitive.ObjectID) *domain.Project {
	p := &domain.Project{
		ID:            primitive.NewObjectID(),
		Name:          fmt.Sprintf("project-%d", len(f.projects)+1),
		Creator:       creator,
		Collaborators: collaborators,
	}
	f.projects[p.ID] = p
	return p
}

func (f *fakeProjects) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	cp.Collaborators = append([]primitive.ObjectID(nil), p.Collaborators...)
	cp.Tasks = append([]primitive.ObjectID(nil), p.Tasks...)
	return &cp, nil
}

func (f *fakeProjects) FindDetail(ctx context.Context, id primitive.ObjectID) (*domain.ProjectDetail, error) {
	p, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.ProjectDetail{
		Project:               *p,
		ExpandedTasks:         []domain.TaskDetail{},
		ExpandedCollaborators: []domain.UserRef{},
	}, nil
}

func (f *fakeProjects) FindAllFor(_ context.Context, userID primitive.ObjectID) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range f.projects {
		if p.Creator == userID || p.HasCollaborator(userID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjects) Save(_ context.Context, p *domain.Project) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjects) Delete(_ context.Context, p *domain.Project) error {
	if _, ok := f.projects[p.ID]; !ok {
		return ErrNotFound
	}
	delete(f.projects, p.ID)
	return nil
}

type fakeTasks struct {
	tasks map[primitive.ObjectID]*domain.Task
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: make(map[primitive.ObjectID]*domain.Task)}
}

func (f *fakeTasks) add(project primitive.ObjectID) *domain.Task {
	t := &domain.Task{ID: primitive.NewObjectID(), Name: "task", Project: project}
	f.tasks[t.ID] = t
	return t
}

func (f *fakeTasks) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) Save(_ context.Context, t *domain.Task) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, t *domain.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	delete(f.tasks, t.ID)
	return nil
}
