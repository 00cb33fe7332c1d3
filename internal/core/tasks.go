package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/domain"
)

// TaskService is thin glue around the task store: every operation
// resolves the owning project first and gates on it. Task mutations
// feed the realtime channel at the transport edge, never from here.
type TaskService struct {
	projects ProjectStore
	tasks    TaskStore
}

func NewTaskService(projects ProjectStore, tasks TaskStore) *TaskService {
	return &TaskService{projects: projects, tasks: tasks}
}

// TaskInput carries the caller-editable task fields.
type TaskInput struct {
	Name        string
	Description string
	DueDate     time.Time
	Priority    string
	Project     primitive.ObjectID
}

func (s *TaskService) ownedProject(ctx context.Context, id primitive.ObjectID) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// Create stores a task and appends its reference to the owning
// project's ordered task list. Creator only.
func (s *TaskService) Create(ctx context.Context, requester *domain.User, in TaskInput) (*domain.Task, error) {
	p, err := s.ownedProject(ctx, in.Project)
	if err != nil {
		return nil, err
	}
	if !CanManage(p, requester.ID) {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameEmpty
	}
	now := time.Now().UTC()
	t := &domain.Task{
		Name:        name,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Project:     p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	p.Tasks = append(p.Tasks, t.ID)
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("attach task: %w", err)
	}
	return t, nil
}

// Get returns a task to anyone who may view the owning project.
func (s *TaskService) Get(ctx context.Context, requester *domain.User, id primitive.ObjectID) (*domain.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.ownedProject(ctx, t.Project)
	if err != nil {
		return nil, err
	}
	if !CanView(p, requester.ID) {
		return nil, ErrForbidden
	}
	return t, nil
}

// Edit updates the caller-editable fields. Creator only.
func (s *TaskService) Edit(ctx context.Context, requester *domain.User, id primitive.ObjectID, in TaskInput) (*domain.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.ownedProject(ctx, t.Project)
	if err != nil {
		return nil, err
	}
	if !CanManage(p, requester.ID) {
		return nil, ErrForbidden
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		t.Name = name
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if !in.DueDate.IsZero() {
		t.DueDate = in.DueDate
	}
	if in.Priority != "" {
		t.Priority = in.Priority
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("edit task: %w", err)
	}
	return t, nil
}

// Delete removes the task and its reference from the owning project.
// Creator only.
func (s *TaskService) Delete(ctx context.Context, requester *domain.User, id primitive.ObjectID) error {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.ownedProject(ctx, t.Project)
	if err != nil {
		return err
	}
	if !CanManage(p, requester.ID) {
		return ErrForbidden
	}
	for i, ref := range p.Tasks {
		if ref == t.ID {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			break
		}
	}
	if err := s.projects.Save(ctx, p); err != nil {
		return fmt.Errorf("detach task: %w", err)
	}
	if err := s.tasks.Delete(ctx, t); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Toggle flips completion. Any viewer of the project may complete or
// reopen a task; the completer identity is recorded on completion and
// cleared on reopen.
func (s *TaskService) Toggle(ctx context.Context, requester *domain.User, id primitive.ObjectID) (*domain.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.ownedProject(ctx, t.Project)
	if err != nil {
		return nil, err
	}
	if !CanView(p, requester.ID) {
		return nil, ErrForbidden
	}
	t.Done = !t.Done
	if t.Done {
		t.CompletedBy = requester.ID
	} else {
		t.CompletedBy = primitive.NilObjectID
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return t, nil
}
