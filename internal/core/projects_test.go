package core

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/domain"
)

func TestProjects_List_ExactMembership(t *testing.T) {
	users := &fakeUsers{}
	u := users.add("Ana", "ana@example.com")
	other := users.add("Bob", "bob@example.com")

	projects := newFakeProjects()
	created := projects.add(u.ID)          // u is creator
	collab := projects.add(other.ID, u.ID) // u collaborates
	unrelated := projects.add(other.ID)    // no relation

	svc := NewProjectService(projects)
	got, err := svc.List(context.Background(), u)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := map[primitive.ObjectID]bool{created.ID: true, collab.ID: true}
	if len(got) != 2 {
		t.Fatalf("got %d projects, want 2", len(got))
	}
	for _, p := range got {
		if !want[p.ID] {
			t.Errorf("unexpected project %s in listing", p.ID.Hex())
		}
		if p.ID == unrelated.ID {
			t.Error("unrelated project leaked into listing")
		}
	}
}

func TestProjects_Get_NotFoundNeverPartial(t *testing.T) {
	users := &fakeUsers{}
	u := users.add("Ana", "ana@example.com")
	svc := NewProjectService(newFakeProjects())

	detail, err := svc.Get(context.Background(), u, primitive.NewObjectID())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if detail != nil {
		t.Error("got a partially populated detail alongside NotFound")
	}
}

func TestProjects_Get_ForbiddenForStranger(t *testing.T) {
	users := &fakeUsers{}
	creator := users.add("Ana", "ana@example.com")
	stranger := users.add("Bob", "bob@example.com")
	projects := newFakeProjects()
	p := projects.add(creator.ID)

	svc := NewProjectService(projects)
	_, err := svc.Get(context.Background(), stranger, p.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjects_Get_CollaboratorMayView(t *testing.T) {
	users := &fakeUsers{}
	creator := users.add("Ana", "ana@example.com")
	collaborator := users.add("Bob", "bob@example.com")
	projects := newFakeProjects()
	p := projects.add(creator.ID, collaborator.ID)

	svc := NewProjectService(projects)
	detail, err := svc.Get(context.Background(), collaborator, p.ID)
	if err != nil {
		t.Fatalf("get as collaborator: %v", err)
	}
	if detail.ID != p.ID {
		t.Errorf("detail id = %s, want %s", detail.ID.Hex(), p.ID.Hex())
	}
}

func TestProjects_Create_SetsCreator(t *testing.T) {
	users := &fakeUsers{}
	u := users.add("Ana", "ana@example.com")
	projects := newFakeProjects()
	svc := NewProjectService(projects)

	p, err := svc.Create(context.Background(), u, ProjectInput{Name: "  Site relaunch "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Creator != u.ID {
		t.Error("creator not set to requester")
	}
	if p.Name != "Site relaunch" {
		t.Errorf("name = %q, want trimmed", p.Name)
	}
	if len(p.Collaborators) != 0 {
		t.Error("new project must start with no collaborators")
	}
	if p.ID.IsZero() {
		t.Error("store did not assign an id")
	}
}

func TestProjects_Create_EmptyName(t *testing.T) {
	users := &fakeUsers{}
	u := users.add("Ana", "ana@example.com")
	svc := NewProjectService(newFakeProjects())

	_, err := svc.Create(context.Background(), u, ProjectInput{Name: "   "})
	if !errors.Is(err, domain.ErrNameEmpty) {
		t.Fatalf("expected ErrNameEmpty, got %v", err)
	}
}

func TestProjects_Edit_PartialAndGated(t *testing.T) {
	users := &fakeUsers{}
	creator := users.add("Ana", "ana@example.com")
	collaborator := users.add("Bob", "bob@example.com")
	projects := newFakeProjects()
	p := projects.add(creator.ID, collaborator.ID)
	p.Description = "original description"
	p.Client = "ACME"

	svc := NewProjectService(projects)
	ctx := context.Background()

	// Collaborators may view but never edit.
	if _, err := svc.Edit(ctx, collaborator, p.ID, ProjectInput{Name: "hijack"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for collaborator edit, got %v", err)
	}

	got, err := svc.Edit(ctx, creator, p.ID, ProjectInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Description != "original description" || got.Client != "ACME" {
		t.Error("unset fields must keep their stored values")
	}
}

func TestProjects_Delete_CreatorOnly(t *testing.T) {
	users := &fakeUsers{}
	creator := users.add("Ana", "ana@example.com")
	collaborator := users.add("Bob", "bob@example.com")
	projects := newFakeProjects()
	p := projects.add(creator.ID, collaborator.ID)

	svc := NewProjectService(projects)
	ctx := context.Background()

	if err := svc.Delete(ctx, collaborator, p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, creator, p.ID); err != nil {
		t.Fatalf("delete as creator: %v", err)
	}
	if err := svc.Delete(ctx, creator, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
