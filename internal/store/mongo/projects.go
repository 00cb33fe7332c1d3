package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mdb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uptask/internal/core"
	"uptask/internal/domain"
)

const projectsCollection = "projects"

// Projects implements core.ProjectStore.
type Projects struct {
	col   *mdb.Collection
	store *Store
}

func (p *Projects) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error) {
	var project domain.Project
	err := p.col.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mdb.ErrNoDocuments) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &project, nil
}

// FindDetail loads the project and expands its relations: tasks in the
// project's stored order with the completer redacted, collaborators as
// redacted views. Absence of the project is ErrNotFound before any
// expansion happens; a partially expanded detail is never returned.
func (p *Projects) FindDetail(ctx context.Context, id primitive.ObjectID) (*domain.ProjectDetail, error) {
	project, err := p.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.ProjectDetail{
		Project:               *project,
		ExpandedTasks:         []domain.TaskDetail{},
		ExpandedCollaborators: []domain.UserRef{},
	}

	tasks, err := p.tasksInOrder(ctx, project.Tasks)
	if err != nil {
		return nil, err
	}

	completers := make([]primitive.ObjectID, 0, len(tasks))
	for _, t := range tasks {
		if !t.CompletedBy.IsZero() {
			completers = append(completers, t.CompletedBy)
		}
	}
	refs, err := p.userRefs(ctx, append(completers, project.Collaborators...))
	if err != nil {
		return nil, err
	}

	for _, t := range tasks {
		td := domain.TaskDetail{Task: t}
		if ref, ok := refs[t.CompletedBy]; ok {
			td.Completer = &ref
		}
		detail.ExpandedTasks = append(detail.ExpandedTasks, td)
	}
	for _, cid := range project.Collaborators {
		if ref, ok := refs[cid]; ok {
			detail.ExpandedCollaborators = append(detail.ExpandedCollaborators, ref)
		}
	}
	return detail, nil
}

// tasksInOrder fetches the referenced tasks and restores the order of
// the project's reference list; referenced ids with no document are
// skipped rather than failing the whole read.
func (p *Projects) tasksInOrder(ctx context.Context, ids []primitive.ObjectID) ([]domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := p.store.db.Collection(tasksCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("expand tasks: %w", err)
	}
	var fetched []domain.Task
	if err := cur.All(ctx, &fetched); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	byID := make(map[primitive.ObjectID]domain.Task, len(fetched))
	for _, t := range fetched {
		byID[t.ID] = t
	}
	out := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (p *Projects) userRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.UserRef, error) {
	out := make(map[primitive.ObjectID]domain.UserRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := p.store.db.Collection(usersCollection).Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1}))
	if err != nil {
		return nil, fmt.Errorf("expand users: %w", err)
	}
	var refs []domain.UserRef
	if err := cur.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("decode user refs: %w", err)
	}
	for _, r := range refs {
		out[r.ID] = r
	}
	return out, nil
}

// FindAllFor returns projects where userID is creator or collaborator,
// newest first, with the task reference list projected away.
func (p *Projects) FindAllFor(ctx context.Context, userID primitive.ObjectID) ([]domain.Project, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"creator": userID},
		bson.M{"collaborators": userID},
	}}
	cur, err := p.col.Find(ctx, filter,
		options.Find().
			SetProjection(bson.M{"tasks": 0}).
			SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("find projects for user: %w", err)
	}
	out := []domain.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return out, nil
}

// Save inserts new projects and replaces existing ones.
func (p *Projects) Save(ctx context.Context, project *domain.Project) error {
	if project.ID.IsZero() {
		res, err := p.col.InsertOne(ctx, project)
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			project.ID = oid
		}
		return nil
	}
	res, err := p.col.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return fmt.Errorf("replace project: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Delete removes the project and every task it references.
func (p *Projects) Delete(ctx context.Context, project *domain.Project) error {
	if len(project.Tasks) > 0 {
		if _, err := p.store.db.Collection(tasksCollection).
			DeleteMany(ctx, bson.M{"project": project.ID}); err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
	}
	res, err := p.col.DeleteOne(ctx, bson.M{"_id": project.ID})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}
