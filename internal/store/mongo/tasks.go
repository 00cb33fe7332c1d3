package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mdb "go.mongodb.org/mongo-driver/mongo"

	"uptask/internal/core"
	"uptask/internal/domain"
)

const tasksCollection = "tasks"

// Tasks implements core.TaskStore.
type Tasks struct {
	col *mdb.Collection
}

func (t *Tasks) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error) {
	var task domain.Task
	err := t.col.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mdb.ErrNoDocuments) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (t *Tasks) Save(ctx context.Context, task *domain.Task) error {
	if task.ID.IsZero() {
		res, err := t.col.InsertOne(ctx, task)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			task.ID = oid
		}
		return nil
	}
	res, err := t.col.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("replace task: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (t *Tasks) Delete(ctx context.Context, task *domain.Task) error {
	res, err := t.col.DeleteOne(ctx, bson.M{"_id": task.ID})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}
