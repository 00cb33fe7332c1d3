// Package mongo implements the core store contracts on a MongoDB
// database. Absent documents surface as core.ErrNotFound; everything
// else propagates wrapped for the caller to treat as transient.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	mdb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Store owns the client and hands out the per-collection stores.
type Store struct {
	client *mdb.Client
	db     *mdb.Database
}

// Connect dials the deployment, pings it and ensures the indexes the
// stores rely on.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mdb.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	log.Info().Str("module", "store.mongo").Str("database", database).Msg("connected")
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mdb.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure user email index: %w", err)
	}
	_, err = s.db.Collection(tasksCollection).Indexes().CreateOne(ctx, mdb.IndexModel{
		Keys: bson.D{{Key: "project", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("ensure task project index: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Users() *Users { return &Users{col: s.db.Collection(usersCollection)} }

func (s *Store) Projects() *Projects {
	return &Projects{col: s.db.Collection(projectsCollection), store: s}
}

func (s *Store) Tasks() *Tasks { return &Tasks{col: s.db.Collection(tasksCollection)} }
