package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mdb "go.mongodb.org/mongo-driver/mongo"

	"uptask/internal/core"
	"uptask/internal/domain"
)

const usersCollection = "users"

// Users implements core.UserStore plus the account lifecycle lookups
// the registration flow needs.
type Users struct {
	col *mdb.Collection
}

func (u *Users) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := u.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mdb.ErrNoDocuments) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return u.findOne(ctx, bson.M{"email": email})
}

func (u *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return u.findOne(ctx, bson.M{"_id": id})
}

// FindByToken resolves a confirmation or password-reset token.
func (u *Users) FindByToken(ctx context.Context, token string) (*domain.User, error) {
	return u.findOne(ctx, bson.M{"token": token})
}

// Insert stores a new account. A duplicate email is a conflict, not a
// transient failure.
func (u *Users) Insert(ctx context.Context, user *domain.User) error {
	res, err := u.col.InsertOne(ctx, user)
	if mdb.IsDuplicateKeyError(err) {
		return core.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// Update replaces the stored record for user.ID.
func (u *Users) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := u.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}
