// Package domain contains entities without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MaxNameLen  = 60
	MaxEmailLen = 254
)

var (
	ErrNameEmpty    = errors.New("name empty")
	ErrNameTooLong  = errors.New("name too long")
	ErrEmailEmpty   = errors.New("email empty")
	ErrEmailTooLong = errors.New("email too long")
)

// User is an account identity. PasswordHash and Token are opaque to the
// core services; they only ever read ID, Name and Email.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Token        string             `bson:"token,omitempty" json:"-"`
	Confirmed    bool               `bson:"confirmed" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"-"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"-"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
// Email is stored lowercase so the unique index catches case variants.
func NewUser(name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	if email == "" {
		return nil, ErrEmailEmpty
	}
	if len(email) > MaxEmailLen {
		return nil, ErrEmailTooLong
	}
	now := time.Now().UTC()
	return &User{Name: name, Email: email, CreatedAt: now, UpdatedAt: now}, nil
}

// UserRef is the redacted identity view handed to other users: no
// credential material, no confirmation bookkeeping.
type UserRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// Ref redacts a full user record.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
