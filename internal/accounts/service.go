// Package accounts is the thin account-lifecycle glue around the core:
// registration, confirmation, login and password recovery. Credential
// hashing and mail delivery stay behind narrow seams.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"uptask/internal/auth"
	"uptask/internal/core"
	"uptask/internal/domain"
	"uptask/internal/mail"
)

const minPasswordLen = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLen)
)

// Store is the account-side persistence surface, implemented by the
// mongo user store.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByToken(ctx context.Context, token string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

type Service struct {
	store  Store
	issuer *auth.Issuer
	mailer mail.Mailer
}

func NewService(store Store, issuer *auth.Issuer, mailer mail.Mailer) *Service {
	return &Service{store: store, issuer: issuer, mailer: mailer}
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Register stores an unconfirmed account and mails the confirmation
// token. Mail failure is logged, not surfaced: the token can be resent
// and the account already exists.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(name, email)
	if err != nil {
		return nil, err
	}
	if user.PasswordHash, err = hashPassword(password); err != nil {
		return nil, err
	}
	user.Token = uuid.NewString()

	if err := s.store.Insert(ctx, user); err != nil {
		return nil, err
	}
	if err := s.mailer.SendConfirmation(ctx, user.Name, user.Email, user.Token); err != nil {
		log.Error().Err(err).Str("module", "accounts").Str("email", user.Email).Msg("confirmation mail failed")
	}
	return user, nil
}

// Confirm validates a confirmation token and activates the account.
func (s *Service) Confirm(ctx context.Context, token string) error {
	user, err := s.store.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	user.Confirmed = true
	user.Token = ""
	return s.store.Update(ctx, user)
}

// Login checks the credentials and returns a signed bearer token. An
// unknown email and a wrong password are indistinguishable to the
// caller; an unconfirmed account is reported as such.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Confirmed {
		return "", nil, core.ErrAccountNotConfirmed
	}
	token, err := s.issuer.Sign(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Forgot issues a reset token and mails it.
func (s *Service) Forgot(ctx context.Context, email string) error {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	user.Token = uuid.NewString()
	if err := s.store.Update(ctx, user); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Name, user.Email, user.Token); err != nil {
		log.Error().Err(err).Str("module", "accounts").Str("email", user.Email).Msg("reset mail failed")
	}
	return nil
}

// CheckResetToken reports whether a reset token is live.
func (s *Service) CheckResetToken(ctx context.Context, token string) error {
	_, err := s.store.FindByToken(ctx, token)
	return err
}

// Reset consumes the token and stores the new credential hash.
func (s *Service) Reset(ctx context.Context, token, password string) error {
	user, err := s.store.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if user.PasswordHash, err = hashPassword(password); err != nil {
		return err
	}
	user.Token = ""
	return s.store.Update(ctx, user)
}
