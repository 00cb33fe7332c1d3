package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"uptask/internal/auth"
	"uptask/internal/core"
	"uptask/internal/domain"
)

type memStore struct {
	users []*domain.User
}

func (m *memStore) find(pred func(*domain.User) bool) (*domain.User, error) {
	for _, u := range m.users {
		if pred(u) {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Email == email })
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.ID == id })
}

func (m *memStore) FindByToken(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, core.ErrNotFound
	}
	return m.find(func(u *domain.User) bool { return u.Token == token })
}

func (m *memStore) Insert(_ context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return core.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, user)
	return nil
}

func (m *memStore) Update(context.Context, *domain.User) error { return nil }

type recordingMailer struct {
	confirmations []string
	resets        []string
}

func (r *recordingMailer) SendConfirmation(_ context.Context, _, _, token string) error {
	r.confirmations = append(r.confirmations, token)
	return nil
}

func (r *recordingMailer) SendPasswordReset(_ context.Context, _, _, token string) error {
	r.resets = append(r.resets, token)
	return nil
}

func newTestService() (*Service, *memStore, *recordingMailer) {
	store := &memStore{}
	mailer := &recordingMailer{}
	return NewService(store, auth.NewIssuer("test-secret"), mailer), store, mailer
}

func TestRegisterAndConfirm(t *testing.T) {
	svc, store, mailer := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "Ana@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.False(t, user.Confirmed)
	assert.NotEmpty(t, user.Token)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	require.Len(t, mailer.confirmations, 1)
	assert.Equal(t, user.Token, mailer.confirmations[0])

	require.NoError(t, svc.Confirm(ctx, user.Token))
	stored, err := store.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, stored.Confirmed)
	assert.Empty(t, stored.Token)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Imposter", "ana@example.com", "hunter23")
	assert.ErrorIs(t, err, core.ErrDuplicateEmail)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "abc")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	// Before confirmation the login is rejected, but only after the
	// password checked out.
	_, _, err = svc.Login(ctx, "ana@example.com", "hunter22")
	assert.ErrorIs(t, err, core.ErrAccountNotConfirmed)

	require.NoError(t, svc.Confirm(ctx, user.Token))

	token, logged, err := svc.Login(ctx, "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password.
	_, _, err = svc.Login(ctx, "ghost@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, store, mailer := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(ctx, user.Token))

	require.NoError(t, svc.Forgot(ctx, "ana@example.com"))
	require.Len(t, mailer.resets, 1)
	resetToken := mailer.resets[0]

	require.NoError(t, svc.CheckResetToken(ctx, resetToken))
	require.NoError(t, svc.Reset(ctx, resetToken, "n3w-password"))

	stored, err := store.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("n3w-password")))

	// The token is single use.
	assert.ErrorIs(t, svc.CheckResetToken(ctx, resetToken), core.ErrNotFound)
}

func TestForgot_UnknownEmail(t *testing.T) {
	svc, _, mailer := newTestService()
	err := svc.Forgot(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, mailer.resets)
}
