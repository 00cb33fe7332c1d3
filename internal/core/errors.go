// Package core holds the authorization, collaboration and task services
// plus the store contracts they call into. It has no transport or
// persistence code of its own.
package core

import (
	"errors"
	"fmt"
)

// Outcome taxonomy at the service boundary. NotFound and Forbidden are
// never conflated here; a transport layer may still choose to present
// both with one status for information hiding.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// Conflict reasons. Each wraps ErrConflict so callers can match either
// the class or the specific reason with errors.Is.
var (
	ErrCreatorCollaborator = fmt.Errorf("%w: project creator cannot be a collaborator", ErrConflict)
	ErrAlreadyCollaborator = fmt.Errorf("%w: user is already a collaborator", ErrConflict)
	ErrDuplicateEmail      = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrAccountNotConfirmed = fmt.Errorf("%w: account not confirmed", ErrConflict)
)
