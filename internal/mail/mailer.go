// Package mail delivers the two transactional mails the account flow
// needs. The core never imports this; only the accounts glue does.
package mail

import "context"

// Mailer is the narrow delivery surface. Implementations must not
// block past their own transport timeout.
type Mailer interface {
	SendConfirmation(ctx context.Context, name, email, token string) error
	SendPasswordReset(ctx context.Context, name, email, token string) error
}

// Discard drops every mail. Used in tests and token-on-log dev setups.
type Discard struct{}

func (Discard) SendConfirmation(context.Context, string, string, string) error  { return nil }
func (Discard) SendPasswordReset(context.Context, string, string, string) error { return nil }
