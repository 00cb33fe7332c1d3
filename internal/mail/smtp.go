package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

const fromHeader = "UpTask <accounts@uptask.dev>"

// SMTP sends through a plain SMTP relay. Auth is optional for local
// catchers like mailhog.
type SMTP struct {
	Addr        string // host:port
	Username    string
	Password    string
	FrontendURL string
}

func (m *SMTP) auth() smtp.Auth {
	if m.Username == "" {
		return nil
	}
	host, _, _ := strings.Cut(m.Addr, ":")
	return smtp.PlainAuth("", m.Username, m.Password, host)
}

func (m *SMTP) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + fromHeader,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")
	if err := smtp.SendMail(m.Addr, m.auth(), "accounts@uptask.dev", []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	log.Info().Str("module", "mail").Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}

func (m *SMTP) SendConfirmation(_ context.Context, name, email, token string) error {
	body := fmt.Sprintf(
		`<p>Hi %s, confirm your UpTask account.</p>
<p>Your account is almost ready, it only needs confirming at the link below:</p>
<a href="%s/confirm/%s">Confirm account</a>
<p>If you did not create this account you can ignore this mail.</p>`,
		name, m.FrontendURL, token)
	return m.send(email, "UpTask - confirm your account", body)
}

func (m *SMTP) SendPasswordReset(_ context.Context, name, email, token string) error {
	body := fmt.Sprintf(
		`<p>Hi %s, you asked to reset your UpTask password.</p>
<p>Open the link below to choose a new one:</p>
<a href="%s/forgot-password/%s">Reset password</a>
<p>If you did not ask for this you can ignore this mail.</p>`,
		name, m.FrontendURL, token)
	return m.send(email, "UpTask - reset your password", body)
}
