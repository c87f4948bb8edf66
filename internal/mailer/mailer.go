package mailer

import (
	"context"
	"fmt"
	"log/slog"
)

// RoutingKeyPasswordReset routes OTP mails on the mail exchange
const RoutingKeyPasswordReset = "mail.password_reset"

// Message is an outgoing email
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers emails
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, firstName, otp string) error
}

const passwordResetBody = `Dear %s,

You have requested to reset your password. Please use the following One-Time Password (OTP) to proceed with the password reset process:

OTP: %s

This OTP is valid for 60 minutes. If you did not request a password reset, please disregard this email.
`

func passwordResetMessage(from, to, firstName, otp string) Message {
	if firstName == "" {
		firstName = "User"
	}
	return Message{
		From:    from,
		To:      to,
		Subject: "Password Reset - One-Time Password (OTP)",
		Body:    fmt.Sprintf(passwordResetBody, firstName, otp),
	}
}

// LogMailer writes mails to the log instead of sending them
type LogMailer struct {
	from   string
	logger *slog.Logger
}

// NewLogMailer creates a mailer for development setups without a broker
func NewLogMailer(from string, logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{from: from, logger: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, firstName, otp string) error {
	msg := passwordResetMessage(m.from, to, firstName, otp)
	m.logger.InfoContext(ctx, "password reset mail", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}

// JSONPublisher is satisfied by mq.Publisher
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// QueueMailer hands mails to an out-of-process worker over the message broker
type QueueMailer struct {
	from string
	pub  JSONPublisher
}

// NewQueueMailer creates a mailer publishing to pub
func NewQueueMailer(from string, pub JSONPublisher) *QueueMailer {
	return &QueueMailer{from: from, pub: pub}
}

func (m *QueueMailer) SendPasswordReset(ctx context.Context, to, firstName, otp string) error {
	if err := m.pub.PublishJSON(ctx, RoutingKeyPasswordReset, passwordResetMessage(m.from, to, firstName, otp)); err != nil {
		return fmt.Errorf("failed to queue password reset mail: %w", err)
	}
	return nil
}
