// Package email notifies the workshop of contact form messages.
//
// Delivery is best effort: the visitor sees the same confirmation whether
// or not the notification went out, and failures are only logged.
package email

import (
	"context"
	"log/slog"
)

// Notifier delivers contact form messages to the workshop.
type Notifier interface {
	SendContactMessage(ctx context.Context, msg ContactMessage) error
}

// ContactMessage is a validated contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Email is a single outgoing message.
type Email struct {
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// SMTPConfig holds SMTP server configuration. Username and Password may be
// empty for a local relay such as Mailhog.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

const (
	DefaultFromEmail = "site@lapechetenebreuse.fr"
	DefaultFromName  = "La Pêche Ténébreuse"
)

// LogNotifier only logs that a message arrived. It never logs the content.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	n.logger.Info("contact message received",
		"has_phone", msg.Phone != "",
		"message_length", len(msg.Message),
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
