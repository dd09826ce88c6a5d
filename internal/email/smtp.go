package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"mime"
	"mime/quotedprintable"
	"net/smtp"
	"strings"
	"time"
)

// contactTemplate is the name of the HTML body template.
const contactTemplate = "contact.html"

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends contact messages to a fixed recipient over SMTP.
type SMTPNotifier struct {
	config    SMTPConfig
	recipient string
	templates *template.Template
	logger    *slog.Logger
	send      sendFunc
	now       func() time.Time
}

// NewSMTPNotifier parses the email templates found at the root of
// templates (e.g. web/templates/email).
func NewSMTPNotifier(config SMTPConfig, recipient string, templates fs.FS, logger *slog.Logger) (*SMTPNotifier, error) {
	if recipient == "" {
		return nil, fmt.Errorf("email: no recipient configured")
	}
	if config.From == "" {
		config.From = DefaultFromEmail
	}
	if config.FromName == "" {
		config.FromName = DefaultFromName
	}

	tmpl, err := template.New("email").ParseFS(templates, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &SMTPNotifier{
		config:    config,
		recipient: recipient,
		templates: tmpl,
		logger:    logger,
		send:      smtp.SendMail,
		now:       time.Now,
	}, nil
}

func (s *SMTPNotifier) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	var html bytes.Buffer
	err := s.templates.ExecuteTemplate(&html, contactTemplate, map[string]any{
		"Message": msg,
		"Year":    s.now().Year(),
	})
	if err != nil {
		return fmt.Errorf("failed to render contact email: %w", err)
	}

	text := fmt.Sprintf("Nouveau message depuis le site\n\nNom : %s\nEmail : %s\nTéléphone : %s\n\n%s\n",
		msg.Name, msg.Email, msg.Phone, msg.Message)

	return s.deliver(ctx, Email{
		To:       s.recipient,
		ReplyTo:  msg.Email,
		Subject:  "Nouveau message de " + msg.Name,
		HTMLBody: html.String(),
		TextBody: text,
	})
}

func (s *SMTPNotifier) deliver(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := s.buildMessage(email)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	if err := s.send(addr, auth, s.config.From, []string{email.To}, raw); err != nil {
		s.logger.Error("failed to send email", "subject", email.Subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent", "subject", email.Subject)
	return nil
}

const boundary = "tenebreuse-alternative"

// buildMessage writes a multipart/alternative message with quoted-printable
// text and HTML parts. Header values with accents are Q-encoded.
func (s *SMTPNotifier) buildMessage(email Email) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", s.config.FromName), s.config.From)
	fmt.Fprintf(&buf, "To: %s\r\n", email.To)
	if email.ReplyTo != "" && !strings.ContainsAny(email.ReplyTo, "\r\n") {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", email.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", oneLine(email.Subject)))
	fmt.Fprintf(&buf, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	for _, part := range []struct{ contentType, body string }{
		{"text/plain", email.TextBody},
		{"text/html", email.HTMLBody},
	} {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s; charset=utf-8\r\n", part.contentType)
		buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		qp := quotedprintable.NewWriter(&buf)
		if _, err := qp.Write([]byte(part.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes(), nil
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

var _ Notifier = (*SMTPNotifier)(nil)
