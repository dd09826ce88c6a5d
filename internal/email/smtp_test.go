package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTemplates = fstest.MapFS{
	"contact.html": {Data: []byte(`{{define "contact.html"}}<p>{{.Message.Name}}</p><p>{{.Message.Message}}</p>{{end}}`)},
}

func newTestNotifier(t *testing.T) (*SMTPNotifier, *[]byte) {
	t.Helper()
	n, err := NewSMTPNotifier(SMTPConfig{Host: "localhost", Port: 1025}, "atelier@exemple.fr", testTemplates,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	var sent []byte
	n.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "localhost:1025", addr)
		assert.Nil(t, a)
		assert.Equal(t, DefaultFromEmail, from)
		assert.Equal(t, []string{"atelier@exemple.fr"}, to)
		sent = msg
		return nil
	}
	n.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return n, &sent
}

func TestSMTPNotifier_SendContactMessage(t *testing.T) {
	n, sent := newTestNotifier(t)

	err := n.SendContactMessage(context.Background(), ContactMessage{
		Name:    "Jérôme <b>",
		Email:   "jeanne@exemple.fr",
		Message: "Bonjour, ma coque a des cloques.",
	})
	require.NoError(t, err)

	msg := string(*sent)
	assert.Contains(t, msg, "Reply-To: jeanne@exemple.fr\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, msg, "&lt;b&gt;", "HTML body escapes user input")
	assert.True(t, strings.HasSuffix(msg, "--"+boundary+"--\r\n"))
}

func TestSMTPNotifier_HeadersStayOnOneLine(t *testing.T) {
	n, sent := newTestNotifier(t)

	err := n.SendContactMessage(context.Background(), ContactMessage{
		Name:    "Jeanne\r\nBcc: x@y",
		Email:   "jeanne@exemple.fr\r\nCc: z@y",
		Message: "Bonjour",
	})
	require.NoError(t, err)

	headers, _, ok := strings.Cut(string(*sent), "\r\n\r\n")
	require.True(t, ok)
	assert.Contains(t, headers, "Subject: Nouveau message de Jeanne  Bcc: x@y\r\n")
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.NotContains(t, headers, "\r\nCc:")
	assert.NotContains(t, headers, "Reply-To:")
}

func TestSMTPNotifier_SendFailure(t *testing.T) {
	n, _ := newTestNotifier(t)
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }

	err := n.SendContactMessage(context.Background(), ContactMessage{Name: "A", Email: "a@b.c", Message: "m"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPNotifier_CancelledContext(t *testing.T) {
	n, sent := newTestNotifier(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.SendContactMessage(ctx, ContactMessage{Name: "A", Message: "m"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, *sent)
}

func TestNewSMTPNotifier_RequiresRecipient(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPConfig{}, "", testTemplates, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestLogNotifier(t *testing.T) {
	var buf strings.Builder
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, n.SendContactMessage(context.Background(), ContactMessage{Name: "Jeanne", Message: "secret"}))
	assert.Contains(t, buf.String(), "contact message received")
	assert.NotContains(t, buf.String(), "secret")
	assert.NotContains(t, buf.String(), "Jeanne")
}
