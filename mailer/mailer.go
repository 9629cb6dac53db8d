// Package mailer delivers contact-form messages.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"
	"github.com/microcosm-cc/bluemonday"
)

// ContactMessage is a visitor's message from the contact page.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

var strict = bluemonday.StrictPolicy()

// Sanitized strips any markup from every field.
func (m ContactMessage) Sanitized() ContactMessage {
	return ContactMessage{
		Name:    strings.TrimSpace(strict.Sanitize(m.Name)),
		Email:   strings.TrimSpace(strict.Sanitize(m.Email)),
		Subject: strings.TrimSpace(strict.Sanitize(m.Subject)),
		Body:    strings.TrimSpace(strict.Sanitize(m.Body)),
	}
}

// Sender delivers a contact message.
type Sender interface {
	Send(ctx context.Context, m ContactMessage) error
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPSender sends messages through an SMTP relay.
type SMTPSender struct {
	mu        sync.Mutex
	dialer    Dialer
	sender    string
	recipient string
}

// NewSMTPSender creates an SMTP sender that delivers to recipient.
func NewSMTPSender(host string, port int, username, password, sender, recipient string) *SMTPSender {
	d := mail.NewDialer(host, port, username, password)
	d.Timeout = 5 * time.Second
	return &SMTPSender{dialer: d, sender: sender, recipient: recipient}
}

func (s *SMTPSender) Send(ctx context.Context, m ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m = m.Sanitized()
	subject := m.Subject
	if subject == "" {
		subject = "New message from " + m.Name
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", s.sender)
	msg.SetHeader("To", s.recipient)
	msg.SetAddressHeader("Reply-To", m.Email, m.Name)
	msg.SetHeader("Subject", "[contact] "+subject)
	msg.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s\n", m.Name, m.Email, m.Body))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

// LogSender records messages instead of sending them, for sites without SMTP.
type LogSender struct {
	Logger *slog.Logger
}

func (l LogSender) Send(_ context.Context, m ContactMessage) error {
	m = m.Sanitized()
	l.Logger.Info("contact message", "name", m.Name, "email", m.Email, "subject", m.Subject, "length", len(m.Body))
	return nil
}
