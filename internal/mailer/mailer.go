package mailer

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"gopkg.in/gomail.v2"
)

// SendResult mirrors the email collaborator's response shape.
type SendResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Sender delivers transactional notices. Fire-and-forget from the
// caller's point of view: a failure is logged, never fatal.
type Sender interface {
	SendRejectionNotice(ctx context.Context, to, applicantName, reason string) (*SendResult, error)
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer() *SMTPMailer {
	host := getEnv("SMTP_HOST", "localhost")
	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")
	from := getEnv("SMTP_FROM", "no-reply@immogest.fr")

	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

// SendRejectionNotice emails a rejected applicant. Transient SMTP errors
// are retried with exponential backoff before giving up.
func (m *SMTPMailer) SendRejectionNotice(ctx context.Context, to, applicantName, reason string) (*SendResult, error) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Votre candidature de location")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Bonjour %s,\n\nNous sommes au regret de vous informer que votre candidature n'a pas été retenue.\n\nMotif : %s\n\nCordialement,\nL'équipe ImmoGest",
		applicantName, reason))

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("SMTP send to %s failed, will retry: %v", to, err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to send rejection notice to %s", to)
	}

	id := uuid.NewString()
	log.Printf("Rejection notice sent to %s (id %s)", to, id)
	return &SendResult{Success: true, ID: id}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
