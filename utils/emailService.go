package utils

import (
	"context"
	"coursehub/config"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers a single HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NewSender picks the mail transport named by cfg.MailProvider.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.MailProvider {
	case "smtp", "":
		return &SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.EmailSender,
			FromName: cfg.EmailFromName,
			Password: cfg.Password,
		}, nil
	case "sendgrid":
		if cfg.SendgridAPIKey == "" {
			return nil, fmt.Errorf("sendgrid: SENDGRID_API_KEY is required")
		}
		return NewSendgridSender(cfg.SendgridAPIKey, cfg.EmailSender, cfg.EmailFromName), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}

// SMTPSender sends mail with PLAIN auth over STARTTLS.
type SMTPSender struct {
	Host     string
	Port     string
	From     string
	FromName string
	Password string
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// MIME basics
	msg := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n"
	msg += fmt.Sprintf("From: %s <%s>\r\n", s.FromName, s.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", sanitizeHeader(subject))
	msg += htmlBody

	auth := smtp.PlainAuth("", s.From, s.Password, s.Host)
	if err := smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// SendgridSender sends mail through the SendGrid v3 API.
type SendgridSender struct {
	client   *sendgrid.Client
	From     string
	FromName string
}

func NewSendgridSender(apiKey, from, fromName string) *SendgridSender {
	return &SendgridSender{
		client:   sendgrid.NewSendClient(apiKey),
		From:     from,
		FromName: fromName,
	}
}

func (s *SendgridSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(s.FromName, s.From),
		subject,
		mail.NewEmail("", to),
		"",
		htmlBody,
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", to, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send to %s: status %d: %s", to, resp.StatusCode, resp.Body)
	}
	return nil
}

// sanitizeHeader strips CR/LF so user-controlled values (course names) cannot
// inject extra headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
