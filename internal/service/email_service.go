package service

import (
	"context"
	"fmt"

	"threadnest/internal/middleware"

	"github.com/resend/resend-go/v2"
)

// Mailer delivers outbound mail.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// EmailService sends mail through Resend. Without an API key (development,
// tests) it logs the message instead of sending it.
type EmailService struct {
	client *resend.Client
	from   string
}

func NewEmailService(apiKey, from string) *EmailService {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &EmailService{
		client: client,
		from:   from,
	}
}

func (s *EmailService) SendConfirmationCode(ctx context.Context, email, code string) error {
	subject := "Your confirmation code"
	body := fmt.Sprintf("Your confirmation code is %s. It expires in 10 minutes.", code)

	if s.client == nil {
		middleware.Logger.Info("email delivery skipped (no API key)",
			"to", email, "subject", subject, "code", code)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		middleware.Logger.Info("email sent", "type", "confirmation_code", "to", email)
	}
	return err
}
