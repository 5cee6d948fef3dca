package service

import (
	"context"
	"fmt"

	"booknet-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService returns the SendGrid-backed mailer. An empty API key
// disables delivery: sends are logged and reported as success, which keeps
// local development working without credentials.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendBorrowNotification(ctx context.Context, ownerEmail, borrowerName, bookTitle string) error {
	subject := fmt.Sprintf("Your book was borrowed: %s", bookTitle)
	body := fmt.Sprintf("Hello,\n\n%s has borrowed your book \"%s\".\n\nThe Booknet Team", borrowerName, bookTitle)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendReturnNotification(ctx context.Context, ownerEmail, borrowerName, bookTitle string) error {
	subject := fmt.Sprintf("Return pending: %s", bookTitle)
	body := fmt.Sprintf("Hello,\n\n%s has marked your book \"%s\" as returned. Please confirm once you have it back.\n\nThe Booknet Team", borrowerName, bookTitle)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendReturnApprovedNotification(ctx context.Context, borrowerEmail, bookTitle string) error {
	subject := fmt.Sprintf("Return confirmed: %s", bookTitle)
	body := fmt.Sprintf("Hello,\n\nThe owner has confirmed the return of \"%s\". The loan is closed.\n\nThe Booknet Team", bookTitle)
	return s.send(borrowerEmail, subject, body)
}

func (s *emailService) SendLoanReminder(ctx context.Context, borrowerEmail, bookTitle string, daysOut int) error {
	subject := fmt.Sprintf("Reminder: you still have %s", bookTitle)
	body := fmt.Sprintf("Hello,\n\nYou borrowed \"%s\" %d days ago and have not returned it yet.\n\nThe Booknet Team", bookTitle, daysOut)
	return s.send(borrowerEmail, subject, body)
}

func (s *emailService) send(to, subject, plainText string) error {
	if s.apiKey == "" {
		logger.Debug("email delivery disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
