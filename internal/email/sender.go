// Package email delivers transactional mail over SMTP.
package email

import "context"

// Sender delivers the application's transactional messages.
type Sender interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name, userType string) error
	SendMatchAlertEmail(ctx context.Context, toEmail, message string) error
}

// NoopSender silently drops all mail. Used when email delivery is
// disabled or unconfigured.
type NoopSender struct{}

func (NoopSender) SendWelcomeEmail(ctx context.Context, toEmail, name, userType string) error {
	return nil
}

func (NoopSender) SendMatchAlertEmail(ctx context.Context, toEmail, message string) error {
	return nil
}
