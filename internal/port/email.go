package port

import "context"

// EmailSender defines the contract for sending notification emails.
type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
	SendClaimRecordedEmail(ctx context.Context, toEmail, toName, claimNumber string) error
}
