package noop

import (
	"context"
	"log"

	"smartclaim/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendWelcomeEmail(_ context.Context, toEmail, toName string) error {
	log.Printf("[NOOP EMAIL] Welcome email for %s (%s): %s/login", toName, toEmail, s.frontendURL)
	return nil
}

func (s *noopSender) SendClaimRecordedEmail(_ context.Context, toEmail, toName, claimNumber string) error {
	log.Printf("[NOOP EMAIL] Claim %s recorded for %s (%s): %s/claims", claimNumber, toName, toEmail, s.frontendURL)
	return nil
}
