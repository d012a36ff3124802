package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"smartclaim/internal/port"
)

// API is the subset of the SES v2 client used by the sender.
type API interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client      API
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return NewSESSenderWithClient(sesv2.NewFromConfig(cfg), fromAddress, fromName, frontendURL), nil
}

// NewSESSenderWithClient creates an SES sender over the given client (for testing).
func NewSESSenderWithClient(client API, fromAddress, fromName, frontendURL string) port.EmailSender {
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}
}

func (s *sesSender) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	loginURL := s.frontendURL + "/login"
	subject := "Welcome to SmartClaim"
	htmlBody := buildHTML(
		"Welcome to SmartClaim",
		toName,
		"Your account is ready. Upload a medical invoice and we will pull out the claim details for you.",
		"Sign in", loginURL,
	)
	textBody := fmt.Sprintf("Hi %s,\n\nYour SmartClaim account is ready. Sign in at:\n%s\n\nSmartClaim Team", toName, loginURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendClaimRecordedEmail(ctx context.Context, toEmail, toName, claimNumber string) error {
	claimsURL := s.frontendURL + "/claims"
	subject := fmt.Sprintf("Claim %s recorded", claimNumber)
	htmlBody := buildHTML(
		"Your claim was recorded",
		toName,
		fmt.Sprintf("We extracted and saved claim <strong>%s</strong> from your invoice.", html.EscapeString(claimNumber)),
		"View claims", claimsURL,
	)
	textBody := fmt.Sprintf("Hi %s,\n\nWe extracted and saved claim %s from your invoice. Review it at:\n%s\n\nSmartClaim Team", toName, claimNumber, claimsURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// buildHTML renders the shared notification layout. message may contain markup;
// every other argument is escaped.
func buildHTML(title, name, message, buttonLabel, buttonURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s</h2>
  <p>Hi %s,</p>
  <p>%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0E7490; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">%s</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">SmartClaim - Medical Claim Intake</p>
</body>
</html>`,
		html.EscapeString(title), html.EscapeString(name), message,
		html.EscapeString(buttonURL), html.EscapeString(buttonLabel))
}
