package ses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartclaim/internal/email/ses"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{}, nil
}

func TestSESSender_SendClaimRecordedEmail(t *testing.T) {
	client := &fakeSES{}
	sender := ses.NewSESSenderWithClient(client, "noreply@smartclaim.app", "SmartClaim", "https://app.example.com")

	err := sender.SendClaimRecordedEmail(context.Background(), "a@x.com", "<Alice>", "C100")

	require.NoError(t, err)
	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "SmartClaim <noreply@smartclaim.app>", *in.FromEmailAddress)
	assert.Equal(t, []string{"a@x.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Claim C100 recorded", *in.Content.Simple.Subject.Data)
	assert.Contains(t, *in.Content.Simple.Body.Html.Data, "&lt;Alice&gt;")
	assert.Contains(t, *in.Content.Simple.Body.Text.Data, "https://app.example.com/claims")
}

func TestSESSender_SendWelcomeEmail_Error(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	sender := ses.NewSESSenderWithClient(client, "noreply@smartclaim.app", "SmartClaim", "https://app.example.com")

	err := sender.SendWelcomeEmail(context.Background(), "a@x.com", "Alice")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
