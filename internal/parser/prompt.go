package parser

import (
	"encoding/base64"

	"smartclaim/internal/domain"
	"smartclaim/internal/port"
)

// ExtractionFields lists the keys the model must return, in prompt order.
var ExtractionFields = []string{
	"patient_name",
	"dateOfClaim",
	"provider_name",
	"address",
	"service_date",
	"claim_number",
	"total_amount",
	"insurance_provider",
	"claim_status",
}

// BuildClaimExtractionPrompt returns the fixed instruction sent with every
// invoice image.
func BuildClaimExtractionPrompt() string {
	return `You are a medical insurance claim extraction assistant. Analyze the provided medical invoice or claim document image and extract the following fields.

Return ONLY a single valid JSON object with no markdown formatting, no code fences, no explanation and no text before or after it.

The JSON object must have exactly these keys:
{
  "patient_name": "",
  "dateOfClaim": "",
  "provider_name": "",
  "address": "",
  "service_date": "",
  "claim_number": "",
  "total_amount": "",
  "insurance_provider": "",
  "claim_status": ""
}

Rules:
- Every value must be a string.
- Copy values as printed on the document, including currency symbols on total_amount.
- claim_number is the claim, invoice or reference number that identifies this claim.
- If a field is not present in the document, use an empty string.`
}

// PromptFor returns the prompt carried by input, or the default extraction prompt.
func PromptFor(input port.ParseInput) string {
	if input.Prompt != "" {
		return input.Prompt
	}
	return BuildClaimExtractionPrompt()
}

// EncodedData returns the base64 payload for input, encoding FileBytes when the
// caller did not supply one.
func EncodedData(input port.ParseInput) string {
	if input.Base64Data != "" {
		return input.Base64Data
	}
	return base64.StdEncoding.EncodeToString(input.FileBytes)
}

// SupportedContentType reports whether a provider can be sent contentType.
func SupportedContentType(contentType string) bool {
	_, ok := domain.AllowedContentTypes[contentType]
	return ok
}
