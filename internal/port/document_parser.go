package port

import "context"

// ParseInput carries the encoded document and the extraction instruction.
type ParseInput struct {
	FileBytes   []byte
	Base64Data  string
	ContentType string
	Prompt      string
}

// ParseOutput contains the model's free-form reply. The reply is expected to
// contain one JSON object but no provider enforces that.
type ParseOutput struct {
	RawText    string
	ModelUsed  string
	PromptUsed string
}

// DocumentParser abstracts the external generative model used for extraction.
type DocumentParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
