package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"smartclaim/internal/config"
	"smartclaim/internal/parser"
	"smartclaim/internal/port"
)

const (
	defaultServerURL = "http://localhost:11434"
	defaultModel     = "llava"
)

// Parser implements port.DocumentParser against a self-hosted Ollama vision model.
type Parser struct {
	llm   llms.Model
	model string
}

// NewParser creates an Ollama-based document parser from a provider config.
func NewParser(cfg *config.ParserProviderConfig) (*Parser, error) {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	serverURL := cfg.BaseURL
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 300 * time.Second
	}

	llm, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(serverURL),
		ollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ollama: %w", err)
	}
	return &Parser{llm: llm, model: model}, nil
}

var _ port.DocumentParser = (*Parser)(nil)

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, fmt.Errorf("unsupported content type for ollama: %s", input.ContentType)
	}
	prompt := parser.PromptFor(input)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(input.ContentType, input.FileBytes),
				llms.TextPart(prompt),
			},
		},
	}

	resp, err := p.llm.GenerateContent(ctx, content, llms.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("calling ollama: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return nil, fmt.Errorf("empty response from ollama")
	}

	return &port.ParseOutput{
		RawText:    resp.Choices[0].Content,
		ModelUsed:  p.model,
		PromptUsed: prompt,
	}, nil
}
