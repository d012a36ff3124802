package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"smartclaim/internal/config"
	"smartclaim/internal/parser"
	"smartclaim/internal/port"
)

const defaultModel = "gpt-4o"

// Parser implements port.DocumentParser using the OpenAI Responses API.
type Parser struct {
	client openai.Client
	model  string
}

// NewParser creates an OpenAI-based document parser from a provider config.
func NewParser(cfg *config.ParserProviderConfig) *Parser {
	return newParser(cfg, cfg.BaseURL)
}

// NewParserWithEndpoint creates a parser pointing at a custom API base URL (for testing).
func NewParserWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Parser {
	return newParser(cfg, endpoint)
}

func newParser(cfg *config.ParserProviderConfig, baseURL string) *Parser {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Parser{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

var _ port.DocumentParser = (*Parser)(nil)

func (p *Parser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	prompt := parser.PromptFor(input)

	attachment, err := buildAttachment(input)
	if err != nil {
		return nil, fmt.Errorf("building content blocks: %w", err)
	}

	resp, err := p.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(responses.ResponseInputMessageContentListParam{
					attachment,
					{OfInputText: &responses.ResponseInputTextParam{Text: prompt}},
				}, responses.EasyInputMessageRoleUser),
			},
		},
	})
	if err != nil {
		baseErr := fmt.Errorf("calling openai API: %w", err)
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			retryAfter := 0
			if apiErr.Response != nil {
				retryAfter = parser.ParseRetryAfterHeader(apiErr.Response.Header.Get("Retry-After"))
			}
			return nil, parser.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return nil, fmt.Errorf("empty response from API")
	}

	return &port.ParseOutput{
		RawText:    text,
		ModelUsed:  p.model,
		PromptUsed: prompt,
	}, nil
}

func buildAttachment(input port.ParseInput) (responses.ResponseInputContentUnionParam, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", input.ContentType, parser.EncodedData(input))

	switch input.ContentType {
	case "application/pdf":
		return responses.ResponseInputContentUnionParam{
			OfInputFile: &responses.ResponseInputFileParam{
				Filename: openai.String("claim.pdf"),
				FileData: openai.String(dataURI),
			},
		}, nil
	case "image/jpeg", "image/png", "image/webp":
		return responses.ResponseInputContentUnionParam{
			OfInputImage: &responses.ResponseInputImageParam{
				ImageURL: openai.String(dataURI),
				Detail:   responses.ResponseInputImageDetailAuto,
			},
		}, nil
	default:
		return responses.ResponseInputContentUnionParam{}, fmt.Errorf("unsupported content type for parsing: %s", input.ContentType)
	}
}
