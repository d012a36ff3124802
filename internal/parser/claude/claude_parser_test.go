package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartclaim/internal/config"
	"smartclaim/internal/parser"
	"smartclaim/internal/parser/claude"
	"smartclaim/internal/port"
)

func newTestParser(serverURL string) *claude.Parser {
	return claude.NewParserWithEndpoint(&config.ParserProviderConfig{
		Provider:     "claude",
		APIKey:       "test-key",
		DefaultModel: "claude-test",
		TimeoutSecs:  30,
	}, serverURL)
}

func TestParser_Parse_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-test", reqBody["model"])

		msg := reqBody["messages"].([]interface{})[0].(map[string]interface{})
		blocks := msg["content"].([]interface{})
		assert.Len(t, blocks, 2)
		assert.Equal(t, "image", blocks[0].(map[string]interface{})["type"])
		assert.Equal(t, "text", blocks[1].(map[string]interface{})["type"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]interface{}{{"type": "text", "text": `{"claim_number":"C7"}`}},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	out, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes: []byte("img"), ContentType: "image/webp",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"claim_number":"C7"}`, out.RawText)
	assert.Equal(t, "claude-test", out.ModelUsed)
}

func TestParser_Parse_PDFUsesDocumentBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		msg := reqBody["messages"].([]interface{})[0].(map[string]interface{})
		first := msg["content"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "document", first["type"])
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{{"type": "text", "text": "{}"}},
		})
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes: []byte("%PDF-1.4"), ContentType: "application/pdf",
	})
	require.NoError(t, err)
}

func TestParser_Parse_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes: []byte("img"), ContentType: "image/png",
	})
	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "claude", rlErr.Provider)
}

func TestParser_Parse_Truncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]interface{}{{"type": "text", "text": `{"claim_`}},
			"stop_reason": "max_tokens",
		})
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes: []byte("img"), ContentType: "image/png",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}
