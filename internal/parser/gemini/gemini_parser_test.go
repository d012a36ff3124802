package gemini_test

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
	"smartclaim/internal/parser/gemini"
	"smartclaim/internal/port"
)

func newTestParser(serverURL string) *gemini.Parser {
	cfg := &config.ParserProviderConfig{
		Provider:     "gemini",
		APIKey:       "test-gemini-key",
		DefaultModel: "gemini-1.5-flash",
		TimeoutSecs:  30,
	}
	return gemini.NewParserWithEndpoint(cfg, serverURL)
}

func successResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestParser_Parse_Image_Success(t *testing.T) {
	reply := "```json\n{\"claim_number\":\"C100\"}\n```"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		contents := reqBody["contents"].([]interface{})
		assert.Len(t, contents, 1)
		parts := contents[0].(map[string]interface{})["parts"].([]interface{})
		assert.Len(t, parts, 2)

		inline := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/png", inline["mime_type"])
		assert.Equal(t, "aW1n", inline["data"])
		assert.Contains(t, parts[1].(map[string]interface{})["text"], "claim_number")

		_ = json.NewEncoder(w).Encode(successResponse(reply))
	}))
	defer server.Close()

	out, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("img"),
		Base64Data:  "aW1n",
		ContentType: "image/png",
	})

	require.NoError(t, err)
	assert.Equal(t, reply, out.RawText)
	assert.Equal(t, "gemini-1.5-flash", out.ModelUsed)
	assert.NotEmpty(t, out.PromptUsed)
}

func TestParser_Parse_EncodesFileBytesWhenBase64Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		parts := reqBody["contents"].([]interface{})[0].(map[string]interface{})["parts"].([]interface{})
		inline := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "aW1n", inline["data"])
		_ = json.NewEncoder(w).Encode(successResponse("{}"))
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("img"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
}

func TestParser_Parse_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "15")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes: []byte("img"), ContentType: "image/png",
	})

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "gemini", rlErr.Provider)
	assert.Equal(t, float64(15), rlErr.RetryAfter.Seconds())
}

func TestParser_Parse_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal"))
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes: []byte("img"), ContentType: "image/png",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestParser_Parse_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{
		FileBytes: []byte("img"), ContentType: "image/png",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestParser_Parse_UnsupportedContentType(t *testing.T) {
	p := newTestParser("http://127.0.0.1:1")
	_, err := p.Parse(context.Background(), port.ParseInput{FileBytes: []byte("x"), ContentType: "text/plain"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}
