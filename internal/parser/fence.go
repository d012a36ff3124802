package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"smartclaim/internal/domain"
)

var codeFence = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n?(.*?)\r?\n?```$")

// StripCodeFence removes a surrounding markdown code fence such as ```json ... ```.
// Text without a fence is returned trimmed.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// ExtractJSONObject returns the JSON object embedded in a model reply. Code
// fences are stripped first; any prose around the outermost braces is dropped.
func ExtractJSONObject(text string) (string, error) {
	text = StripCodeFence(text)
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text, nil
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in model output: %s", domain.ErrParseFailed, Truncate(text, 200))
	}
	return text[start : end+1], nil
}

// DecodeExtraction parses a raw model reply into an ExtractionResult.
func DecodeExtraction(raw string) (*domain.ExtractionResult, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var result domain.ExtractionResult
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)", domain.ErrParseFailed, err, Truncate(obj, 200))
	}
	return &result, nil
}
