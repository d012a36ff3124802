// Package providers registers every built-in model provider with the parser factory.
package providers

import (
	"smartclaim/internal/config"
	"smartclaim/internal/parser"
	"smartclaim/internal/parser/claude"
	"smartclaim/internal/parser/gemini"
	"smartclaim/internal/parser/ollama"
	"smartclaim/internal/parser/openai"
	"smartclaim/internal/port"
)

// Register adds the gemini, claude, openai and ollama factories.
func Register() {
	parser.RegisterProvider("gemini", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return gemini.NewParser(cfg), nil
	})
	parser.RegisterProvider("claude", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return claude.NewParser(cfg), nil
	})
	parser.RegisterProvider("openai", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return openai.NewParser(cfg), nil
	})
	parser.RegisterProvider("ollama", func(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
		return ollama.NewParser(cfg)
	})
}
