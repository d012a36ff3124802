package parser

import (
	"fmt"
	"sort"

	"smartclaim/internal/config"
	"smartclaim/internal/port"
)

// ProviderFactory is a function that creates a DocumentParser from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.DocumentParser, error)

// registry of parser provider factories, populated explicitly via RegisterProvider
// at process start.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a parser provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// RegisteredProviders returns the sorted names of all registered providers.
func RegisteredProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewParser creates a DocumentParser from a provider config using the registered factory.
func NewParser(cfg *config.ParserProviderConfig) (port.DocumentParser, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewParserChain builds the primary parser and wraps it in a FallbackParser
// when secondary or tertiary providers are configured.
func NewParserChain(cfg *config.ParserConfig) (port.DocumentParser, error) {
	tiers := []*config.ParserProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig(), cfg.TertiaryConfig()}

	var parsers []port.DocumentParser
	var names []string
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		p, err := NewParser(tier)
		if err != nil {
			return nil, err
		}
		parsers = append(parsers, p)
		names = append(names, tier.Provider)
	}
	if len(parsers) == 1 {
		return parsers[0], nil
	}
	return NewFallbackParser(parsers, names), nil
}
