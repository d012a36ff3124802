package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"smartclaim/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed
}

func (c *circuitState) openUntil(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) trip(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackParser asks each configured provider in order and returns the first
// successful answer. A provider that answered 429 is skipped until its
// Retry-After window has passed.
type FallbackParser struct {
	parsers  []port.DocumentParser
	circuits []*circuitState
	names    []string
}

// NewFallbackParser creates a FallbackParser from an ordered list of parsers and their names.
func NewFallbackParser(parsers []port.DocumentParser, names []string) *FallbackParser {
	circuits := make([]*circuitState, len(parsers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackParser{
		parsers:  parsers,
		circuits: circuits,
		names:    names,
	}
}

var _ port.DocumentParser = (*FallbackParser)(nil)

func (f *FallbackParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	now := time.Now()
	var lastErr error
	onlyRateLimits := true
	var earliestReset time.Time

	noteReset := func(t time.Time) {
		if earliestReset.IsZero() || t.Before(earliestReset) {
			earliestReset = t
		}
	}

	for i, p := range f.parsers {
		if resetAt, open := f.circuits[i].openUntil(now); open {
			log.Printf("parser.FallbackParser: skipping %s until %s", f.names[i], resetAt.Format(time.RFC3339))
			noteReset(resetAt)
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		out, err := p.Parse(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("parser.FallbackParser: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].trip(resetAt)
			noteReset(resetAt)
		} else {
			onlyRateLimits = false
		}
	}

	if lastErr == nil || onlyRateLimits {
		retryAfter := time.Until(earliestReset)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("every provider is rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}
