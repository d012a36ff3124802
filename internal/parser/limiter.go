package parser

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"smartclaim/internal/domain"
	"smartclaim/internal/port"
)

// RateLimitedParser caps the rate of outbound model calls. Callers wait for a
// token until their context expires.
type RateLimitedParser struct {
	next    port.DocumentParser
	limiter *rate.Limiter
}

// NewRateLimitedParser wraps next with a token bucket. A non-positive rps
// disables limiting.
func NewRateLimitedParser(next port.DocumentParser, rps float64, burst int) *RateLimitedParser {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedParser{next: next, limiter: rate.NewLimiter(limit, burst)}
}

var _ port.DocumentParser = (*RateLimitedParser)(nil)

func (p *RateLimitedParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionRateLimited, err)
	}
	return p.next.Parse(ctx, input)
}
