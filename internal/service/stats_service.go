package service

import (
	"context"

	"github.com/google/uuid"

	"smartclaim/internal/domain"
	"smartclaim/internal/port"
)

// StatsService provides dashboard aggregates over a user's claims.
type StatsService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*domain.ClaimStats, error)
}

type statsService struct {
	claimRepo port.ClaimRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(claimRepo port.ClaimRepository) StatsService {
	return &statsService{claimRepo: claimRepo}
}

func (s *statsService) Summary(ctx context.Context, userID uuid.UUID) (*domain.ClaimStats, error) {
	claims, total, err := s.claimRepo.ListByUser(ctx, userID, domain.ClaimFilter{})
	if err != nil {
		return nil, err
	}
	return Summarize(claims, total), nil
}

// Summarize aggregates claims into counts per status and totals per currency.
func Summarize(claims []domain.Claim, total int) *domain.ClaimStats {
	stats := &domain.ClaimStats{
		TotalClaims:      total,
		ByStatus:         make(map[domain.ClaimStatus]int),
		TotalsByCurrency: make(map[string]int64),
	}

	for i := range claims {
		c := &claims[i]
		status := c.Status
		if status == "" {
			status = domain.ClaimStatusUnknown
		}
		stats.ByStatus[status]++

		if stats.LatestClaimAt == nil || c.CreatedAt.After(*stats.LatestClaimAt) {
			created := c.CreatedAt
			stats.LatestClaimAt = &created
		}

		priced := false
		for _, d := range c.HolderDetails {
			if d.Normalized == nil || d.Normalized.TotalAmountMinor == nil {
				continue
			}
			stats.TotalsByCurrency[d.Normalized.Currency] += *d.Normalized.TotalAmountMinor
			priced = true
		}
		if !priced {
			stats.UnpricedClaims++
		}
	}
	return stats
}
