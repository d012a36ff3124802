package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"smartclaim/internal/domain"
	"smartclaim/internal/port"
)

const maxClaimPageSize = 500

// ClaimService exposes a user's stored claims.
type ClaimService interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter) ([]domain.Claim, int, error)
	Get(ctx context.Context, userID uuid.UUID, claimNumber string) (*domain.Claim, error)
	Delete(ctx context.Context, userID uuid.UUID, claimNumber string) error
}

type claimService struct {
	claimRepo port.ClaimRepository
}

// NewClaimService creates a new ClaimService implementation.
func NewClaimService(claimRepo port.ClaimRepository) ClaimService {
	return &claimService{claimRepo: claimRepo}
}

// List returns the user's claims in the order they were added. A zero limit
// returns every claim.
func (s *claimService) List(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter) ([]domain.Claim, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() && filter.Status != domain.ClaimStatusUnknown {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidFilter, filter.Status)
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Limit > maxClaimPageSize {
		filter.Limit = maxClaimPageSize
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.claimRepo.ListByUser(ctx, userID, filter)
}

func (s *claimService) Get(ctx context.Context, userID uuid.UUID, claimNumber string) (*domain.Claim, error) {
	claimNumber = strings.TrimSpace(claimNumber)
	if claimNumber == "" {
		return nil, domain.ErrMissingInput
	}
	return s.claimRepo.GetByNumber(ctx, userID, claimNumber)
}

func (s *claimService) Delete(ctx context.Context, userID uuid.UUID, claimNumber string) error {
	claimNumber = strings.TrimSpace(claimNumber)
	if claimNumber == "" {
		return domain.ErrMissingInput
	}
	return s.claimRepo.Delete(ctx, userID, claimNumber)
}
