package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartclaim/internal/domain"
	"smartclaim/internal/service"
	"smartclaim/mocks"
)

func pricedClaim(number string, status domain.ClaimStatus, minor int64, currency string, created time.Time) domain.Claim {
	return domain.Claim{
		ClaimNumber: number,
		Status:      status,
		CreatedAt:   created,
		HolderDetails: domain.HolderDetails{{
			Normalized: &domain.NormalizedDetail{TotalAmountMinor: &minor, Currency: currency, ClaimStatus: status},
		}},
	}
}

func TestStatsService_Summary(t *testing.T) {
	claimRepo := new(mocks.MockClaimRepo)
	svc := service.NewStatsService(claimRepo)
	userID := uuid.New()

	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	claims := []domain.Claim{
		pricedClaim("C1", domain.ClaimStatusPending, 125000, "USD", t0),
		pricedClaim("C2", domain.ClaimStatusApproved, 5000, "USD", t0.Add(48*time.Hour)),
		pricedClaim("C3", domain.ClaimStatusPending, 900, "EUR", t0.Add(24*time.Hour)),
		{ClaimNumber: "C4", Status: domain.ClaimStatusUnknown, CreatedAt: t0, HolderDetails: domain.HolderDetails{{}}},
	}
	claimRepo.On("ListByUser", mock.Anything, userID, domain.ClaimFilter{}).Return(claims, len(claims), nil)

	stats, err := svc.Summary(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalClaims)
	assert.Equal(t, 2, stats.ByStatus[domain.ClaimStatusPending])
	assert.Equal(t, 1, stats.ByStatus[domain.ClaimStatusApproved])
	assert.Equal(t, 1, stats.ByStatus[domain.ClaimStatusUnknown])
	assert.Equal(t, int64(130000), stats.TotalsByCurrency["USD"])
	assert.Equal(t, int64(900), stats.TotalsByCurrency["EUR"])
	assert.Equal(t, 1, stats.UnpricedClaims)
	require.NotNil(t, stats.LatestClaimAt)
	assert.True(t, stats.LatestClaimAt.Equal(t0.Add(48*time.Hour)))
}

func TestStatsService_Summary_Empty(t *testing.T) {
	claimRepo := new(mocks.MockClaimRepo)
	svc := service.NewStatsService(claimRepo)
	userID := uuid.New()
	claimRepo.On("ListByUser", mock.Anything, userID, domain.ClaimFilter{}).Return([]domain.Claim{}, 0, nil)

	stats, err := svc.Summary(context.Background(), userID)

	require.NoError(t, err)
	assert.Zero(t, stats.TotalClaims)
	assert.Nil(t, stats.LatestClaimAt)
	assert.Empty(t, stats.ByStatus)
}

func TestStatsService_Summary_UnknownUser(t *testing.T) {
	claimRepo := new(mocks.MockClaimRepo)
	svc := service.NewStatsService(claimRepo)
	claimRepo.On("ListByUser", mock.Anything, mock.Anything, mock.Anything).Return(nil, 0, domain.ErrNotFound)

	_, err := svc.Summary(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
