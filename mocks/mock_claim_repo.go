package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"smartclaim/internal/domain"
)

// MockClaimRepo is a mock implementation of port.ClaimRepository.
type MockClaimRepo struct {
	mock.Mock
}

func (m *MockClaimRepo) Append(ctx context.Context, claim *domain.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockClaimRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter) ([]domain.Claim, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Claim), args.Int(1), args.Error(2)
}

func (m *MockClaimRepo) GetByNumber(ctx context.Context, userID uuid.UUID, claimNumber string) (*domain.Claim, error) {
	args := m.Called(ctx, userID, claimNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimRepo) Delete(ctx context.Context, userID uuid.UUID, claimNumber string) error {
	args := m.Called(ctx, userID, claimNumber)
	return args.Error(0)
}
