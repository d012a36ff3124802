package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartclaim/internal/domain"
	"smartclaim/internal/service"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) Submit(ctx context.Context, input service.SubmitClaimInput) (*domain.Claim, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
