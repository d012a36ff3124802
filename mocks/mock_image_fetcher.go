package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartclaim/internal/port"
)

// MockImageFetcher is a mock implementation of port.ImageFetcher.
type MockImageFetcher struct {
	mock.Mock
}

func (m *MockImageFetcher) Fetch(ctx context.Context, rawURL string) (*port.FetchedImage, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.FetchedImage), args.Error(1)
}
