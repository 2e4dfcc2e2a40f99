package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"amadeus-cli/internal/features/flights/domain"
)

// MockOfferSearcher is a mock implementation of domain.OfferSearcher
type MockOfferSearcher struct {
	mock.Mock
}

// SearchOffers mocks the SearchOffers method
func (m *MockOfferSearcher) SearchOffers(ctx context.Context, query domain.SearchQuery) (*domain.OffersResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OffersResult), args.Error(1)
}
