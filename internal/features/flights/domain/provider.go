package domain

import "context"

// OfferSearcher runs one flight-offers search. The price comparator
// depends on this capability rather than a concrete API client.
type OfferSearcher interface {
	SearchOffers(ctx context.Context, query SearchQuery) (*OffersResult, error)
}
