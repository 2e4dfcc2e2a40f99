package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/flights/domain"
	"amadeus-cli/internal/features/flights/domain/mocks"
)

// dateOutcome scripts what the searcher returns for one departure date
type dateOutcome struct {
	result *domain.OffersResult
	err    error
}

// stubSearcher resolves searches from a date-keyed script and records the
// queries it saw
type stubSearcher struct {
	outcomes map[string]dateOutcome
	queries  []domain.SearchQuery
}

func (s *stubSearcher) SearchOffers(ctx context.Context, query domain.SearchQuery) (*domain.OffersResult, error) {
	s.queries = append(s.queries, query)

	outcome, ok := s.outcomes[query.DepartureDate.Format(time.DateOnly)]
	if !ok {
		return &domain.OffersResult{}, nil
	}
	return outcome.result, outcome.err
}

func pricedOffers(total string, count int) *domain.OffersResult {
	offers := make([]domain.Offer, count)
	for i := range offers {
		offers[i] = domain.Offer{
			Price: domain.OfferPrice{GrandTotal: total, Currency: "GBP"},
			Itineraries: []domain.Itinerary{{
				Segments: []domain.Segment{{CarrierCode: "BA"}},
			}},
		}
	}

	return &domain.OffersResult{
		Offers:   offers,
		Carriers: map[string]string{"BA": "BRITISH AIRWAYS"},
	}
}

func compareDates(t *testing.T, values ...string) []time.Time {
	t.Helper()
	dates := make([]time.Time, 0, len(values))
	for _, value := range values {
		parsed, err := ParseDate(value)
		require.NoError(t, err)
		dates = append(dates, parsed)
	}
	return dates
}

func TestCompare_RanksByPriceWithAbsentLast(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]dateOutcome{
		"2026-03-01": {result: pricedOffers("120.00", 3)},
		"2026-03-02": {result: &domain.OffersResult{}},
		"2026-03-03": {result: pricedOffers("95.00", 2)},
		"2026-03-04": {result: &domain.OffersResult{}},
		"2026-03-05": {result: pricedOffers("200.00", 1)},
	}}

	comparator := NewComparator(ComparatorConfig{}, searcher, nil)

	result, err := comparator.Compare(context.Background(), domain.CompareRequest{
		Origin:      "LHR",
		Destination: "BCN",
		Dates:       compareDates(t, "2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"),
		Options:     domain.CompareOptions{Adults: 1, Currency: "GBP"},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 5)

	var prices []string
	for _, entry := range result.Entries {
		if entry.Price != nil {
			prices = append(prices, entry.Price.StringFixed(2))
		}
	}
	assert.Equal(t, []string{"95.00", "120.00", "200.00"}, prices)

	// Priced entries come first; the two empty dates trail
	assert.Nil(t, result.Entries[3].Price)
	assert.Nil(t, result.Entries[4].Price)
	assert.Equal(t, "No flights found", result.Entries[3].ErrorDetail)

	require.NotNil(t, result.Cheapest)
	assert.Equal(t, "95.00", result.Cheapest.Price.StringFixed(2))
	assert.Equal(t, "2026-03-03", result.Cheapest.DepartureDate.Format(time.DateOnly))
	assert.Equal(t, "BRITISH AIRWAYS", result.Cheapest.Carrier)
	assert.Equal(t, 2, result.Cheapest.OffersFound)
}

func TestCompare_PartialFailureKeepsOtherDates(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]dateOutcome{
		"2026-03-01": {result: pricedOffers("110.00", 1)},
		"2026-03-02": {err: common.NewServerResponseError(500, "upstream exploded")},
		"2026-03-03": {result: pricedOffers("90.00", 1)},
		"2026-03-04": {result: pricedOffers("130.00", 1)},
		"2026-03-05": {result: pricedOffers("150.00", 1)},
	}}

	comparator := NewComparator(ComparatorConfig{}, searcher, nil)

	result, err := comparator.Compare(context.Background(), domain.CompareRequest{
		Origin:      "LHR",
		Destination: "BCN",
		Dates:       compareDates(t, "2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"),
		Options:     domain.CompareOptions{Adults: 1},
	})
	require.NoError(t, err, "a failed date never aborts the comparison")
	require.Len(t, result.Entries, 5)

	failed := result.Entries[4]
	assert.Nil(t, failed.Price)
	assert.Equal(t, "2026-03-02", failed.DepartureDate.Format(time.DateOnly))
	assert.Contains(t, failed.ErrorDetail, "upstream exploded")

	require.NotNil(t, result.Cheapest)
	assert.Equal(t, "90.00", result.Cheapest.Price.StringFixed(2))
}

func TestCompare_AllDatesFail(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]dateOutcome{
		"2026-03-01": {err: common.NewServerResponseError(500, "boom")},
		"2026-03-02": {result: &domain.OffersResult{}},
	}}

	comparator := NewComparator(ComparatorConfig{}, searcher, nil)

	result, err := comparator.Compare(context.Background(), domain.CompareRequest{
		Origin:      "LHR",
		Destination: "BCN",
		Dates:       compareDates(t, "2026-03-01", "2026-03-02"),
		Options:     domain.CompareOptions{Adults: 1},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Nil(t, result.Cheapest, "no cheapest without at least one priced entry")
}

func TestCompare_RoundTripDateMath(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]dateOutcome{
		"2026-03-15": {result: pricedOffers("180.00", 1)},
	}}

	comparator := NewComparator(ComparatorConfig{}, searcher, nil)

	result, err := comparator.Compare(context.Background(), domain.CompareRequest{
		Origin:          "LHR",
		Destination:     "BCN",
		Dates:           compareDates(t, "2026-03-15"),
		ReturnAfterDays: 7,
		Options:         domain.CompareOptions{Adults: 1},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)

	entry := result.Entries[0]
	require.NotNil(t, entry.ReturnDate)
	assert.Equal(t, "2026-03-22", entry.ReturnDate.Format(time.DateOnly))

	// The searcher must have been asked for the round trip too
	require.Len(t, searcher.queries, 1)
	require.NotNil(t, searcher.queries[0].ReturnDate)
	assert.Equal(t, "2026-03-22", searcher.queries[0].ReturnDate.Format(time.DateOnly))
}

func TestCompare_RequestsBoundedOffers(t *testing.T) {
	searcher := &stubSearcher{outcomes: map[string]dateOutcome{
		"2026-03-15": {result: pricedOffers("180.00", 1)},
	}}

	comparator := NewComparator(ComparatorConfig{MaxOffers: 5}, searcher, nil)

	_, err := comparator.Compare(context.Background(), domain.CompareRequest{
		Origin:      "LHR",
		Destination: "BCN",
		Dates:       compareDates(t, "2026-03-15"),
		Options:     domain.CompareOptions{Adults: 1},
	})
	require.NoError(t, err)

	require.Len(t, searcher.queries, 1)
	assert.Equal(t, 5, searcher.queries[0].MaxResults)
}

func TestCompare_ValidatesInput(t *testing.T) {
	searcher := new(mocks.MockOfferSearcher)
	comparator := NewComparator(ComparatorConfig{}, searcher, nil)

	_, err := comparator.Compare(context.Background(), domain.CompareRequest{
		Destination: "BCN",
		Dates:       compareDates(t, "2026-03-15"),
	})
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))

	_, err = comparator.Compare(context.Background(), domain.CompareRequest{
		Origin:      "LHR",
		Destination: "BCN",
	})
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))

	searcher.AssertNotCalled(t, "SearchOffers")
}
