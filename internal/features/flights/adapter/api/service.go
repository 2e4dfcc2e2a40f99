package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/flights/domain"
	"amadeus-cli/internal/features/transport"
)

// API paths
const (
	offersPath       = "/v2/shopping/flight-offers"
	pricingPath      = "/v1/shopping/flight-offers/pricing"
	flightDatesPath  = "/v1/shopping/flight-dates"
	destinationsPath = "/v1/shopping/flight-destinations"
)

// maxResultsCap is the upstream limit on the `max` parameter
const maxResultsCap = 250

// Service calls the flight shopping and reference endpoints
type Service struct {
	caller transport.Caller
}

// NewService creates a new flights API service
func NewService(caller transport.Caller) *Service {
	if caller == nil {
		panic("caller cannot be nil")
	}
	return &Service{caller: caller}
}

// SearchOffers searches for flight offers on one route and date
func (s *Service) SearchOffers(ctx context.Context, query domain.SearchQuery) (*domain.OffersResult, error) {
	if query.Origin == "" || query.Destination == "" {
		return nil, common.InvalidInputError("origin and destination are required")
	}
	if query.DepartureDate.IsZero() {
		return nil, common.InvalidInputError("departure date is required")
	}

	adults := query.Adults
	if adults < 1 {
		adults = 1
	}

	maxResults := query.MaxResults
	if maxResults < 1 {
		maxResults = 20
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	params := url.Values{}
	params.Set("originLocationCode", strings.ToUpper(query.Origin))
	params.Set("destinationLocationCode", strings.ToUpper(query.Destination))
	params.Set("departureDate", query.DepartureDate.Format(time.DateOnly))
	params.Set("adults", strconv.Itoa(adults))
	params.Set("max", strconv.Itoa(maxResults))

	if query.Currency != "" {
		params.Set("currencyCode", query.Currency)
	}
	if query.ReturnDate != nil {
		params.Set("returnDate", query.ReturnDate.Format(time.DateOnly))
	}
	if query.Children > 0 {
		params.Set("children", strconv.Itoa(query.Children))
	}
	if query.Infants > 0 {
		params.Set("infants", strconv.Itoa(query.Infants))
	}
	if query.TravelClass != "" {
		params.Set("travelClass", strings.ToUpper(query.TravelClass))
	}
	if query.NonStop {
		params.Set("nonStop", "true")
	}
	if query.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(query.MaxPrice))
	}

	envelope, err := s.caller.Get(ctx, offersPath, params, transport.WithSearchTimeout())
	if err != nil {
		return nil, err
	}

	return parseOffers(envelope)
}

// ConfirmPricing re-prices flight offers before booking
func (s *Service) ConfirmPricing(ctx context.Context, offers []json.RawMessage) (*transport.Envelope, error) {
	if len(offers) == 0 {
		return nil, common.InvalidInputError("at least one flight offer is required")
	}

	body := map[string]any{
		"data": map[string]any{
			"type":         "flight-offers-pricing",
			"flightOffers": offers,
		},
	}

	return s.caller.Post(ctx, pricingPath, body)
}

// parseOffers decodes the offers list and the carrier dictionary from a
// response envelope
func parseOffers(envelope *transport.Envelope) (*domain.OffersResult, error) {
	result := &domain.OffersResult{Raw: envelope.Raw}

	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &result.Offers); err != nil {
			return nil, common.WrapError(err, "failed to parse flight offers")
		}
	}

	if len(envelope.Dictionaries) > 0 {
		var dictionaries struct {
			Carriers map[string]string `json:"carriers"`
		}
		if err := json.Unmarshal(envelope.Dictionaries, &dictionaries); err == nil {
			result.Carriers = dictionaries.Carriers
		}
	}

	return result, nil
}
