package api

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/flights/domain"
	"amadeus-cli/internal/features/transport"
)

// recordingCaller captures the dispatched call and replays a canned envelope
type recordingCaller struct {
	envelope *transport.Envelope
	err      error

	method string
	path   string
	query  url.Values
	body   any
}

func (c *recordingCaller) Get(ctx context.Context, path string, query url.Values, options ...transport.CallOption) (*transport.Envelope, error) {
	c.method = "GET"
	c.path = path
	c.query = query
	return c.envelope, c.err
}

func (c *recordingCaller) Post(ctx context.Context, path string, body any, options ...transport.CallOption) (*transport.Envelope, error) {
	c.method = "POST"
	c.path = path
	c.body = body
	return c.envelope, c.err
}

func envelopeOf(t *testing.T, data, dictionaries string) *transport.Envelope {
	t.Helper()
	envelope := &transport.Envelope{Raw: []byte(`{"data":` + data + `}`)}
	if data != "" {
		envelope.Data = json.RawMessage(data)
	}
	if dictionaries != "" {
		envelope.Dictionaries = json.RawMessage(dictionaries)
	}
	return envelope
}

func TestSearchOffers_BuildsQuery(t *testing.T) {
	caller := &recordingCaller{envelope: envelopeOf(t, `[]`, "")}
	service := NewService(caller)

	departure := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	returnDate := departure.AddDate(0, 0, 7)

	_, err := service.SearchOffers(context.Background(), domain.SearchQuery{
		Origin:        "lhr",
		Destination:   "bcn",
		DepartureDate: departure,
		ReturnDate:    &returnDate,
		Adults:        2,
		Children:      1,
		TravelClass:   "business",
		NonStop:       true,
		MaxPrice:      500,
		Currency:      "GBP",
		MaxResults:    10,
	})
	require.NoError(t, err)

	assert.Equal(t, "/v2/shopping/flight-offers", caller.path)
	assert.Equal(t, "LHR", caller.query.Get("originLocationCode"))
	assert.Equal(t, "BCN", caller.query.Get("destinationLocationCode"))
	assert.Equal(t, "2026-03-15", caller.query.Get("departureDate"))
	assert.Equal(t, "2026-03-22", caller.query.Get("returnDate"))
	assert.Equal(t, "2", caller.query.Get("adults"))
	assert.Equal(t, "1", caller.query.Get("children"))
	assert.Equal(t, "BUSINESS", caller.query.Get("travelClass"))
	assert.Equal(t, "true", caller.query.Get("nonStop"))
	assert.Equal(t, "500", caller.query.Get("maxPrice"))
	assert.Equal(t, "GBP", caller.query.Get("currencyCode"))
	assert.Equal(t, "10", caller.query.Get("max"))
}

func TestSearchOffers_DefaultsAndCaps(t *testing.T) {
	caller := &recordingCaller{envelope: envelopeOf(t, `[]`, "")}
	service := NewService(caller)

	query := domain.SearchQuery{
		Origin:        "LHR",
		Destination:   "BCN",
		DepartureDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	_, err := service.SearchOffers(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, "1", caller.query.Get("adults"))
	assert.Equal(t, "20", caller.query.Get("max"))

	query.MaxResults = 9999
	_, err = service.SearchOffers(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, "250", caller.query.Get("max"))
}

func TestSearchOffers_ValidatesInput(t *testing.T) {
	service := NewService(&recordingCaller{})

	_, err := service.SearchOffers(context.Background(), domain.SearchQuery{Origin: "LHR"})
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))

	_, err = service.SearchOffers(context.Background(), domain.SearchQuery{
		Origin:      "LHR",
		Destination: "BCN",
	})
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err), "missing departure date")
}

func TestSearchOffers_ParsesOffersAndCarriers(t *testing.T) {
	caller := &recordingCaller{envelope: envelopeOf(t,
		`[{"id":"1","price":{"total":"120.00","grandTotal":"125.40","currency":"GBP"},"itineraries":[{"duration":"PT2H10M","segments":[{"carrierCode":"BA","number":"478"}]}]}]`,
		`{"carriers":{"BA":"BRITISH AIRWAYS"}}`)}
	service := NewService(caller)

	result, err := service.SearchOffers(context.Background(), domain.SearchQuery{
		Origin:        "LHR",
		Destination:   "BCN",
		DepartureDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, result.Offers, 1)

	offer := result.Offers[0]
	assert.Equal(t, "125.40", offer.Price.Amount(), "grand total wins over total")
	assert.Equal(t, 0, offer.Itineraries[0].Stops())
	assert.Equal(t, "BRITISH AIRWAYS", result.CarrierName("BA"))
	assert.Equal(t, "XX", result.CarrierName("XX"), "unknown codes come back unchanged")
}

func TestConfirmPricing_WrapsOffers(t *testing.T) {
	caller := &recordingCaller{envelope: envelopeOf(t, `{}`, "")}
	service := NewService(caller)

	offer := json.RawMessage(`{"id":"1"}`)
	_, err := service.ConfirmPricing(context.Background(), []json.RawMessage{offer})
	require.NoError(t, err)

	assert.Equal(t, "POST", caller.method)
	assert.Equal(t, "/v1/shopping/flight-offers/pricing", caller.path)

	payload, err := json.Marshal(caller.body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"type":"flight-offers-pricing","flightOffers":[{"id":"1"}]}}`, string(payload))

	_, err = service.ConfirmPricing(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))
}

func TestCheapestDates_RequiresRoute(t *testing.T) {
	service := NewService(&recordingCaller{})

	_, _, err := service.CheapestDates(context.Background(), domain.DateShoppingQuery{Origin: "LHR"})
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))

	_, _, err = service.CheapestDates(context.Background(), domain.DateShoppingQuery{Destination: "BCN"})
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))
}

func TestInspiration_DropsDestination(t *testing.T) {
	caller := &recordingCaller{envelope: envelopeOf(t, `[]`, "")}
	service := NewService(caller)

	oneWay := true
	_, _, err := service.Inspiration(context.Background(), domain.DateShoppingQuery{
		Origin:      "lhr",
		Destination: "BCN",
		Currency:    "GBP",
		OneWay:      &oneWay,
		ViewBy:      "date",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/shopping/flight-destinations", caller.path)
	assert.Equal(t, "LHR", caller.query.Get("origin"))
	assert.Empty(t, caller.query.Get("destination"))
	assert.Equal(t, "true", caller.query.Get("oneWay"))
	assert.Equal(t, "DATE", caller.query.Get("viewBy"))
}

func TestPredictDelay_BuildsDuration(t *testing.T) {
	caller := &recordingCaller{envelope: envelopeOf(t, `[]`, "")}
	service := NewService(caller)

	_, _, err := service.PredictDelay(context.Background(), domain.DelayQuery{
		Origin:        "lhr",
		Destination:   "bcn",
		DepartureDate: "2026-03-15",
		DepartureTime: "10:30:00",
		CarrierCode:   "ba",
		FlightNumber:  "478",
		DurationMins:  130,
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/travel/predictions/flight-delay", caller.path)
	assert.Equal(t, "BA", caller.query.Get("carrierCode"))
	assert.Equal(t, "PT130M", caller.query.Get("duration"))
}

func TestLookupAirlines_JoinsCodes(t *testing.T) {
	caller := &recordingCaller{envelope: envelopeOf(t, `[]`, "")}
	service := NewService(caller)

	_, _, err := service.LookupAirlines(context.Background(), []string{"ba", "ib"})
	require.NoError(t, err)
	assert.Equal(t, "BA,IB", caller.query.Get("airlineCodes"))

	_, _, err = service.LookupAirlines(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, common.IsInvalidInput(err))
}
