package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/flights/domain"
	"amadeus-cli/internal/features/transport"
)

// Reference-data and prediction paths
const (
	locationsPath     = "/v1/reference-data/locations"
	airlinesPath      = "/v1/reference-data/airlines"
	airportRoutesPath = "/v1/airport/direct-destinations"
	airlineRoutesPath = "/v1/airline/destinations"
	checkinLinksPath  = "/v2/reference-data/urls/checkin-links"
	delayPath         = "/v1/travel/predictions/flight-delay"
)

// CheapestDates finds the cheapest dates to fly a route
func (s *Service) CheapestDates(ctx context.Context, query domain.DateShoppingQuery) ([]domain.CheapestDate, []byte, error) {
	if query.Destination == "" {
		return nil, nil, common.InvalidInputError("destination is required")
	}

	params, err := dateShoppingParams(query)
	if err != nil {
		return nil, nil, err
	}

	envelope, err := s.caller.Get(ctx, flightDatesPath, params, transport.WithSearchTimeout())
	if err != nil {
		return nil, nil, err
	}

	var dates []domain.CheapestDate
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &dates); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse flight dates")
		}
	}

	return dates, envelope.Raw, nil
}

// Inspiration finds the cheapest destinations from an origin
func (s *Service) Inspiration(ctx context.Context, query domain.DateShoppingQuery) ([]domain.FlightDestination, []byte, error) {
	params, err := dateShoppingParams(query)
	if err != nil {
		return nil, nil, err
	}
	// destination is not part of the inspiration contract
	params.Del("destination")

	envelope, err := s.caller.Get(ctx, destinationsPath, params, transport.WithSearchTimeout())
	if err != nil {
		return nil, nil, err
	}

	var destinations []domain.FlightDestination
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &destinations); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse flight destinations")
		}
	}

	return destinations, envelope.Raw, nil
}

// SearchLocations searches airports and cities by keyword
func (s *Service) SearchLocations(ctx context.Context, keyword, subType string) ([]domain.Location, []byte, error) {
	if keyword == "" {
		return nil, nil, common.InvalidInputError("keyword is required")
	}
	if subType == "" {
		subType = "AIRPORT,CITY"
	}

	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", subType)

	envelope, err := s.caller.Get(ctx, locationsPath, params)
	if err != nil {
		return nil, nil, err
	}

	var locations []domain.Location
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &locations); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse locations")
		}
	}

	return locations, envelope.Raw, nil
}

// LookupAirlines resolves airline names from IATA codes
func (s *Service) LookupAirlines(ctx context.Context, codes []string) ([]domain.Airline, []byte, error) {
	if len(codes) == 0 {
		return nil, nil, common.InvalidInputError("at least one airline code is required")
	}

	params := url.Values{}
	params.Set("airlineCodes", strings.ToUpper(strings.Join(codes, ",")))

	envelope, err := s.caller.Get(ctx, airlinesPath, params)
	if err != nil {
		return nil, nil, err
	}

	var airlines []domain.Airline
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &airlines); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse airlines")
		}
	}

	return airlines, envelope.Raw, nil
}

// AirportRoutes lists destinations served nonstop from an airport
func (s *Service) AirportRoutes(ctx context.Context, airportCode string, maxResults int) ([]domain.RouteDestination, []byte, error) {
	if airportCode == "" {
		return nil, nil, common.InvalidInputError("airport code is required")
	}
	if maxResults < 1 {
		maxResults = 100
	}

	params := url.Values{}
	params.Set("departureAirportCode", strings.ToUpper(airportCode))
	params.Set("max", strconv.Itoa(maxResults))

	return s.routeDestinations(ctx, airportRoutesPath, params)
}

// AirlineRoutes lists destinations served by an airline
func (s *Service) AirlineRoutes(ctx context.Context, airlineCode string, maxResults int) ([]domain.RouteDestination, []byte, error) {
	if airlineCode == "" {
		return nil, nil, common.InvalidInputError("airline code is required")
	}
	if maxResults < 1 {
		maxResults = 100
	}

	params := url.Values{}
	params.Set("airlineCode", strings.ToUpper(airlineCode))
	params.Set("max", strconv.Itoa(maxResults))

	return s.routeDestinations(ctx, airlineRoutesPath, params)
}

func (s *Service) routeDestinations(ctx context.Context, path string, params url.Values) ([]domain.RouteDestination, []byte, error) {
	envelope, err := s.caller.Get(ctx, path, params)
	if err != nil {
		return nil, nil, err
	}

	var destinations []domain.RouteDestination
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &destinations); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse route destinations")
		}
	}

	return destinations, envelope.Raw, nil
}

// CheckinLinks returns an airline's online check-in URLs
func (s *Service) CheckinLinks(ctx context.Context, airlineCode, language string) ([]domain.CheckinLink, []byte, error) {
	if airlineCode == "" {
		return nil, nil, common.InvalidInputError("airline code is required")
	}
	if language == "" {
		language = "en"
	}

	params := url.Values{}
	params.Set("airlineCode", strings.ToUpper(airlineCode))
	params.Set("language", language)

	envelope, err := s.caller.Get(ctx, checkinLinksPath, params)
	if err != nil {
		return nil, nil, err
	}

	var links []domain.CheckinLink
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &links); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse check-in links")
		}
	}

	return links, envelope.Raw, nil
}

// PredictDelay predicts delay probabilities for a specific flight
func (s *Service) PredictDelay(ctx context.Context, query domain.DelayQuery) ([]domain.DelayPrediction, []byte, error) {
	switch {
	case query.Origin == "" || query.Destination == "":
		return nil, nil, common.InvalidInputError("origin and destination are required")
	case query.DepartureDate == "" || query.DepartureTime == "":
		return nil, nil, common.InvalidInputError("departure date and time are required")
	case query.CarrierCode == "" || query.FlightNumber == "":
		return nil, nil, common.InvalidInputError("carrier code and flight number are required")
	}

	params := url.Values{}
	params.Set("originLocationCode", strings.ToUpper(query.Origin))
	params.Set("destinationLocationCode", strings.ToUpper(query.Destination))
	params.Set("departureDate", query.DepartureDate)
	params.Set("departureTime", query.DepartureTime)
	params.Set("carrierCode", strings.ToUpper(query.CarrierCode))
	params.Set("flightNumber", query.FlightNumber)

	if query.AircraftCode != "" {
		params.Set("aircraftCode", query.AircraftCode)
	}
	if query.DurationMins > 0 {
		params.Set("duration", fmt.Sprintf("PT%dM", query.DurationMins))
	}

	envelope, err := s.caller.Get(ctx, delayPath, params)
	if err != nil {
		return nil, nil, err
	}

	var predictions []domain.DelayPrediction
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &predictions); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse delay predictions")
		}
	}

	return predictions, envelope.Raw, nil
}

// dateShoppingParams builds the shared parameter set for the flight-dates
// and flight-destinations endpoints
func dateShoppingParams(query domain.DateShoppingQuery) (url.Values, error) {
	if query.Origin == "" {
		return nil, common.InvalidInputError("origin is required")
	}

	params := url.Values{}
	params.Set("origin", strings.ToUpper(query.Origin))
	if query.Destination != "" {
		params.Set("destination", strings.ToUpper(query.Destination))
	}
	if query.Currency != "" {
		params.Set("currency", query.Currency)
	}
	if query.DepartureDate != "" {
		params.Set("departureDate", query.DepartureDate)
	}
	if query.OneWay != nil {
		params.Set("oneWay", strconv.FormatBool(*query.OneWay))
	}
	if query.Duration > 0 {
		params.Set("duration", strconv.Itoa(query.Duration))
	}
	if query.NonStop {
		params.Set("nonStop", "true")
	}
	if query.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(query.MaxPrice))
	}
	if query.ViewBy != "" {
		params.Set("viewBy", strings.ToUpper(query.ViewBy))
	}

	return params, nil
}
