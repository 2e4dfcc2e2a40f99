package transfers

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/transport"
)

const offersPath = "/v1/shopping/transfer-offers"

// Service calls the transfer-offers endpoint
type Service struct {
	caller transport.Caller
}

// NewService creates a new transfers service
func NewService(caller transport.Caller) *Service {
	if caller == nil {
		panic("caller cannot be nil")
	}
	return &Service{caller: caller}
}

// Search requests transfer offers between two endpoints
func (s *Service) Search(ctx context.Context, query Query) ([]Offer, []byte, error) {
	if query.Start == (Endpoint{}) || query.End == (Endpoint{}) {
		return nil, nil, common.InvalidInputError("start and end locations are required")
	}

	transferType := strings.ToUpper(query.TransferType)
	if transferType != "" && !slices.Contains(TransferTypes, transferType) {
		return nil, nil, common.InvalidInputError(
			"transfer type must be one of %s", strings.Join(TransferTypes, ", "))
	}

	passengers := query.Passengers
	if passengers < 1 {
		passengers = 1
	}

	body := map[string]any{
		"passengers": passengers,
	}

	applyEndpoint(body, "start", query.Start)
	applyEndpoint(body, "end", query.End)

	if transferType != "" {
		body["transferType"] = transferType
	}
	if query.StartDateTime != "" {
		body["startDateTime"] = query.StartDateTime
	}

	envelope, err := s.caller.Post(ctx, offersPath, body)
	if err != nil {
		return nil, nil, err
	}

	var offers []Offer
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &offers); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse transfer offers")
		}
	}

	return offers, envelope.Raw, nil
}

// applyEndpoint maps the populated fields of one endpoint onto the
// request body under the given prefix
func applyEndpoint(body map[string]any, prefix string, endpoint Endpoint) {
	if endpoint.LocationCode != "" {
		body[prefix+"LocationCode"] = strings.ToUpper(endpoint.LocationCode)
	}
	if endpoint.AddressLine != "" {
		body[prefix+"AddressLine"] = endpoint.AddressLine
	}
	if endpoint.CityName != "" {
		body[prefix+"CityName"] = endpoint.CityName
	}
	if endpoint.CountryCode != "" {
		body[prefix+"CountryCode"] = strings.ToUpper(endpoint.CountryCode)
	}
	if endpoint.GeoCode != "" {
		body[prefix+"GeoCode"] = endpoint.GeoCode
	}
}
