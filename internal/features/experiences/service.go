package experiences

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/transport"
)

// API paths
const (
	activitiesPath   = "/v1/shopping/activities"
	activitiesSquare = "/v1/shopping/activities/by-square"
	poisPath         = "/v1/reference-data/locations/pois"
	poisSquarePath   = "/v1/reference-data/locations/pois/by-square"
)

// Service calls the activities and points-of-interest endpoints
type Service struct {
	caller transport.Caller
}

// NewService creates a new experiences service
func NewService(caller transport.Caller) *Service {
	if caller == nil {
		panic("caller cannot be nil")
	}
	return &Service{caller: caller}
}

// Activities searches tours and activities around a point
func (s *Service) Activities(ctx context.Context, point GeoCode, radiusKm int) ([]Activity, []byte, error) {
	if radiusKm < 1 {
		radiusKm = 5
	}

	params := geoParams(point)
	params.Set("radius", strconv.Itoa(radiusKm))

	envelope, err := s.caller.Get(ctx, activitiesPath, params)
	if err != nil {
		return nil, nil, err
	}

	return parseActivities(envelope)
}

// ActivitiesBySquare searches activities within a bounding box
func (s *Service) ActivitiesBySquare(ctx context.Context, square Square) ([]Activity, []byte, error) {
	envelope, err := s.caller.Get(ctx, activitiesSquare, squareParams(square))
	if err != nil {
		return nil, nil, err
	}

	return parseActivities(envelope)
}

// ActivityDetails fetches one activity by id
func (s *Service) ActivityDetails(ctx context.Context, activityID string) (*Activity, []byte, error) {
	if activityID == "" {
		return nil, nil, common.InvalidInputError("activity id is required")
	}

	envelope, err := s.caller.Get(ctx, activitiesPath+"/"+url.PathEscape(activityID), nil)
	if err != nil {
		return nil, nil, err
	}

	var activity Activity
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &activity); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse activity")
		}
	}

	return &activity, envelope.Raw, nil
}

// PointsOfInterest searches sights around a point
func (s *Service) PointsOfInterest(ctx context.Context, point GeoCode, radiusKm int, categories []string) ([]PointOfInterest, []byte, error) {
	if radiusKm < 1 {
		radiusKm = 2
	}

	params := geoParams(point)
	params.Set("radius", strconv.Itoa(radiusKm))
	if len(categories) > 0 {
		params.Set("categories", strings.Join(categories, ","))
	}

	envelope, err := s.caller.Get(ctx, poisPath, params)
	if err != nil {
		return nil, nil, err
	}

	return parsePOIs(envelope)
}

// PointsOfInterestBySquare searches sights within a bounding box
func (s *Service) PointsOfInterestBySquare(ctx context.Context, square Square, categories []string) ([]PointOfInterest, []byte, error) {
	params := squareParams(square)
	if len(categories) > 0 {
		params.Set("categories", strings.Join(categories, ","))
	}

	envelope, err := s.caller.Get(ctx, poisSquarePath, params)
	if err != nil {
		return nil, nil, err
	}

	return parsePOIs(envelope)
}

func geoParams(point GeoCode) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	return params
}

func squareParams(square Square) url.Values {
	params := url.Values{}
	params.Set("north", strconv.FormatFloat(square.North, 'f', -1, 64))
	params.Set("south", strconv.FormatFloat(square.South, 'f', -1, 64))
	params.Set("east", strconv.FormatFloat(square.East, 'f', -1, 64))
	params.Set("west", strconv.FormatFloat(square.West, 'f', -1, 64))
	return params
}

func parseActivities(envelope *transport.Envelope) ([]Activity, []byte, error) {
	var activities []Activity
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &activities); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse activities")
		}
	}
	return activities, envelope.Raw, nil
}

func parsePOIs(envelope *transport.Envelope) ([]PointOfInterest, []byte, error) {
	var pois []PointOfInterest
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &pois); err != nil {
			return nil, nil, common.WrapError(err, "failed to parse points of interest")
		}
	}
	return pois, envelope.Raw, nil
}
