package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SearchQuery describes one flight-offers search
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Adults        int
	Children      int
	Infants       int
	TravelClass   string
	NonStop       bool
	MaxResults    int
	MaxPrice      int
	Currency      string
}

// Offer is a priced, bookable flight option
type Offer struct {
	ID               string            `json:"id"`
	Price            OfferPrice        `json:"price"`
	Itineraries      []Itinerary       `json:"itineraries"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
}

// OfferPrice holds the monetary fields of an offer
type OfferPrice struct {
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
	Currency   string `json:"currency"`
}

// Amount returns grandTotal, falling back to total
func (p OfferPrice) Amount() string {
	if p.GrandTotal != "" {
		return p.GrandTotal
	}
	return p.Total
}

// Itinerary is one directional trip of an offer
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Stops is the number of intermediate stops: segments minus one
func (i Itinerary) Stops() int {
	if len(i.Segments) == 0 {
		return 0
	}
	return len(i.Segments) - 1
}

// Segment is one flight leg within an itinerary
type Segment struct {
	Departure   SegmentPoint `json:"departure"`
	Arrival     SegmentPoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
	Duration    string       `json:"duration"`
}

// SegmentPoint is an endpoint of a segment
type SegmentPoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

// TravelerPricing carries per-traveler fare details
type TravelerPricing struct {
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment"`
}

// FareDetails holds the cabin for one segment
type FareDetails struct {
	Cabin string `json:"cabin"`
}

// OffersResult is a parsed flight-offers response
type OffersResult struct {
	Offers []Offer

	// Carriers maps carrier codes to display names, from the response
	// dictionaries
	Carriers map[string]string

	// Raw is the unmodified response body
	Raw []byte
}

// CarrierName resolves a carrier code through the dictionary, returning
// the code itself when unknown
func (r *OffersResult) CarrierName(code string) string {
	if name, ok := r.Carriers[code]; ok && name != "" {
		return name
	}
	return code
}

// CompareRequest drives a multi-date price comparison
type CompareRequest struct {
	Origin      string
	Destination string
	Dates       []time.Time

	// ReturnAfterDays, when positive, makes every query a round trip
	// returning that many days after departure
	ReturnAfterDays int

	Options CompareOptions
}

// CompareOptions are the search parameters shared by every date query
type CompareOptions struct {
	Adults      int
	Children    int
	Infants     int
	TravelClass string
	NonStop     bool
	MaxPrice    int
	Currency    string
}

// ComparisonEntry is the outcome of one date query. A failed or empty
// search yields an entry with a nil Price and ErrorDetail set.
type ComparisonEntry struct {
	DepartureDate time.Time
	ReturnDate    *time.Time
	Price         *decimal.Decimal
	Currency      string
	Stops         int
	Carrier       string
	CarrierCode   string
	OffersFound   int
	ErrorDetail   string
}

// ComparisonResult is the ranked output of a comparison run
type ComparisonResult struct {
	Origin      string
	Destination string

	// Entries are sorted ascending by price, entries without a price last
	Entries []ComparisonEntry

	// Cheapest points at the best priced entry, nil when no date
	// produced a price
	Cheapest *ComparisonEntry
}

// CheapestDate is one option from the flight-dates endpoint
type CheapestDate struct {
	Type          string     `json:"type"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departureDate"`
	ReturnDate    string     `json:"returnDate"`
	Price         DatePrice  `json:"price"`
	Links         *DateLinks `json:"links"`
}

// FlightDestination is one option from the flight-destinations endpoint
type FlightDestination struct {
	Type          string    `json:"type"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureDate string    `json:"departureDate"`
	ReturnDate    string    `json:"returnDate"`
	Price         DatePrice `json:"price"`
}

// DatePrice is the price wrapper used by the date-shopping endpoints
type DatePrice struct {
	Total string `json:"total"`
}

// DateLinks carries follow-up links for a date option
type DateLinks struct {
	FlightOffers string `json:"flightOffers"`
}

// Location is an airport or city from the locations endpoint
type Location struct {
	Type     string `json:"type"`
	SubType  string `json:"subType"`
	Name     string `json:"name"`
	IataCode string `json:"iataCode"`
	Address  struct {
		CityName    string `json:"cityName"`
		CountryName string `json:"countryName"`
	} `json:"address"`
}

// Airline is a carrier from the airlines reference endpoint
type Airline struct {
	Type         string `json:"type"`
	IataCode     string `json:"iataCode"`
	IcaoCode     string `json:"icaoCode"`
	BusinessName string `json:"businessName"`
	CommonName   string `json:"commonName"`
}

// RouteDestination is a destination served from an airport or by an airline
type RouteDestination struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype"`
	Name     string `json:"name"`
	IataCode string `json:"iataCode"`
}

// CheckinLink is an airline check-in URL
type CheckinLink struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Href    string `json:"href"`
	Channel string `json:"channel"`
}

// DelayPrediction is one probability bucket from the delay-prediction endpoint
type DelayPrediction struct {
	ID          string `json:"id"`
	Probability string `json:"probability"`
	Result      string `json:"result"`
	SubType     string `json:"subType"`
}

// DelayQuery identifies the flight to predict delays for
type DelayQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	DepartureTime string
	CarrierCode   string
	FlightNumber  string
	AircraftCode  string
	DurationMins  int
}

// DateShoppingQuery drives the cheapest-dates and inspiration endpoints
type DateShoppingQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	OneWay        *bool
	Duration      int
	NonStop       bool
	MaxPrice      int
	ViewBy        string
	Currency      string
}
