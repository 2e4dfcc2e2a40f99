package transfers

// Transfer types accepted by the transfer-offers endpoint
var TransferTypes = []string{
	"PRIVATE",
	"SHARED",
	"TAXI",
	"HOURLY",
	"AIRPORT_EXPRESS",
	"AIRPORT_BUS",
}

// Endpoint describes one end of a transfer: exactly one of the location
// forms should be populated
type Endpoint struct {
	LocationCode string
	AddressLine  string
	CityName     string
	CountryCode  string
	GeoCode      string
}

// Query describes a transfer-offers search
type Query struct {
	Start         Endpoint
	End           Endpoint
	TransferType  string
	StartDateTime string
	Passengers    int
}

// Offer is one transfer option
type Offer struct {
	ID              string          `json:"id"`
	TransferType    string          `json:"transferType"`
	Start           OfferPoint      `json:"start"`
	End             OfferPoint      `json:"end"`
	Vehicle         Vehicle         `json:"vehicle"`
	ServiceProvider ServiceProvider `json:"serviceProvider"`
	Quotation       Quotation       `json:"quotation"`
}

// OfferPoint is a resolved transfer endpoint
type OfferPoint struct {
	DateTime     string `json:"dateTime"`
	LocationCode string `json:"locationCode"`
	Address      struct {
		Line     string `json:"line"`
		CityName string `json:"cityName"`
	} `json:"address"`
}

// Vehicle describes the vehicle fulfilling an offer
type Vehicle struct {
	Code        string `json:"code"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Seats       []struct {
		Count int `json:"count"`
	} `json:"seats"`
}

// ServiceProvider is the operating company
type ServiceProvider struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Quotation is the quoted price for an offer
type Quotation struct {
	MonetaryAmount string `json:"monetaryAmount"`
	CurrencyCode   string `json:"currencyCode"`
}
