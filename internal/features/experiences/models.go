package experiences

// GeoCode is a latitude/longitude pair
type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Square is a geographic bounding box
type Square struct {
	North float64
	South float64
	East  float64
	West  float64
}

// Activity is a bookable tour or activity
type Activity struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	ShortDescription string        `json:"shortDescription"`
	Rating           string        `json:"rating"`
	Price            ActivityPrice `json:"price"`
	Pictures         []string      `json:"pictures"`
	BookingLink      string        `json:"bookingLink"`
	GeoCode          GeoCode       `json:"geoCode"`
	MinimumDuration  string        `json:"minimumDuration"`
}

// ActivityPrice holds the monetary fields of an activity
type ActivityPrice struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// PointOfInterest is a sight returned by the POI endpoints
type PointOfInterest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Rank     int      `json:"rank"`
	Tags     []string `json:"tags"`
	GeoCode  GeoCode  `json:"geoCode"`
}
