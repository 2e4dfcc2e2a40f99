package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"amadeus-cli/internal/features/flights/domain"
)

// currencySymbols maps common currency codes to display symbols
var currencySymbols = map[string]string{
	"GBP": "£",
	"EUR": "€",
	"USD": "$",
}

// currencySymbol returns the display prefix for a currency code
func currencySymbol(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code + " "
}

// printRawJSON re-indents and prints an API response body
func printRawJSON(raw []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		// Not valid JSON; print as-is
		fmt.Println(string(raw))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

// printJSON marshals and prints a computed result
func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// formatDuration converts an ISO 8601 duration like PT2H30M to "2h 30m"
func formatDuration(iso string) string {
	d := strings.TrimPrefix(iso, "PT")
	var parts []string

	if i := strings.Index(d, "H"); i >= 0 {
		parts = append(parts, d[:i]+"h")
		d = d[i+1:]
	}
	if i := strings.Index(d, "M"); i >= 0 {
		parts = append(parts, d[:i]+"m")
	}

	return strings.Join(parts, " ")
}

// formatClock extracts HH:MM from an ISO datetime
func formatClock(iso string) string {
	parsed, err := time.Parse("2006-01-02T15:04:05", iso)
	if err != nil {
		return iso
	}
	return parsed.Format("15:04")
}

// stopLabel renders a stop count
func stopLabel(stops int) string {
	switch stops {
	case 0:
		return "Direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// renderOffers prints flight offers for human reading
func renderOffers(result *domain.OffersResult) {
	if len(result.Offers) == 0 {
		fmt.Println("No flights found.")
		return
	}

	shown := result.Offers
	if len(shown) > 15 {
		shown = shown[:15]
	}

	for _, offer := range shown {
		symbol := currencySymbol(offer.Price.Currency)

		for j, itinerary := range offer.Itineraries {
			if len(itinerary.Segments) == 0 {
				continue
			}

			first := itinerary.Segments[0]
			last := itinerary.Segments[len(itinerary.Segments)-1]
			route := fmt.Sprintf("%s %s → %s %s (%s) · %s",
				first.Departure.IataCode, formatClock(first.Departure.At),
				last.Arrival.IataCode, formatClock(last.Arrival.At),
				formatDuration(itinerary.Duration), stopLabel(itinerary.Stops()))

			if j == 0 {
				fmt.Printf("✈️  %s %s%s\n", result.CarrierName(first.CarrierCode), first.CarrierCode, first.Number)
				fmt.Printf("    %s\n", route)
				fmt.Printf("    💰 %s%s%s\n", symbol, offer.Price.Amount(), cabinSuffix(offer))
			} else {
				fmt.Printf("    Return: %s\n", route)
			}
		}
		fmt.Println()
	}

	if len(result.Offers) > 15 {
		fmt.Printf("... and %d more options\n", len(result.Offers)-15)
	}
}

// cabinSuffix returns " · Economy" style decoration when the cabin is known
func cabinSuffix(offer domain.Offer) string {
	if len(offer.TravelerPricings) == 0 {
		return ""
	}
	fares := offer.TravelerPricings[0].FareDetailsBySegment
	if len(fares) == 0 || fares[0].Cabin == "" {
		return ""
	}
	cabin := fares[0].Cabin
	return " · " + strings.ToUpper(cabin[:1]) + strings.ToLower(cabin[1:])
}

// renderComparison prints a price comparison table
func renderComparison(result *domain.ComparisonResult) {
	if len(result.Entries) == 0 {
		fmt.Println("No results to compare.")
		return
	}

	fmt.Printf("💰 Price comparison for %s → %s\n\n", result.Origin, result.Destination)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)

	for _, entry := range result.Entries {
		dates := entry.DepartureDate.Format("Mon Jan 02")
		if entry.ReturnDate != nil {
			days := int(entry.ReturnDate.Sub(entry.DepartureDate).Hours() / 24)
			dates += fmt.Sprintf(" → %s (%dd)", entry.ReturnDate.Format("Mon Jan 02"), days)
		}

		if entry.Price != nil {
			price := currencySymbol(entry.Currency) + entry.Price.StringFixed(2)
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", price, dates, stopLabel(entry.Stops), entry.Carrier)
		} else {
			fmt.Fprintf(w, "  N/A\t%s\t%s\t\n", dates, entry.ErrorDetail)
		}
	}
	w.Flush()

	if result.Cheapest != nil {
		fmt.Printf("\n✅ Best deal: %s at %s%s\n",
			result.Cheapest.DepartureDate.Format(time.DateOnly),
			currencySymbol(result.Cheapest.Currency),
			result.Cheapest.Price.StringFixed(2))
	}
}

// renderCheapestDates prints flight-dates options for human reading
func renderCheapestDates(dates []domain.CheapestDate, currency string) {
	if len(dates) == 0 {
		fmt.Println("No date options found.")
		return
	}

	symbol := currencySymbol(currency)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, date := range dates {
		span := date.DepartureDate
		if date.ReturnDate != "" {
			span += " → " + date.ReturnDate
		}
		fmt.Fprintf(w, "  %s%s\t%s\n", symbol, date.Price.Total, span)
	}
	w.Flush()
}

// renderInspiration prints flight-destinations options for human reading
func renderInspiration(destinations []domain.FlightDestination, currency string) {
	if len(destinations) == 0 {
		fmt.Println("No destinations found.")
		return
	}

	symbol := currencySymbol(currency)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, destination := range destinations {
		span := destination.DepartureDate
		if destination.ReturnDate != "" {
			span += " → " + destination.ReturnDate
		}
		fmt.Fprintf(w, "  %s\t%s%s\t%s\n", destination.Destination, symbol, destination.Price.Total, span)
	}
	w.Flush()
}

// comparisonEntryJSON mirrors the entry layout of the JSON output
type comparisonEntryJSON struct {
	DepartureDate string   `json:"departure_date"`
	ReturnDate    *string  `json:"return_date"`
	Price         *float64 `json:"price"`
	Currency      string   `json:"currency"`
	Stops         int      `json:"stops,omitempty"`
	Carrier       string   `json:"carrier,omitempty"`
	CarrierCode   string   `json:"carrier_code,omitempty"`
	OffersFound   int      `json:"offers_found"`
	Error         string   `json:"error,omitempty"`
}

// comparisonJSON is the JSON layout of a comparison result
type comparisonJSON struct {
	Origin      string                `json:"origin"`
	Destination string                `json:"destination"`
	Comparison  []comparisonEntryJSON `json:"comparison"`
	Cheapest    *comparisonEntryJSON  `json:"cheapest"`
}

// comparisonToJSON converts a comparison result for JSON output
func comparisonToJSON(result *domain.ComparisonResult) comparisonJSON {
	out := comparisonJSON{
		Origin:      result.Origin,
		Destination: result.Destination,
		Comparison:  make([]comparisonEntryJSON, 0, len(result.Entries)),
	}

	for _, entry := range result.Entries {
		out.Comparison = append(out.Comparison, entryToJSON(entry))
	}

	if result.Cheapest != nil {
		cheapest := entryToJSON(*result.Cheapest)
		out.Cheapest = &cheapest
	}

	return out
}

func entryToJSON(entry domain.ComparisonEntry) comparisonEntryJSON {
	out := comparisonEntryJSON{
		DepartureDate: entry.DepartureDate.Format(time.DateOnly),
		Currency:      entry.Currency,
		Stops:         entry.Stops,
		Carrier:       entry.Carrier,
		CarrierCode:   entry.CarrierCode,
		OffersFound:   entry.OffersFound,
		Error:         entry.ErrorDetail,
	}

	if entry.ReturnDate != nil {
		formatted := entry.ReturnDate.Format(time.DateOnly)
		out.ReturnDate = &formatted
	}

	if entry.Price != nil {
		price := entry.Price.InexactFloat64()
		out.Price = &price
	}

	return out
}
