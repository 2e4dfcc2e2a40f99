package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"amadeus-cli/internal/features/flights/domain"
)

func newAirportsCommand() *cobra.Command {
	var (
		subType string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "airports <keyword>",
		Short: "Search airports and cities by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			locations, raw, err := rt.flights.API.SearchLocations(rt.context(cmd), args[0], subType)
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderLocations(locations)
				return nil
			}
			return printRawJSON(raw)
		},
	}

	cmd.Flags().StringVar(&subType, "subtype", "AIRPORT,CITY", "location subtypes to include")
	addFormatFlag(cmd, &format)

	return cmd
}

func newAirlinesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "airlines <code>[,<code>...]",
		Short: "Look up airline names by IATA code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			airlines, raw, err := rt.flights.API.LookupAirlines(rt.context(cmd), strings.Split(args[0], ","))
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderAirlines(airlines)
				return nil
			}
			return printRawJSON(raw)
		},
	}

	addFormatFlag(cmd, &format)

	return cmd
}

func newAirportRoutesCommand() *cobra.Command {
	var (
		maxResults int
		format     string
	)

	cmd := &cobra.Command{
		Use:   "routes <airport>",
		Short: "List nonstop destinations from an airport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			destinations, raw, err := rt.flights.API.AirportRoutes(rt.context(cmd), args[0], maxResults)
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderRoutes(destinations, args[0])
				return nil
			}
			return printRawJSON(raw)
		},
	}

	cmd.Flags().IntVar(&maxResults, "max", 100, "max results")
	addFormatFlag(cmd, &format)

	return cmd
}

func newAirlineRoutesCommand() *cobra.Command {
	var (
		maxResults int
		format     string
	)

	cmd := &cobra.Command{
		Use:   "airline-routes <airline>",
		Short: "List destinations served by an airline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			destinations, raw, err := rt.flights.API.AirlineRoutes(rt.context(cmd), args[0], maxResults)
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderRoutes(destinations, args[0])
				return nil
			}
			return printRawJSON(raw)
		},
	}

	cmd.Flags().IntVar(&maxResults, "max", 100, "max results")
	addFormatFlag(cmd, &format)

	return cmd
}

func newCheckinCommand() *cobra.Command {
	var (
		language string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "checkin <airline>",
		Short: "Get an airline's online check-in links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			links, raw, err := rt.flights.API.CheckinLinks(rt.context(cmd), args[0], language)
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderCheckinLinks(links, args[0])
				return nil
			}
			return printRawJSON(raw)
		},
	}

	cmd.Flags().StringVar(&language, "language", "en", "link language")
	addFormatFlag(cmd, &format)

	return cmd
}

func newDelayCommand() *cobra.Command {
	var (
		query  domain.DelayQuery
		format string
	)

	cmd := &cobra.Command{
		Use:   "delay",
		Short: "Predict delay probability for a flight",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			predictions, raw, err := rt.flights.API.PredictDelay(rt.context(cmd), query)
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderDelayPredictions(predictions)
				return nil
			}
			return printRawJSON(raw)
		},
	}

	cmd.Flags().StringVar(&query.Origin, "from", "", "origin airport code")
	cmd.Flags().StringVar(&query.Destination, "to", "", "destination airport code")
	cmd.Flags().StringVar(&query.DepartureDate, "date", "", "departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&query.DepartureTime, "time", "", "local departure time (HH:MM)")
	cmd.Flags().StringVar(&query.CarrierCode, "carrier", "", "airline IATA code")
	cmd.Flags().StringVar(&query.FlightNumber, "flight", "", "flight number without carrier prefix")
	cmd.Flags().StringVar(&query.AircraftCode, "aircraft", "", "aircraft type code")
	cmd.Flags().IntVar(&query.DurationMins, "duration", 0, "flight duration in minutes")
	addFormatFlag(cmd, &format)
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("carrier")
	_ = cmd.MarkFlagRequired("flight")

	return cmd
}

// renderLocations prints airport/city matches
func renderLocations(locations []domain.Location) {
	if len(locations) == 0 {
		fmt.Println("No airports/cities found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, location := range locations {
		fmt.Fprintf(w, "  %s\t%s\t%s, %s\t%s\n",
			location.IataCode, location.Name,
			location.Address.CityName, location.Address.CountryName,
			strings.ToLower(location.SubType))
	}
	w.Flush()
}

// renderAirlines prints airline lookups
func renderAirlines(airlines []domain.Airline) {
	if len(airlines) == 0 {
		fmt.Println("No airlines found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, airline := range airlines {
		name := airline.BusinessName
		if airline.CommonName != "" {
			name = airline.CommonName
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", airline.IataCode, name, airline.IcaoCode)
	}
	w.Flush()
}

// renderRoutes prints route destinations
func renderRoutes(destinations []domain.RouteDestination, from string) {
	if len(destinations) == 0 {
		fmt.Println("No routes found.")
		return
	}

	fmt.Printf("✈️  %d destinations from %s\n\n", len(destinations), strings.ToUpper(from))

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, destination := range destinations {
		fmt.Fprintf(w, "  %s\t%s\n", destination.IataCode, destination.Name)
	}
	w.Flush()
}

// renderCheckinLinks prints check-in URLs
func renderCheckinLinks(links []domain.CheckinLink, airline string) {
	if len(links) == 0 {
		fmt.Printf("No check-in links found for %s.\n", strings.ToUpper(airline))
		return
	}

	for _, link := range links {
		fmt.Printf("  %s: %s\n", strings.ToLower(link.Channel), link.Href)
	}
}

// renderDelayPredictions prints delay probability buckets
func renderDelayPredictions(predictions []domain.DelayPrediction) {
	if len(predictions) == 0 {
		fmt.Println("No prediction available for this flight.")
		return
	}

	fmt.Println("🔮 Delay prediction")

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, prediction := range predictions {
		fmt.Fprintf(w, "  %s\t%s\n", prediction.Result, prediction.Probability)
	}
	w.Flush()
}
