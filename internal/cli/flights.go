package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/flights/domain"
	"amadeus-cli/internal/features/flights/usecase"
)

// searchFlags carries the shared passenger and filter flags
type searchFlags struct {
	adults      int
	children    int
	infants     int
	travelClass string
	nonstop     bool
	maxPrice    int
	currency    string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.adults, "adults", 1, "number of adults")
	cmd.Flags().IntVar(&f.children, "children", 0, "number of children (2-11)")
	cmd.Flags().IntVar(&f.infants, "infants", 0, "number of infants (<2)")
	cmd.Flags().StringVar(&f.travelClass, "class", "", "travel class: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST")
	cmd.Flags().BoolVar(&f.nonstop, "nonstop", false, "direct flights only")
	cmd.Flags().IntVar(&f.maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVar(&f.currency, "currency", "", "currency code (default from config)")
}

func (f *searchFlags) currencyOr(fallback string) string {
	if f.currency != "" {
		return f.currency
	}
	return fallback
}

func newSearchCommand() *cobra.Command {
	var (
		origin      string
		destination string
		date        string
		returnDate  string
		maxResults  int
		format      string
		flags       searchFlags
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search flight offers for a route and date",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			departure, err := usecase.ParseDate(date)
			if err != nil {
				return err
			}

			query := domain.SearchQuery{
				Origin:        origin,
				Destination:   destination,
				DepartureDate: departure,
				Adults:        flags.adults,
				Children:      flags.children,
				Infants:       flags.infants,
				TravelClass:   flags.travelClass,
				NonStop:       flags.nonstop,
				MaxResults:    maxResults,
				MaxPrice:      flags.maxPrice,
				Currency:      flags.currencyOr(rt.config.App.Currency),
			}

			if returnDate != "" {
				parsed, err := usecase.ParseDate(returnDate)
				if err != nil {
					return err
				}
				query.ReturnDate = &parsed
			}

			result, err := rt.flights.API.SearchOffers(rt.context(cmd), query)
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderOffers(result)
				return nil
			}
			return printRawJSON(result.Raw)
		},
	}

	cmd.Flags().StringVar(&origin, "from", "", "origin airport code (e.g. LHR)")
	cmd.Flags().StringVar(&destination, "to", "", "destination airport code (e.g. BCN)")
	cmd.Flags().StringVar(&date, "date", "", "departure date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&returnDate, "return", "", "return date for round trip (YYYY-MM-DD)")
	cmd.Flags().IntVar(&maxResults, "max", 20, "max results")
	flags.register(cmd)
	addFormatFlag(cmd, &format)
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newCompareDatesCommand() *cobra.Command {
	var (
		origin       string
		destination  string
		dateList     string
		start        string
		end          string
		weekendsOnly bool
		weekdaysOnly bool
		returnAfter  int
		format       string
		flags        searchFlags
	)

	cmd := &cobra.Command{
		Use:   "compare-dates",
		Short: "Compare flight prices across multiple departure dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			dates, err := resolveDates(dateList, start, end, weekendsOnly, weekdaysOnly)
			if err != nil {
				return err
			}
			if len(dates) == 0 {
				return common.InvalidInputError("no dates to compare")
			}
			if len(dates) > 31 {
				rt.logger.Warn("large comparison may take a while", "dates", len(dates))
			}

			result, err := rt.flights.Comparator.Compare(rt.context(cmd), domain.CompareRequest{
				Origin:          origin,
				Destination:     destination,
				Dates:           dates,
				ReturnAfterDays: returnAfter,
				Options: domain.CompareOptions{
					Adults:      flags.adults,
					Children:    flags.children,
					Infants:     flags.infants,
					TravelClass: flags.travelClass,
					NonStop:     flags.nonstop,
					MaxPrice:    flags.maxPrice,
					Currency:    flags.currencyOr(rt.config.App.Currency),
				},
			})
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderComparison(result)
				return nil
			}
			return printJSON(comparisonToJSON(result))
		},
	}

	cmd.Flags().StringVar(&origin, "from", "", "origin airport code")
	cmd.Flags().StringVar(&destination, "to", "", "destination airport code")
	cmd.Flags().StringVar(&dateList, "dates", "", "comma-separated departure dates (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "start date for range (use with --end)")
	cmd.Flags().StringVar(&end, "end", "", "end date for range (use with --start)")
	cmd.Flags().BoolVar(&weekendsOnly, "weekends-only", false, "only check Saturdays and Sundays")
	cmd.Flags().BoolVar(&weekdaysOnly, "weekdays-only", false, "only check Monday-Friday")
	cmd.Flags().IntVar(&returnAfter, "return-after", 0, "days after departure for return flight (round trip)")
	flags.register(cmd)
	addFormatFlag(cmd, &format)
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	cmd.MarkFlagsMutuallyExclusive("dates", "start")
	cmd.MarkFlagsRequiredTogether("start", "end")
	cmd.MarkFlagsMutuallyExclusive("weekends-only", "weekdays-only")

	return cmd
}

// resolveDates builds the departure date list from either an explicit list
// or a filtered range
func resolveDates(dateList, start, end string, weekendsOnly, weekdaysOnly bool) ([]time.Time, error) {
	if dateList != "" {
		var dates []time.Time
		for _, raw := range strings.Split(dateList, ",") {
			parsed, err := usecase.ParseDate(strings.TrimSpace(raw))
			if err != nil {
				return nil, err
			}
			dates = append(dates, parsed)
		}
		return dates, nil
	}

	if start == "" || end == "" {
		return nil, common.InvalidInputError("either --dates or --start/--end is required")
	}

	filter, err := usecase.ParseDateFilter(weekendsOnly, weekdaysOnly)
	if err != nil {
		return nil, err
	}

	startDate, err := usecase.ParseDate(start)
	if err != nil {
		return nil, err
	}
	endDate, err := usecase.ParseDate(end)
	if err != nil {
		return nil, err
	}

	return usecase.GenerateDateRange(startDate, endDate, filter), nil
}

func newPriceCommand() *cobra.Command {
	var offerFile string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Confirm pricing for a flight offer before booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(offerFile)
			if err != nil {
				return fmt.Errorf("failed to read offer file: %w", err)
			}

			offers, err := decodeOffers(raw)
			if err != nil {
				return err
			}

			envelope, err := rt.flights.API.ConfirmPricing(rt.context(cmd), offers)
			if err != nil {
				return err
			}

			return printRawJSON(envelope.Raw)
		},
	}

	cmd.Flags().StringVar(&offerFile, "offer", "", "path to a JSON file holding a flight offer or offer list")
	_ = cmd.MarkFlagRequired("offer")

	return cmd
}

// decodeOffers accepts either a single offer object or an array of offers
func decodeOffers(raw []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var offers []json.RawMessage
		if err := json.Unmarshal(raw, &offers); err != nil {
			return nil, common.InvalidInputError("offer file is not valid JSON: %v", err)
		}
		return offers, nil
	}

	var offer json.RawMessage
	if err := json.Unmarshal(raw, &offer); err != nil {
		return nil, common.InvalidInputError("offer file is not valid JSON: %v", err)
	}
	return []json.RawMessage{offer}, nil
}

func newCheapestDatesCommand() *cobra.Command {
	var (
		query    dateShoppingFlags
		format   string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "cheapest-dates",
		Short: "Find the cheapest dates to fly a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			dates, raw, err := rt.flights.API.CheapestDates(rt.context(cmd), query.toQuery(cmd, currency, rt.config.App.Currency))
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderCheapestDates(dates, currencyOr(currency, rt.config.App.Currency))
				return nil
			}
			return printRawJSON(raw)
		},
	}

	query.register(cmd, true)
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default from config)")
	addFormatFlag(cmd, &format)

	return cmd
}

func newInspirationCommand() *cobra.Command {
	var (
		query    dateShoppingFlags
		format   string
		currency string
	)

	cmd := &cobra.Command{
		Use:   "inspiration",
		Short: "Find the cheapest destinations from an origin",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			destinations, raw, err := rt.flights.API.Inspiration(rt.context(cmd), query.toQuery(cmd, currency, rt.config.App.Currency))
			if err != nil {
				return err
			}

			if format == formatHuman {
				renderInspiration(destinations, currencyOr(currency, rt.config.App.Currency))
				return nil
			}
			return printRawJSON(raw)
		},
	}

	query.register(cmd, false)
	cmd.Flags().StringVar(&currency, "currency", "", "currency code (default from config)")
	addFormatFlag(cmd, &format)

	return cmd
}

// dateShoppingFlags carries the flags shared by cheapest-dates and
// inspiration
type dateShoppingFlags struct {
	origin        string
	destination   string
	departureDate string
	oneWay        bool
	roundTrip     bool
	duration      int
	nonstop       bool
	maxPrice      int
	viewBy        string
}

func (f *dateShoppingFlags) register(cmd *cobra.Command, requireDestination bool) {
	cmd.Flags().StringVar(&f.origin, "from", "", "origin airport code")
	cmd.Flags().StringVar(&f.destination, "to", "", "destination airport code")
	cmd.Flags().StringVar(&f.departureDate, "date", "", "date or date range (YYYY-MM-DD or YYYY-MM-DD,YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.oneWay, "one-way", false, "one-way fares only")
	cmd.Flags().BoolVar(&f.roundTrip, "round-trip", false, "round-trip fares only")
	cmd.Flags().IntVar(&f.duration, "duration", 0, "trip duration in days")
	cmd.Flags().BoolVar(&f.nonstop, "nonstop", false, "direct flights only")
	cmd.Flags().IntVar(&f.maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVar(&f.viewBy, "view-by", "", "group results by DATE, DESTINATION, DURATION or WEEK")
	_ = cmd.MarkFlagRequired("from")
	if requireDestination {
		_ = cmd.MarkFlagRequired("to")
	}
	cmd.MarkFlagsMutuallyExclusive("one-way", "round-trip")
}

func (f *dateShoppingFlags) toQuery(cmd *cobra.Command, currency, fallback string) domain.DateShoppingQuery {
	query := domain.DateShoppingQuery{
		Origin:        f.origin,
		Destination:   f.destination,
		DepartureDate: f.departureDate,
		Duration:      f.duration,
		NonStop:       f.nonstop,
		MaxPrice:      f.maxPrice,
		ViewBy:        f.viewBy,
		Currency:      currencyOr(currency, fallback),
	}

	if cmd.Flags().Changed("one-way") || cmd.Flags().Changed("round-trip") {
		oneWay := f.oneWay
		query.OneWay = &oneWay
	}

	return query
}

func currencyOr(currency, fallback string) string {
	if currency != "" {
		return currency
	}
	return fallback
}
