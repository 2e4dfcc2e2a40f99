package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/flights/domain"
)

// noFlightsFound marks an entry whose search succeeded but returned
// nothing
const noFlightsFound = "No flights found"

// ComparatorConfig holds price comparator configuration
type ComparatorConfig struct {
	// Workers bounds the number of concurrent date searches. One worker
	// reproduces the strictly sequential behavior and is the default,
	// keeping pressure off the upstream rate limiter.
	Workers int

	// MaxOffers is how many offers to request per date; the first
	// (cheapest-sorted) offer is all the comparison needs
	MaxOffers int
}

// Comparator searches one route across many departure dates and ranks
// the results by price
type Comparator struct {
	config   ComparatorConfig
	searcher domain.OfferSearcher
	logger   *slog.Logger
}

// NewComparator creates a new price comparator
func NewComparator(config ComparatorConfig, searcher domain.OfferSearcher, logger *slog.Logger) *Comparator {
	if searcher == nil {
		panic("offer searcher cannot be nil")
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.MaxOffers < 1 {
		config.MaxOffers = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Comparator{
		config:   config,
		searcher: searcher,
		logger:   logger,
	}
}

// Compare runs one search per date and reduces the outcomes to a ranked
// result. A failed date becomes an entry with ErrorDetail set; it never
// aborts the remaining dates.
func (c *Comparator) Compare(ctx context.Context, req domain.CompareRequest) (*domain.ComparisonResult, error) {
	if req.Origin == "" || req.Destination == "" {
		return nil, common.InvalidInputError("origin and destination are required")
	}
	if len(req.Dates) == 0 {
		return nil, common.InvalidInputError("at least one date is required")
	}

	c.logger.Info("comparing prices",
		"origin", req.Origin,
		"destination", req.Destination,
		"dates", len(req.Dates))

	entries := make([]domain.ComparisonEntry, len(req.Dates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.config.Workers)

	for i, date := range req.Dates {
		i, date := i, date
		group.Go(func() error {
			c.logger.Info("checking date",
				"date", date.Format(time.DateOnly),
				"position", i+1,
				"total", len(req.Dates))

			entries[i] = c.checkDate(groupCtx, req, date)
			return nil
		})
	}

	// Workers record failures in their entries, so Wait cannot fail.
	_ = group.Wait()

	sortEntries(entries)

	result := &domain.ComparisonResult{
		Origin:      req.Origin,
		Destination: req.Destination,
		Entries:     entries,
	}
	if len(entries) > 0 && entries[0].Price != nil {
		result.Cheapest = &entries[0]
	}

	return result, nil
}

// checkDate runs the search for one departure date and folds the outcome,
// success or failure, into a ComparisonEntry
func (c *Comparator) checkDate(ctx context.Context, req domain.CompareRequest, date time.Time) domain.ComparisonEntry {
	entry := domain.ComparisonEntry{
		DepartureDate: date,
		Currency:      req.Options.Currency,
	}

	query := domain.SearchQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: date,
		Adults:        req.Options.Adults,
		Children:      req.Options.Children,
		Infants:       req.Options.Infants,
		TravelClass:   req.Options.TravelClass,
		NonStop:       req.Options.NonStop,
		MaxPrice:      req.Options.MaxPrice,
		Currency:      req.Options.Currency,
		MaxResults:    c.config.MaxOffers,
	}

	if req.ReturnAfterDays > 0 {
		returnDate := date.AddDate(0, 0, req.ReturnAfterDays)
		entry.ReturnDate = &returnDate
		query.ReturnDate = &returnDate
	}

	result, err := c.searcher.SearchOffers(ctx, query)
	if err != nil {
		entry.ErrorDetail = err.Error()
		return entry
	}

	if len(result.Offers) == 0 {
		entry.ErrorDetail = noFlightsFound
		return entry
	}

	// Offers arrive cheapest-first; the head is the best price for the date.
	cheapest := result.Offers[0]

	price, err := decimal.NewFromString(cheapest.Price.Amount())
	if err != nil {
		entry.ErrorDetail = "unparseable price: " + cheapest.Price.Amount()
		return entry
	}

	entry.Price = &price
	entry.OffersFound = len(result.Offers)
	if cheapest.Price.Currency != "" {
		entry.Currency = cheapest.Price.Currency
	}

	if len(cheapest.Itineraries) > 0 {
		outbound := cheapest.Itineraries[0]
		entry.Stops = outbound.Stops()
		if len(outbound.Segments) > 0 {
			entry.CarrierCode = outbound.Segments[0].CarrierCode
			entry.Carrier = result.CarrierName(entry.CarrierCode)
		}
	}

	return entry
}

// sortEntries orders by price ascending with priceless entries last,
// keeping emission order among ties
func sortEntries(entries []domain.ComparisonEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Price, entries[j].Price
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.LessThan(*b)
		}
	})
}
