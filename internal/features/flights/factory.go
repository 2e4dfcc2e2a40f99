package flights

import (
	"log/slog"

	"amadeus-cli/cmd/app"
	"amadeus-cli/internal/features/flights/adapter/api"
	"amadeus-cli/internal/features/flights/usecase"
	"amadeus-cli/internal/features/transport"
)

// Services contains the services provided by the flights package
type Services struct {
	API        *api.Service
	Comparator *usecase.Comparator
}

// NewServices creates and initializes the flights services
func NewServices(config *app.Config, caller transport.Caller, logger *slog.Logger) *Services {
	apiService := api.NewService(caller)

	comparator := usecase.NewComparator(usecase.ComparatorConfig{
		Workers:   config.Compare.Workers,
		MaxOffers: config.Compare.MaxOffers,
	}, apiService, logger)

	return &Services{
		API:        apiService,
		Comparator: comparator,
	}
}
