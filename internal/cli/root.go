package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"amadeus-cli/cmd/app"
	"amadeus-cli/internal/common"
	"amadeus-cli/internal/features/auth"
	authdomain "amadeus-cli/internal/features/auth/domain"
	"amadeus-cli/internal/features/experiences"
	"amadeus-cli/internal/features/flights"
	"amadeus-cli/internal/features/transfers"
	"amadeus-cli/internal/features/transport"

	"log/slog"
)

// Output formats
const (
	formatJSON  = "json"
	formatHuman = "human"
)

// runtime holds the wired services shared by every command
type runtime struct {
	config      *app.Config
	logger      *slog.Logger
	tokens      authdomain.TokenProvider
	flights     *flights.Services
	experiences *experiences.Service
	transfers   *transfers.Service
}

// newRuntime loads configuration and wires the service graph
func newRuntime() (*runtime, error) {
	config, err := app.Load()
	if err != nil {
		return nil, err
	}

	logger := common.NewLogger(common.LoggerConfig{
		Level:  common.LogLevel(config.App.LogLevel),
		Format: config.App.LogFormat,
	})

	authServices, err := auth.NewServices(config)
	if err != nil {
		return nil, err
	}

	httpClient, err := transport.NewClient(transport.DefaultClientConfig())
	if err != nil {
		return nil, err
	}

	dispatcher := transport.NewDispatcher(transport.Config{
		BaseURL:       config.API.BaseURL(),
		ReadTimeout:   config.API.ReadTimeout,
		SearchTimeout: config.API.SearchTimeout,
		MaxAttempts:   config.API.MaxAttempts,
	}, authServices.TokenProvider, httpClient)

	return &runtime{
		config:      config,
		logger:      logger,
		tokens:      authServices.TokenProvider,
		flights:     flights.NewServices(config, dispatcher, logger),
		experiences: experiences.NewService(dispatcher),
		transfers:   transfers.NewService(dispatcher),
	}, nil
}

// context returns the command context carrying the runtime logger, so
// transport-level logging picks up the configured level and format
func (rt *runtime) context(cmd *cobra.Command) context.Context {
	return common.ContextWithLogger(cmd.Context(), rt.logger)
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "amadeus",
		Short:         "Travel search tools backed by the Amadeus APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTokenCommand(),
		newSearchCommand(),
		newCompareDatesCommand(),
		newPriceCommand(),
		newCheapestDatesCommand(),
		newInspirationCommand(),
		newAirportsCommand(),
		newAirlinesCommand(),
		newAirportRoutesCommand(),
		newAirlineRoutesCommand(),
		newCheckinCommand(),
		newDelayCommand(),
		newActivitiesCommand(),
		newPOICommand(),
		newTransfersCommand(),
	)

	return root
}

// Execute runs the CLI
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// addFormatFlag registers the shared output format flag
func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", formatJSON, "output format: json or human")
}
