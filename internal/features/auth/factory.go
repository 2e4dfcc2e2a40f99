package auth

import (
	"fmt"

	"amadeus-cli/cmd/app"
	"amadeus-cli/internal/features/auth/adapter/file"
	"amadeus-cli/internal/features/auth/domain"
	"amadeus-cli/internal/features/auth/usecase"
	"amadeus-cli/internal/features/transport"
)

// Services contains the services provided by the auth package
type Services struct {
	TokenProvider domain.TokenProvider
}

// NewServices creates and initializes the auth services
func NewServices(config *app.Config) (*Services, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	tokenPath, err := config.Cache.TokenPath(config.API.Env)
	if err != nil {
		return nil, err
	}

	httpClient, err := transport.NewClient(transport.DefaultClientConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	managerConfig := usecase.TokenManagerConfig{
		BaseURL: config.API.BaseURL(),
		Credential: domain.Credential{
			ClientID:     config.API.Key,
			ClientSecret: config.API.Secret,
		},
		Timeout: config.API.AuthTimeout,
	}

	tokenManager := usecase.NewTokenManager(managerConfig, file.NewStore(tokenPath), httpClient)

	return &Services{
		TokenProvider: tokenManager,
	}, nil
}
