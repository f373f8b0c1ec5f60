package config

import (
	"fmt"
	"time"
)

// ClientConfig is the configuration of the formctl command line client.
type ClientConfig struct {
	// ServerAddress is the base URL of the form API.
	ServerAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// Token is the bearer token used for owner-only operations.
	Token string

	// TokenSignKey, TokenIssuer and TokenDuration are used by the token
	// subcommand to mint development tokens.
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

// GetClientConfig builds the client view from .env, environment variables
// and defaults. Command-line flags are handled by formctl itself.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		ServerAddress:  cfg.Adapter.HTTPAddress,
		RequestTimeout: cfg.Adapter.RequestTimeout,
		Token:          cfg.Adapter.Token,
		TokenSignKey:   cfg.App.TokenSignKey,
		TokenIssuer:    cfg.App.TokenIssuer,
		TokenDuration:  cfg.App.TokenDuration,
	}

	return clientCfg, clientCfg.validate()
}
