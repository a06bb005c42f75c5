package config

import (
	"fmt"
	"strings"
	"time"
)

// StoreConfig holds the store under test.
type StoreConfig struct {
	BaseURL            string        `envconfig:"SQ_E2E_BASE_URL"`
	BackOfficeUser     string        `envconfig:"SQ_E2E_BACKOFFICE_USER"`
	BackOfficePassword string        `envconfig:"SQ_E2E_BACKOFFICE_PASSWORD"`
	HTTPTimeout        time.Duration `envconfig:"SQ_E2E_HTTP_TIMEOUT" default:"30s"`
	OrderPollInterval  time.Duration `envconfig:"SQ_E2E_ORDER_POLL_INTERVAL" default:"1s"`
}

// LoadStoreConfig loads the store configuration from environment variables
func LoadStoreConfig(getenv func(string) string) (*StoreConfig, error) {
	config := &StoreConfig{}
	if err := process(getenv, config); err != nil {
		return nil, err
	}

	if config.BaseURL == "" {
		return nil, fmt.Errorf("SQ_E2E_BASE_URL is required")
	}
	if !strings.HasPrefix(config.BaseURL, "http://") && !strings.HasPrefix(config.BaseURL, "https://") {
		return nil, fmt.Errorf("SQ_E2E_BASE_URL must be an http(s) URL, got %q", config.BaseURL)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("SQ_E2E_HTTP_TIMEOUT must be positive")
	}
	if config.OrderPollInterval <= 0 {
		return nil, fmt.Errorf("SQ_E2E_ORDER_POLL_INTERVAL must be positive")
	}

	return config, nil
}
