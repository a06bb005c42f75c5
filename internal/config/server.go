package config

import "fmt"

// ServerConfig holds the dummy store server settings
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
	// FirstOrderID is the id of the first order placed.
	FirstOrderID int64 `envconfig:"SQ_E2E_FIRST_ORDER_ID" default:"1000"`
	// ProcessAfter is how many order page views an order stays on hold.
	ProcessAfter int `envconfig:"SQ_E2E_PROCESS_AFTER" default:"2"`
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (*ServerConfig, error) {
	config := &ServerConfig{}
	if err := process(getenv, config); err != nil {
		return nil, err
	}
	if config.FirstOrderID < 1 {
		return nil, fmt.Errorf("SQ_E2E_FIRST_ORDER_ID must be positive")
	}
	if config.ProcessAfter < 0 {
		return nil, fmt.Errorf("SQ_E2E_PROCESS_AFTER cannot be negative")
	}
	return config, nil
}
