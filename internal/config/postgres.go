package config

import (
	"fmt"
	"strings"
)

// DefaultStatusQuery reads the status of an order by number. WooCommerce
// with HPOS stores it in wc_orders.
const DefaultStatusQuery = "SELECT status FROM wc_orders WHERE id = $1"

// PostgresConfig holds configuration for the optional connection to the
// store's order database
type PostgresConfig struct {
	User     string `envconfig:"SQ_E2E_DB_USER"`
	Password string `envconfig:"SQ_E2E_DB_PASSWORD"`
	Database string `envconfig:"SQ_E2E_DB_NAME"`
	Host     string `envconfig:"SQ_E2E_DB_HOST"`
	SSLMode  string `envconfig:"SQ_E2E_DB_SSLMODE" default:"disable"`
	// StatusQuery takes the order number as $1 and returns one status column.
	StatusQuery string `envconfig:"SQ_E2E_DB_STATUS_QUERY"`
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{}
	if err := process(getenv, config); err != nil {
		return nil, err
	}

	// Validate required fields
	if config.User == "" {
		return nil, fmt.Errorf("SQ_E2E_DB_USER is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("SQ_E2E_DB_PASSWORD is required")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("SQ_E2E_DB_NAME is required")
	}
	if config.Host == "" {
		return nil, fmt.Errorf("SQ_E2E_DB_HOST is required")
	}
	if config.StatusQuery == "" {
		config.StatusQuery = DefaultStatusQuery
	}
	if !strings.Contains(config.StatusQuery, "$1") {
		return nil, fmt.Errorf("SQ_E2E_DB_STATUS_QUERY must take the order number as $1")
	}

	return config, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Database, c.SSLMode)
}
