// Package config loads the e2e fixture settings from the environment.
//
// Every loader takes a getenv function so tests and the CLI can inject their
// own environment; an empty value counts as unset.
package config

import (
	"fmt"

	"github.com/mstoykov/envconfig"
)

// Config is the whole fixture configuration.
type Config struct {
	Store    StoreConfig
	Merchant MerchantConfig
	Browser  BrowserConfig
	// Postgres is nil unless SQ_E2E_DB_HOST is set.
	Postgres *PostgresConfig
}

// Load reads every section. The order database is optional.
func Load(getenv func(string) string) (*Config, error) {
	store, err := LoadStoreConfig(getenv)
	if err != nil {
		return nil, err
	}
	merchant, err := LoadMerchantConfig(getenv)
	if err != nil {
		return nil, err
	}
	browser, err := LoadBrowserConfig(getenv)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Store: *store, Merchant: *merchant, Browser: *browser}
	if getenv("SQ_E2E_DB_HOST") != "" {
		if cfg.Postgres, err = LoadPostgresConfig(getenv); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// process decodes the envconfig tags of target through getenv.
func process(getenv func(string) string, target interface{}) error {
	err := envconfig.Process("", target, func(key string) (string, bool) {
		v := getenv(key)
		return v, v != ""
	})
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}
