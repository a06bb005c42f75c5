package config

import (
	"fmt"

	"github.com/sequra/e2e-fixtures/internal/models"
)

// DefaultMerchantUsername is the seQura account used by the dummy stores.
const DefaultMerchantUsername = "dummy_automated_tests"

// MerchantConfig holds the seQura merchant credentials used to connect the
// plugin.
type MerchantConfig struct {
	Username    string `envconfig:"SQ_E2E_MERCHANT_USERNAME" default:"dummy_automated_tests"`
	Password    string `envconfig:"SQ_E2E_MERCHANT_PASSWORD"`
	Environment string `envconfig:"SQ_E2E_MERCHANT_ENV" default:"sandbox"`
}

// LoadMerchantConfig loads the merchant credentials from environment variables
func LoadMerchantConfig(getenv func(string) string) (*MerchantConfig, error) {
	config := &MerchantConfig{}
	if err := process(getenv, config); err != nil {
		return nil, err
	}

	switch config.Environment {
	case models.EnvSandbox, models.EnvLive:
	default:
		return nil, fmt.Errorf("SQ_E2E_MERCHANT_ENV must be %s or %s, got %q", models.EnvSandbox, models.EnvLive, config.Environment)
	}

	return config, nil
}
