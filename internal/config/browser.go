package config

import (
	"fmt"
	"time"

	"github.com/sequra/e2e-fixtures/internal/browser/pwdriver"
)

// BrowserConfig holds how the test browser is launched.
type BrowserConfig struct {
	Browser  string        `envconfig:"SQ_E2E_BROWSER" default:"chromium"`
	Headless bool          `envconfig:"SQ_E2E_HEADLESS" default:"true"`
	SlowMo   time.Duration `envconfig:"SQ_E2E_SLOW_MO"`
	Timeout  time.Duration `envconfig:"SQ_E2E_TIMEOUT" default:"10s"`
}

// LoadBrowserConfig loads the browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{}
	if err := process(getenv, config); err != nil {
		return nil, err
	}

	switch config.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return nil, fmt.Errorf("SQ_E2E_BROWSER must be chromium, firefox or webkit, got %q", config.Browser)
	}
	if config.Timeout <= 0 {
		return nil, fmt.Errorf("SQ_E2E_TIMEOUT must be positive")
	}

	return config, nil
}

// SessionOptions converts the configuration to launch options.
func (c *BrowserConfig) SessionOptions() pwdriver.Options {
	return pwdriver.Options{
		Browser:  c.Browser,
		Headless: c.Headless,
		SlowMo:   c.SlowMo,
		Timeout:  c.Timeout,
	}
}
