package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sequra/e2e-fixtures/internal/config"
	"github.com/sequra/e2e-fixtures/internal/dataprovider"
)

const redacted = "********"

// RunShopper prints a sample shopper as YAML, or the known aliases when
// alias is empty.
func RunShopper(data *dataprovider.Provider, alias string, out io.Writer) error {
	if alias == "" {
		for _, a := range data.ShopperAliases() {
			if _, err := fmt.Fprintln(out, a); err != nil {
				return err
			}
		}
		return nil
	}
	shopper, err := data.Shopper(alias)
	if err != nil {
		return err
	}
	return encodeYAML(out, shopper)
}

// RunMerchantRefs prints the merchant reference of every country of a
// merchant account as YAML.
func RunMerchantRefs(data *dataprovider.Provider, username string, out io.Writer) error {
	refs, err := data.CountriesMerchantRefs(username)
	if err != nil {
		return err
	}
	return encodeYAML(out, refs)
}

// RunShowConfig prints the resolved configuration as YAML with the
// passwords masked.
func RunShowConfig(cfg *config.Config, out io.Writer) error {
	shown := *cfg
	shown.Store.BackOfficePassword = mask(shown.Store.BackOfficePassword)
	shown.Merchant.Password = mask(shown.Merchant.Password)
	if cfg.Postgres != nil {
		pg := *cfg.Postgres
		pg.Password = mask(pg.Password)
		shown.Postgres = &pg
	}
	return encodeYAML(out, shown)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

func encodeYAML(out io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
