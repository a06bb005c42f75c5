package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sequra/e2e-fixtures/internal/dataprovider"
	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/webhook"
)

// WebhookOptions selects what RunWebhook sends.
type WebhookOptions struct {
	// Name is a single webhook to call with Args ("name=value").
	Name string
	Args []string
	// Scenario is a named list of calls from the fixture tables. It wins
	// over Name.
	Scenario string
	// Path is a gjson path printed from the JSON response, e.g. "logs".
	Path string
}

// RunWebhook calls a webhook, or every webhook of a scenario, against the
// store.
func RunWebhook(ctx context.Context, helper *webhook.Helper, data *dataprovider.Provider, opts WebhookOptions, out io.Writer, log logrus.FieldLogger) error {
	if opts.Scenario != "" {
		calls, err := data.WebhookCalls(opts.Scenario)
		if err != nil {
			return err
		}
		if err := helper.ExecuteAll(ctx, calls); err != nil {
			return err
		}
		log.WithField("scenario", opts.Scenario).Infof("Executed %d webhooks", len(calls))
		return nil
	}

	if opts.Name == "" {
		return fmt.Errorf("a webhook name or a scenario is required")
	}
	args, err := ParseWebhookArgs(opts.Args)
	if err != nil {
		return err
	}
	call := models.WebhookCall{Webhook: opts.Name, Args: args}

	if opts.Path == "" {
		return helper.Execute(ctx, call)
	}
	res, err := helper.ExecuteJSON(ctx, call)
	if err != nil {
		return err
	}
	value := res.Get(opts.Path)
	if !value.Exists() {
		return fmt.Errorf("webhook %q response has no %q", opts.Name, opts.Path)
	}
	_, err = fmt.Fprintln(out, value.String())
	return err
}

// ParseWebhookArgs turns "name=value" pairs into webhook args, keeping
// their order.
func ParseWebhookArgs(pairs []string) ([]models.WebhookArg, error) {
	args := make([]models.WebhookArg, 0, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid webhook argument %q, want name=value", p)
		}
		args = append(args, models.Arg(name, value))
	}
	return args, nil
}
