// Package webhook drives the test-only "sq-webhook" endpoints that put the
// store under test into specific states.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

// Webhook names shared by the storefront integrations
const (
	ClearConfig              = "clear_config"
	DummyConfig              = "dummy_config"
	DummyServicesConfig      = "dummy_services_config"
	RemoveDBTables           = "remove_db_tables"
	ForceOrderFailure        = "force_order_failure"
	SetTheme                 = "set_theme"
	VerifyOrderHasMerchantID = "verify_order_has_merchant_id"
	RemoveLog                = "remove_log"
	PrintLogs                = "print_logs"
	SetOrderMerchantRef      = "set_order_merchant_ref"
)

// ErrUnexpectedStatus is returned when a webhook does not answer 200.
var ErrUnexpectedStatus = errors.New("unexpected webhook response status")

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Registry is the set of webhook names a store implements.
type Registry map[string]struct{}

// NewRegistry builds a registry from names.
func NewRegistry(names ...string) Registry {
	r := make(Registry, len(names))
	for _, n := range names {
		r[n] = struct{}{}
	}
	return r
}

// DefaultRegistry holds the webhooks every storefront integration provides.
func DefaultRegistry() Registry {
	return NewRegistry(
		ClearConfig,
		DummyConfig,
		DummyServicesConfig,
		RemoveDBTables,
		ForceOrderFailure,
		SetTheme,
		VerifyOrderHasMerchantID,
		RemoveLog,
		PrintLogs,
		SetOrderMerchantRef,
	)
}

// With returns a copy of the registry extended with names.
func (r Registry) With(names ...string) Registry {
	out := make(Registry, len(r)+len(names))
	for n := range r {
		out[n] = struct{}{}
	}
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

// Has reports whether name is registered.
func (r Registry) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Helper dispatches webhook calls against a store.
type Helper struct {
	baseURL  string
	webhooks Registry
	client   Doer
	log      logrus.FieldLogger
}

// NewHelper creates a helper. A nil client gets an *http.Client with a 30s
// timeout.
func NewHelper(baseURL string, webhooks Registry, client Doer, log logrus.FieldLogger) *Helper {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Helper{
		baseURL:  strings.TrimRight(baseURL, "/"),
		webhooks: webhooks,
		client:   client,
		log:      log.WithField("fixture", "webhook"),
	}
}

// Has reports whether the store implements the webhook.
func (h *Helper) Has(name string) bool {
	return h.webhooks.Has(name)
}

// URL returns the endpoint for a call:
// <baseURL>/?sq-webhook=<name>&<arg>=<value>...
func (h *Helper) URL(call models.WebhookCall) string {
	return h.baseURL + "/?sq-webhook=" + escape(call.Webhook) + EncodeArgs(call.Args)
}

// EncodeArgs renders args as "&name=value" pairs, names and values
// percent-encoded, keeping their order.
func EncodeArgs(args []models.WebhookArg) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString("&")
		b.WriteString(escape(a.Name))
		b.WriteString("=")
		b.WriteString(escape(a.Value))
	}
	return b.String()
}

// componentUnescaper restores the characters encodeURIComponent leaves
// alone but url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escape percent-encodes like encodeURIComponent: spaces as %20 and
// !'()* kept as is.
func escape(v string) string {
	return componentUnescaper.Replace(url.QueryEscape(v))
}

// Execute POSTs the call and checks the response is HTTP 200. Unknown
// webhooks fail before any request is sent.
func (h *Helper) Execute(ctx context.Context, call models.WebhookCall) error {
	_, err := h.do(ctx, call)
	return err
}

// ExecuteJSON is Execute returning the parsed JSON body.
func (h *Helper) ExecuteJSON(ctx context.Context, call models.WebhookCall) (gjson.Result, error) {
	body, err := h.do(ctx, call)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("webhook %q returned invalid JSON: %s", call.Webhook, truncate(body))
	}
	return gjson.ParseBytes(body), nil
}

// ExecuteAll runs the calls one after another and stops at the first error.
func (h *Helper) ExecuteAll(ctx context.Context, calls []models.WebhookCall) error {
	for i, call := range calls {
		if err := h.Execute(ctx, call); err != nil {
			return fmt.Errorf("webhook %d/%d: %w", i+1, len(calls), err)
		}
	}
	return nil
}

func (h *Helper) do(ctx context.Context, call models.WebhookCall) ([]byte, error) {
	if !h.webhooks.Has(call.Webhook) {
		return nil, fixture.Unknown("webhook", call.Webhook)
	}

	endpoint := h.URL(call)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log := h.log.WithField("webhook", call.Webhook)
	log.WithField("url", endpoint).Debug("Executing webhook")

	resp, err := h.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("Webhook request failed")
		return nil, fmt.Errorf("failed to send webhook %q: %w", call.Webhook, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook %q response: %w", call.Webhook, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warnf("Webhook error: %s", truncate(body))
		return nil, fmt.Errorf("%w: %q responded %d: %s", ErrUnexpectedStatus, endpoint, resp.StatusCode, truncate(body))
	}

	log.Info("Webhook executed")
	return body, nil
}

func truncate(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
