package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/sequra/e2e-fixtures/internal/dataprovider"
	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/services"
	"github.com/sequra/e2e-fixtures/internal/webhook"
)

var (
	// errBadRequest marks webhook failures caused by the call itself.
	errBadRequest     = errors.New("bad request")
	errUnknownWebhook = errors.New("unknown webhook")
)

// WebhookResponse is the JSON body of every webhook answer.
type WebhookResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Logs    []models.LogEntry `json:"logs,omitempty"`
}

// WebhookHandler answers POST /?sq-webhook=name&arg=value calls.
type WebhookHandler struct {
	store *Store

	mu    sync.Mutex
	calls []models.WebhookCall
}

func NewWebhookHandler(s *Store) *WebhookHandler {
	return &WebhookHandler{store: s}
}

// Calls returns the webhook calls received so far.
func (h *WebhookHandler) Calls() []models.WebhookCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.WebhookCall(nil), h.calls...)
}

// ServeHTTP dispatches on the sq-webhook query parameter.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("sq-webhook")
	if name == "" {
		sendErrorResponse(w, "missing sq-webhook parameter", http.StatusNotFound)
		return
	}

	call := models.WebhookCall{Webhook: name}
	keys := make([]string, 0, len(query))
	for k := range query {
		if k != "sq-webhook" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		call.Args = append(call.Args, models.Arg(k, query.Get(k)))
	}
	h.mu.Lock()
	h.calls = append(h.calls, call)
	h.mu.Unlock()

	log := h.store.Log.WithField("webhook", name)
	resp, err := h.handle(name, query.Get)
	switch {
	case errors.Is(err, errUnknownWebhook):
		log.WithError(err).Warn("Unknown webhook")
		sendErrorResponse(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, errBadRequest):
		log.WithError(err).Warn("Webhook rejected")
		sendErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.WithError(err).Error("Webhook failed")
		sendErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Info("Webhook executed")

	resp.Success = true
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

func (h *WebhookHandler) handle(name string, arg func(string) string) (WebhookResponse, error) {
	s := h.store
	switch name {
	case webhook.ClearConfig:
		s.Plugin.Clear()
	case webhook.DummyConfig:
		return WebhookResponse{}, s.Plugin.Configure(dataprovider.DefaultUsername, arg("widgets") == "1")
	case webhook.DummyServicesConfig:
		return WebhookResponse{}, s.Plugin.Configure(dataprovider.ServiceUsername, arg("widgets") == "1")
	case webhook.RemoveDBTables:
		s.Plugin.Clear()
		s.Plugin.ClearLogs()
		s.Orders.Reset()
		s.Cart.Clear()
	case webhook.ForceOrderFailure:
		s.Orders.ForceFailure()
	case webhook.SetTheme:
		s.Plugin.SetTheme(arg("theme"))
	case webhook.RemoveLog:
		s.Plugin.ClearLogs()
	case webhook.PrintLogs:
		return WebhookResponse{Logs: s.Plugin.Logs()}, nil
	case webhook.VerifyOrderHasMerchantID:
		order, err := h.order(arg("order_id"))
		if err != nil {
			return WebhookResponse{}, err
		}
		if want := arg("merchant_id"); order.MerchantRef != want {
			return WebhookResponse{}, fmt.Errorf("%w: order %d was sent with merchant id %q, not %q",
				errBadRequest, order.ID, order.MerchantRef, want)
		}
	case webhook.SetOrderMerchantRef:
		order, err := h.order(arg("order_id"))
		if err != nil {
			return WebhookResponse{}, err
		}
		if err := s.Orders.SetMerchantRef(order.ID, arg("merchant_ref")); err != nil {
			return WebhookResponse{}, err
		}
	default:
		return WebhookResponse{}, fmt.Errorf("%w %q", errUnknownWebhook, name)
	}
	return WebhookResponse{}, nil
}

func (h *WebhookHandler) order(raw string) (services.Order, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return services.Order{}, fmt.Errorf("%w: invalid order_id %q", errBadRequest, raw)
	}
	order, err := h.store.Orders.Order(id)
	if err != nil {
		return services.Order{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return order, nil
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(WebhookResponse{Message: message})
}
