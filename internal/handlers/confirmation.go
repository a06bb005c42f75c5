package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/services"
)

// ConfirmationData is rendered by the order received and order failed pages.
type ConfirmationData struct {
	Order services.Order
}

// ConfirmationHandler renders the order received page. Each view counts
// towards moving an on-hold order to processing.
type ConfirmationHandler struct {
	template *template.Template
	store    *Store
}

func NewConfirmationHandler(s *Store) (*ConfirmationHandler, error) {
	tmpl, err := parseTemplate("confirmation.html")
	if err != nil {
		return nil, err
	}
	return &ConfirmationHandler{template: tmpl, store: s}, nil
}

// ServeHTTP handles GET /checkout/order-received/{id}.
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}
	order, err := h.store.Orders.Observe(id)
	if errors.Is(err, services.ErrOrderNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if order.Status == models.OrderStatusFailed {
		http.Redirect(w, r, "/checkout/order-failed/"+r.PathValue("id"), http.StatusSeeOther)
		return
	}
	h.store.Log.WithField("order", order.ID).Debugf("Order page viewed, status %s", order.Status)
	render(w, h.template, http.StatusOK, ConfirmationData{Order: order}, h.store.Log)
}
