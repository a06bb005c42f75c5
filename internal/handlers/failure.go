package handlers

import (
	"html/template"
	"net/http"
	"strconv"
)

// FailureHandler renders the page shown when an order fails.
type FailureHandler struct {
	template *template.Template
	store    *Store
}

func NewFailureHandler(s *Store) (*FailureHandler, error) {
	tmpl, err := parseTemplate("failure.html")
	if err != nil {
		return nil, err
	}
	return &FailureHandler{template: tmpl, store: s}, nil
}

// ServeHTTP handles GET /checkout/order-failed/{id}.
func (h *FailureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}
	order, err := h.store.Orders.Order(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	render(w, h.template, http.StatusOK, ConfirmationData{Order: order}, h.store.Log)
}
