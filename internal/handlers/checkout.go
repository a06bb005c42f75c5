package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/services"
)

// payOnDelivery is the non seQura payment method of the checkout.
const payOnDelivery = "cod"

type checkoutView struct {
	Countries []string
	Methods   []services.PaymentMethod
	Total     int
	Error     string
}

// CheckoutHandler renders the checkout and places orders.
type CheckoutHandler struct {
	template *template.Template
	store    *Store
}

func NewCheckoutHandler(s *Store) (*CheckoutHandler, error) {
	tmpl, err := parseTemplate("checkout.html")
	if err != nil {
		return nil, err
	}
	return &CheckoutHandler{template: tmpl, store: s}, nil
}

// Show handles GET /checkout.
func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "")
}

// PlaceOrder handles POST /checkout. It redirects to the order received
// page, or to the order failed page when the order failed.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	product := r.FormValue("product")
	country := r.FormValue("country")
	if country == "" {
		country = "ES"
	}
	total := h.store.Cart.Total()
	if total == 0 {
		h.render(w, http.StatusBadRequest, "Tu carrito está vacío.")
		return
	}
	if product == "" {
		h.render(w, http.StatusBadRequest, "Selecciona un método de pago.")
		return
	}

	var merchantRef string
	if product != payOnDelivery {
		ref, ok := h.store.Plugin.MerchantRef(country)
		if !ok {
			h.render(w, http.StatusBadRequest, fmt.Sprintf("seQura no está disponible en %s.", country))
			return
		}
		merchantRef = ref
	}

	order, err := h.store.Orders.PlaceOrder(product, country, merchantRef, total)
	if err != nil {
		h.store.Log.WithError(err).Error("Error placing order")
		h.render(w, http.StatusBadRequest, "No se ha podido realizar el pedido.")
		return
	}
	h.store.Cart.Clear()

	log := h.store.Log.WithField("order", order.ID).WithField("product", product)
	log.Infof("Order placed with status %s", order.Status)
	h.store.Plugin.Log("INFO", fmt.Sprintf("Order %d created with %s for %s", order.ID, product, merchantRef))

	if order.Status == models.OrderStatusFailed {
		http.Redirect(w, r, fmt.Sprintf("/checkout/order-failed/%d", order.ID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/checkout/order-received/%d", order.ID), http.StatusSeeOther)
}

func (h *CheckoutHandler) render(w http.ResponseWriter, status int, message string) {
	countries := h.store.Plugin.Countries()
	if len(countries) == 0 {
		countries = []string{"ES"}
	}
	render(w, h.template, status, checkoutView{
		Countries: countries,
		Methods:   h.store.Plugin.PaymentMethods(),
		Total:     h.store.Cart.Total(),
		Error:     message,
	}, h.store.Log)
}
