package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/sequra/e2e-fixtures/internal/services"
)

type cartView struct {
	Lines       []services.CartLine
	Total       int
	Coupon      string
	Widgets     bool
	WidgetAttrs template.HTMLAttr
}

// CartHandler renders the cart and applies its forms. Every form redirects
// back to the cart.
type CartHandler struct {
	template *template.Template
	store    *Store
}

func NewCartHandler(s *Store) (*CartHandler, error) {
	tmpl, err := parseTemplate("cart.html")
	if err != nil {
		return nil, err
	}
	return &CartHandler{template: tmpl, store: s}, nil
}

// Show handles GET /cart.
func (h *CartHandler) Show(w http.ResponseWriter, r *http.Request) {
	view := cartView{
		Lines:   h.store.Cart.Lines(),
		Total:   h.store.Cart.Total(),
		Coupon:  h.store.Cart.Coupon(),
		Widgets: h.store.Plugin.Widgets(),
	}
	if view.Widgets {
		attrs, err := widgetAttrs(h.store.Data.WidgetOptions().WidgetConfig)
		if err != nil {
			h.store.Log.WithError(err).Error("Invalid widget config")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		view.WidgetAttrs = attrs
	}
	render(w, h.template, http.StatusOK, view, h.store.Log)
}

// Add handles POST /cart from the product page.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	quantity, err := formInt(r, "quantity", 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slug := r.FormValue("product")
	if err := h.store.Cart.Add(slug, quantity); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.store.Plugin.Log("DEBUG", "Cart updated with "+slug)
	http.Redirect(w, r, "/product/"+slug+"?added=1", http.StatusSeeOther)
}

// Update handles POST /cart/update. Only the first line is updated.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	quantity, err := formInt(r, "quantity", 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.Cart.SetQuantity(quantity); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Remove handles GET /cart/remove?line=N.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	line, err := formInt(r, "line", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.Cart.Remove(line); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	h.store.Cart.ApplyCoupon(r.FormValue("coupon_code"))
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	h.store.Cart.ApplyCoupon("")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// formInt reads an integer form value, or def when it is missing.
func formInt(r *http.Request, key string, def int) (int, error) {
	v := r.FormValue(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
