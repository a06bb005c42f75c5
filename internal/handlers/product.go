package handlers

import (
	"html/template"
	"net/http"

	"github.com/sequra/e2e-fixtures/internal/services"
)

type productView struct {
	Product     services.Product
	Added       bool
	Widgets     bool
	WidgetAttrs template.HTMLAttr
}

// ProductHandler renders a product page with the seQura widget.
type ProductHandler struct {
	template *template.Template
	store    *Store
}

func NewProductHandler(s *Store) (*ProductHandler, error) {
	tmpl, err := parseTemplate("product.html")
	if err != nil {
		return nil, err
	}
	return &ProductHandler{template: tmpl, store: s}, nil
}

// ServeHTTP handles GET /product/{slug}.
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	product, ok := h.store.Catalog[r.PathValue("slug")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	view := productView{
		Product: product,
		Added:   r.URL.Query().Get("added") == "1",
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

type categoryView struct {
	Category string
	Products []services.Product
	Widgets  bool
}

// CategoryHandler renders a product listing with mini widgets.
type CategoryHandler struct {
	template *template.Template
	store    *Store
}

func NewCategoryHandler(s *Store) (*CategoryHandler, error) {
	tmpl, err := parseTemplate("category.html")
	if err != nil {
		return nil, err
	}
	return &CategoryHandler{template: tmpl, store: s}, nil
}

// ServeHTTP handles GET /product-category/{slug}, and GET / for the whole
// catalog.
func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("slug")
	products := h.store.Catalog.InCategory(category)
	if category != "" && len(products) == 0 {
		http.NotFound(w, r)
		return
	}
	if category == "" {
		category = "Tienda"
	}
	render(w, h.template, http.StatusOK, categoryView{
		Category: category,
		Products: products,
		Widgets:  h.store.Plugin.Widgets(),
	}, h.store.Log)
}
