// Package handlers serves the dummy store: a small shop with the seQura
// plugin markup and the sq-webhook endpoint, used to run the page objects
// against a real browser.
package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sequra/e2e-fixtures/internal/dataprovider"
	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// Store is the state behind every handler.
type Store struct {
	Catalog services.Catalog
	Cart    *services.CartService
	Orders  *services.OrderService
	Plugin  *services.PluginService
	Data    *dataprovider.Provider
	Log     logrus.FieldLogger
}

// StoreOptions tunes a new store.
type StoreOptions struct {
	// FirstOrderID defaults to 1000.
	FirstOrderID int64
	// ProcessAfter is the number of order page views an order stays on hold.
	ProcessAfter int
}

// NewStore creates an empty store with the default catalog.
func NewStore(data *dataprovider.Provider, opts StoreOptions, log logrus.FieldLogger) *Store {
	if opts.FirstOrderID == 0 {
		opts.FirstOrderID = 1000
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	catalog := services.DefaultCatalog()
	return &Store{
		Catalog: catalog,
		Cart:    services.NewCartService(catalog),
		Orders:  services.NewOrderService(opts.FirstOrderID, opts.ProcessAfter),
		Plugin:  services.NewPluginService(data),
		Data:    data,
		Log:     log.WithField("component", "store"),
	}
}

// NewRouter wires the store pages and the webhook endpoint.
func NewRouter(s *Store) (http.Handler, error) {
	product, err := NewProductHandler(s)
	if err != nil {
		return nil, err
	}
	category, err := NewCategoryHandler(s)
	if err != nil {
		return nil, err
	}
	cart, err := NewCartHandler(s)
	if err != nil {
		return nil, err
	}
	checkout, err := NewCheckoutHandler(s)
	if err != nil {
		return nil, err
	}
	confirmation, err := NewConfirmationHandler(s)
	if err != nil {
		return nil, err
	}
	failure, err := NewFailureHandler(s)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", category)
	mux.Handle("POST /{$}", NewWebhookHandler(s))
	mux.Handle("GET /product/{slug}", product)
	mux.Handle("GET /product-category/{slug}", category)
	mux.HandleFunc("GET /cart", cart.Show)
	mux.HandleFunc("POST /cart", cart.Add)
	mux.HandleFunc("POST /cart/update", cart.Update)
	mux.HandleFunc("GET /cart/remove", cart.Remove)
	mux.HandleFunc("POST /cart/coupon", cart.ApplyCoupon)
	mux.HandleFunc("GET /cart/coupon/remove", cart.RemoveCoupon)
	mux.HandleFunc("GET /checkout", checkout.Show)
	mux.HandleFunc("POST /checkout", checkout.PlaceOrder)
	mux.Handle("GET /checkout/order-received/{id}", confirmation)
	mux.Handle("GET /checkout/order-failed/{id}", failure)
	return mux, nil
}

func parseTemplate(name string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"price":   services.FormatPrice,
		"monthly": func(cents int) string { return services.FormatPrice(cents / 3) },
	}).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// widgetAttrs renders the widget style dictionary as data attributes.
func widgetAttrs(config string) (template.HTMLAttr, error) {
	styles, err := models.ParseWidgetConfig(config)
	if err != nil {
		return "", err
	}
	attrs := make([]string, 0, len(styles))
	for _, s := range styles {
		attrs = append(attrs, fmt.Sprintf(`data-%s="%s"`,
			template.HTMLEscapeString(s.Key), template.HTMLEscapeString(s.Value)))
	}
	return template.HTMLAttr(strings.Join(attrs, " ")), nil
}

func render(w http.ResponseWriter, tmpl *template.Template, status int, data any, log logrus.FieldLogger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.WithError(err).Errorf("Error rendering %s", tmpl.Name())
	}
}
