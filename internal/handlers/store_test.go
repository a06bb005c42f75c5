package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequra/e2e-fixtures/internal/dataprovider"
	"github.com/sequra/e2e-fixtures/internal/models"
)

func newTestStore(t *testing.T) (*Store, http.Handler) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := NewStore(dataprovider.New(), StoreOptions{ProcessAfter: 1}, logger)
	router, err := NewRouter(s)
	require.NoError(t, err)
	return s, router
}

func do(h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func configure(t *testing.T, h http.Handler, query string) {
	t.Helper()
	w := do(h, http.MethodPost, "/?sq-webhook="+query, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestProductHandler_ServeHTTP(t *testing.T) {
	_, router := newTestStore(t)

	w := do(router, http.MethodGet, "/product/sunglasses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Sunglasses")
	assert.Contains(t, body, `<span class="amount">90,00 €</span>`)
	assert.Contains(t, body, "single_add_to_cart_button")
	assert.NotContains(t, body, "sequra-promotion-widget")

	configure(t, router, "dummy_config&widgets=1")
	body = do(router, http.MethodGet, "/product/sunglasses", nil).Body.String()
	assert.Contains(t, body, "sequra-promotion-widget--pp3")
	assert.Contains(t, body, `data-alignment="center"`)
	assert.Contains(t, body, `data-border-radius=""`)
	assert.Contains(t, body, `data-amount="9000"`)
	assert.Contains(t, body, `data-loaded="1"`)
	assert.Contains(t, body, "Sequra__PromotionalWidget")

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/product/nothing", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(router, http.MethodDelete, "/product/sunglasses", nil).Code)
}

func TestCategoryHandler_ServeHTTP(t *testing.T) {
	_, router := newTestStore(t)

	w := do(router, http.MethodGet, "/product-category/accessories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Beanie")
	assert.Contains(t, body, "Sunglasses")
	assert.NotContains(t, body, "Hoodie")
	assert.NotContains(t, body, "sequra-promotion-miniwidget")

	configure(t, router, "dummy_config&widgets=1")
	body = do(router, http.MethodGet, "/product-category/accessories", nil).Body.String()
	assert.Contains(t, body, `sequra-educational-popup sequra-promotion-miniwidget" data-product="pp3"`)
	assert.Contains(t, body, "Desde 30,00 €/mes")

	assert.Contains(t, do(router, http.MethodGet, "/", nil).Body.String(), "Hoodie")
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/product-category/shoes", nil).Code)
}

func TestCartHandler(t *testing.T) {
	s, router := newTestStore(t)

	w := do(router, http.MethodPost, "/cart", url.Values{"product": {"sunglasses"}, "quantity": {"2"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/product/sunglasses?added=1", w.Header().Get("Location"))
	assert.Contains(t, do(router, http.MethodGet, "/product/sunglasses?added=1", nil).Body.String(), "woocommerce-message")

	body := do(router, http.MethodGet, "/cart", nil).Body.String()
	assert.Contains(t, body, `class="remove-item"`)
	assert.Contains(t, body, "180,00 €")
	assert.NotContains(t, body, "cart-empty")

	do(router, http.MethodPost, "/cart/coupon", url.Values{"coupon_code": {"fixed_10"}})
	body = do(router, http.MethodGet, "/cart", nil).Body.String()
	assert.Contains(t, body, "remove-coupon")
	assert.Contains(t, body, "162,00 €")

	do(router, http.MethodGet, "/cart/coupon/remove", nil)
	assert.Empty(t, s.Cart.Coupon())

	do(router, http.MethodPost, "/cart/update", url.Values{"quantity": {"1"}})
	assert.Equal(t, 9000, s.Cart.Total())

	w = do(router, http.MethodGet, "/cart/remove?line=0", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, do(router, http.MethodGet, "/cart", nil).Body.String(), `class="cart-empty"`)
}

func TestCartHandler_BadRequests(t *testing.T) {
	_, router := newTestStore(t)

	tests := []struct {
		name   string
		method string
		target string
		form   url.Values
	}{
		{name: "unknown product", method: http.MethodPost, target: "/cart", form: url.Values{"product": {"nothing"}}},
		{name: "invalid quantity", method: http.MethodPost, target: "/cart", form: url.Values{"product": {"hoodie"}, "quantity": {"two"}}},
		{name: "update empty cart", method: http.MethodPost, target: "/cart/update", form: url.Values{"quantity": {"2"}}},
		{name: "remove missing line", method: http.MethodGet, target: "/cart/remove?line=3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.target, tt.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCheckoutHandler_Show(t *testing.T) {
	_, router := newTestStore(t)

	body := do(router, http.MethodGet, "/checkout", nil).Body.String()
	assert.NotContains(t, body, "payment_method_sequra")
	assert.Contains(t, body, `<option value="ES">`)

	configure(t, router, "dummy_config")
	body = do(router, http.MethodGet, "/checkout", nil).Body.String()
	assert.Contains(t, body, `data-product="i1"`)
	assert.Contains(t, body, "Paga Después")
	assert.Contains(t, body, `data-product="sp1"`)
	assert.Contains(t, body, `<option value="FR">`)
	assert.Contains(t, body, `data-testid=`)

	configure(t, router, "dummy_services_config")
	body = do(router, http.MethodGet, "/checkout", nil).Body.String()
	assert.Contains(t, body, `data-product="pp5" data-campaign="temporary"`)
	assert.NotContains(t, body, `<option value="FR">`)
}

func TestCheckoutHandler_PlaceOrder(t *testing.T) {
	s, router := newTestStore(t)
	configure(t, router, "dummy_config")

	w := do(router, http.MethodPost, "/checkout", url.Values{"product": {"pp3"}, "country": {"FR"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Tu carrito está vacío.")

	do(router, http.MethodPost, "/cart", url.Values{"product": {"hoodie"}})
	w = do(router, http.MethodPost, "/checkout", url.Values{"country": {"FR"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/checkout", url.Values{"product": {"pp3"}, "country": {"DE"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no está disponible en DE")

	w = do(router, http.MethodPost, "/checkout", url.Values{"product": {"pp3"}, "country": {"FR"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/checkout/order-received/1000", w.Header().Get("Location"))
	assert.Empty(t, s.Cart.Lines())

	order, err := s.Orders.Order(1000)
	require.NoError(t, err)
	assert.Equal(t, "dummy_automated_tests_fr", order.MerchantRef)
	assert.Equal(t, 4500, order.Amount)

	body := do(router, http.MethodGet, "/checkout/order-received/1000", nil).Body.String()
	assert.Contains(t, body, "<strong>1000</strong>")
	assert.Contains(t, body, `<mark class="order-status">on-hold</mark>`)
	body = do(router, http.MethodGet, "/checkout/order-received/1000", nil).Body.String()
	assert.Contains(t, body, `<mark class="order-status">processing</mark>`)
}

func TestCheckoutHandler_PayOnDelivery(t *testing.T) {
	s, router := newTestStore(t)
	do(router, http.MethodPost, "/cart", url.Values{"product": {"beanie"}})

	w := do(router, http.MethodPost, "/checkout", url.Values{"product": {"cod"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	order, err := s.Orders.Order(1000)
	require.NoError(t, err)
	assert.Empty(t, order.MerchantRef)
	assert.Equal(t, "ES", order.Country)
}

func TestFailureHandler(t *testing.T) {
	s, router := newTestStore(t)
	configure(t, router, "dummy_config")
	configure(t, router, "force_order_failure")
	do(router, http.MethodPost, "/cart", url.Values{"product": {"beanie"}})

	w := do(router, http.MethodPost, "/checkout", url.Values{"product": {"i1"}, "country": {"ES"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/checkout/order-failed/1000", w.Header().Get("Location"))

	order, err := s.Orders.Order(1000)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, order.Status)

	w = do(router, http.MethodGet, "/checkout/order-failed/1000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pedido fallido")

	w = do(router, http.MethodGet, "/checkout/order-received/1000", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/checkout/order-failed/9", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/checkout/order-received/9", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/checkout/order-received/abc", nil).Code)
}

func TestCheckoutHandler_Markup(t *testing.T) {
	_, router := newTestStore(t)
	configure(t, router, "dummy_config")

	doc := parse(t, do(router, http.MethodGet, "/checkout", nil))
	var products []string
	doc.Find("li.payment_method_sequra input[name=product]").Each(func(_ int, sel *goquery.Selection) {
		products = append(products, sel.AttrOr("data-product", ""))
	})
	assert.Equal(t, []string{"i1", "pp3", "sp1"}, products)
	assert.Equal(t, 1, doc.Find(`input[name=product][value=cod]`).Length())
	assert.Equal(t, "ES", doc.Find("#billing_country option").First().AttrOr("value", ""))
	assert.Equal(t, 1, doc.Find(`#sq-popup[hidden]`).Length())
	assert.Equal(t, 1, doc.Find(`a.sequra-educational-popup[data-product=pp3]`).Length())

	do(router, http.MethodPost, "/cart", url.Values{"product": {"sunglasses"}})
	do(router, http.MethodPost, "/checkout", url.Values{"product": {"sp1"}, "country": {"IT"}})
	doc = parse(t, do(router, http.MethodGet, "/checkout/order-received/1000", nil))
	assert.Equal(t, "1000", doc.Find(".order_details strong").First().Text())
	assert.Equal(t, "on-hold", doc.Find("mark.order-status").Text())
}

func TestWidgetAttrs(t *testing.T) {
	attrs, err := widgetAttrs(`{"size":"M","class":"","font-color":"#1C1C1C"}`)
	require.NoError(t, err)
	assert.Equal(t, `data-class="" data-font-color="#1C1C1C" data-size="M"`, string(attrs))

	_, err = widgetAttrs("{")
	assert.Error(t, err)
}
