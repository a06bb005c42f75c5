package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequra/e2e-fixtures/internal/dataprovider"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

func TestOrderService_StatusProgression(t *testing.T) {
	orders := NewOrderService(100, 2)

	order, err := orders.PlaceOrder("pp3", "ES", "dummy_automated_tests", 9000)
	require.NoError(t, err)
	assert.Equal(t, int64(100), order.ID)
	assert.Equal(t, models.OrderStatusOnHold, order.Status)

	for i := 0; i < 2; i++ {
		o, err := orders.Observe(order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusOnHold, o.Status, "view %d", i+1)
	}
	o, err := orders.Observe(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, o.Status)

	o, err = orders.Order(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, o.Status)
}

func TestOrderService_ForceFailure(t *testing.T) {
	orders := NewOrderService(1, 0)
	orders.ForceFailure()

	failed, err := orders.PlaceOrder("i1", "ES", "ref", 100)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, failed.Status)

	next, err := orders.PlaceOrder("i1", "ES", "ref", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
	assert.Equal(t, models.OrderStatusOnHold, next.Status)

	o, err := orders.Observe(failed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, o.Status)
}

func TestOrderService_Errors(t *testing.T) {
	orders := NewOrderService(1, 0)

	_, err := orders.PlaceOrder("", "ES", "ref", 100)
	assert.ErrorIs(t, err, ErrInvalidOrder)
	_, err = orders.PlaceOrder("i1", "ES", "ref", 0)
	assert.ErrorIs(t, err, ErrInvalidOrder)
	_, err = orders.Observe(42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.ErrorIs(t, orders.SetMerchantRef(42, "x"), ErrOrderNotFound)

	order, err := orders.PlaceOrder("i1", "ES", "ref", 100)
	require.NoError(t, err)
	require.NoError(t, orders.SetMerchantRef(order.ID, "other"))
	o, _ := orders.Order(order.ID)
	assert.Equal(t, "other", o.MerchantRef)

	orders.Reset()
	_, err = orders.Order(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCartService(t *testing.T) {
	cart := NewCartService(DefaultCatalog())

	require.NoError(t, cart.Add("sunglasses", 1))
	require.NoError(t, cart.Add("hoodie", 2))
	require.NoError(t, cart.Add("sunglasses", 1))
	assert.Error(t, cart.Add("unknown", 1))
	assert.Error(t, cart.Add("hoodie", 0))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 18000+9000, cart.Total())

	cart.ApplyCoupon("fixed_10")
	assert.Equal(t, 24300, cart.Total())

	require.NoError(t, cart.SetQuantity(1))
	require.NoError(t, cart.Remove(1))
	assert.Error(t, cart.Remove(5))
	assert.Len(t, cart.Lines(), 1)

	cart.Clear()
	assert.Empty(t, cart.Lines())
	assert.Empty(t, cart.Coupon())
	assert.Error(t, cart.SetQuantity(1))
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	accessories := c.InCategory("accessories")
	require.Len(t, accessories, 2)
	assert.Equal(t, "beanie", accessories[0].Slug)
	assert.Len(t, c.InCategory(""), 3)
	assert.Empty(t, c.InCategory("shoes"))
	assert.Equal(t, "90,00 €", FormatPrice(9000))
	assert.Equal(t, "0,05 €", FormatPrice(5))
}

func TestPluginService(t *testing.T) {
	plugin := NewPluginService(dataprovider.New())
	assert.False(t, plugin.Configured())
	assert.Empty(t, plugin.PaymentMethods())

	require.NoError(t, plugin.Configure(dataprovider.DefaultUsername, true))
	assert.True(t, plugin.Configured())
	assert.True(t, plugin.Widgets())
	assert.Equal(t, []string{"ES", "FR", "IT", "PT"}, plugin.Countries())
	ref, ok := plugin.MerchantRef("FR")
	assert.True(t, ok)
	assert.Equal(t, "dummy_automated_tests_fr", ref)
	assert.Len(t, plugin.PaymentMethods(), 3)
	assert.NotEmpty(t, plugin.Logs())

	require.NoError(t, plugin.Configure(dataprovider.ServiceUsername, false))
	assert.Equal(t, []string{"ES"}, plugin.Countries())
	assert.Equal(t, "pp5", plugin.PaymentMethods()[2].Product)

	err := plugin.Configure("nobody", false)
	assert.ErrorIs(t, err, fixture.ErrUnknownIdentifier)

	plugin.ClearLogs()
	assert.Empty(t, plugin.Logs())
	plugin.Clear()
	assert.False(t, plugin.Configured())
	_, ok = plugin.MerchantRef("ES")
	assert.False(t, ok)
}
