package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/sequra/e2e-fixtures/internal/backoffice"
	"github.com/sequra/e2e-fixtures/internal/browser"
	"github.com/sequra/e2e-fixtures/internal/checkoutform"
	"github.com/sequra/e2e-fixtures/internal/dataprovider"
	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/poll"
	"github.com/sequra/e2e-fixtures/internal/webhook"
)

const paymentMethodTimeout = 10 * time.Second

// CheckoutPage is the storefront checkout.
type CheckoutPage struct {
	Page
	Form *checkoutform.Form
	// PollInterval is the pause between order status checks. Zero means
	// poll.DefaultInterval.
	PollInterval time.Duration

	surface CheckoutSurface
}

func NewCheckoutPage(f fixture.Fixture, surface CheckoutSurface) *CheckoutPage {
	return &CheckoutPage{
		Page:    NewPage(f, "checkout"),
		Form:    checkoutform.New(f),
		surface: surface,
	}
}

// Goto opens the checkout. Unless force is set nothing happens when the
// checkout is already open.
func (p *CheckoutPage) Goto(force bool) error {
	url, err := p.surface.CheckoutURL()
	if err != nil {
		return err
	}
	return p.gotoURL(url, force)
}

func (p *CheckoutPage) MoreInfoIframe() browser.FrameLocator {
	return p.Fixture.Page.FrameLocator("iframe")
}

func (p *CheckoutPage) MoreInfoCloseButton() browser.Locator {
	return p.MoreInfoIframe().Locator(`button[data-testid="close-popup"]`)
}

// FillForm fills the platform checkout form with the shopper details.
func (p *CheckoutPage) FillForm(s models.Shopper) error {
	return p.surface.FillForm(s)
}

// PaymentMethodOptions identifies a seQura payment method in the checkout.
type PaymentMethodOptions struct {
	Title   string
	Product string
	Checked bool
	// Timeout defaults to 10s.
	Timeout time.Duration
}

// ExpectPaymentMethodToBeVisible asserts the input and title of a payment
// method are shown.
func (p *CheckoutPage) ExpectPaymentMethodToBeVisible(opts PaymentMethodOptions) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = paymentMethodTimeout
	}
	input, err := required(p.surface.PaymentMethodInput(opts.Product, opts.Checked), "payment method input")
	if err != nil {
		return err
	}
	title, err := required(p.surface.PaymentMethodTitle(opts.Title), "payment method title")
	if err != nil {
		return err
	}
	if err := input.ExpectVisible(true, timeout); err != nil {
		return fixture.Assertf(err, "%q payment method input should be visible", opts.Product)
	}
	return fixture.Assertf(title.ExpectVisible(true, timeout), "%q payment method should be visible", opts.Title)
}

// ExpectAnyPaymentMethod asserts at least one seQura payment method is
// offered, or none when available is false.
func (p *CheckoutPage) ExpectAnyPaymentMethod(available bool, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = paymentMethodTimeout
	}
	methods, err := required(p.surface.PaymentMethods(), "payment methods")
	if err != nil {
		return err
	}
	if available {
		return fixture.Assertf(methods.First().ExpectVisible(true, timeout), "seQura payment methods should be available")
	}
	return fixture.Assertf(methods.ExpectCount(0, timeout), "seQura payment methods should not be available")
}

// PlaceOrder selects the payment method of product and places the order.
func (p *CheckoutPage) PlaceOrder(product string) error {
	p.Log.WithField("product", product).Info("Placing order")
	return p.surface.PlaceOrder(product)
}

func (p *CheckoutPage) FillI1CheckoutForm(s models.Shopper) error {
	return p.Form.FillI1(s)
}

func (p *CheckoutPage) FillPp3CheckoutForm(s models.Shopper) error {
	return p.Form.FillPp3(s)
}

func (p *CheckoutPage) FillSp1CheckoutForm(s models.Shopper) error {
	return p.Form.FillSp1(s)
}

func (p *CheckoutPage) FillOtp(iframe browser.FrameLocator, otp []string) error {
	return p.Form.FillOtp(iframe, otp)
}

func (p *CheckoutPage) FillCreditCard(iframe browser.FrameLocator, card models.CreditCard) error {
	return p.Form.FillCreditCard(iframe, card)
}

func (p *CheckoutPage) WaitForOrderSuccess() error {
	return p.surface.WaitForOrderSuccess()
}

func (p *CheckoutPage) WaitForOrderOnHold() error {
	return p.surface.WaitForOrderOnHold()
}

// OrderNumber reads the order number from the confirmation page.
func (p *CheckoutPage) OrderNumber() (string, error) {
	return p.surface.OrderNumber()
}

// ExpectOrderHasStatus checks the order status once.
func (p *CheckoutPage) ExpectOrderHasStatus(exp models.OrderStatusExpectation) error {
	return p.surface.ExpectOrderHasStatus(exp)
}

// WaitForOrderStatus checks the order status up to exp.WaitFor times,
// pausing PollInterval and reloading the page between failed checks. It
// returns on the first passing check, or the last check error.
func (p *CheckoutPage) WaitForOrderStatus(exp models.OrderStatusExpectation) error {
	if err := exp.Validate(); err != nil {
		return err
	}
	log := p.Log.WithField("order", exp.OrderNumber).WithField("status", exp.Status)
	log.Infof("Waiting for order status for %d attempts", exp.WaitFor)

	checks := 0
	err := poll.Attempts(poll.Options{
		Attempts: exp.WaitFor,
		Interval: p.PollInterval,
		Sleeper:  p.Fixture.Page,
		Between:  p.Fixture.Page.Reload,
	}, func(attempt int) error {
		checks = attempt + 1
		return p.surface.ExpectOrderHasStatus(exp)
	})
	if err != nil {
		log.WithError(err).Warnf("Order status not reached after %d checks", checks)
		return err
	}
	log.Infof("Order status reached after %d checks", checks)
	return nil
}

// ExpectOrderChangeTo checks the order moves to exp.Status, looking it up
// in the back office.
func (p *CheckoutPage) ExpectOrderChangeTo(bo backoffice.BackOffice, exp models.OrderStatusExpectation) error {
	return p.surface.ExpectOrderChangeTo(bo, exp)
}

// OpenAndCloseEducationalPopup opens the "+ info" popup of a payment method
// and closes it.
func (p *CheckoutPage) OpenAndCloseEducationalPopup(product, campaign string) error {
	link, err := required(p.surface.MoreInfoLink(product, campaign), "more info link")
	if err != nil {
		return err
	}
	if err := link.Click(); err != nil {
		return err
	}
	return p.MoreInfoCloseButton().Click()
}

// ExpectOrderHasTheCorrectMerchantID asks the store, through the
// verify_order_has_merchant_id webhook, whether the last order was sent
// with the merchant reference configured for country.
func (p *CheckoutPage) ExpectOrderHasTheCorrectMerchantID(ctx context.Context, country string, helper *webhook.Helper, data *dataprovider.Provider, isOrderForService bool) error {
	username := dataprovider.DefaultUsername
	if isOrderForService {
		username = dataprovider.ServiceUsername
	}
	merchantID, err := data.MerchantRef(username, country)
	if err != nil {
		return err
	}
	orderNumber, err := p.OrderNumber()
	if err != nil {
		return err
	}
	err = helper.Execute(ctx, models.WebhookCall{
		Webhook: webhook.VerifyOrderHasMerchantID,
		Args: []models.WebhookArg{
			models.Arg("order_id", orderNumber),
			models.Arg("merchant_id", merchantID),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: order %s should have merchant id %s: %w", fixture.ErrAssertion, orderNumber, merchantID, err)
	}
	return nil
}
