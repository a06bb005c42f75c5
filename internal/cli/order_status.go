package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sequra/e2e-fixtures/internal/models"
	"github.com/sequra/e2e-fixtures/internal/poll"
	"github.com/sequra/e2e-fixtures/internal/repository"
)

// OrderStatusOptions selects the order RunOrderStatus looks at.
type OrderStatusOptions struct {
	OrderNumber string
	// Status to wait for. When empty the current status is printed.
	Status  string
	WaitFor int
	// Interval between checks. Zero means poll.DefaultInterval.
	Interval time.Duration
	// Prefix is trimmed from stored statuses, e.g. "wc-".
	Prefix  string
	Sleeper poll.Sleeper
}

// RunOrderStatus prints an order status read from the store database, or
// waits until the order reaches opts.Status.
func RunOrderStatus(ctx context.Context, reader repository.StatusReader, opts OrderStatusOptions, out io.Writer, log logrus.FieldLogger) error {
	checker := repository.NewStatusChecker(reader, opts.Prefix, log)

	if opts.Status == "" {
		if opts.OrderNumber == "" {
			return models.ErrEmptyOrderNumber
		}
		status, err := checker.CurrentStatus(ctx, opts.OrderNumber)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, status)
		return err
	}

	exp := models.OrderStatusExpectation{
		OrderNumber: opts.OrderNumber,
		Status:      models.OrderStatus(opts.Status),
		WaitFor:     opts.WaitFor,
	}
	if err := exp.Validate(); err != nil {
		return err
	}
	err := poll.Attempts(poll.Options{
		Attempts: exp.WaitFor,
		Interval: opts.Interval,
		Sleeper:  opts.Sleeper,
		Between:  ctx.Err,
	}, func(int) error {
		return checker.ExpectOrderHasStatus(exp)
	})
	if err != nil {
		return err
	}
	log.WithField("order", exp.OrderNumber).Infof("Order reached status %s", exp.Status)
	return nil
}

// RunInstall downloads the Playwright browsers.
func RunInstall(install func(browsers ...string) error, browsers []string, log logrus.FieldLogger) error {
	log.WithField("browsers", browsers).Info("Installing browsers")
	if err := install(browsers...); err != nil {
		return err
	}
	log.Info("Browsers installed")
	return nil
}
