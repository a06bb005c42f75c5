package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

const queryTimeout = 5 * time.Second

// StatusReader returns the stored status of an order.
type StatusReader interface {
	Status(ctx context.Context, orderNumber string) (string, error)
}

// StatusChecker checks order statuses against the database. Its
// ExpectOrderHasStatus has the shape checkout surfaces need, so a platform
// whose order table is reachable can delegate to it.
type StatusChecker struct {
	reader StatusReader
	// prefix is stripped from stored values, e.g. "wc-" on WooCommerce
	// posts.
	prefix string
	log    logrus.FieldLogger
}

func NewStatusChecker(reader StatusReader, prefix string, log logrus.FieldLogger) *StatusChecker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StatusChecker{reader: reader, prefix: prefix, log: log.WithField("fixture", "order-status")}
}

// CurrentStatus reads the status, without the prefix.
func (c *StatusChecker) CurrentStatus(ctx context.Context, orderNumber string) (models.OrderStatus, error) {
	raw, err := c.reader.Status(ctx, orderNumber)
	if err != nil {
		return "", err
	}
	return models.OrderStatus(strings.TrimPrefix(strings.TrimSpace(raw), c.prefix)), nil
}

// ExpectOrderHasStatus checks the stored status once.
func (c *StatusChecker) ExpectOrderHasStatus(exp models.OrderStatusExpectation) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	status, err := c.CurrentStatus(ctx, exp.OrderNumber)
	if err != nil {
		return err
	}
	c.log.WithField("order", exp.OrderNumber).WithField("status", status).Debug("Read order status")
	if !exp.Status.Matches(string(status)) {
		return fmt.Errorf("%w: order %s has status %q, want %q", fixture.ErrAssertion, exp.OrderNumber, status, exp.Status)
	}
	return nil
}
