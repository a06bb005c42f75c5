package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequra/e2e-fixtures/internal/fixture"
	"github.com/sequra/e2e-fixtures/internal/models"
)

type mapReader map[string]string

func (m mapReader) Status(_ context.Context, orderNumber string) (string, error) {
	s, ok := m[orderNumber]
	if !ok {
		return "", ErrOrderNotFound
	}
	return s, nil
}

func TestStatusChecker_ExpectOrderHasStatus(t *testing.T) {
	logger, _ := test.NewNullLogger()
	checker := NewStatusChecker(mapReader{
		"100": "wc-processing",
		"101": " On-Hold ",
	}, "wc-", logger)

	tests := []struct {
		name    string
		exp     models.OrderStatusExpectation
		wantErr error
	}{
		{
			name: "prefixed status matches",
			exp:  models.OrderStatusExpectation{OrderNumber: "100", Status: models.OrderStatusProcessing, WaitFor: 1},
		},
		{
			name: "case and spaces ignored",
			exp:  models.OrderStatusExpectation{OrderNumber: "101", Status: models.OrderStatusOnHold, WaitFor: 1},
		},
		{
			name:    "different status",
			exp:     models.OrderStatusExpectation{OrderNumber: "100", Status: models.OrderStatusCompleted, WaitFor: 1},
			wantErr: fixture.ErrAssertion,
		},
		{
			name:    "unknown order",
			exp:     models.OrderStatusExpectation{OrderNumber: "999", Status: models.OrderStatusCompleted, WaitFor: 1},
			wantErr: ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.ExpectOrderHasStatus(tt.exp)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestStatusChecker_CurrentStatus(t *testing.T) {
	checker := NewStatusChecker(mapReader{"7": "completed"}, "", nil)

	status, err := checker.CurrentStatus(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, status)
}
