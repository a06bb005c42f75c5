package models

import (
	"errors"
	"testing"
)

func TestOrderStatusExpectation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		exp     OrderStatusExpectation
		wantErr error
	}{
		{
			name:    "valid expectation",
			exp:     OrderStatusExpectation{OrderNumber: "1234", Status: OrderStatusProcessing, WaitFor: 10},
			wantErr: nil,
		},
		{
			name:    "empty order number",
			exp:     OrderStatusExpectation{OrderNumber: "  ", Status: OrderStatusProcessing, WaitFor: 10},
			wantErr: ErrEmptyOrderNumber,
		},
		{
			name:    "empty status",
			exp:     OrderStatusExpectation{OrderNumber: "1234", WaitFor: 10},
			wantErr: ErrEmptyOrderStatus,
		},
		{
			name:    "zero budget",
			exp:     OrderStatusExpectation{OrderNumber: "1234", Status: OrderStatusOnHold},
			wantErr: ErrInvalidWaitFor,
		},
		{
			name:    "negative budget",
			exp:     OrderStatusExpectation{OrderNumber: "1234", Status: OrderStatusOnHold, WaitFor: -3},
			wantErr: ErrInvalidWaitFor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.exp.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOrderStatus_Matches(t *testing.T) {
	tests := []struct {
		status OrderStatus
		actual string
		want   bool
	}{
		{OrderStatusProcessing, "processing", true},
		{OrderStatusProcessing, " Processing\n", true},
		{OrderStatusOnHold, "on-hold", true},
		{OrderStatusOnHold, "on hold", false},
		{OrderStatusCancelled, "", false},
	}

	for _, tt := range tests {
		if got := tt.status.Matches(tt.actual); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.status, tt.actual, got, tt.want)
		}
	}
}
