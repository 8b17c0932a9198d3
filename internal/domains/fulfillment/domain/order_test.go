package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSalesOrder_Validates(t *testing.T) {
	order, err := NewSalesOrder("SO-1001", 7, []OrderLine{{ProductID: 1, Ordered: 3}})
	require.NoError(t, err)
	require.Equal(t, StatusDraft, order.Status)
	require.Equal(t, "SO-1001", order.Number)

	_, err = NewSalesOrder("  ", 7, []OrderLine{{ProductID: 1, Ordered: 3}})
	require.ErrorIs(t, err, ErrEmptyOrderNumber)

	_, err = NewSalesOrder("SO-1002", 7, nil)
	require.ErrorIs(t, err, ErrEmptyLines)

	_, err = NewSalesOrder("SO-1003", 7, []OrderLine{{ProductID: 1, Ordered: 0}})
	require.ErrorIs(t, err, ErrInvalidOrdered)
}

func TestValidate_RejectsShippedBeyondOrdered(t *testing.T) {
	order := &SalesOrder{
		Number: "SO-1004",
		Status: StatusConfirmed,
		Lines:  []OrderLine{{ProductID: 1, Ordered: 2, Shipped: 3}},
	}
	require.ErrorIs(t, order.Validate(), ErrOverShipment)
}

func TestConfirm_OnlyFromDraft(t *testing.T) {
	order, err := NewSalesOrder("SO-1005", 7, []OrderLine{{ProductID: 1, Ordered: 3}})
	require.NoError(t, err)

	at := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, order.Confirm(at))
	require.Equal(t, StatusConfirmed, order.Status)
	require.NotNil(t, order.ConfirmedAt)
	require.True(t, order.ConfirmedAt.Equal(at))

	require.ErrorIs(t, order.Confirm(at), ErrNotConfirmable)
}

func TestShippable(t *testing.T) {
	order := &SalesOrder{Status: StatusConfirmed}
	require.True(t, order.Shippable())
	order.Status = StatusPartiallyShipped
	require.True(t, order.Shippable())
	for _, status := range []Status{StatusDraft, StatusShipped, StatusDelivered, StatusCancelled, StatusClosed} {
		order.Status = status
		require.False(t, order.Shippable(), "status %s", status)
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		lines   []OrderLine
		want    Status
	}{
		{
			name:    "nothing shipped stays confirmed",
			current: StatusConfirmed,
			lines:   []OrderLine{{Ordered: 3}, {Ordered: 2}},
			want:    StatusConfirmed,
		},
		{
			name:    "partial shipment",
			current: StatusConfirmed,
			lines:   []OrderLine{{Ordered: 3, Shipped: 1}, {Ordered: 2}},
			want:    StatusPartiallyShipped,
		},
		{
			name:    "all lines full",
			current: StatusPartiallyShipped,
			lines:   []OrderLine{{Ordered: 3, Shipped: 3}, {Ordered: 2, Shipped: 2}},
			want:    StatusShipped,
		},
		{
			name:    "recompute on unchanged lines is stable",
			current: StatusPartiallyShipped,
			lines:   []OrderLine{{Ordered: 3, Shipped: 1}, {Ordered: 2}},
			want:    StatusPartiallyShipped,
		},
		{
			name:    "shipped stays shipped",
			current: StatusShipped,
			lines:   []OrderLine{{Ordered: 3, Shipped: 3}},
			want:    StatusShipped,
		},
		{
			name:    "delivered is never overwritten",
			current: StatusDelivered,
			lines:   []OrderLine{{Ordered: 3, Shipped: 1}},
			want:    StatusDelivered,
		},
		{
			name:    "cancelled is never overwritten",
			current: StatusCancelled,
			lines:   []OrderLine{{Ordered: 3, Shipped: 3}},
			want:    StatusCancelled,
		},
		{
			name:    "closed is never overwritten",
			current: StatusClosed,
			lines:   []OrderLine{{Ordered: 3, Shipped: 3}},
			want:    StatusClosed,
		},
		{
			name:    "draft is left alone",
			current: StatusDraft,
			lines:   []OrderLine{{Ordered: 3, Shipped: 1}},
			want:    StatusDraft,
		},
		{
			name:    "no lines returns current",
			current: StatusConfirmed,
			lines:   nil,
			want:    StatusConfirmed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NextStatus(tt.current, tt.lines))
		})
	}
}

func TestNextStatus_Idempotent(t *testing.T) {
	lines := []OrderLine{{Ordered: 5, Shipped: 2}, {Ordered: 1, Shipped: 1}}
	first := NextStatus(StatusConfirmed, lines)
	require.Equal(t, first, NextStatus(first, lines))
}

func TestLineByID(t *testing.T) {
	order := &SalesOrder{Lines: []OrderLine{{ID: 11, ProductID: 1, Ordered: 3}}}
	line, ok := order.LineByID(11)
	require.True(t, ok)
	require.Equal(t, int64(1), line.ProductID)

	_, ok = order.LineByID(99)
	require.False(t, ok)
}

func TestRemaining(t *testing.T) {
	require.Equal(t, int64(2), OrderLine{Ordered: 5, Shipped: 3}.Remaining())
	require.Equal(t, int64(0), OrderLine{Ordered: 5, Shipped: 5}.Remaining())
}
