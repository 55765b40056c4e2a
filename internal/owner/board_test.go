package owner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itzabhishekgour/smartdine/internal/api"
	"github.com/itzabhishekgour/smartdine/internal/order"
)

type mockBackend struct {
	allOrdersFn    func(ctx context.Context) ([]api.OwnerOrder, error)
	advanceFn      func(ctx context.Context, orderID string, newStatus order.Status) error
	orderDetailsFn func(ctx context.Context, orderID string) (*api.OrderDetails, error)
	ownerDetailsFn func(ctx context.Context) (*api.OwnerDetails, error)
}

func (m *mockBackend) AllOrders(ctx context.Context) ([]api.OwnerOrder, error) {
	return m.allOrdersFn(ctx)
}

func (m *mockBackend) AdvanceOrderStatus(ctx context.Context, orderID string, newStatus order.Status) error {
	return m.advanceFn(ctx, orderID, newStatus)
}

func (m *mockBackend) OrderDetails(ctx context.Context, orderID string) (*api.OrderDetails, error) {
	return m.orderDetailsFn(ctx, orderID)
}

func (m *mockBackend) OwnerDetails(ctx context.Context) (*api.OwnerDetails, error) {
	return m.ownerDetailsFn(ctx)
}

func TestFetchSortsNewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	backend := &mockBackend{
		allOrdersFn: func(ctx context.Context) ([]api.OwnerOrder, error) {
			return []api.OwnerOrder{
				{OrderID: "old", CreatedAt: base.Add(-time.Hour)},
				{OrderID: "new", CreatedAt: base},
				{OrderID: "mid", CreatedAt: base.Add(-30 * time.Minute)},
			}, nil
		},
	}
	got, err := NewBoard(backend).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if got[i].OrderID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].OrderID, id)
		}
	}
}

func TestAdvanceSendsNextStatus(t *testing.T) {
	var sentID string
	var sentStatus order.Status
	backend := &mockBackend{
		advanceFn: func(ctx context.Context, orderID string, newStatus order.Status) error {
			sentID = orderID
			sentStatus = newStatus
			return nil
		},
	}
	next, err := NewBoard(backend).Advance(context.Background(), api.OwnerOrder{OrderID: "o1", Status: order.StatusCooking})
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if next != order.StatusReady {
		t.Errorf("next = %s, want %s", next, order.StatusReady)
	}
	if sentID != "o1" || sentStatus != order.StatusReady {
		t.Errorf("sent %s/%s, want o1/%s", sentID, sentStatus, order.StatusReady)
	}
}

func TestAdvanceRefusesTerminal(t *testing.T) {
	backend := &mockBackend{
		advanceFn: func(ctx context.Context, orderID string, newStatus order.Status) error {
			t.Fatal("terminal order must not reach the backend")
			return nil
		},
	}
	_, err := NewBoard(backend).Advance(context.Background(), api.OwnerOrder{OrderID: "o1", Status: order.StatusServed})
	if err == nil {
		t.Fatal("expected error advancing a SERVED order")
	}
}

func TestAdvancePropagatesBackendError(t *testing.T) {
	backend := &mockBackend{
		advanceFn: func(ctx context.Context, orderID string, newStatus order.Status) error {
			return errors.New("boom")
		},
	}
	_, err := NewBoard(backend).Advance(context.Background(), api.OwnerOrder{OrderID: "o1", Status: order.StatusPlaced})
	if err == nil {
		t.Fatal("expected backend error to propagate")
	}
}

func TestApplyRangeFilters(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	orders := []api.OwnerOrder{
		{OrderID: "today", CreatedAt: now.Add(-2 * time.Hour)},
		{OrderID: "yesterday", CreatedAt: now.AddDate(0, 0, -1)},
		{OrderID: "lastweek", CreatedAt: now.AddDate(0, 0, -7)},
		{OrderID: "lastmonth", CreatedAt: now.AddDate(0, -1, 0)},
	}

	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{Range: RangeAll}, []string{"today", "yesterday", "lastweek", "lastmonth"}},
		{"today", Filter{Range: RangeToday}, []string{"today"}},
		{"yesterday", Filter{Range: RangeYesterday}, []string{"yesterday"}},
		{"month", Filter{Range: RangeMonth}, []string{"today", "yesterday", "lastweek"}},
		{"specific date", Filter{Date: now.AddDate(0, 0, -7)}, []string{"lastweek"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(orders, tc.filter, now)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d orders, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].OrderID != id {
					t.Errorf("position %d = %s, want %s", i, got[i].OrderID, id)
				}
			}
		})
	}
}

func TestApplySearchFields(t *testing.T) {
	now := time.Now()
	orders := []api.OwnerOrder{
		{OrderID: "ORD-100", TableNumber: 4, CustomerName: "Asha", InvoiceNumber: "INV-2025-001", CreatedAt: now},
		{OrderID: "ORD-200", TableNumber: 12, CustomerName: "Ravi", InvoiceNumber: "INV-2025-002", CreatedAt: now},
	}

	cases := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"order id", Filter{SearchBy: SearchOrderID, Search: "100"}, "ORD-100"},
		{"table number", Filter{SearchBy: SearchTable, Search: "12"}, "ORD-200"},
		{"customer case-insensitive", Filter{SearchBy: SearchCustomer, Search: "ravi"}, "ORD-200"},
		{"invoice", Filter{SearchBy: SearchInvoice, Search: "001"}, "ORD-100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(orders, tc.filter, now)
			if len(got) != 1 || got[0].OrderID != tc.want {
				t.Fatalf("got %v, want single order %s", got, tc.want)
			}
		})
	}
}

func TestApplyNoMatch(t *testing.T) {
	now := time.Now()
	orders := []api.OwnerOrder{{OrderID: "ORD-1", CreatedAt: now}}
	got := Apply(orders, Filter{SearchBy: SearchOrderID, Search: "nope"}, now)
	if len(got) != 0 {
		t.Fatalf("got %d orders, want 0", len(got))
	}
}
