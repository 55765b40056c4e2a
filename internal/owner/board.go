// Package owner is the dashboard side of the client: the live order board,
// status advancing, and bill printing.
package owner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/itzabhishekgour/smartdine/internal/api"
	"github.com/itzabhishekgour/smartdine/internal/order"
)

// Backend is the slice of the API client the order board needs.
// Satisfied by *api.Client; narrow interface for testability.
type Backend interface {
	AllOrders(ctx context.Context) ([]api.OwnerOrder, error)
	AdvanceOrderStatus(ctx context.Context, orderID string, newStatus order.Status) error
	OrderDetails(ctx context.Context, orderID string) (*api.OrderDetails, error)
	OwnerDetails(ctx context.Context) (*api.OwnerDetails, error)
}

// Board is the owner order board. It holds no state between fetches; the
// list always reflects the last successful fetch.
type Board struct {
	backend Backend
}

func NewBoard(backend Backend) *Board {
	return &Board{backend: backend}
}

// Fetch returns all orders, newest first.
func (b *Board) Fetch(ctx context.Context) ([]api.OwnerOrder, error) {
	orders, err := b.backend.AllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Advance moves an order to the next status in sequence. The next state is
// never computed beyond reading the fixed lifecycle; at SERVED there is
// nothing to offer and Advance refuses.
func (b *Board) Advance(ctx context.Context, o api.OwnerOrder) (order.Status, error) {
	next, ok := order.Next(o.Status)
	if !ok {
		return "", fmt.Errorf("order %s at %s cannot advance", o.OrderID, o.Status)
	}
	if err := b.backend.AdvanceOrderStatus(ctx, o.OrderID, next); err != nil {
		return "", fmt.Errorf("advance order %s: %w", o.OrderID, err)
	}
	return next, nil
}

// RangeFilter narrows the board by creation date.
type RangeFilter string

const (
	RangeAll       RangeFilter = "all"
	RangeToday     RangeFilter = "today"
	RangeYesterday RangeFilter = "yesterday"
	RangeMonth     RangeFilter = "month"
)

// SearchField selects which column the search text matches.
type SearchField string

const (
	SearchOrderID  SearchField = "orderId"
	SearchTable    SearchField = "tableNumber"
	SearchCustomer SearchField = "customerName"
	SearchInvoice  SearchField = "invoiceNumber"
)

// Filter is the board's filter panel.
type Filter struct {
	Range RangeFilter
	// Date, when set, overrides Range with an exact day.
	Date time.Time

	SearchBy SearchField
	Search   string
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Apply filters orders in place of the dashboard's filter panel. now
// anchors the relative ranges.
func Apply(orders []api.OwnerOrder, f Filter, now time.Time) []api.OwnerOrder {
	var out []api.OwnerOrder
	keyword := strings.ToLower(f.Search)
	for _, o := range orders {
		switch f.Range {
		case RangeToday:
			if !sameDay(o.CreatedAt, now) {
				continue
			}
		case RangeYesterday:
			if !sameDay(o.CreatedAt, now.AddDate(0, 0, -1)) {
				continue
			}
		case RangeMonth:
			if o.CreatedAt.Month() != now.Month() || o.CreatedAt.Year() != now.Year() {
				continue
			}
		default:
			if !f.Date.IsZero() && !sameDay(o.CreatedAt, f.Date) {
				continue
			}
		}

		if keyword != "" {
			var hay string
			switch f.SearchBy {
			case SearchTable:
				hay = fmt.Sprintf("%d", o.TableNumber)
			case SearchCustomer:
				hay = strings.ToLower(o.CustomerName)
			case SearchInvoice:
				hay = strings.ToLower(o.InvoiceNumber)
			default:
				hay = strings.ToLower(o.OrderID)
			}
			if !strings.Contains(hay, keyword) {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}
