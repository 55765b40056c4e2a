package owner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/itzabhishekgour/smartdine/internal/api"
)

func sampleDetails() *api.OrderDetails {
	return &api.OrderDetails{
		Summary: api.OwnerOrder{
			OrderID:       "ORD-42",
			TableNumber:   7,
			CustomerName:  "Asha",
			InvoiceNumber: "INV-2025-042",
		},
		Items: []api.OrderLine{
			{Name: "Paneer Tikka", Quantity: 2, Price: decimal.NewFromInt(150)},
			{Name: "Lassi", Quantity: 1, Price: decimal.NewFromInt(80)},
		},
	}
}

func TestBuildBillMath(t *testing.T) {
	bill := BuildBill(sampleDetails(), &api.OwnerDetails{
		RestaurantName: "Spice Route",
		Address:        "12 MG Road",
		GSTIN:          "29ABCDE1234F1Z5",
	})

	if len(bill.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(bill.Lines))
	}
	// 2 x 150 = 300, tax 54; 1 x 80 = 80, tax 14.40.
	first := bill.Lines[0]
	if first.Total.StringFixed(2) != "300.00" || first.Tax.StringFixed(2) != "54.00" || first.Amount.StringFixed(2) != "354.00" {
		t.Errorf("first line = %s/%s/%s", first.Total, first.Tax, first.Amount)
	}
	if bill.Subtotal.StringFixed(2) != "380.00" {
		t.Errorf("subtotal = %s, want 380.00", bill.Subtotal)
	}
	if bill.Tax.StringFixed(2) != "68.40" {
		t.Errorf("tax = %s, want 68.40", bill.Tax)
	}
	if bill.GrandTotal.StringFixed(2) != "448.40" {
		t.Errorf("grand total = %s, want 448.40", bill.GrandTotal)
	}
}

func TestRenderIncludesHeaderAndLines(t *testing.T) {
	bill := BuildBill(sampleDetails(), &api.OwnerDetails{
		RestaurantName: "Spice Route",
		GSTIN:          "29ABCDE1234F1Z5",
	})
	out := bill.Render()

	for _, want := range []string{
		"Spice Route",
		"GSTIN: 29ABCDE1234F1Z5",
		"Invoice: INV-2025-042",
		"Table:   7",
		"Paneer Tikka",
		"Grand Total: 448.40",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered bill missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWithoutOwnerHeader(t *testing.T) {
	bill := BuildBill(sampleDetails(), nil)
	out := bill.Render()
	if strings.Contains(out, "GSTIN") {
		t.Errorf("bill without profile should omit GSTIN line:\n%s", out)
	}
	if !strings.Contains(out, "Invoice: INV-2025-042") {
		t.Errorf("bill must keep the invoice line:\n%s", out)
	}
}

func TestBillForOrderSurvivesProfileError(t *testing.T) {
	backend := &mockBackend{
		orderDetailsFn: func(ctx context.Context, orderID string) (*api.OrderDetails, error) {
			return sampleDetails(), nil
		},
		ownerDetailsFn: func(ctx context.Context) (*api.OwnerDetails, error) {
			return nil, errors.New("profile unavailable")
		},
	}
	bill, err := NewBoard(backend).BillForOrder(context.Background(), "ORD-42")
	if err != nil {
		t.Fatalf("BillForOrder: %v", err)
	}
	if bill.RestaurantName != "" {
		t.Errorf("restaurant name should be empty without a profile, got %q", bill.RestaurantName)
	}
	if bill.GrandTotal.StringFixed(2) != "448.40" {
		t.Errorf("grand total = %s, want 448.40", bill.GrandTotal)
	}
}

func TestBillForOrderDetailsError(t *testing.T) {
	backend := &mockBackend{
		orderDetailsFn: func(ctx context.Context, orderID string) (*api.OrderDetails, error) {
			return nil, errors.New("not found")
		},
	}
	if _, err := NewBoard(backend).BillForOrder(context.Background(), "ORD-42"); err == nil {
		t.Fatal("expected details error to propagate")
	}
}
