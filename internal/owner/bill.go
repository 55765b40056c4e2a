package owner

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/itzabhishekgour/smartdine/internal/api"
)

var gstRate = decimal.NewFromFloat(0.18)

// BillLine is one priced row of a printed bill. Tax is charged per line at
// the GST rate on the line total; Amount is the line total plus its tax.
type BillLine struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
	Total    decimal.Decimal
	Tax      decimal.Decimal
	Amount   decimal.Decimal
}

// Bill is a fully computed invoice, ready to print.
type Bill struct {
	RestaurantName string
	Address        string
	GSTIN          string
	InvoiceNumber  string
	OrderID        string
	TableNumber    int
	CustomerName   string
	Lines          []BillLine
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	GrandTotal     decimal.Decimal
}

// BuildBill computes a bill from an order's detail view and the restaurant
// profile. owner may be nil when the profile fetch failed; the bill then
// prints without the restaurant header.
func BuildBill(details *api.OrderDetails, owner *api.OwnerDetails) *Bill {
	b := &Bill{
		InvoiceNumber: details.Summary.InvoiceNumber,
		OrderID:       details.Summary.OrderID,
		TableNumber:   details.Summary.TableNumber,
		CustomerName:  details.Summary.CustomerName,
	}
	if owner != nil {
		b.RestaurantName = owner.RestaurantName
		b.Address = owner.Address
		b.GSTIN = owner.GSTIN
	}
	for _, it := range details.Items {
		total := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		tax := total.Mul(gstRate).Round(2)
		line := BillLine{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Total:    total,
			Tax:      tax,
			Amount:   total.Add(tax),
		}
		b.Lines = append(b.Lines, line)
		b.Subtotal = b.Subtotal.Add(total)
		b.Tax = b.Tax.Add(tax)
		b.GrandTotal = b.GrandTotal.Add(line.Amount)
	}
	return b
}

// Render writes the bill as printable text.
func (b *Bill) Render() string {
	var buf bytes.Buffer
	if b.RestaurantName != "" {
		fmt.Fprintln(&buf, b.RestaurantName)
	}
	if b.Address != "" {
		fmt.Fprintln(&buf, b.Address)
	}
	if b.GSTIN != "" {
		fmt.Fprintf(&buf, "GSTIN: %s\n", b.GSTIN)
	}
	fmt.Fprintf(&buf, "Invoice: %s\n", b.InvoiceNumber)
	fmt.Fprintf(&buf, "Order:   %s\n", b.OrderID)
	fmt.Fprintf(&buf, "Table:   %d\n", b.TableNumber)
	if b.CustomerName != "" {
		fmt.Fprintf(&buf, "Name:    %s\n", b.CustomerName)
	}
	fmt.Fprintln(&buf)

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tQTY\tPRICE\tTOTAL\tTAX\tAMOUNT")
	for _, l := range b.Lines {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			l.Name, l.Quantity,
			l.Price.StringFixed(2), l.Total.StringFixed(2),
			l.Tax.StringFixed(2), l.Amount.StringFixed(2))
	}
	w.Flush()

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Subtotal:    %s\n", b.Subtotal.StringFixed(2))
	fmt.Fprintf(&buf, "GST (18%%):   %s\n", b.Tax.StringFixed(2))
	fmt.Fprintf(&buf, "Grand Total: %s\n", b.GrandTotal.StringFixed(2))
	return buf.String()
}

// BillForOrder fetches the detail view and the restaurant profile and
// builds the bill. A failed profile fetch is not fatal.
func (b *Board) BillForOrder(ctx context.Context, orderID string) (*Bill, error) {
	details, err := b.backend.OrderDetails(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order details %s: %w", orderID, err)
	}
	owner, err := b.backend.OwnerDetails(ctx)
	if err != nil {
		owner = nil
	}
	return BuildBill(details, owner), nil
}
