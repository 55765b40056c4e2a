package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/itzabhishekgour/smartdine/internal/order"
)

// MenuItem is one dish on the customer-facing menu.
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	FoodType    string          `json:"foodType"`
	ImageURL    string          `json:"imageUrl"`
}

// Menu is the table-scoped menu payload behind the QR code.
type Menu struct {
	RestaurantName string                `json:"restaurantName"`
	TableNumber    int                   `json:"tableNumber"`
	Menu           map[string][]MenuItem `json:"menu"`
}

// Menu fetches the menu for a table. A blocked table surfaces as
// ErrTableBlocked.
func (c *Client) Menu(ctx context.Context, tableID string) (*Menu, error) {
	m := &Menu{}
	err := c.get(ctx, "/customer/menu/"+url.PathEscape(tableID), m)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusLocked {
			return nil, ErrTableBlocked
		}
		return nil, err
	}
	return m, nil
}

// PlaceOrderResult is the place endpoint's answer. Online payments get a
// provisional id (tempOrderId) the payment session is keyed by; offline
// orders get the final orderId straight away.
type PlaceOrderResult struct {
	OrderID     string `json:"orderId"`
	TempOrderID string `json:"tempOrderId"`
	TotalAmount int64  `json:"totalAmount"`
}

// ProvisionalID is the id to hand to the payment gateway: the temp id when
// the backend issued one, the order id otherwise.
func (r *PlaceOrderResult) ProvisionalID() string {
	if r.TempOrderID != "" {
		return r.TempOrderID
	}
	return r.OrderID
}

// PlaceOrder submits a checkout draft.
func (c *Client) PlaceOrder(ctx context.Context, d *order.Draft) (*PlaceOrderResult, error) {
	res := &PlaceOrderResult{}
	if err := c.post(ctx, "/customer/order/place", d, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ConfirmOrder finalizes an online order after the gateway reports the
// payment complete. The body is the same draft that was placed.
func (c *Client) ConfirmOrder(ctx context.Context, d *order.Draft) error {
	return c.post(ctx, "/customer/order/confirm", d, nil)
}

// OrderLine is one ordered dish on the status page.
type OrderLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderStatus is the live order for a table. TotalAmount is tax-inclusive,
// in paise.
type OrderStatus struct {
	OrderID             string       `json:"orderId"`
	Status              order.Status `json:"status"`
	CreatedAt           time.Time    `json:"createdAt"`
	TotalAmount         int64        `json:"totalAmount"`
	PaymentMethod       string       `json:"paymentMethod"`
	TransactionID       string       `json:"transactionId"`
	MerchantID          string       `json:"merchantId"`
	ProviderReferenceID string       `json:"providerReferenceId"`
	CustomerName        string       `json:"customerName"`
	PhoneNumber         string       `json:"phoneNumber"`
	Items               []OrderLine  `json:"items"`
}

// OrderStatus fetches the current order for a table.
func (c *Client) OrderStatus(ctx context.Context, tableID string) (*OrderStatus, error) {
	s := &OrderStatus{}
	if err := c.get(ctx, "/customer/order/status/"+url.PathEscape(tableID), s); err != nil {
		return nil, err
	}
	return s, nil
}

// HistoryEntry is one past order of a table.
type HistoryEntry struct {
	OrderID      string       `json:"orderId"`
	TableNumber  int          `json:"tableNumber"`
	CustomerName string       `json:"customerName"`
	Status       order.Status `json:"status"`
	TotalAmount  int64        `json:"totalAmount"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// OrderHistory fetches past orders for a table. Fetched on demand only,
// never polled.
func (c *Client) OrderHistory(ctx context.Context, tableID string) ([]HistoryEntry, error) {
	var out []HistoryEntry
	if err := c.get(ctx, "/customer/order/history/"+url.PathEscape(tableID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TableIDForOrder resolves the table an order belongs to, used by the
// payment success page which only knows the order id.
func (c *Client) TableIDForOrder(ctx context.Context, orderID string) (string, error) {
	var out struct {
		TableID string `json:"tableId"`
	}
	if err := c.get(ctx, "/customer/order/table-id/"+url.PathEscape(orderID), &out); err != nil {
		return "", err
	}
	if out.TableID == "" {
		return "", fmt.Errorf("api: no table id for order %s", orderID)
	}
	return out.TableID, nil
}
