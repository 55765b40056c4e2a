package order

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itzabhishekgour/smartdine/internal/cart"
	"github.com/itzabhishekgour/smartdine/internal/identity"
	"github.com/itzabhishekgour/smartdine/internal/session"
)

// PaymentMode selects how the customer settles the bill.
type PaymentMode string

const (
	PaymentOnline  PaymentMode = "ONLINE"
	PaymentOffline PaymentMode = "OFFLINE"
)

// DraftItem is one order line as the place endpoint expects it.
type DraftItem struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

// Draft is the unconfirmed order built once at checkout. Identity fields
// are attached per channel the customer holds; the backend attributes the
// order to whichever is present.
type Draft struct {
	TableID      string      `json:"tableId"`
	Items        []DraftItem `json:"items"`
	PaymentMode  PaymentMode `json:"paymentMode"`
	CustomerName string      `json:"customerName,omitempty"`
	PhoneNumber  string      `json:"phoneNumber,omitempty"`
	GuestID      string      `json:"guestId,omitempty"`
	GoogleEmail  string      `json:"googleEmail,omitempty"`
	GoogleName   string      `json:"googleName,omitempty"`
}

var (
	ErrEmptyCart       = errors.New("order: cart is empty")
	ErrMissingTable    = errors.New("order: table id is required")
	ErrMissingCustomer = errors.New("order: offline payment needs customer name and phone")
)

// NewDraft builds the checkout payload from the cart and the customer's
// identity. For offline payment the name and phone are required; for online
// payment they ride along only when already known.
func NewDraft(tableID string, c *cart.Cart, mode PaymentMode, id identity.Identity, customerName, phone string) (*Draft, error) {
	if tableID == "" {
		return nil, ErrMissingTable
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	d := &Draft{
		TableID:     tableID,
		PaymentMode: mode,
		GuestID:     id.GuestID,
	}
	for _, it := range c.Items() {
		d.Items = append(d.Items, DraftItem{MenuItemID: it.ID, Quantity: it.Quantity})
	}

	if id.Google != nil {
		d.GoogleEmail = id.Google.Email
		d.GoogleName = id.Google.Name
	}

	switch mode {
	case PaymentOffline:
		if customerName == "" && id.Google != nil {
			customerName = id.Google.Name
		}
		if phone == "" {
			phone = id.PhoneNumber
		}
		if customerName == "" || phone == "" {
			return nil, ErrMissingCustomer
		}
		d.CustomerName = customerName
		d.PhoneNumber = phone
	case PaymentOnline:
		d.PhoneNumber = id.PhoneNumber
	default:
		return nil, fmt.Errorf("order: unknown payment mode %q", mode)
	}
	return d, nil
}

// SavePending stashes the draft in transient storage while an online
// payment is in flight. The confirm flow deletes it once consumed.
func (d *Draft) SavePending(store session.Store) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode pending order: %w", err)
	}
	return store.Set(session.KeyPendingOrder, string(b))
}

// LoadPending reads the stashed draft without consuming it. Returns
// session.ErrNotFound when no payment is in flight.
func LoadPending(store session.Store) (*Draft, error) {
	raw, err := store.Get(session.KeyPendingOrder)
	if err != nil {
		return nil, err
	}
	d := &Draft{}
	if err := json.Unmarshal([]byte(raw), d); err != nil {
		return nil, fmt.Errorf("decode pending order: %w", err)
	}
	return d, nil
}

// DeletePending clears the stash after a confirmed payment.
func DeletePending(store session.Store) error {
	return store.Delete(session.KeyPendingOrder)
}
