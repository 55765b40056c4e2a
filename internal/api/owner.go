package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/itzabhishekgour/smartdine/internal/order"
)

// Table is a restaurant table as the owner dashboard sees it.
type Table struct {
	ID          int64 `json:"id"`
	TableNumber int   `json:"tableNumber"`
	Blocked     bool  `json:"blocked"`
}

func (c *Client) ListTables(ctx context.Context) ([]Table, error) {
	var out []Table
	if err := c.get(ctx, "/owner/table/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddTable(ctx context.Context, tableNumber int) error {
	body := map[string]int{"tableNumber": tableNumber}
	return c.post(ctx, "/owner/table/add", body, nil)
}

// UpdateTable renumbers a table; the new number rides in a query param the
// way the dashboard always sent it.
func (c *Client) UpdateTable(ctx context.Context, id int64, newTableNumber int) error {
	path := fmt.Sprintf("/owner/table/%d?newTableNumber=%d", id, newTableNumber)
	return c.put(ctx, path, nil, nil)
}

// ToggleBlockTable flips the block flag, hiding or restoring the table's
// menu for customers.
func (c *Client) ToggleBlockTable(ctx context.Context, id int64) error {
	return c.put(ctx, fmt.Sprintf("/owner/table/toggle-block/%d", id), nil, nil)
}

func (c *Client) DeleteTable(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/owner/table/%d", id))
}

// Category groups menu items.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, "/owner/category/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddCategory(ctx context.Context, name string) error {
	return c.post(ctx, "/owner/category/add", map[string]string{"name": name}, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, name string) error {
	return c.put(ctx, fmt.Sprintf("/owner/category/%d", id), map[string]string{"name": name}, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/owner/category/%d", id))
}

// OwnerMenuItem is a dish as managed from the dashboard.
type OwnerMenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	FoodType    string          `json:"foodType"`
	ImageURL    string          `json:"imageUrl"`
	Category    *Category       `json:"category"`
}

func (c *Client) MenuByCategory(ctx context.Context, categoryID int64) ([]OwnerMenuItem, error) {
	var out []OwnerMenuItem
	if err := c.get(ctx, fmt.Sprintf("/owner/menu/category/%d", categoryID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewMenuItem carries the multipart fields of the menu-item create form.
type NewMenuItem struct {
	Name        string
	Price       decimal.Decimal
	Description string
	CategoryID  int64
	FoodType    string
	// ImageName and Image are the uploaded dish photo.
	ImageName string
	Image     io.Reader
}

// AddMenuItem creates a dish. The endpoint takes multipart form data
// because of the image upload.
func (c *Client) AddMenuItem(ctx context.Context, item NewMenuItem) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":        item.Name,
		"price":       item.Price.String(),
		"description": item.Description,
		"categoryId":  strconv.FormatInt(item.CategoryID, 10),
		"foodType":    item.FoodType,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("api: write form field %s: %w", k, err)
		}
	}
	if item.Image != nil {
		fw, err := w.CreateFormFile("image", item.ImageName)
		if err != nil {
			return fmt.Errorf("api: create image part: %w", err)
		}
		if _, err := io.Copy(fw, item.Image); err != nil {
			return fmt.Errorf("api: copy image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/owner/menu/add"), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, nil)
}

// UpdateMenuItem edits the textual fields of a dish.
func (c *Client) UpdateMenuItem(ctx context.Context, id int64, name string, price decimal.Decimal, categoryID int64, description string) error {
	body := map[string]any{
		"name":        name,
		"price":       price,
		"categoryId":  categoryID,
		"description": description,
	}
	return c.put(ctx, fmt.Sprintf("/owner/menu/%d", id), body, nil)
}

func (c *Client) DeleteMenuItem(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/owner/menu/%d", id))
}

// OwnerOrder is one row of the owner order board.
type OwnerOrder struct {
	OrderID       string          `json:"orderId"`
	TableNumber   int             `json:"tableNumber"`
	CustomerName  string          `json:"customerName"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Status        order.Status    `json:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (c *Client) AllOrders(ctx context.Context) ([]OwnerOrder, error) {
	var out []OwnerOrder
	if err := c.get(ctx, "/owner/orders/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdvanceOrderStatus names the next status explicitly; the server accepts
// it via a query param.
func (c *Client) AdvanceOrderStatus(ctx context.Context, orderID string, newStatus order.Status) error {
	path := "/owner/orders/" + orderID + "/status?newStatus=" + string(newStatus)
	return c.put(ctx, path, nil, nil)
}

// OrderDetails is the billing view of a single order.
type OrderDetails struct {
	Summary OwnerOrder  `json:"summary"`
	Items   []OrderLine `json:"items"`
}

func (c *Client) OrderDetails(ctx context.Context, orderID string) (*OrderDetails, error) {
	d := &OrderDetails{}
	if err := c.get(ctx, "/owner/orders/"+orderID+"/details", d); err != nil {
		return nil, err
	}
	return d, nil
}

// OwnerDetails is the owner + restaurant profile, including the payment
// gateway credentials the backend settles online orders with.
type OwnerDetails struct {
	OwnerName      string `json:"ownerName"`
	RestaurantName string `json:"restaurantName"`
	GSTIN          string `json:"gstin"`
	Address        string `json:"address"`
	MerchantID     string `json:"merchantId"`
	SaltKey        string `json:"saltKey"`
	SaltIndex      string `json:"saltIndex"`
}

func (c *Client) OwnerDetails(ctx context.Context) (*OwnerDetails, error) {
	d := &OwnerDetails{}
	if err := c.get(ctx, "/owner/details", d); err != nil {
		return nil, err
	}
	return d, nil
}

func (c *Client) UpdateOwnerDetails(ctx context.Context, d *OwnerDetails) error {
	return c.put(ctx, "/owner/details", d, nil)
}

// OwnerProfile is the lightweight profile header (name + restaurant).
type OwnerProfile struct {
	OwnerName      string `json:"ownerName"`
	RestaurantName string `json:"restaurantName"`
	Email          string `json:"email"`
}

func (c *Client) OwnerProfile(ctx context.Context) (*OwnerProfile, error) {
	p := &OwnerProfile{}
	if err := c.get(ctx, "/owner/profile", p); err != nil {
		return nil, err
	}
	return p, nil
}
