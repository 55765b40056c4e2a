package api

import (
	"context"
	"net/url"
)

// PaymentState is the normalized gateway payment state.
type PaymentState string

const (
	PaymentCompleted PaymentState = "COMPLETED"
	PaymentPending   PaymentState = "PENDING"
	PaymentFailed    PaymentState = "FAILED"
	PaymentUnknown   PaymentState = ""
)

// Completed reports a successful payment.
func (s PaymentState) Completed() bool { return s == PaymentCompleted }

// paymentStatusResponse accepts both shapes the gateway proxy answers
// with: the state at the top level, or nested as the first element of a
// payment-details list. Normalization happens here, at the boundary, so
// callers only ever see a single PaymentState.
type paymentStatusResponse struct {
	State          string `json:"state"`
	PaymentDetails []struct {
		State string `json:"state"`
	} `json:"paymentDetails"`
}

func (r *paymentStatusResponse) normalize() PaymentState {
	if r.State != "" {
		return PaymentState(r.State)
	}
	if len(r.PaymentDetails) > 0 && r.PaymentDetails[0].State != "" {
		return PaymentState(r.PaymentDetails[0].State)
	}
	return PaymentUnknown
}

// InitiatePaymentRequest starts a gateway payment session for a placed
// order.
type InitiatePaymentRequest struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
	TableID string `json:"tableId"`
}

// InitiatePaymentResult carries the gateway redirect URL. An empty URL is a
// failed initiation; the checkout layer enforces that.
type InitiatePaymentResult struct {
	RedirectURL string `json:"redirectUrl"`
}

// InitiatePayment opens a payment session with the external gateway.
func (c *Client) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*InitiatePaymentResult, error) {
	res := &InitiatePaymentResult{}
	if err := c.post(ctx, "/customer/payment/initiate", req, res); err != nil {
		return nil, err
	}
	return res, nil
}

// PaymentStatus asks the gateway proxy for the state of the most recent
// payment. An empty orderID queries the caller's session-scoped payment.
func (c *Client) PaymentStatus(ctx context.Context, orderID string) (PaymentState, error) {
	path := "/customer/payment/status"
	if orderID != "" {
		path += "?orderId=" + url.QueryEscape(orderID)
	}
	res := &paymentStatusResponse{}
	if err := c.get(ctx, path, res); err != nil {
		return PaymentUnknown, err
	}
	return res.normalize(), nil
}
