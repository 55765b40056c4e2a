// Package checkout orchestrates order placement and the online payment
// round trip: place → stash draft → gateway redirect → status check →
// confirm exactly once.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/itzabhishekgour/smartdine/internal/api"
	"github.com/itzabhishekgour/smartdine/internal/order"
	"github.com/itzabhishekgour/smartdine/internal/session"
)

// FailureRedirectDelay is how long the failure notice is shown before the
// caller navigates to the payment-failure page.
const FailureRedirectDelay = 2 * time.Second

// ErrNoRedirectURL means the gateway session came back without a redirect
// target; the initiation counts as failed.
var ErrNoRedirectURL = errors.New("checkout: payment initiation returned no redirect URL")

// Backend is the slice of the API client checkout needs.
// Satisfied by *api.Client; narrow interface for testability.
type Backend interface {
	PlaceOrder(ctx context.Context, d *order.Draft) (*api.PlaceOrderResult, error)
	InitiatePayment(ctx context.Context, req api.InitiatePaymentRequest) (*api.InitiatePaymentResult, error)
	PaymentStatus(ctx context.Context, orderID string) (api.PaymentState, error)
	ConfirmOrder(ctx context.Context, d *order.Draft) error
}

// Service runs checkout flows. One Service lives per process; its one-shot
// confirm guard spans everything that process does.
type Service struct {
	backend Backend
	store   session.Store

	mu        sync.Mutex
	confirmed bool
}

func NewService(backend Backend, store session.Store) *Service {
	return &Service{backend: backend, store: store}
}

// PlaceOffline submits an offline-payment order. Any failure is terminal
// for the attempt: the cart is untouched and the customer retries manually.
func (s *Service) PlaceOffline(ctx context.Context, d *order.Draft) (*api.PlaceOrderResult, error) {
	if d.PaymentMode != order.PaymentOffline {
		return nil, fmt.Errorf("checkout: PlaceOffline called with mode %s", d.PaymentMode)
	}
	res, err := s.backend.PlaceOrder(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("place offline order: %w", err)
	}
	return res, nil
}

// Initiation is a started online payment. The caller sends the customer to
// RedirectURL; everything the confirmation step will need is already in the
// session store.
type Initiation struct {
	OrderID     string
	Amount      int64
	RedirectURL string
}

// InitiateOnline places a provisional order, stashes the draft under the
// pending-order key, and opens a gateway session. The stash happens before
// the gateway call, so a crash between the two leaves a draft that the
// next completed-payment check can still consume.
func (s *Service) InitiateOnline(ctx context.Context, d *order.Draft) (*Initiation, error) {
	if d.PaymentMode != order.PaymentOnline {
		return nil, fmt.Errorf("checkout: InitiateOnline called with mode %s", d.PaymentMode)
	}

	placed, err := s.backend.PlaceOrder(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("place provisional order: %w", err)
	}

	if err := d.SavePending(s.store); err != nil {
		return nil, fmt.Errorf("stash pending order: %w", err)
	}

	res, err := s.backend.InitiatePayment(ctx, api.InitiatePaymentRequest{
		OrderID: placed.ProvisionalID(),
		Amount:  placed.TotalAmount,
		TableID: d.TableID,
	})
	if err != nil {
		return nil, fmt.Errorf("initiate payment: %w", err)
	}
	if res.RedirectURL == "" {
		return nil, ErrNoRedirectURL
	}

	return &Initiation{
		OrderID:     placed.ProvisionalID(),
		Amount:      placed.TotalAmount,
		RedirectURL: res.RedirectURL,
	}, nil
}

// Outcome classifies one completed-payment check.
type Outcome int

const (
	// OutcomeConfirmed: payment complete, order confirmed, draft cleared.
	OutcomeConfirmed Outcome = iota
	// OutcomeConfirmFailed: payment complete but the confirm call failed;
	// the draft is kept so a fresh process can retry, though this Service
	// will not (the one-shot guard has been taken).
	OutcomeConfirmFailed
	// OutcomePaymentIncomplete: gateway did not report COMPLETED; the
	// caller shows the failure notice and then the failure page.
	OutcomePaymentIncomplete
	// OutcomeNoPendingDraft: payment complete but nothing to confirm in
	// this session (other tab, cleared storage). Known gap: the order is
	// never confirmed from here.
	OutcomeNoPendingDraft
	// OutcomeAlreadyConfirmed: the one-shot guard stopped a duplicate.
	OutcomeAlreadyConfirmed
)

// Result is the answer of one CheckAndConfirm run.
type Result struct {
	Outcome Outcome
	State   api.PaymentState
	// ConfirmErr holds the confirm call's error for OutcomeConfirmFailed.
	ConfirmErr error
}

// CheckAndConfirm polls the payment status once and, when the gateway
// reports COMPLETED and a pending draft exists, confirms the order server
// side. The confirm fires at most once per Service no matter how many
// times the check runs; the guard is taken before the call goes out.
func (s *Service) CheckAndConfirm(ctx context.Context, orderID string) (*Result, error) {
	state, err := s.backend.PaymentStatus(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("check payment status: %w", err)
	}

	if !state.Completed() {
		return &Result{Outcome: OutcomePaymentIncomplete, State: state}, nil
	}

	s.mu.Lock()
	if s.confirmed {
		s.mu.Unlock()
		return &Result{Outcome: OutcomeAlreadyConfirmed, State: state}, nil
	}

	d, err := order.LoadPending(s.store)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, session.ErrNotFound) {
			return &Result{Outcome: OutcomeNoPendingDraft, State: state}, nil
		}
		return nil, fmt.Errorf("load pending order: %w", err)
	}

	s.confirmed = true
	s.mu.Unlock()

	if err := s.backend.ConfirmOrder(ctx, d); err != nil {
		log.Printf("ERROR: confirm order: %v", err)
		return &Result{Outcome: OutcomeConfirmFailed, State: state, ConfirmErr: err}, nil
	}

	// The draft is consumed only on a successful confirm.
	if err := order.DeletePending(s.store); err != nil {
		log.Printf("ERROR: clear pending order: %v", err)
	}
	return &Result{Outcome: OutcomeConfirmed, State: state}, nil
}
