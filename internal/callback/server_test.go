package callback_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/itzabhishekgour/smartdine/internal/api"
	"github.com/itzabhishekgour/smartdine/internal/callback"
	"github.com/itzabhishekgour/smartdine/internal/checkout"
)

// --- Mocks ---

type mockConfirmer struct {
	checkFn func(ctx context.Context, orderID string) (*checkout.Result, error)
	calls   int
}

func (m *mockConfirmer) CheckAndConfirm(ctx context.Context, orderID string) (*checkout.Result, error) {
	m.calls++
	if m.checkFn != nil {
		return m.checkFn(ctx, orderID)
	}
	return &checkout.Result{Outcome: checkout.OutcomeConfirmed, State: api.PaymentCompleted}, nil
}

type mockResolver struct {
	tableFn func(ctx context.Context, orderID string) (string, error)
}

func (m *mockResolver) TableIDForOrder(ctx context.Context, orderID string) (string, error) {
	if m.tableFn != nil {
		return m.tableFn(ctx, orderID)
	}
	return "", fmt.Errorf("no table")
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestReturnConfirmedRedirectsToSuccess(t *testing.T) {
	confirmer := &mockConfirmer{}
	router := callback.NewServer(confirmer, &mockResolver{}).Router()

	rr := doGet(t, router, "/payment/status/TMP-9?tableId=t1")
	if rr.Code != http.StatusFound {
		t.Fatalf("status: %d", rr.Code)
	}
	loc := rr.Header().Get("Location")
	if loc != "/payment/success?orderId=TMP-9&tableId=t1" {
		t.Fatalf("location: %q", loc)
	}
	if confirmer.calls != 1 {
		t.Fatalf("check ran %d times, want 1 per page load", confirmer.calls)
	}
}

func TestReturnIncompleteShowsNoticeWithDelayedRedirect(t *testing.T) {
	confirmer := &mockConfirmer{
		checkFn: func(ctx context.Context, orderID string) (*checkout.Result, error) {
			return &checkout.Result{Outcome: checkout.OutcomePaymentIncomplete, State: api.PaymentFailed}, nil
		},
	}
	router := callback.NewServer(confirmer, &mockResolver{}).Router()

	rr := doGet(t, router, "/payment/status/TMP-9")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Payment not completed.") {
		t.Fatalf("missing failure notice: %s", body)
	}
	// The 2-second redirect to the failure page.
	if !strings.Contains(body, `content="2;url=/payment/failure"`) {
		t.Fatalf("missing delayed redirect: %s", body)
	}
}

func TestReturnConfirmFailureStillLandsOnSuccess(t *testing.T) {
	confirmer := &mockConfirmer{
		checkFn: func(ctx context.Context, orderID string) (*checkout.Result, error) {
			return &checkout.Result{
				Outcome:    checkout.OutcomeConfirmFailed,
				State:      api.PaymentCompleted,
				ConfirmErr: fmt.Errorf("backend down"),
			}, nil
		},
	}
	router := callback.NewServer(confirmer, &mockResolver{}).Router()

	rr := doGet(t, router, "/payment/status/TMP-9?tableId=t1")
	if rr.Code != http.StatusFound {
		t.Fatalf("status: %d", rr.Code)
	}
}

func TestReturnCheckErrorShowsNotice(t *testing.T) {
	confirmer := &mockConfirmer{
		checkFn: func(ctx context.Context, orderID string) (*checkout.Result, error) {
			return nil, fmt.Errorf("gateway unreachable")
		},
	}
	router := callback.NewServer(confirmer, &mockResolver{}).Router()

	rr := doGet(t, router, "/payment/status/TMP-9")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Failed to check payment.") {
		t.Fatalf("body: %s", rr.Body.String())
	}
}

func TestSuccessResolvesTableWhenMissing(t *testing.T) {
	resolver := &mockResolver{
		tableFn: func(ctx context.Context, orderID string) (string, error) {
			if orderID != "ORD-1" {
				t.Errorf("order id: %q", orderID)
			}
			return "t7", nil
		},
	}
	router := callback.NewServer(&mockConfirmer{}, resolver).Router()

	rr := doGet(t, router, "/payment/success?orderId=ORD-1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "t7") {
		t.Fatalf("table missing from page: %s", rr.Body.String())
	}
}

func TestFailurePage(t *testing.T) {
	router := callback.NewServer(&mockConfirmer{}, &mockResolver{}).Router()
	rr := doGet(t, router, "/payment/failure")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Payment Failed") {
		t.Fatalf("body: %s", rr.Body.String())
	}
}
