// Package callback is the local HTTP surface the payment gateway redirects
// the customer's browser back to: the redirect-checker keyed by order id,
// the success page, and the failure page.
package callback

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itzabhishekgour/smartdine/internal/checkout"
)

// Confirmer runs the completed-payment check.
// Satisfied by *checkout.Service; narrow interface for testability.
type Confirmer interface {
	CheckAndConfirm(ctx context.Context, orderID string) (*checkout.Result, error)
}

// OrderResolver maps an order back to its table.
// Satisfied by *api.Client.
type OrderResolver interface {
	TableIDForOrder(ctx context.Context, orderID string) (string, error)
}

// Server handles the payment-return routes.
type Server struct {
	confirmer Confirmer
	resolver  OrderResolver
}

func NewServer(confirmer Confirmer, resolver OrderResolver) *Server {
	return &Server{confirmer: confirmer, resolver: resolver}
}

// Router builds the chi router for the return server.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The gateway's return page may probe these routes cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/payment/status/{orderId}", s.handleReturn)
	r.Get("/payment/success", s.handleSuccess)
	r.Get("/payment/failure", s.handleFailure)

	return r
}

// handleReturn is the redirect-checker the gateway sends the browser to.
// One payment-status check per page load; a completed payment confirms the
// stashed order and lands on the success page, anything else shows the
// failure notice and then the failure page.
func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	tableID := r.URL.Query().Get("tableId")

	res, err := s.confirmer.CheckAndConfirm(r.Context(), orderID)
	if err != nil {
		log.Printf("ERROR: payment check: %v", err)
		s.renderFailureNotice(w, "Failed to check payment.")
		return
	}

	switch res.Outcome {
	case checkout.OutcomePaymentIncomplete:
		s.renderFailureNotice(w, "Payment not completed.")
	case checkout.OutcomeConfirmFailed:
		// Payment went through; the confirm hiccup is surfaced on the
		// success page rather than failing the customer's payment.
		log.Printf("ERROR: order confirmation failed for %s: %v", orderID, res.ConfirmErr)
		s.redirectSuccess(w, r, orderID, tableID)
	default:
		s.redirectSuccess(w, r, orderID, tableID)
	}
}

func (s *Server) redirectSuccess(w http.ResponseWriter, r *http.Request, orderID, tableID string) {
	target := "/payment/success?orderId=" + url.QueryEscape(orderID)
	if tableID != "" {
		target += "&tableId=" + url.QueryEscape(tableID)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	tableID := r.URL.Query().Get("tableId")
	if tableID == "" && orderID != "" {
		tid, err := s.resolver.TableIDForOrder(r.Context(), orderID)
		if err != nil {
			log.Printf("ERROR: resolve table for order %s: %v", orderID, err)
		} else {
			tableID = tid
		}
	}
	render(w, http.StatusOK, successPage, map[string]string{
		"OrderID": orderID,
		"TableID": tableID,
	})
}

func (s *Server) handleFailure(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, failurePage, nil)
}

// renderFailureNotice shows the failure message and moves the browser to
// the failure page after the fixed delay.
func (s *Server) renderFailureNotice(w http.ResponseWriter, msg string) {
	render(w, http.StatusOK, failureNoticePage, map[string]any{
		"Message":      msg,
		"DelaySeconds": int(checkout.FailureRedirectDelay.Seconds()),
	})
}

func render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("ERROR: render page: %v", err)
	}
}

var successPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
<head><title>Payment Successful</title></head>
<body>
<h1>Payment Successful!</h1>
<p>Thank you for your order. Your food will be served shortly.</p>
{{if .TableID}}<p>Track it: <code>smartdine customer status --table {{.TableID}}</code></p>{{end}}
{{if .OrderID}}<p>Order: {{.OrderID}}</p>{{end}}
</body>
</html>
`))

var failureNoticePage = template.Must(template.New("notice").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Payment Failed</title>
<meta http-equiv="refresh" content="{{.DelaySeconds}};url=/payment/failure">
</head>
<body>
<h1>{{.Message}}</h1>
<p>Redirecting...</p>
</body>
</html>
`))

var failurePage = template.Must(template.New("failure").Parse(`<!DOCTYPE html>
<html>
<head><title>Payment Failed</title></head>
<body>
<h1>Payment Failed</h1>
<p>Something went wrong. Please try again from your cart.</p>
</body>
</html>
`))

// ListenAndServe runs the return server until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("payment return server listening on %s", addr)
	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("return server: %w", err)
		}
		return nil
	}
}
