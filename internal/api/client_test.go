package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itzabhishekgour/smartdine/internal/api"
	"github.com/itzabhishekgour/smartdine/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler, store session.Store, opts ...api.Option) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, store, opts...), srv
}

func TestBearerTokenAttachedFromStore(t *testing.T) {
	var gotAuth string
	store := session.NewMemStore()
	store.Set(session.KeyToken, "customer-token")

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"menu": map[string]any{}})
	}), store)

	if _, err := c.Menu(context.Background(), "t1"); err != nil {
		t.Fatalf("menu: %v", err)
	}
	if gotAuth != "Bearer customer-token" {
		t.Fatalf("authorization header: %q", gotAuth)
	}
}

func TestOwnerTokenUsedWhenCustomerTokenAbsent(t *testing.T) {
	var gotAuth string
	store := session.NewMemStore()
	store.Set(session.KeyOwnerToken, "owner-token")

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), store)

	if _, err := c.ListTables(context.Background()); err != nil {
		t.Fatalf("list tables: %v", err)
	}
	if gotAuth != "Bearer owner-token" {
		t.Fatalf("authorization header: %q", gotAuth)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"menu":{}}`))
	}), session.NewMemStore())

	if _, err := c.Menu(context.Background(), "t1"); err != nil {
		t.Fatalf("menu: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
}

func TestErrorBodyDecoded(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"table already exists"}`))
	}), nil)

	err := c.AddTable(context.Background(), 4)
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "table already exists" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestNotFoundHookFiresOn404(t *testing.T) {
	var hookErr error
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}), nil, api.WithNotFoundHandler(func(err error) { hookErr = err }))

	if _, err := c.OrderStatus(context.Background(), "t1"); err == nil {
		t.Fatal("expected error")
	}
	if hookErr == nil {
		t.Fatal("not-found hook did not fire")
	}
}

func TestNotFoundHookFiresOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nothing listens anymore

	var hookErr error
	c := api.New(url, nil, api.WithNotFoundHandler(func(err error) { hookErr = err }))
	if _, err := c.OrderStatus(context.Background(), "t1"); err == nil {
		t.Fatal("expected network error")
	}
	if hookErr == nil {
		t.Fatal("not-found hook did not fire on network error")
	}
}

func TestNotFoundHookSilentOnOtherStatuses(t *testing.T) {
	fired := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), nil, api.WithNotFoundHandler(func(err error) { fired = true }))

	if _, err := c.OrderStatus(context.Background(), "t1"); err == nil {
		t.Fatal("expected error")
	}
	if fired {
		t.Fatal("hook must not fire for a 500")
	}
}
