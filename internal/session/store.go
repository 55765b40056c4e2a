// Package session is the client-local key/value store that stands in for
// the browser's local and session storage: auth tokens, the guest id, the
// verified phone number, the decoded Google profile, and the pending order
// draft all live here.
package session

import "errors"

// Well-known keys. Everything the client persists locally is one of these.
const (
	KeyToken        = "token"
	KeyOwnerToken   = "ownerToken"
	KeyGuestID      = "guestId"
	KeyGoogleUser   = "googleUser"
	KeyPhoneNumber  = "phoneNumber"
	KeyPendingOrder = "pendingOrder"
	KeyTheme        = "theme"
)

// ErrNotFound is returned by Get for a key with no value.
var ErrNotFound = errors.New("session: key not found")

// Store is a flat string key/value store. Values are opaque; callers that
// need structure store JSON.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	// Clear removes every key (the "log out everywhere" path).
	Clear() error
}

// MemStore is an in-memory Store for tests and one-shot commands.
type MemStore struct {
	m map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, error) {
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemStore) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	delete(s.m, key)
	return nil
}

func (s *MemStore) Clear() error {
	s.m = make(map[string]string)
	return nil
}

// GetOr returns the value for key, or fallback when it is unset.
func GetOr(s Store, key, fallback string) string {
	v, err := s.Get(key)
	if err != nil {
		return fallback
	}
	return v
}

// Has reports whether key has a value.
func Has(s Store, key string) bool {
	_, err := s.Get(key)
	return err == nil
}
