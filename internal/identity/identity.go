// Package identity tracks who the customer is across requests: a locally
// minted guest id, a verified phone number, or a Google profile taken from
// a sign-in ID token. A customer may hold several channels at once; display
// precedence is Google > Phone > Guest.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/itzabhishekgour/smartdine/internal/session"
)

// Kind names the identity channel in effect.
type Kind string

const (
	KindGoogle Kind = "google"
	KindPhone  Kind = "phone"
	KindGuest  Kind = "guest"
)

// GoogleUser is the slice of the Google ID-token payload the client keeps.
type GoogleUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identity is the resolved customer identity for display and order drafts.
type Identity struct {
	Kind        Kind
	GuestID     string
	PhoneNumber string
	Google      *GoogleUser
}

// Label is the short identity line the menu header shows.
func (id Identity) Label() string {
	switch id.Kind {
	case KindGoogle:
		return "Google: " + id.Google.Name
	case KindPhone:
		return "Phone: " + id.PhoneNumber
	default:
		short := id.GuestID
		if len(short) > 8 {
			short = short[:8] + "..."
		}
		return "Guest ID: " + short
	}
}

// Manager reads and writes identity state in the session store.
type Manager struct {
	store session.Store
}

func NewManager(store session.Store) *Manager {
	return &Manager{store: store}
}

// EnsureGuestID returns the stable guest id, minting and persisting a
// random one on first use.
func (m *Manager) EnsureGuestID() (string, error) {
	gid, err := m.store.Get(session.KeyGuestID)
	if err == nil {
		return gid, nil
	}
	if !errors.Is(err, session.ErrNotFound) {
		return "", err
	}
	gid = uuid.NewString()
	if err := m.store.Set(session.KeyGuestID, gid); err != nil {
		return "", err
	}
	return gid, nil
}

// SetGoogleToken decodes a Google sign-in ID token and persists the profile
// claims. The token is decoded without signature verification: the client
// only uses name and email for display and order attribution, never for
// access control.
func (m *Manager) SetGoogleToken(idToken string) (*GoogleUser, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("decode google token: %w", err)
	}
	user := &GoogleUser{}
	if v, ok := claims["name"].(string); ok {
		user.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if user.Name == "" && user.Email == "" {
		return nil, errors.New("google token carries no name or email")
	}
	b, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	if err := m.store.Set(session.KeyGoogleUser, string(b)); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPhoneNumber persists a phone number after OTP verification.
func (m *Manager) SetPhoneNumber(phone string) error {
	return m.store.Set(session.KeyPhoneNumber, phone)
}

// ClearGoogle signs the Google profile out, leaving other channels intact.
func (m *Manager) ClearGoogle() error {
	return m.store.Delete(session.KeyGoogleUser)
}

// Current resolves the identity, minting a guest id if nothing else exists.
func (m *Manager) Current() (Identity, error) {
	gid, err := m.EnsureGuestID()
	if err != nil {
		return Identity{}, err
	}
	id := Identity{Kind: KindGuest, GuestID: gid}

	if raw, err := m.store.Get(session.KeyGoogleUser); err == nil {
		user := &GoogleUser{}
		if err := json.Unmarshal([]byte(raw), user); err == nil && user.Name != "" {
			id.Google = user
			id.Kind = KindGoogle
		}
	}
	if phone, err := m.store.Get(session.KeyPhoneNumber); err == nil && phone != "" {
		id.PhoneNumber = phone
		if id.Kind != KindGoogle {
			id.Kind = KindPhone
		}
	}
	return id, nil
}
