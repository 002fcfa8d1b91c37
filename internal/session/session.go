package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/nacl/secretbox"

	"cms-admin/internal/model"
)

// CookieName is the session cookie. The cookie is the entire session:
// there is no server-side session store.
const CookieName = "app-session"

const nonceSize = 24

// Data is the sealed cookie payload. SID identifies the browser session
// for process-local state (the toast store); the tokens belong to the
// upstream API.
type Data struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	SID          string `json:"sid,omitempty"`
}

func (d Data) Authenticated() bool {
	return d.AccessToken != ""
}

// Manager seals and opens the session cookie. The key is derived from the
// configured secret; tampered or foreign ciphertext opens as no session.
type Manager struct {
	key    [32]byte
	ttl    time.Duration
	secure bool
}

func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		key:    sha256.Sum256([]byte(secret)),
		ttl:    ttl,
		secure: secure,
	}
}

// Read returns the session carried by the request. model.ErrNoSession when
// the cookie is absent, model.ErrSessionInvalid when it does not open.
func (m *Manager) Read(r *http.Request) (Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Data{}, model.ErrNoSession
	}

	return m.open(cookie.Value)
}

// Write seals the payload into a fresh cookie on the response.
func (m *Manager) Write(w http.ResponseWriter, data Data) error {
	sealed, err := m.seal(data)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear expires the cookie. Logout is nothing more than this.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) seal(data Data) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}

	sealed := secretbox.Seal(nonce[:], payload, &nonce, &m.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (m *Manager) open(value string) (Data, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(raw) <= nonceSize {
		return Data{}, model.ErrSessionInvalid
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &m.key)
	if !ok {
		return Data{}, model.ErrSessionInvalid
	}

	var data Data
	if err := json.Unmarshal(plain, &data); err != nil {
		return Data{}, model.ErrSessionInvalid
	}

	return data, nil
}

type contextKey struct{}

// WithData attaches the request's session to its context.
func WithData(ctx context.Context, data Data) context.Context {
	return context.WithValue(ctx, contextKey{}, data)
}

// FromContext returns the session attached by the middleware, if any.
func FromContext(ctx context.Context) (Data, bool) {
	data, ok := ctx.Value(contextKey{}).(Data)
	return data, ok
}

// TokenFromContext is the upstream client's token source: the access
// token of the current session, or empty.
func TokenFromContext(ctx context.Context) string {
	data, ok := FromContext(ctx)
	if !ok {
		return ""
	}

	return data.AccessToken
}
