// internal/auth/session.go
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the name of the login session cookie.
const SessionName = "colab-session"

// SessionKeyUsername holds the logged in user's username.
const SessionKeyUsername = "username"

// Flash categories understood by the templates.
const (
	FlashInfo   = "info"
	FlashDanger = "danger"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// DeriveKey turns secret into a 32-byte key dedicated to purpose, so one
// configured secret can sign unrelated cookies.
func DeriveKey(secret, purpose string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(purpose))
	return mac.Sum(nil)
}

// SessionManager wraps a cookie store holding the login session.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a cookie-backed session manager. The secret
// can be any passphrase; it is SHA-256 hashed to derive the signing key.
func NewSessionManager(secret string, maxAge int, secure bool) *SessionManager {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store}
}

// Username returns the username stored in the session, or "" when the
// request is anonymous.
func (m *SessionManager) Username(r *http.Request) string {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return ""
	}
	username, _ := session.Values[SessionKeyUsername].(string)
	return username
}

// Login stores username in the session.
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, username string) error {
	session, _ := m.store.Get(r, SessionName)
	session.Values[SessionKeyUsername] = username
	return session.Save(r, w)
}

// Logout removes the username from the session, keeping pending flashes.
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionName)
	delete(session.Values, SessionKeyUsername)
	return session.Save(r, w)
}

// AddFlash queues a message for the next page.
func (m *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	session, _ := m.store.Get(r, SessionName)
	session.AddFlash(message, category)
	return session.Save(r, w)
}

// Flashes pops every queued message.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return nil
	}

	var flashes []Flash
	for _, category := range []string{FlashInfo, FlashDanger} {
		for _, f := range session.Flashes(category) {
			if msg, ok := f.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: msg})
			}
		}
	}

	if len(flashes) > 0 {
		_ = session.Save(r, w)
	}
	return flashes
}
