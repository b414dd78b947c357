package handlers

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// sessionName is the cookie holding flash messages between redirects.
const sessionName = "latefee-session"

// FlashStore carries one-shot notification messages across a redirect,
// backed by a signed session cookie.
type FlashStore struct {
	store  *sessions.CookieStore
	logger *zap.Logger
}

// NewFlashStore builds the cookie store. The secret can be any passphrase;
// it is SHA-256 hashed to derive a 32-byte signing key, so it only needs to
// be consistent across restarts.
func NewFlashStore(secret string, logger *zap.Logger) *FlashStore {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &FlashStore{
		store:  store,
		logger: logger.Named("flash"),
	}
}

// Add queues a message to show on the next rendered page.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, message string) {
	// Get returns a fresh session when the cookie is missing or invalid.
	session, err := f.store.Get(r, sessionName)
	if err != nil {
		f.logger.Warn("Failed to decode session cookie", zap.Error(err))
	}

	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		f.logger.Warn("Failed to save session cookie", zap.Error(err))
	}
}

// Pop returns the queued messages and clears them from the cookie.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []string {
	session, err := f.store.Get(r, sessionName)
	if err != nil {
		f.logger.Warn("Failed to decode session cookie", zap.Error(err))
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}

	messages := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			messages = append(messages, s)
		}
	}

	// Save persists the now-empty flash list.
	if err := session.Save(r, w); err != nil {
		f.logger.Warn("Failed to save session cookie", zap.Error(err))
	}
	return messages
}
