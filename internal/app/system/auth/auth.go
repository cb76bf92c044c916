package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session value keys.
const (
	isAuthKey      = "is_authenticated"
	userIDKey      = "user_id"
	usernameKey    = "username"
	userNameKey    = "user_name"
	userSurnameKey = "user_surname"
	userRoleKey    = "user_role"
)

// SessionUser is the typed identity populated at login and injected into
// r.Context() on every request. It is treated as immutable per request.
type SessionUser struct {
	ID       string
	Username string
	Name     string
	Surname  string
	Role     string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// ErrNoSession is returned by SignOut when the request carries no session.
var ErrNoSession = errors.New("no session")

// Manager wraps the cookie store and session configuration.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a session Manager. An empty sessionKey is replaced with
// a random per-process key (sessions then won't survive restarts, which is
// acceptable only in dev); short keys get a warning.
func NewManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if name == "" {
		return nil, fmt.Errorf("session cookie name is empty")
	}
	if sessionKey == "" {
		sessionKey = string(securecookie.GenerateRandomKey(32))
		logger.Warn("session key not configured; using a random per-process key")
	} else if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// CurrentUser returns the signed-in user from context, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser injects the SessionUser into context when the request
// carries an authenticated session.
func (m *Manager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:       getString(sess, userIDKey),
				Username: getString(sess, usernameKey),
				Name:     getString(sess, userNameKey),
				Surname:  getString(sess, userSurnameKey),
				Role:     getString(sess, userRoleKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn writes the user's identity into a fresh session cookie.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[usernameKey] = u.Username
	sess.Values[userNameKey] = u.Name
	sess.Values[userSurnameKey] = u.Surname
	sess.Values[userRoleKey] = u.Role
	return sess.Save(r, w)
}

// SignOut destroys the session and expires the cookie. It returns
// ErrNoSession when the request carried no authenticated session.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return ErrNoSession
	}
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// RequireSignedIn rejects requests without a session user with a JSON 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized access. Please log in.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestUser injects a user into the request context, bypassing the
// session middleware. Test helper.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
