package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("0123456789abcdef0123456789abcdef", "tourhub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManager_EmptyName(t *testing.T) {
	if _, err := NewManager("key", "", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty cookie name")
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	m := newTestManager(t)

	// Sign in and capture the cookie.
	signInRec := httptest.NewRecorder()
	signInReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	err := m.SignIn(signInRec, signInReq, SessionUser{
		ID:       "abc123",
		Username: "jdoe",
		Name:     "Jane",
		Surname:  "Doe",
		Role:     "guide",
	})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := signInRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Replay the cookie through the middleware.
	var got *SessionUser
	handler := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context after sign in")
	}
	if got.Username != "jdoe" || got.Role != "guide" || got.Surname != "Doe" {
		t.Errorf("unexpected session user: %+v", got)
	}
}

func TestLoadSessionUser_NoCookie(t *testing.T) {
	m := newTestManager(t)

	var found bool
	handler := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = CurrentUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if found {
		t.Error("expected no user in context without a session cookie")
	}
}

func TestSignOut_NoSession(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	if err := m.SignOut(rec, req); err != ErrNoSession {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestSignOut_ClearsCookie(t *testing.T) {
	m := newTestManager(t)

	signInRec := httptest.NewRecorder()
	signInReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := m.SignIn(signInRec, signInReq, SessionUser{ID: "x", Username: "u", Role: "guide"}); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	for _, c := range signInRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	if err := m.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("expected session cookie to be expired")
	}
}

func TestRequireSignedIn(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	RequireSignedIn(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil), &SessionUser{ID: "x", Role: "guide"})
	RequireSignedIn(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("signed in: got %d, want 200", rec.Code)
	}
}
