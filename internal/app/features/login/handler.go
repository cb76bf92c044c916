// Package login authenticates users against their stored bcrypt hash and
// establishes the session cookie the rest of the API reads.
package login

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/tourhub/internal/app/system/auth"
	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"github.com/dalemusser/tourhub/internal/app/system/passwords"
	"github.com/dalemusser/tourhub/internal/app/system/timeouts"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserStore is the slice of the user store this feature needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionWriter establishes a session for an authenticated user.
type SessionWriter interface {
	SignIn(w http.ResponseWriter, r *http.Request, u auth.SessionUser) error
}

type Handler struct {
	Users    UserStore
	Sessions SessionWriter
	Log      *zap.Logger
}

func NewHandler(users UserStore, sessions SessionWriter, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Sessions: sessions,
		Log:      logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin handles POST /login. Unknown usernames and wrong passwords
// produce the same 401 so the response never reveals which part failed.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByUsername(ctx, req.Username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.Log.Error("login lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred during login."))
		return
	}

	if !passwords.Compare(user.Password, req.Password) {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Name:     user.Name,
		Surname:  user.Surname,
		Role:     user.Role,
	}); err != nil {
		h.Log.Error("session save failed", zap.Error(err), zap.String("username", user.Username))
		httpjson.Error(w, http.StatusInternalServerError, "An error occurred during login.")
		return
	}

	h.Log.Info("user logged in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message":  "Login successful",
		"role":     user.Role,
		"username": user.Username,
		"name":     user.Name,
		"surname":  user.Surname,
		"_id":      user.ID.Hex(),
	})
}

// HandleAuthorization handles GET /authorization. It reports the identity
// bound to the current session so the frontend can restore its state.
func (h *Handler) HandleAuthorization(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized access. Please log in.")
		return
	}
	if u.Name == "" || u.Surname == "" || u.Role == "" {
		httpjson.Error(w, http.StatusBadRequest, "Incomplete user session data.")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"name":    u.Name,
		"surname": u.Surname,
		"role":    u.Role,
	})
}
