// Package logout tears down the session cookie.
package logout

import (
	"errors"
	"net/http"

	"github.com/dalemusser/tourhub/internal/app/system/auth"
	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// SessionEnder destroys the session bound to the request, returning
// auth.ErrNoSession when there is none.
type SessionEnder interface {
	SignOut(w http.ResponseWriter, r *http.Request) error
}

type Handler struct {
	Sessions SessionEnder
	Log      *zap.Logger
}

func NewHandler(sessions SessionEnder, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, Log: logger}
}

// HandleLogout handles POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	err := h.Sessions.SignOut(w, r)
	if errors.Is(err, auth.ErrNoSession) {
		httpjson.Error(w, http.StatusBadRequest, "No session found to log out.")
		return
	}
	if err != nil {
		h.Log.Error("logout failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to log out.")
		return
	}

	httpjson.Message(w, http.StatusOK, "Successfully logged out.")
}
