// Package passwordreset implements the forgot-password email flow and the
// token-based password update it leads to.
package passwordreset

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"github.com/dalemusser/tourhub/internal/app/system/mailer"
	"github.com/dalemusser/tourhub/internal/app/system/passwords"
	"github.com/dalemusser/tourhub/internal/app/system/timeouts"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserStore is the slice of the user store this feature needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetToken(ctx context.Context, email, token string, expires time.Time) (int64, error)
	ResetPassword(ctx context.Context, token, hashedPassword string) (int64, error)
}

type Handler struct {
	Users       UserStore
	Mail        mailer.Sender
	SiteName    string
	BaseURL     string
	TokenExpiry time.Duration
	Log         *zap.Logger
}

func NewHandler(users UserStore, mail mailer.Sender, siteName, baseURL string, tokenExpiry time.Duration, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       users,
		Mail:        mail,
		SiteName:    siteName,
		BaseURL:     baseURL,
		TokenExpiry: tokenExpiry,
		Log:         logger,
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// HandleForgotPassword handles POST /forgot-password. A fresh token replaces
// any earlier one, so only the most recent reset link works.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		httpjson.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "User with this email not found")
		return
	}
	if err != nil {
		h.Log.Error("forgot-password lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while processing the request."))
		return
	}

	token, err := passwords.GenerateResetToken()
	if err != nil {
		h.Log.Error("generate reset token failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "An error occurred while processing the request.")
		return
	}

	matched, err := h.Users.SetResetToken(ctx, user.Email, token, time.Now().Add(h.TokenExpiry))
	if err != nil {
		h.Log.Error("store reset token failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while processing the request."))
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "User with this email not found")
		return
	}

	msg := mailer.BuildResetEmail(mailer.ResetEmailData{
		SiteName:  h.SiteName,
		Name:      user.Name,
		ResetLink: h.BaseURL + "/reset-password?token=" + token,
	})
	msg.To = user.Email
	if err := h.Mail.Send(msg); err != nil {
		h.Log.Error("send reset email failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "An error occurred while sending the reset email.")
		return
	}

	h.Log.Info("password reset email sent", zap.String("user_id", user.ID.Hex()))

	httpjson.Message(w, http.StatusOK, "Password reset email sent successfully")
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// HandleResetPassword handles POST /reset-password?token=…. The update
// clears the token, so a reset link is single-use.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	token := r.URL.Query().Get("token")
	if req.Password == "" || token == "" {
		httpjson.Error(w, http.StatusBadRequest, "Password and token are required")
		return
	}

	hash, err := passwords.Hash(req.Password)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "An error occurred while resetting the password.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Users.ResetPassword(ctx, token, hash)
	if err != nil {
		h.Log.Error("reset password failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while resetting the password."))
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}

	httpjson.Message(w, http.StatusOK, "Password reset successfully")
}
