// Package accounts covers user administration: registration with generated
// credentials, deletion, and the per-role listings the coordinator UI uses.
package accounts

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/tourhub/internal/app/store/users"
	"github.com/dalemusser/tourhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"github.com/dalemusser/tourhub/internal/app/system/mailer"
	"github.com/dalemusser/tourhub/internal/app/system/passwords"
	"github.com/dalemusser/tourhub/internal/app/system/timeouts"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserStore is the slice of the user store this feature needs.
type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
}

type Handler struct {
	Users    UserStore
	Mail     mailer.Sender
	SiteName string
	Log      *zap.Logger
}

func NewHandler(users UserStore, mail mailer.Sender, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Mail:     mail,
		SiteName: siteName,
		Log:      logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// HandleRegister handles POST /register. The password is generated here,
// stored only as a bcrypt hash, and emailed to the new user exactly once.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Name == "" || req.Surname == "" || req.Role == "" || req.Email == "" {
		httpjson.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !models.IsValidRole(req.Role) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid role.")
		return
	}

	htmlsanitize.SanitizeAll(&req.Username, &req.Name, &req.Surname)

	plain, err := passwords.Generate()
	if err != nil {
		h.Log.Error("generate password failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	hash, err := passwords.Hash(plain)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Username: req.Username,
		Password: hash,
		Name:     req.Name,
		Surname:  req.Surname,
		Role:     req.Role,
		Email:    req.Email,
	})
	if errors.Is(err, userstore.ErrDuplicateUsername) {
		httpjson.Error(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		h.Log.Error("create user failed", zap.Error(err), zap.String("username", req.Username))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "Internal server error"))
		return
	}

	msg := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		SiteName: h.SiteName,
		Name:     user.Name,
		Surname:  user.Surname,
		Role:     user.Role,
		Username: user.Username,
		Password: plain,
	})
	msg.To = user.Email
	if err := h.Mail.Send(msg); err != nil {
		// The account exists but the user never got their password.
		httpjson.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	httpjson.Respond(w, http.StatusCreated, map[string]any{
		"message": "User registered and email sent successfully",
		"userId":  user.ID.Hex(),
	})
}

type deleteUserRequest struct {
	UserID string `json:"userId"`
}

// HandleDeleteUser handles DELETE /delete-user.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	var req deleteUserRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		httpjson.Error(w, http.StatusBadRequest, "User ID is required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete user failed", zap.Error(err), zap.String("user_id", req.UserID))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while deleting the user."))
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "User not found.")
		return
	}

	httpjson.Message(w, http.StatusOK, "User deleted successfully.")
}

// HandleGetGuides handles GET /get-guides.
func (h *Handler) HandleGetGuides(w http.ResponseWriter, r *http.Request) {
	h.listRole(w, r, models.RoleGuide, "No guides found", "An error occurred while fetching the guides")
}

// HandleGetCoordinators handles GET /get-coordinators.
func (h *Handler) HandleGetCoordinators(w http.ResponseWriter, r *http.Request) {
	h.listRole(w, r, models.RoleCoordinator, "No coordinators found", "An error occurred while fetching the coordinators")
}

// HandleGetAdvisors handles GET /get-advisors.
func (h *Handler) HandleGetAdvisors(w http.ResponseWriter, r *http.Request) {
	h.listRole(w, r, models.RoleAdvisor, "No advisors found", "An error occurred while fetching the advisors")
}

func (h *Handler) listRole(w http.ResponseWriter, r *http.Request, role, emptyMsg, failMsg string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users, err := h.Users.ListByRole(ctx, role)
	if err != nil {
		h.Log.Error("list users by role failed", zap.Error(err), zap.String("role", role))
		httpjson.Error(w, http.StatusInternalServerError, httpjson.DBErrorMessage(err, failMsg))
		return
	}
	if len(users) == 0 {
		httpjson.Message(w, http.StatusNotFound, emptyMsg)
		return
	}

	httpjson.Respond(w, http.StatusOK, users)
}
