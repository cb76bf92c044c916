// internal/app/features/passwordreset/routes.go
package passwordreset

import "github.com/go-chi/chi/v5"

// Register mounts the password-reset endpoints on the root router.
func Register(r chi.Router, h *Handler) {
	r.Post("/forgot-password", h.HandleForgotPassword)
	r.Post("/reset-password", h.HandleResetPassword)
}
