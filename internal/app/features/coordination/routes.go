// internal/app/features/coordination/routes.go
package coordination

import "github.com/go-chi/chi/v5"

// Register mounts the coordinator workflow endpoints on the root router.
func Register(r chi.Router, h *Handler) {
	r.Get("/get-waiting-applications", h.HandleGetWaiting)
	r.Get("/get-verified-tours", h.HandleGetVerified)
	r.Post("/approve-applications", h.HandleApprove)
	r.Post("/delete-application", h.HandleDelete)
	r.Post("/assign-guide", h.HandleAssignGuide)
	r.Post("/send-approved-email", h.HandleSendApprovedEmail)
}
