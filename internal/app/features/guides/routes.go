// internal/app/features/guides/routes.go
package guides

import (
	"github.com/dalemusser/tourhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register mounts the guide workflow endpoints on the root router. Only
// /guide-proposals needs a session; the other routes identify the guide by
// the embedded guide id carried in the request.
func Register(r chi.Router, h *Handler) {
	r.With(auth.RequireSignedIn).Get("/guide-proposals", h.HandleProposals)
	r.Post("/approve-proposal", h.HandleApproveProposal)
	r.Post("/deny-proposal", h.HandleDenyProposal)
	r.Post("/assign-guide-to-tour", h.HandleClaimTour)
	r.Get("/get-assigned-tours", h.HandleAssignedTours)
	r.Get("/get-guide-tours", h.HandleGuideTours)
	r.Post("/mark-tour-complete", h.HandleMarkComplete)
}
