// Package guides is the guide's side of the tour workflow: reviewing and
// answering proposals, claiming approved tours, listing assignments, and
// marking tours complete. Guide identity on a tour is the embedded guide id;
// the guideId in requests is matched against it on every mutation.
package guides

import (
	"context"
	"net/http"

	"github.com/dalemusser/tourhub/internal/app/system/auth"
	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"github.com/dalemusser/tourhub/internal/app/system/timeouts"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ApplicationStore is the slice of the application store this feature needs.
type ApplicationStore interface {
	ListProposals(ctx context.Context, username string) ([]bson.M, error)
	ApproveProposal(ctx context.Context, proposalID, guideID primitive.ObjectID) (int64, error)
	DenyProposal(ctx context.Context, proposalID, guideID primitive.ObjectID) (int64, error)
	ClaimTour(ctx context.Context, tourID primitive.ObjectID, guide models.GuideRef) (int64, error)
	ListByGuideID(ctx context.Context, guideID primitive.ObjectID) ([]models.Application, error)
	ListGuideApprovedByGuideID(ctx context.Context, guideID primitive.ObjectID) ([]models.Application, error)
	MarkComplete(ctx context.Context, tourID, guideID primitive.ObjectID) (int64, error)
}

type Handler struct {
	Applications ApplicationStore
	Log          *zap.Logger
}

func NewHandler(apps ApplicationStore, logger *zap.Logger) *Handler {
	return &Handler{Applications: apps, Log: logger}
}

// HandleProposals handles GET /guide-proposals: tours offered to the
// signed-in guide that they have not yet answered. Proposal records store
// the bare username in the guide field, so the raw documents go back as-is.
func (h *Handler) HandleProposals(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.Username == "" {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized access. Please log in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	proposals, err := h.Applications.ListProposals(ctx, user.Username)
	if err != nil {
		h.Log.Error("list proposals failed", zap.Error(err), zap.String("username", user.Username))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while fetching proposals."))
		return
	}
	if len(proposals) == 0 {
		httpjson.Message(w, http.StatusNotFound, "No proposals found.")
		return
	}

	httpjson.Respond(w, http.StatusOK, proposals)
}

type proposalRequest struct {
	ProposalID string `json:"proposalId"`
	GuideID    string `json:"guideId"`
}

// HandleApproveProposal handles POST /approve-proposal.
func (h *Handler) HandleApproveProposal(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	proposalID, guideID, ok := parseProposalIDs(w, req, "Proposal ID and guideId are required.")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Applications.ApproveProposal(ctx, proposalID, guideID)
	if err != nil {
		h.Log.Error("approve proposal failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while approving the proposal."))
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "Proposal not found or not assigned to you.")
		return
	}

	httpjson.Message(w, http.StatusOK, "Proposal approved successfully.")
}

// HandleDenyProposal handles POST /deny-proposal: the tour goes back to the
// Approved pool and the guide reference is removed.
func (h *Handler) HandleDenyProposal(w http.ResponseWriter, r *http.Request) {
	var req proposalRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	proposalID, guideID, ok := parseProposalIDs(w, req, "Proposal ID and guide ID are required.")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Applications.DenyProposal(ctx, proposalID, guideID)
	if err != nil {
		h.Log.Error("deny proposal failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while denying the proposal."))
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "Proposal not found or not assigned to you.")
		return
	}

	httpjson.Message(w, http.StatusOK, "Proposal denied successfully.")
}

type claimRequest struct {
	ProposalID   string `json:"proposalId"`
	GuideID      string `json:"guideId"`
	GuideName    string `json:"guideName"`
	GuideSurname string `json:"guideSurname"`
}

// HandleClaimTour handles POST /assign-guide-to-tour: a guide takes an
// approved tour for themselves. Only tours still in status Approved can be
// claimed, so two guides can't end up on one tour.
func (h *Handler) HandleClaimTour(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.ProposalID == "" || req.GuideID == "" || req.GuideName == "" || req.GuideSurname == "" {
		httpjson.Error(w, http.StatusBadRequest, "Proposal ID, guide ID, and guide details are required.")
		return
	}
	proposalID, err := primitive.ObjectIDFromHex(req.ProposalID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Proposal ID, guide ID, and guide details are required.")
		return
	}
	guideID, err := primitive.ObjectIDFromHex(req.GuideID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Proposal ID, guide ID, and guide details are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Applications.ClaimTour(ctx, proposalID, models.GuideRef{
		ID:      guideID,
		Name:    req.GuideName,
		Surname: req.GuideSurname,
	})
	if err != nil {
		h.Log.Error("claim tour failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while assigning to the tour."))
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "Proposal not found or already assigned.")
		return
	}

	h.Log.Info("tour claimed",
		zap.String("tour_id", proposalID.Hex()),
		zap.String("guide_id", guideID.Hex()))

	httpjson.Message(w, http.StatusOK, "You have been successfully assigned to the tour.")
}

// HandleAssignedTours handles GET /get-assigned-tours?guideId=…: every tour
// carrying the guide's embedded id, whatever its status.
func (h *Handler) HandleAssignedTours(w http.ResponseWriter, r *http.Request) {
	guideID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("guideId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Guide ID is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tours, err := h.Applications.ListByGuideID(ctx, guideID)
	if err != nil {
		h.Log.Error("list assigned tours failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while fetching assigned tours."))
		return
	}
	if len(tours) == 0 {
		httpjson.Message(w, http.StatusNotFound, "No assigned tours found.")
		return
	}

	httpjson.Respond(w, http.StatusOK, tours)
}

// HandleGuideTours handles GET /get-guide-tours: the guide's active (Guide
// Approved) tours. Name and surname are required by the API contract even
// though the lookup keys on the id alone.
func (h *Handler) HandleGuideTours(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawID := q.Get("guideId")
	if rawID == "" || q.Get("guideName") == "" || q.Get("guideSurname") == "" {
		httpjson.Error(w, http.StatusBadRequest, "Guide ID, name, and surname are required.")
		return
	}
	guideID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Guide ID, name, and surname are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tours, err := h.Applications.ListGuideApprovedByGuideID(ctx, guideID)
	if err != nil {
		h.Log.Error("list guide tours failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while fetching guide tours."))
		return
	}
	if len(tours) == 0 {
		httpjson.Message(w, http.StatusNotFound, "No tours found for this guide.")
		return
	}

	httpjson.Respond(w, http.StatusOK, tours)
}

type completeRequest struct {
	TourID  string `json:"tourId"`
	GuideID string `json:"guideId"`
}

// HandleMarkComplete handles POST /mark-tour-complete.
func (h *Handler) HandleMarkComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.TourID == "" || req.GuideID == "" {
		httpjson.Error(w, http.StatusBadRequest, "Tour ID and guide ID are required.")
		return
	}
	tourID, err := primitive.ObjectIDFromHex(req.TourID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Tour ID and guide ID are required.")
		return
	}
	guideID, err := primitive.ObjectIDFromHex(req.GuideID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Tour ID and guide ID are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Applications.MarkComplete(ctx, tourID, guideID)
	if err != nil {
		h.Log.Error("mark tour complete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while marking the tour as completed."))
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "Tour not found or not assigned to this guide.")
		return
	}

	httpjson.Message(w, http.StatusOK, "Tour marked as completed successfully.")
}

func parseProposalIDs(w http.ResponseWriter, req proposalRequest, requiredMsg string) (proposalID, guideID primitive.ObjectID, ok bool) {
	if req.ProposalID == "" || req.GuideID == "" {
		httpjson.Error(w, http.StatusBadRequest, requiredMsg)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	proposalID, err := primitive.ObjectIDFromHex(req.ProposalID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, requiredMsg)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	guideID, err = primitive.ObjectIDFromHex(req.GuideID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, requiredMsg)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return proposalID, guideID, true
}
