// Package coordination is the coordinator's side of the tour workflow:
// reviewing waiting applications, bulk approval, deletion, assigning guides,
// and sending approval notices.
package coordination

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"github.com/dalemusser/tourhub/internal/app/system/mailer"
	"github.com/dalemusser/tourhub/internal/app/system/timeouts"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ApplicationStore is the slice of the application store this feature needs.
type ApplicationStore interface {
	ListByStatus(ctx context.Context, statuses ...string) ([]models.Application, error)
	ApproveMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	AssignGuide(ctx context.Context, tourID primitive.ObjectID, guide models.GuideRef) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
}

// UserStore resolves guide identities for assignment.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type Handler struct {
	Applications ApplicationStore
	Users        UserStore
	Mail         mailer.Sender
	SiteName     string
	Log          *zap.Logger
}

func NewHandler(apps ApplicationStore, users UserStore, mail mailer.Sender, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		Applications: apps,
		Users:        users,
		Mail:         mail,
		SiteName:     siteName,
		Log:          logger,
	}
}

// HandleGetWaiting handles GET /get-waiting-applications. Always returns an
// array, even when empty.
func (h *Handler) HandleGetWaiting(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	apps, err := h.Applications.ListByStatus(ctx, models.StatusWaiting)
	if err != nil {
		h.Log.Error("list waiting applications failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while fetching the applications"))
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	httpjson.Respond(w, http.StatusOK, apps)
}

// HandleGetVerified handles GET /get-verified-tours: applications that have
// been approved, with or without a guide attached yet.
func (h *Handler) HandleGetVerified(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	apps, err := h.Applications.ListByStatus(ctx, models.StatusApproved, models.StatusGuideApproved)
	if err != nil {
		h.Log.Error("list verified tours failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while fetching verified tours"))
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	httpjson.Respond(w, http.StatusOK, apps)
}

type approveRequest struct {
	ApplicationIDs []string `json:"applicationIds"`
}

// HandleApprove handles POST /approve-applications: bulk Waiting → Approved.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if len(req.ApplicationIDs) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "No application IDs provided")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.ApplicationIDs))
	for _, raw := range req.ApplicationIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "No application IDs provided")
			return
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Applications.ApproveMany(ctx, ids)
	if err != nil {
		h.Log.Error("approve applications failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while approving applications."))
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "No matching applications found.")
		return
	}

	h.Log.Info("applications approved", zap.Int("count", len(ids)))
	httpjson.Message(w, http.StatusOK, "Applications approved successfully.")
}

type deleteRequest struct {
	ApplicationID string `json:"applicationId"`
}

// HandleDelete handles POST /delete-application: a hard delete used by
// coordinators to deny an application outright.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.ApplicationID == "" {
		httpjson.Error(w, http.StatusBadRequest, "Application ID is required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(req.ApplicationID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Application ID is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Applications.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete application failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while denying the application."))
		return
	}
	if deleted == 0 {
		httpjson.Error(w, http.StatusNotFound, "Application not found.")
		return
	}

	httpjson.Message(w, http.StatusOK, "Application denied successfully.")
}

type assignGuideRequest struct {
	TourID  string `json:"tourId"`
	GuideID string `json:"guideId"`
}

// HandleAssignGuide handles POST /assign-guide: embeds the chosen guide on
// the tour, notifies them by email, and returns the updated application.
func (h *Handler) HandleAssignGuide(w http.ResponseWriter, r *http.Request) {
	var req assignGuideRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.TourID == "" || req.GuideID == "" {
		httpjson.Error(w, http.StatusBadRequest, "Tour ID and Guide ID are required")
		return
	}
	tourID, err := primitive.ObjectIDFromHex(req.TourID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Tour ID and Guide ID are required")
		return
	}
	guideID, err := primitive.ObjectIDFromHex(req.GuideID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Tour ID and Guide ID are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	guide, err := h.Users.GetByID(ctx, guideID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "Guide not found")
		return
	}
	if err != nil {
		h.Log.Error("guide lookup failed", zap.Error(err), zap.String("guide_id", req.GuideID))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while assigning the guide or sending email."))
		return
	}

	matched, err := h.Applications.AssignGuide(ctx, tourID, models.GuideRef{
		ID:      guide.ID,
		Name:    guide.Name,
		Surname: guide.Surname,
	})
	if err != nil {
		h.Log.Error("assign guide failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while assigning the guide or sending email."))
		return
	}
	if matched == 0 {
		httpjson.Error(w, http.StatusNotFound, "Tour not found")
		return
	}

	updated, err := h.Applications.GetByID(ctx, tourID)
	if err != nil {
		h.Log.Error("load updated tour failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while assigning the guide or sending email."))
		return
	}

	msg := mailer.BuildAssignmentEmail(mailer.AssignmentEmailData{
		SiteName:   h.SiteName,
		GuideName:  guide.Name,
		SchoolName: updated.SchoolName,
		City:       updated.City,
		District:   updated.District,
	})
	msg.To = guide.Email
	if err := h.Mail.Send(msg); err != nil {
		// The assignment itself stays committed.
		httpjson.Error(w, http.StatusInternalServerError,
			"An error occurred while assigning the guide or sending email.")
		return
	}

	h.Log.Info("guide assigned",
		zap.String("tour_id", tourID.Hex()),
		zap.String("guide_id", guideID.Hex()))

	httpjson.Respond(w, http.StatusOK, updated)
}

type approvedEmailRequest struct {
	TourID string `json:"tourId"`
	Email  string `json:"email"`
}

// HandleSendApprovedEmail handles POST /send-approved-email. Pure mail
// dispatch; the application record is not touched.
func (h *Handler) HandleSendApprovedEmail(w http.ResponseWriter, r *http.Request) {
	var req approvedEmailRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.TourID == "" || req.Email == "" {
		httpjson.Error(w, http.StatusBadRequest, "Tour ID and email are required.")
		return
	}

	msg := mailer.BuildApprovalEmail(mailer.ApprovalEmailData{
		SiteName: h.SiteName,
		TourID:   req.TourID,
	})
	msg.To = req.Email
	if err := h.Mail.Send(msg); err != nil {
		httpjson.Error(w, http.StatusInternalServerError,
			"An error occurred while sending the email. Please try again later.")
		return
	}

	httpjson.Message(w, http.StatusOK, "Email sent successfully!")
}
