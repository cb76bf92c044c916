// Package schedules manages guide weekly availability and answers the
// coordinator's "who is free for this tour slot" query.
package schedules

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/tourhub/internal/app/system/auth"
	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"github.com/dalemusser/tourhub/internal/app/system/timeouts"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ScheduleStore is the slice of the schedule store this feature needs.
type ScheduleStore interface {
	Upsert(ctx context.Context, username string, week models.WeekSchedule) (created bool, err error)
	GetByUsername(ctx context.Context, username string) (*models.Schedule, error)
	ListByUsernames(ctx context.Context, usernames []string) ([]models.Schedule, error)
}

// UserStore lists guides for the availability query.
type UserStore interface {
	ListByRole(ctx context.Context, role string) ([]models.User, error)
}

type Handler struct {
	Schedules ScheduleStore
	Users     UserStore
	Log       *zap.Logger
}

func NewHandler(schedules ScheduleStore, users UserStore, logger *zap.Logger) *Handler {
	return &Handler{Schedules: schedules, Users: users, Log: logger}
}

type saveScheduleRequest struct {
	Schedule json.RawMessage `json:"schedule"`
}

// HandleSaveSchedule handles POST /save-schedule. The schedule replaces the
// guide's previous one wholesale; 201 on first save, 200 on replacement.
func (h *Handler) HandleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)

	var req saveScheduleRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if !ok || user.Username == "" || len(req.Schedule) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "Username and schedule are required.")
		return
	}

	week, valid := parseWeekSchedule(req.Schedule)
	if !valid {
		httpjson.Error(w, http.StatusBadRequest, "Invalid schedule format.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Schedules.Upsert(ctx, user.Username, week)
	if err != nil {
		h.Log.Error("save schedule failed", zap.Error(err), zap.String("username", user.Username))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while saving the schedule."))
		return
	}

	if created {
		h.Log.Info("schedule saved", zap.String("username", user.Username))
		httpjson.Message(w, http.StatusCreated, "Schedule saved successfully.")
		return
	}
	h.Log.Info("schedule updated", zap.String("username", user.Username))
	httpjson.Message(w, http.StatusOK, "Schedule updated successfully.")
}

// parseWeekSchedule validates the structural contract: a non-empty object
// whose Monday entry is a sequence of slots.
func parseWeekSchedule(raw json.RawMessage) (models.WeekSchedule, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return nil, false
	}
	monday, ok := fields["Monday"]
	if !ok {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal(monday, &slots); err != nil {
		return nil, false
	}

	var week models.WeekSchedule
	if err := json.Unmarshal(raw, &week); err != nil {
		return nil, false
	}
	return week, true
}

// HandleGetSchedule handles GET /get-schedule: the signed-in guide's own
// availability.
func (h *Handler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.Username == "" || user.Role != models.RoleGuide {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized. Please log in.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sched, err := h.Schedules.GetByUsername(ctx, user.Username)
	if err == mongo.ErrNoDocuments {
		httpjson.Error(w, http.StatusNotFound, "Schedule not found for the user.")
		return
	}
	if err != nil {
		h.Log.Error("load schedule failed", zap.Error(err), zap.String("username", user.Username))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while retrieving the schedule."))
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"username":  sched.Username,
		"schedule":  sched.Schedule,
		"createdAt": sched.CreatedAt,
		"updatedAt": sched.UpdatedAt,
	})
}

// HandleAvailableGuides handles GET /get-available-guides?tourDate=…&tourTime=…:
// guides whose saved schedule lists the requested slot under the weekday the
// tour date falls on.
func (h *Handler) HandleAvailableGuides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tourDate := q.Get("tourDate")
	tourTime := q.Get("tourTime")
	if tourDate == "" || tourTime == "" {
		httpjson.Error(w, http.StatusBadRequest, "tourDate and tourTime are required.")
		return
	}

	date, err := time.Parse("2006-01-02", tourDate)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid tourDate format.")
		return
	}
	weekday := date.Weekday().String()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	guides, err := h.Users.ListByRole(ctx, models.RoleGuide)
	if err != nil {
		h.Log.Error("list guides failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "Error occurred while fetching available guides."))
		return
	}

	usernames := make([]string, 0, len(guides))
	for _, g := range guides {
		usernames = append(usernames, g.Username)
	}

	schedules, err := h.Schedules.ListByUsernames(ctx, usernames)
	if err != nil {
		h.Log.Error("list schedules failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "Error occurred while fetching available guides."))
		return
	}

	byUsername := make(map[string]models.Schedule, len(schedules))
	for _, s := range schedules {
		byUsername[s.Username] = s
	}

	available := []models.User{}
	for _, g := range guides {
		if sched, ok := byUsername[g.Username]; ok && sched.HasSlot(weekday, tourTime) {
			available = append(available, g)
		}
	}

	httpjson.Respond(w, http.StatusOK, available)
}
