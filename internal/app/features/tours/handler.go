// Package tours accepts tour applications from the public site: school
// group requests and individual visitor requests. Both endpoints are
// unauthenticated by design.
package tours

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/tourhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"github.com/dalemusser/tourhub/internal/app/system/inputval"
	"github.com/dalemusser/tourhub/internal/app/system/timeouts"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.uber.org/zap"
)

// ApplicationStore is the slice of the application store this feature needs.
type ApplicationStore interface {
	Insert(ctx context.Context, app models.Application) (models.Application, error)
}

// IndividualApplicationStore persists individual visitor applications.
type IndividualApplicationStore interface {
	Insert(ctx context.Context, app models.IndividualApplication) (models.IndividualApplication, error)
}

type Handler struct {
	Applications ApplicationStore
	Individual   IndividualApplicationStore
	Log          *zap.Logger
}

func NewHandler(apps ApplicationStore, individual IndividualApplicationStore, logger *zap.Logger) *Handler {
	return &Handler{
		Applications: apps,
		Individual:   individual,
		Log:          logger,
	}
}

type applyTourRequest struct {
	City              string `json:"city"`
	District          string `json:"district"`
	SchoolName        string `json:"schoolName"`
	Website           string `json:"website"`
	OrganizationEmail string `json:"organizationEmail"`
	TeacherName       string `json:"teacherName"`
	TeacherSurname    string `json:"teacherSurname"`
	TeacherEmail      string `json:"teacherEmail"`
	TeacherPhone      string `json:"teacherPhone"`
	GroupSize         int    `json:"groupSize"`
	ClassInfo         string `json:"classInfo"`
	TourDate          string `json:"tourDate"`
	TourTime          string `json:"tourTime"`
}

// HandleApplyTour handles POST /apply-tour.
func (h *Handler) HandleApplyTour(w http.ResponseWriter, r *http.Request) {
	var req applyTourRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	if req.City == "" || req.District == "" || req.SchoolName == "" ||
		req.Website == "" || req.OrganizationEmail == "" ||
		req.TeacherName == "" || req.TeacherSurname == "" ||
		req.TeacherEmail == "" || req.TeacherPhone == "" ||
		req.GroupSize == 0 || req.ClassInfo == "" ||
		req.TourDate == "" || req.TourTime == "" {
		httpjson.Error(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	if !inputval.ValidEmail(req.OrganizationEmail) || !inputval.ValidEmail(req.TeacherEmail) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid email format.")
		return
	}
	if !inputval.ValidPhone(req.TeacherPhone) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid phone number format.")
		return
	}
	if !inputval.ValidGroupSize(req.GroupSize) {
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("Group size must be between %d and %d.", inputval.MinGroupSize, inputval.MaxGroupSize))
		return
	}

	htmlsanitize.SanitizeAll(
		&req.City, &req.District, &req.SchoolName,
		&req.TeacherName, &req.TeacherSurname, &req.ClassInfo)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	app, err := h.Applications.Insert(ctx, models.Application{
		City:              req.City,
		District:          req.District,
		SchoolName:        req.SchoolName,
		Website:           req.Website,
		OrganizationEmail: req.OrganizationEmail,
		TeacherName:       req.TeacherName,
		TeacherSurname:    req.TeacherSurname,
		TeacherEmail:      req.TeacherEmail,
		TeacherPhone:      req.TeacherPhone,
		GroupSize:         req.GroupSize,
		ClassInfo:         req.ClassInfo,
		TourDate:          req.TourDate,
		TourTime:          req.TourTime,
	})
	if err != nil {
		h.Log.Error("store tour application failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while submitting the application."))
		return
	}

	h.Log.Info("tour application stored",
		zap.String("application_id", app.ID.Hex()),
		zap.String("school", app.SchoolName))

	httpjson.Respond(w, http.StatusCreated, map[string]any{
		"message":       "Application submitted successfully",
		"applicationId": app.ID.Hex(),
	})
}

type applyIndividualRequest struct {
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	UserPhone string `json:"userPhone"`
	TourDate  string `json:"tourDate"`
	Major     string `json:"major"`
}

// HandleApplyIndividualTour handles POST /apply-individual-tour.
func (h *Handler) HandleApplyIndividualTour(w http.ResponseWriter, r *http.Request) {
	var req applyIndividualRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	if req.UserName == "" || req.UserEmail == "" || req.UserPhone == "" ||
		req.TourDate == "" || req.Major == "" {
		httpjson.Error(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	htmlsanitize.SanitizeAll(&req.UserName, &req.Major)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	app, err := h.Individual.Insert(ctx, models.IndividualApplication{
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
		UserPhone: req.UserPhone,
		TourDate:  req.TourDate,
		Major:     req.Major,
	})
	if err != nil {
		h.Log.Error("store individual application failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError,
			httpjson.DBErrorMessage(err, "An error occurred while submitting the application."))
		return
	}

	httpjson.Respond(w, http.StatusCreated, map[string]any{
		"message":       "Individual tour application submitted successfully!",
		"applicationId": app.ID.Hex(),
	})
}
