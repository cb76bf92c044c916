package tours_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/tourhub/internal/app/features/tours"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"github.com/dalemusser/tourhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeApplicationStore struct {
	inserted []models.Application
	err      error
}

func (f *fakeApplicationStore) Insert(_ context.Context, app models.Application) (models.Application, error) {
	if f.err != nil {
		return models.Application{}, f.err
	}
	app.ID = primitive.NewObjectID()
	app.Status = models.StatusWaiting
	f.inserted = append(f.inserted, app)
	return app, nil
}

type fakeIndividualStore struct {
	inserted []models.IndividualApplication
	err      error
}

func (f *fakeIndividualStore) Insert(_ context.Context, app models.IndividualApplication) (models.IndividualApplication, error) {
	if f.err != nil {
		return models.IndividualApplication{}, f.err
	}
	app.ID = primitive.NewObjectID()
	app.Status = models.StatusPending
	f.inserted = append(f.inserted, app)
	return app, nil
}

func validApplyBody() map[string]any {
	return map[string]any{
		"city":              "Ankara",
		"district":          "Çankaya",
		"schoolName":        "Atatürk Lisesi",
		"website":           "https://lise.example.edu",
		"organizationEmail": "office@lise.example.edu",
		"teacherName":       "Ayşe",
		"teacherSurname":    "Yılmaz",
		"teacherEmail":      "ayse@lise.example.edu",
		"teacherPhone":      "5551234567",
		"groupSize":         30,
		"classInfo":         "12th grade",
		"tourDate":          "2026-10-05",
		"tourTime":          "10:00",
	}
}

func newHandler(apps *fakeApplicationStore, ind *fakeIndividualStore) *tours.Handler {
	return tours.NewHandler(apps, ind, zap.NewNop())
}

func TestHandleApplyTour_Success(t *testing.T) {
	apps := &fakeApplicationStore{}
	h := newHandler(apps, &fakeIndividualStore{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/apply-tour", validApplyBody())
	rec := testutil.NewRecorder()
	h.HandleApplyTour(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Application submitted successfully")

	var resp struct {
		ApplicationID string `json:"applicationId"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.ApplicationID == "" {
		t.Error("expected a non-empty applicationId")
	}
	if len(apps.inserted) != 1 {
		t.Fatalf("inserted: got %d applications, want 1", len(apps.inserted))
	}
	if apps.inserted[0].Status != models.StatusWaiting {
		t.Errorf("status: got %q, want %q", apps.inserted[0].Status, models.StatusWaiting)
	}
}

func TestHandleApplyTour_MissingField(t *testing.T) {
	for _, field := range []string{
		"city", "district", "schoolName", "website", "organizationEmail",
		"teacherName", "teacherSurname", "teacherEmail", "teacherPhone",
		"groupSize", "classInfo", "tourDate", "tourTime",
	} {
		t.Run(field, func(t *testing.T) {
			apps := &fakeApplicationStore{}
			h := newHandler(apps, &fakeIndividualStore{})

			body := validApplyBody()
			delete(body, field)

			req := testutil.NewJSONRequest(t, http.MethodPost, "/apply-tour", body)
			rec := testutil.NewRecorder()
			h.HandleApplyTour(rec.ResponseRecorder, req)

			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, "All fields are required.")
			if len(apps.inserted) != 0 {
				t.Error("nothing should be inserted on validation failure")
			}
		})
	}
}

func TestHandleApplyTour_GroupSizeBounds(t *testing.T) {
	cases := []struct {
		size       int
		wantStatus int
	}{
		{1, http.StatusCreated},
		{50, http.StatusCreated},
		{51, http.StatusBadRequest},
		{-3, http.StatusBadRequest},
	}

	for _, tc := range cases {
		apps := &fakeApplicationStore{}
		h := newHandler(apps, &fakeIndividualStore{})

		body := validApplyBody()
		body["groupSize"] = tc.size

		req := testutil.NewJSONRequest(t, http.MethodPost, "/apply-tour", body)
		rec := testutil.NewRecorder()
		h.HandleApplyTour(rec.ResponseRecorder, req)

		if rec.Code != tc.wantStatus {
			t.Errorf("groupSize %d: got status %d, want %d", tc.size, rec.Code, tc.wantStatus)
		}
		if tc.wantStatus == http.StatusBadRequest {
			rec.AssertContains(t, "Group size must be between 1 and 50.")
		}
	}
}

func TestHandleApplyTour_InvalidEmailAndPhone(t *testing.T) {
	h := newHandler(&fakeApplicationStore{}, &fakeIndividualStore{})

	body := validApplyBody()
	body["teacherEmail"] = "not-an-email"
	req := testutil.NewJSONRequest(t, http.MethodPost, "/apply-tour", body)
	rec := testutil.NewRecorder()
	h.HandleApplyTour(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Invalid email format.")

	body = validApplyBody()
	body["teacherPhone"] = "555-123"
	req = testutil.NewJSONRequest(t, http.MethodPost, "/apply-tour", body)
	rec = testutil.NewRecorder()
	h.HandleApplyTour(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Invalid phone number format.")
}

func TestHandleApplyTour_SanitizesMarkup(t *testing.T) {
	apps := &fakeApplicationStore{}
	h := newHandler(apps, &fakeIndividualStore{})

	body := validApplyBody()
	body["schoolName"] = "<script>alert(1)</script>Atatürk Lisesi"

	req := testutil.NewJSONRequest(t, http.MethodPost, "/apply-tour", body)
	rec := testutil.NewRecorder()
	h.HandleApplyTour(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	if got := apps.inserted[0].SchoolName; got != "Atatürk Lisesi" {
		t.Errorf("SchoolName: got %q, want markup stripped", got)
	}
}

func TestHandleApplyTour_StoreFailure(t *testing.T) {
	apps := &fakeApplicationStore{err: errors.New("insert failed")}
	h := newHandler(apps, &fakeIndividualStore{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/apply-tour", validApplyBody())
	rec := testutil.NewRecorder()
	h.HandleApplyTour(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "An error occurred while submitting the application.")
}

func TestHandleApplyIndividualTour_Success(t *testing.T) {
	ind := &fakeIndividualStore{}
	h := newHandler(&fakeApplicationStore{}, ind)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/apply-individual-tour", map[string]any{
		"userName":  "Deniz Kaya",
		"userEmail": "deniz@example.com",
		"userPhone": "5550001122",
		"tourDate":  "2026-10-12",
		"major":     "Computer Engineering",
	})
	rec := testutil.NewRecorder()
	h.HandleApplyIndividualTour(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Individual tour application submitted successfully!")
	if len(ind.inserted) != 1 {
		t.Fatalf("inserted: got %d, want 1", len(ind.inserted))
	}
	if ind.inserted[0].Status != models.StatusPending {
		t.Errorf("status: got %q, want %q", ind.inserted[0].Status, models.StatusPending)
	}
}

func TestHandleApplyIndividualTour_MissingField(t *testing.T) {
	ind := &fakeIndividualStore{}
	h := newHandler(&fakeApplicationStore{}, ind)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/apply-individual-tour", map[string]any{
		"userName":  "Deniz Kaya",
		"userEmail": "deniz@example.com",
		"tourDate":  "2026-10-12",
		"major":     "Computer Engineering",
	})
	rec := testutil.NewRecorder()
	h.HandleApplyIndividualTour(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "All fields are required.")
	if len(ind.inserted) != 0 {
		t.Error("nothing should be inserted on validation failure")
	}
}
