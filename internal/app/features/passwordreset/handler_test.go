package passwordreset_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tourhub/internal/app/features/passwordreset"
	"github.com/dalemusser/tourhub/internal/app/system/mailer"
	"github.com/dalemusser/tourhub/internal/app/system/passwords"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"github.com/dalemusser/tourhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	err     error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (f *fakeUserStore) add(email string) *models.User {
	u := &models.User{
		ID:       primitive.NewObjectID(),
		Username: "deniz",
		Name:     "Deniz",
		Surname:  "Kaya",
		Role:     models.RoleGuide,
		Email:    email,
	}
	f.byEmail[email] = u
	return u
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserStore) SetResetToken(_ context.Context, email, token string, expires time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return 0, nil
	}
	u.ResetToken = token
	u.ResetTokenExpires = &expires
	return 1, nil
}

func (f *fakeUserStore) ResetPassword(_ context.Context, token, hashedPassword string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, u := range f.byEmail {
		if u.ResetToken != "" && u.ResetToken == token {
			u.Password = hashedPassword
			u.ResetToken = ""
			u.ResetTokenExpires = nil
			return 1, nil
		}
	}
	return 0, nil
}

type recordingSender struct {
	sent []mailer.Email
	err  error
}

func (s *recordingSender) Send(msg mailer.Email) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newHandler(users *fakeUserStore, mail *recordingSender) *passwordreset.Handler {
	return passwordreset.NewHandler(users, mail, "University Tours", "https://tours.test", time.Hour, zap.NewNop())
}

func TestHandleForgotPassword(t *testing.T) {
	users := newFakeUserStore()
	u := users.add("deniz@test.com")
	mail := &recordingSender{}
	h := newHandler(users, mail)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/forgot-password", map[string]any{
		"email": "deniz@test.com",
	})
	rec := testutil.NewRecorder()
	h.HandleForgotPassword(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Password reset email sent successfully")

	if u.ResetToken == "" {
		t.Fatal("expected a reset token to be stored")
	}
	if u.ResetTokenExpires == nil || time.Until(*u.ResetTokenExpires) > time.Hour {
		t.Error("token expiry should be about one hour out")
	}
	if len(mail.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mail.sent))
	}
	wantLink := "https://tours.test/reset-password?token=" + u.ResetToken
	if !strings.Contains(mail.sent[0].TextBody, wantLink) {
		t.Errorf("email should carry the reset link %q, body: %s", wantLink, mail.sent[0].TextBody)
	}
}

func TestHandleForgotPassword_UnknownEmail(t *testing.T) {
	h := newHandler(newFakeUserStore(), &recordingSender{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/forgot-password", map[string]any{
		"email": "nobody@test.com",
	})
	rec := testutil.NewRecorder()
	h.HandleForgotPassword(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "User with this email not found")
}

func TestHandleForgotPassword_MissingEmail(t *testing.T) {
	h := newHandler(newFakeUserStore(), &recordingSender{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/forgot-password", map[string]any{})
	rec := testutil.NewRecorder()
	h.HandleForgotPassword(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Email is required")
}

func TestHandleForgotPassword_MailFailure(t *testing.T) {
	users := newFakeUserStore()
	users.add("deniz@test.com")
	h := newHandler(users, &recordingSender{err: errors.New("smtp down")})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/forgot-password", map[string]any{
		"email": "deniz@test.com",
	})
	rec := testutil.NewRecorder()
	h.HandleForgotPassword(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "An error occurred while sending the reset email.")
}

func TestHandleResetPassword(t *testing.T) {
	users := newFakeUserStore()
	u := users.add("deniz@test.com")
	u.ResetToken = "tok123"
	h := newHandler(users, &recordingSender{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/reset-password?token=tok123", map[string]any{
		"password": "new-password",
	})
	rec := testutil.NewRecorder()
	h.HandleResetPassword(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Password reset successfully")

	if !passwords.Compare(u.Password, "new-password") {
		t.Error("stored hash should match the new password")
	}
	if u.ResetToken != "" {
		t.Error("reset token should be cleared after use")
	}
}

func TestHandleResetPassword_TokenSingleUse(t *testing.T) {
	users := newFakeUserStore()
	u := users.add("deniz@test.com")
	u.ResetToken = "tok123"
	h := newHandler(users, &recordingSender{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/reset-password?token=tok123", map[string]any{
		"password": "new-password",
	})
	rec := testutil.NewRecorder()
	h.HandleResetPassword(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewJSONRequest(t, http.MethodPost, "/reset-password?token=tok123", map[string]any{
		"password": "another-password",
	})
	rec = testutil.NewRecorder()
	h.HandleResetPassword(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Invalid or expired token")
}

func TestHandleResetPassword_MissingToken(t *testing.T) {
	h := newHandler(newFakeUserStore(), &recordingSender{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/reset-password", map[string]any{
		"password": "new-password",
	})
	rec := testutil.NewRecorder()
	h.HandleResetPassword(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Password and token are required")
}
