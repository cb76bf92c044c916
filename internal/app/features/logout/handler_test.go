package logout_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/tourhub/internal/app/features/logout"
	"github.com/dalemusser/tourhub/internal/app/system/auth"
	"github.com/dalemusser/tourhub/internal/testutil"
	"go.uber.org/zap"
)

type fakeSessionEnder struct {
	err   error
	calls int
}

func (f *fakeSessionEnder) SignOut(http.ResponseWriter, *http.Request) error {
	f.calls++
	return f.err
}

func TestHandleLogout(t *testing.T) {
	sessions := &fakeSessionEnder{}
	h := logout.NewHandler(sessions, zap.NewNop())

	req := testutil.NewRequest(http.MethodPost, "/logout")
	rec := testutil.NewRecorder()
	h.HandleLogout(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Successfully logged out.")
	if sessions.calls != 1 {
		t.Errorf("SignOut calls: got %d, want 1", sessions.calls)
	}
}

func TestHandleLogout_NoSession(t *testing.T) {
	h := logout.NewHandler(&fakeSessionEnder{err: auth.ErrNoSession}, zap.NewNop())

	req := testutil.NewRequest(http.MethodPost, "/logout")
	rec := testutil.NewRecorder()
	h.HandleLogout(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "No session found to log out.")
}

func TestHandleLogout_SaveFailure(t *testing.T) {
	h := logout.NewHandler(&fakeSessionEnder{err: errors.New("cookie write failed")}, zap.NewNop())

	req := testutil.NewRequest(http.MethodPost, "/logout")
	rec := testutil.NewRecorder()
	h.HandleLogout(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "Failed to log out.")
}
