package health_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/tourhub/internal/app/features/health"
	"github.com/dalemusser/tourhub/internal/testutil"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

func TestServe(t *testing.T) {
	h := health.NewHandler(&fakePinger{}, zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/health")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"status":"ok"`)
	rec.AssertContains(t, `"database":"connected"`)
}

func TestServe_DatabaseDown(t *testing.T) {
	h := health.NewHandler(&fakePinger{err: errors.New("connection refused")}, zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/health")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusServiceUnavailable)
	rec.AssertContains(t, `"database":"disconnected"`)
	rec.AssertContains(t, "Database unavailable")
}
