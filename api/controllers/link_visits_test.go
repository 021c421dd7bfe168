package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	linkvisitsvc "github.com/ravetagbd/ravetag-backend/internal/linkvisits"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
)

type stubLinkVisitService struct {
	recorded *linkvisitsvc.VisitInput
	err      error
}

func (s *stubLinkVisitService) RecordVisit(ctx context.Context, input linkvisitsvc.VisitInput) (*linkvisitsvc.VisitDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.recorded = &input
	return &linkvisitsvc.VisitDTO{LinkName: input.Name, Visitor: input.Visitor, VisitedAt: input.VisitedAt}, nil
}

func TestRecordLinkVisitController(t *testing.T) {
	logg := testLogger()

	t.Run("success with datetime", func(t *testing.T) {
		stub := &stubLinkVisitService{}
		body := `{"name": "instagram", "user": "+8801700000000", "datetime": "2026-03-01T12:30:00Z"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/external-link-visit", strings.NewReader(body))
		rec := httptest.NewRecorder()
		RecordLinkVisit(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.recorded == nil || stub.recorded.Name != "instagram" {
			t.Fatalf("expected input forwarded: %+v", stub.recorded)
		}
		want := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
		if !stub.recorded.VisitedAt.Equal(want) {
			t.Fatalf("expected datetime forwarded, got %s", stub.recorded.VisitedAt)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		body := `{"name": "instagram"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/external-link-visit", strings.NewReader(body))
		rec := httptest.NewRecorder()
		RecordLinkVisit(&stubLinkVisitService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown link is 404", func(t *testing.T) {
		stub := &stubLinkVisitService{err: pkgerrors.New(pkgerrors.CodeNotFound, "link not found")}
		body := `{"name": "tiktok", "user": "carol"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/external-link-visit", strings.NewReader(body))
		rec := httptest.NewRecorder()
		RecordLinkVisit(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
