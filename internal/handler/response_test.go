package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &service.ValidationError{Message: "name is required"}, http.StatusBadRequest, "invalid"},
		{"wrapped validation", fmt.Errorf("create: %w", &service.ValidationError{Message: "bad"}), http.StatusBadRequest, "invalid"},
		{"window", model.ErrInvalidWindow, http.StatusBadRequest, "invalid"},
		{"not found", repository.ErrHabitNotFound, http.StatusNotFound, "not_found"},
		{"no draft", service.ErrNoScanDraft, http.StatusConflict, "conflict"},
		{"store failure", fmt.Errorf("failed to get meals: %w", errors.New("disk I/O error")), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil), tt.err, "failed")

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), `"code":"`+tt.code+`"`) {
				t.Errorf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil), errors.New("secret dsn"), "failed")
	if strings.Contains(rec.Body.String(), "secret") {
		t.Errorf("leaked error: %s", rec.Body.String())
	}
}

func TestTimeWindow(t *testing.T) {
	rec := httptest.NewRecorder()
	w, ok := timeWindow(rec, httptest.NewRequest(http.MethodGet, "/api/bmi", nil))
	if !ok || w != model.FullTimeWindow() {
		t.Errorf("default window = %+v, %v", w, ok)
	}

	w, ok = timeWindow(rec, httptest.NewRequest(http.MethodGet, "/api/bmi?from=100&to=200", nil))
	if !ok || w.Start != 100 || w.End != 200 {
		t.Errorf("window = %+v, %v", w, ok)
	}

	rec = httptest.NewRecorder()
	if _, ok := timeWindow(rec, httptest.NewRequest(http.MethodGet, "/api/bmi?from=yesterday", nil)); ok {
		t.Error("expected bad from to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestDateWindow(t *testing.T) {
	rec := httptest.NewRecorder()
	w, ok := dateWindow(rec, httptest.NewRequest(http.MethodGet, "/api/tracking?from=2026-03-01", nil))
	if !ok || w.Start != "2026-03-01" || w.End != model.FullDateWindow().End {
		t.Errorf("window = %+v, %v", w, ok)
	}

	rec = httptest.NewRecorder()
	if _, ok := dateWindow(rec, httptest.NewRequest(http.MethodGet, "/api/tracking?to=2026-13-01", nil)); ok {
		t.Error("expected bad to to fail")
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/habits/7", nil)
	req.SetPathValue("id", "7")
	if id, ok := pathID(httptest.NewRecorder(), req); !ok || id != 7 {
		t.Errorf("id = %d, %v", id, ok)
	}

	req.SetPathValue("id", "-1")
	rec := httptest.NewRecorder()
	if _, ok := pathID(rec, req); ok || rec.Code != http.StatusBadRequest {
		t.Errorf("negative id accepted, status %d", rec.Code)
	}
}
