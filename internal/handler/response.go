package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
	"github.com/nzoschke/healthmate/internal/validation"
)

const maxJSONBody = 1 << 20

var notFoundErrors = []error{
	repository.ErrBMISampleNotFound,
	repository.ErrMealNotFound,
	repository.ErrHabitNotFound,
	repository.ErrTodoNotFound,
	repository.ErrTrackingNotFound,
	repository.ErrProfileNotFound,
	service.ErrNoAffirmations,
}

// writeServiceError maps a service error to a status. Unknown errors are
// logged and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		response.Error(w, http.StatusBadRequest, "invalid", validationErr.Message)
		return
	}
	if errors.Is(err, model.ErrInvalidWindow) {
		response.Error(w, http.StatusBadRequest, "invalid", err.Error())
		return
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			response.Error(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
	}
	if errors.Is(err, service.ErrNoScanDraft) {
		response.Error(w, http.StatusConflict, "conflict", err.Error())
		return
	}

	slog.Error(msg, "error", err, "method", r.Method, "path", r.URL.Path)
	response.Error(w, http.StatusInternalServerError, "internal", "something went wrong")
}

func badRequest(w http.ResponseWriter, message string) {
	response.Error(w, http.StatusBadRequest, "invalid", message)
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched
// when optional is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && optional {
		return true
	}
	if err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}

// timeWindow reads from/to as ms epoch. Missing bounds are open.
func timeWindow(w http.ResponseWriter, r *http.Request) (model.TimeWindow, bool) {
	window := model.FullTimeWindow()
	q := r.URL.Query()

	for key, dst := range map[string]*int64{"from": &window.Start, "to": &window.End} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequest(w, "invalid "+key+": expected ms epoch")
			return window, false
		}
		*dst = ms
	}
	return window, true
}

// dateWindow reads from/to as YYYY-MM-DD. Missing bounds are open.
func dateWindow(w http.ResponseWriter, r *http.Request) (model.DateWindow, bool) {
	window := model.FullDateWindow()
	q := r.URL.Query()

	for key, dst := range map[string]*string{"from": &window.Start, "to": &window.End} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		if err := validation.ValidateDate(v); err != nil {
			badRequest(w, err.Error())
			return window, false
		}
		*dst = v
	}
	return window, true
}
