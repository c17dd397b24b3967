package handler

import (
	"net/http"

	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

type TrackingHandler struct {
	trackingService *service.TrackingService
}

func NewTrackingHandler(trackingService *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

func (h *TrackingHandler) Range(w http.ResponseWriter, r *http.Request) {
	window, ok := dateWindow(w, r)
	if !ok {
		return
	}

	days, err := h.trackingService.Range(window)
	if err != nil {
		writeServiceError(w, r, err, "failed to get tracking range")
		return
	}

	response.JSON(w, http.StatusOK, days)
}

func (h *TrackingHandler) Day(w http.ResponseWriter, r *http.Request) {
	day, err := h.trackingService.Day(r.PathValue("date"))
	if err != nil {
		writeServiceError(w, r, err, "failed to get tracking day")
		return
	}

	response.JSON(w, http.StatusOK, day)
}

func (h *TrackingHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WaterGlasses int     `json:"water_glasses"`
		SleepHours   float64 `json:"sleep_hours"`
	}
	if !decodeJSON(w, r, &req, false) {
		return
	}

	day, err := h.trackingService.Set(r.PathValue("date"), req.WaterGlasses, req.SleepHours)
	if err != nil {
		writeServiceError(w, r, err, "failed to save tracking day")
		return
	}

	response.JSON(w, http.StatusOK, day)
}

// AddWater adjusts the water count by delta, one glass when no body is sent.
func (h *TrackingHandler) AddWater(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Delta int `json:"delta"`
	}{Delta: 1}
	if !decodeJSON(w, r, &req, true) {
		return
	}

	day, err := h.trackingService.AddWater(r.PathValue("date"), req.Delta)
	if err != nil {
		writeServiceError(w, r, err, "failed to add water")
		return
	}

	response.JSON(w, http.StatusOK, day)
}
