package handler

import (
	"net/http"

	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

type BMIHandler struct {
	bmiService     *service.BMIService
	insightService *service.InsightService
}

func NewBMIHandler(bmiService *service.BMIService, insightService *service.InsightService) *BMIHandler {
	return &BMIHandler{
		bmiService:     bmiService,
		insightService: insightService,
	}
}

type bmiRequest struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

func (h *BMIHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	sample, err := h.bmiService.Record(req.WeightKg, req.HeightCm)
	if err != nil {
		writeServiceError(w, r, err, "failed to record bmi")
		return
	}

	response.JSON(w, http.StatusCreated, sample)
}

func (h *BMIHandler) History(w http.ResponseWriter, r *http.Request) {
	window, ok := timeWindow(w, r)
	if !ok {
		return
	}

	samples, err := h.bmiService.History(window)
	if err != nil {
		writeServiceError(w, r, err, "failed to get bmi history")
		return
	}

	response.JSON(w, http.StatusOK, samples)
}

func (h *BMIHandler) Latest(w http.ResponseWriter, r *http.Request) {
	sample, err := h.bmiService.Latest()
	if err != nil {
		writeServiceError(w, r, err, "failed to get latest bmi")
		return
	}

	response.JSON(w, http.StatusOK, sample)
}

func (h *BMIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.bmiService.Delete(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to delete bmi sample")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BMIHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.bmiService.DeleteAll()
	if err != nil {
		writeServiceError(w, r, err, "failed to delete bmi history")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// Analyze starts the AI analysis of one sample.
func (h *BMIHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	_, err := h.insightService.StartAnalysis(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to start bmi analysis")
		return
	}

	response.JSON(w, http.StatusAccepted, h.insightService.AnalysisState())
}

func (h *BMIHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.insightService.AnalysisState())
}

func (h *BMIHandler) StartDietPlan(w http.ResponseWriter, r *http.Request) {
	_, err := h.insightService.StartDietPlan(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to start diet plan")
		return
	}

	response.JSON(w, http.StatusAccepted, h.insightService.DietPlanState())
}

func (h *BMIHandler) DietPlan(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.insightService.DietPlanState())
}
