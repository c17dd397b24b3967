package handler

import (
	"net/http"

	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

type HabitHandler struct {
	habitService *service.HabitService
}

func NewHabitHandler(habitService *service.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

type habitRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Icon              string `json:"icon"`
	Color             string `json:"color"`
	Frequency         string `json:"frequency"`
	TargetDaysPerWeek int    `json:"target_days_per_week"`
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	habit, err := h.habitService.Create(service.HabitInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to create habit")
		return
	}

	response.JSON(w, http.StatusCreated, habit)
}

func (h *HabitHandler) Habits(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	habits, err := h.habitService.Habits(activeOnly)
	if err != nil {
		writeServiceError(w, r, err, "failed to get habits")
		return
	}

	response.JSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) Habit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	habit, err := h.habitService.ByID(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to get habit")
		return
	}

	response.JSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req habitRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	habit, err := h.habitService.Update(id, service.HabitInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to update habit")
		return
	}

	response.JSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.habitService.Deactivate(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to deactivate habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.habitService.Delete(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to delete habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HabitHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	if !decodeJSON(w, r, &req, true) {
		return
	}

	date := r.PathValue("date")
	completed, err := h.habitService.ToggleCompletion(id, date, req.Note)
	if err != nil {
		writeServiceError(w, r, err, "failed to toggle habit completion")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"habit_id":  id,
		"date":      date,
		"completed": completed,
	})
}

func (h *HabitHandler) Completions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	window, ok := dateWindow(w, r)
	if !ok {
		return
	}

	completions, err := h.habitService.Completions(id, window)
	if err != nil {
		writeServiceError(w, r, err, "failed to get habit completions")
		return
	}

	response.JSON(w, http.StatusOK, completions)
}

func (h *HabitHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	progress, err := h.habitService.Progress(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to get habit progress")
		return
	}

	response.JSON(w, http.StatusOK, progress)
}
