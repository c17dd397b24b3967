package handler

import (
	"net/http"

	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

type AffirmationHandler struct {
	affirmationService *service.AffirmationService
}

func NewAffirmationHandler(affirmationService *service.AffirmationService) *AffirmationHandler {
	return &AffirmationHandler{
		affirmationService: affirmationService,
	}
}

func (h *AffirmationHandler) Affirmations(w http.ResponseWriter, r *http.Request) {
	affirmations, err := h.affirmationService.Affirmations(r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, r, err, "failed to get affirmations")
		return
	}

	response.JSON(w, http.StatusOK, affirmations)
}

func (h *AffirmationHandler) Today(w http.ResponseWriter, r *http.Request) {
	affirmation, err := h.affirmationService.Today()
	if err != nil {
		writeServiceError(w, r, err, "failed to get today's affirmation")
		return
	}

	response.JSON(w, http.StatusOK, affirmation)
}

func (h *AffirmationHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.affirmationService.Categories()
	if err != nil {
		writeServiceError(w, r, err, "failed to get affirmation categories")
		return
	}

	response.JSON(w, http.StatusOK, categories)
}
