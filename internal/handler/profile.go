package handler

import (
	"net/http"

	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

type profileRequest struct {
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	HeightCm       float64 `json:"height_cm"`
	TargetWeightKg float64 `json:"target_weight_kg"`
	Goal           string  `json:"goal"`
	ActivityLevel  string  `json:"activity_level"`
	AvatarColor    string  `json:"avatar_color"`
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	profile, err := h.profileService.Create(service.ProfileInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to create profile")
		return
	}

	response.JSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.Profiles()
	if err != nil {
		writeServiceError(w, r, err, "failed to get profiles")
		return
	}

	response.JSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) Active(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.Active()
	if err != nil {
		writeServiceError(w, r, err, "failed to get active profile")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	profile, err := h.profileService.Update(id, service.ProfileInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to update profile")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.Activate(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to activate profile")
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.profileService.Delete(id)
	if err != nil {
		writeServiceError(w, r, err, "failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
