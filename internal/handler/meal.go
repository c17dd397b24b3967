package handler

import (
	"errors"
	"net/http"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/response"
	"github.com/nzoschke/healthmate/internal/service"
	"github.com/nzoschke/healthmate/internal/validation"
)

type MealHandler struct {
	mealService *service.MealService
}

func NewMealHandler(mealService *service.MealService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
	}
}

type mealRequest struct {
	FoodName  string  `json:"food_name"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	MealType  string  `json:"meal_type"`
	Timestamp int64   `json:"timestamp"`
}

type scanConfirmRequest struct {
	ImageToken string           `json:"image_token"`
	MealType   string           `json:"meal_type"`
	FoodName   string           `json:"food_name"`
	Nutrition  *model.Nutrition `json:"nutrition"`
}

func (h *MealHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	meal, err := h.mealService.Log(service.MealInput(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to log meal")
		return
	}

	response.JSON(w, http.StatusCreated, meal)
}

func (h *MealHandler) Meals(w http.ResponseWriter, r *http.Request) {
	window, ok := timeWindow(w, r)
	if !ok {
		return
	}

	meals, err := h.mealService.Meals(window)
	if err != nil {
		writeServiceError(w, r, err, "failed to get meals")
		return
	}

	response.JSON(w, http.StatusOK, meals)
}

// Summary defaults to today when no date is given.
func (h *MealHandler) Summary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.mealService.Today()
	}

	summary, err := h.mealService.Summary(date)
	if err != nil {
		writeServiceError(w, r, err, "failed to get meal summary")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.mealService.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "failed to delete meal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MealHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.mealService.DeleteAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to delete meals")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func (h *MealHandler) Scan(w http.ResponseWriter, r *http.Request) {
	data, ok := uploadedImage(w, r)
	if !ok {
		return
	}

	h.mealService.Scan(r.Context(), data)
	response.JSON(w, http.StatusAccepted, h.mealService.ScanState())
}

func (h *MealHandler) ScanState(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.mealService.ScanState())
}

func (h *MealHandler) ConfirmScan(w http.ResponseWriter, r *http.Request) {
	var req scanConfirmRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	meal, err := h.mealService.ConfirmScan(r.Context(), service.ScanConfirmation(req))
	if err != nil {
		writeServiceError(w, r, err, "failed to confirm food scan")
		return
	}

	response.JSON(w, http.StatusCreated, meal)
}

// uploadedImage reads the "image" part of a multipart form.
func uploadedImage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	maxSize := validation.ImageConstraints.MaxSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+(1<<20))

	err := r.ParseMultipartForm(maxSize)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			badRequest(w, "image is too large")
			return nil, false
		}
		badRequest(w, "expected a multipart form with an image")
		return nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		badRequest(w, "image is required")
		return nil, false
	}
	_ = file.Close()

	data, err := validation.ReadUpload(header, validation.ImageConstraints)
	if err != nil {
		badRequest(w, err.Error())
		return nil, false
	}
	return data, true
}
