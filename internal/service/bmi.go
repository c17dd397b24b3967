package service

import (
	"fmt"
	"math"
	"time"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/validation"
)

type BMIService struct {
	repo repository.BMIRepository
	now  func() time.Time
}

func NewBMIService(repo repository.BMIRepository) *BMIService {
	return &BMIService{
		repo: repo,
		now:  time.Now,
	}
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100.0
	return math.Round(weightKg/(h*h)*10) / 10
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return model.BMICategoryUnderweight
	case bmi < 25.0:
		return model.BMICategoryNormal
	case bmi < 30.0:
		return model.BMICategoryOverweight
	default:
		return model.BMICategoryObese
	}
}

// Record calculates and stores a new sample.
func (s *BMIService) Record(weightKg, heightCm float64) (*model.BMISample, error) {
	err := validation.ValidateRange("weight_kg", weightKg, 10, 400)
	if err != nil {
		return nil, asInvalid(err)
	}
	err = validation.ValidateRange("height_cm", heightCm, 50, 250)
	if err != nil {
		return nil, asInvalid(err)
	}

	bmi := CalculateBMI(weightKg, heightCm)
	sample := &model.BMISample{
		WeightKg:  weightKg,
		HeightCm:  heightCm,
		BMI:       bmi,
		Category:  BMICategory(bmi),
		Timestamp: nowMillis(s.now),
	}

	err = s.repo.Create(sample)
	if err != nil {
		return nil, fmt.Errorf("failed to create bmi sample: %w", err)
	}

	return sample, nil
}

func (s *BMIService) ByID(id int64) (*model.BMISample, error) {
	return s.repo.ByID(id)
}

func (s *BMIService) Latest() (*model.BMISample, error) {
	return s.repo.Latest()
}

// History lists samples in the window, newest first.
func (s *BMIService) History(w model.TimeWindow) ([]*model.BMISample, error) {
	if err := w.Validate(); err != nil {
		return nil, asInvalid(err)
	}
	return s.repo.Between(w)
}

func (s *BMIService) Delete(id int64) error {
	return s.repo.Delete(id)
}

func (s *BMIService) DeleteAll() (int64, error) {
	n, err := s.repo.DeleteAll()
	if err != nil {
		return 0, fmt.Errorf("failed to delete bmi samples: %w", err)
	}
	return n, nil
}
