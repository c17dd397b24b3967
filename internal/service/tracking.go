package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/validation"
)

type TrackingService struct {
	repo repository.TrackingRepository
	now  func() time.Time
}

func NewTrackingService(repo repository.TrackingRepository) *TrackingService {
	return &TrackingService{
		repo: repo,
		now:  time.Now,
	}
}

// Day returns the tracking for a date, or an empty day if nothing was recorded.
func (s *TrackingService) Day(date string) (*model.DailyTracking, error) {
	err := validation.ValidateDate(date)
	if err != nil {
		return nil, asInvalid(err)
	}

	t, err := s.repo.ByDate(date)
	if errors.Is(err, repository.ErrTrackingNotFound) {
		return &model.DailyTracking{Date: date}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking: %w", err)
	}

	return t, nil
}

// Range lists recorded days in the window, oldest first.
func (s *TrackingService) Range(w model.DateWindow) ([]*model.DailyTracking, error) {
	if err := w.Validate(); err != nil {
		return nil, asInvalid(err)
	}
	return s.repo.Between(w)
}

func (s *TrackingService) Set(date string, waterGlasses int, sleepHours float64) (*model.DailyTracking, error) {
	err := validation.ValidateDate(date)
	if err != nil {
		return nil, asInvalid(err)
	}
	if waterGlasses < 0 {
		return nil, invalid("water_glasses must not be negative")
	}
	err = validation.ValidateRange("sleep_hours", sleepHours, 0, 24)
	if err != nil {
		return nil, asInvalid(err)
	}

	t := &model.DailyTracking{
		Date:         date,
		WaterGlasses: waterGlasses,
		SleepHours:   sleepHours,
		Timestamp:    nowMillis(s.now),
	}

	err = s.repo.Upsert(t)
	if err != nil {
		return nil, fmt.Errorf("failed to save tracking: %w", err)
	}

	return t, nil
}

// AddWater adjusts the glass count by delta. The count never drops below zero.
func (s *TrackingService) AddWater(date string, delta int) (*model.DailyTracking, error) {
	err := validation.ValidateDate(date)
	if err != nil {
		return nil, asInvalid(err)
	}
	if delta == 0 {
		return s.Day(date)
	}

	t, err := s.repo.AddWater(date, delta, nowMillis(s.now))
	if err != nil {
		return nil, fmt.Errorf("failed to update water: %w", err)
	}

	return t, nil
}
