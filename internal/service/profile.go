package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/validation"
)

type ProfileInput struct {
	Name           string
	Age            int
	Gender         string
	HeightCm       float64
	TargetWeightKg float64
	Goal           string
	ActivityLevel  string
	AvatarColor    string
}

type ProfileService struct {
	repo repository.ProfileRepository
	now  func() time.Time
}

func NewProfileService(repo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
		now:  time.Now,
	}
}

func (in *ProfileInput) validate() error {
	err := validation.ValidateName("name", in.Name)
	if err != nil {
		return asInvalid(err)
	}
	in.Name = strings.TrimSpace(in.Name)

	if in.Age < 0 || in.Age > 130 {
		return invalid("age must be between 0 and 130")
	}
	if in.HeightCm < 0 || in.HeightCm > 250 {
		return invalid("height_cm must be between 0 and 250")
	}
	if in.TargetWeightKg < 0 || in.TargetWeightKg > 400 {
		return invalid("target_weight_kg must be between 0 and 400")
	}
	return nil
}

// Create stores a profile. The first profile becomes the active one.
func (s *ProfileService) Create(in ProfileInput) (*model.Profile, error) {
	err := in.validate()
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		Name:           in.Name,
		Age:            in.Age,
		Gender:         in.Gender,
		HeightCm:       in.HeightCm,
		TargetWeightKg: in.TargetWeightKg,
		Goal:           in.Goal,
		ActivityLevel:  in.ActivityLevel,
		AvatarColor:    in.AvatarColor,
		CreatedAt:      nowMillis(s.now),
	}

	err = s.repo.Create(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	_, err = s.repo.Active()
	if errors.Is(err, repository.ErrProfileNotFound) {
		err = s.repo.SetActive(profile.ID)
		if err != nil {
			slog.Error("failed to activate first profile", "error", err, "profile_id", profile.ID)
		} else {
			profile.IsActive = true
		}
	}

	return profile, nil
}

func (s *ProfileService) Profiles() ([]*model.Profile, error) {
	return s.repo.Profiles()
}

func (s *ProfileService) Active() (*model.Profile, error) {
	return s.repo.Active()
}

func (s *ProfileService) Update(id int64, in ProfileInput) (*model.Profile, error) {
	profile, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	err = in.validate()
	if err != nil {
		return nil, err
	}

	profile.Name = in.Name
	profile.Age = in.Age
	profile.Gender = in.Gender
	profile.HeightCm = in.HeightCm
	profile.TargetWeightKg = in.TargetWeightKg
	profile.Goal = in.Goal
	profile.ActivityLevel = in.ActivityLevel
	profile.AvatarColor = in.AvatarColor

	err = s.repo.Update(profile)
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// Activate makes id the only active profile.
func (s *ProfileService) Activate(id int64) (*model.Profile, error) {
	err := s.repo.SetActive(id)
	if err != nil {
		return nil, err
	}
	return s.repo.ByID(id)
}

func (s *ProfileService) Delete(id int64) error {
	return s.repo.Delete(id)
}
