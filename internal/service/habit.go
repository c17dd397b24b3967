package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
	"github.com/nzoschke/healthmate/internal/streak"
	"github.com/nzoschke/healthmate/internal/validation"
)

type HabitInput struct {
	Name              string
	Description       string
	Category          string
	Icon              string
	Color             string
	Frequency         string
	TargetDaysPerWeek int
}

type HabitService struct {
	repo           repository.HabitRepository
	completionRepo repository.HabitCompletionRepository
	loc            *time.Location
	now            func() time.Time
}

func NewHabitService(
	repo repository.HabitRepository,
	completionRepo repository.HabitCompletionRepository,
	loc *time.Location,
) *HabitService {
	return &HabitService{
		repo:           repo,
		completionRepo: completionRepo,
		loc:            loc,
		now:            time.Now,
	}
}

func (in *HabitInput) normalize() error {
	err := validation.ValidateName("name", in.Name)
	if err != nil {
		return asInvalid(err)
	}
	err = validation.ValidateText("description", in.Description, 500)
	if err != nil {
		return asInvalid(err)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = normalizeCategory(in.Category)

	switch in.Frequency {
	case "":
		in.Frequency = model.HabitFrequencyDaily
	case model.HabitFrequencyDaily, model.HabitFrequencyWeekly:
	default:
		return invalid("frequency must be daily or weekly")
	}

	if in.TargetDaysPerWeek == 0 {
		in.TargetDaysPerWeek = 7
	}
	if in.TargetDaysPerWeek < 1 || in.TargetDaysPerWeek > 7 {
		return invalid("target_days_per_week must be between 1 and 7")
	}
	return nil
}

func (s *HabitService) Create(in HabitInput) (*model.Habit, error) {
	err := in.normalize()
	if err != nil {
		return nil, err
	}

	habit := &model.Habit{
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		Icon:              in.Icon,
		Color:             in.Color,
		Frequency:         in.Frequency,
		TargetDaysPerWeek: in.TargetDaysPerWeek,
		IsActive:          true,
		CreatedAt:         nowMillis(s.now),
	}

	err = s.repo.Create(habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ByID(id int64) (*model.Habit, error) {
	return s.repo.ByID(id)
}

func (s *HabitService) Habits(activeOnly bool) ([]*model.Habit, error) {
	return s.repo.Habits(activeOnly)
}

func (s *HabitService) Update(id int64, in HabitInput) (*model.Habit, error) {
	habit, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	err = in.normalize()
	if err != nil {
		return nil, err
	}

	habit.Name = in.Name
	habit.Description = in.Description
	habit.Category = in.Category
	habit.Icon = in.Icon
	habit.Color = in.Color
	habit.Frequency = in.Frequency
	habit.TargetDaysPerWeek = in.TargetDaysPerWeek

	err = s.repo.Update(habit)
	if err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Deactivate(id int64) error {
	return s.repo.Deactivate(id)
}

func (s *HabitService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// ToggleCompletion flips the completion of a habit on a date and reports
// whether it is completed afterwards.
func (s *HabitService) ToggleCompletion(habitID int64, date, note string) (bool, error) {
	err := validation.ValidateDate(date)
	if err != nil {
		return false, asInvalid(err)
	}
	err = validation.ValidateText("note", note, 500)
	if err != nil {
		return false, asInvalid(err)
	}

	_, err = s.repo.ByID(habitID)
	if err != nil {
		return false, err
	}

	completed, err := s.completionRepo.Toggle(&model.HabitCompletion{
		HabitID:     habitID,
		Date:        date,
		CompletedAt: nowMillis(s.now),
		Note:        note,
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle completion: %w", err)
	}

	return completed, nil
}

// Completions lists completions in the window, oldest first.
func (s *HabitService) Completions(habitID int64, w model.DateWindow) ([]*model.HabitCompletion, error) {
	if err := w.Validate(); err != nil {
		return nil, asInvalid(err)
	}

	_, err := s.repo.ByID(habitID)
	if err != nil {
		return nil, err
	}

	return s.completionRepo.Between(habitID, w)
}

// Progress reports the streak, today's state and the Monday to Sunday week count.
func (s *HabitService) Progress(habitID int64) (*model.HabitProgress, error) {
	habit, err := s.repo.ByID(habitID)
	if err != nil {
		return nil, err
	}

	today := s.now().In(s.loc)

	count, err := streak.Calculate(s.completionRepo, habitID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate streak: %w", err)
	}

	completedToday, err := s.completionRepo.Completed(habitID, model.DateKey(today))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's completion: %w", err)
	}

	weekCount, err := s.completionRepo.Count(habitID, weekWindow(today))
	if err != nil {
		return nil, fmt.Errorf("failed to count week completions: %w", err)
	}

	return &model.HabitProgress{
		HabitID:           habitID,
		Streak:            count,
		CompletedToday:    completedToday,
		WeekCompletions:   weekCount,
		TargetDaysPerWeek: habit.TargetDaysPerWeek,
		WeekGoalMet:       weekCount >= habit.TargetDaysPerWeek,
	}, nil
}

// weekWindow is the Monday to Sunday week containing day.
func weekWindow(day time.Time) model.DateWindow {
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return model.DateWindow{
		Start: model.DateKey(monday),
		End:   model.DateKey(monday.AddDate(0, 0, 6)),
	}
}
