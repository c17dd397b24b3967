package service

import (
	"errors"
	"testing"
	"time"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/repository"
)

func newHabitService(t *testing.T, now time.Time) *HabitService {
	t.Helper()
	database := newTestDB(t)
	svc := NewHabitService(repository.NewHabitRepository(database), repository.NewHabitCompletionRepository(database), time.UTC)
	svc.now = fixedClock(now)
	return svc
}

func TestHabitService_CreateNormalizes(t *testing.T) {
	svc := newHabitService(t, time.Now())

	habit, err := svc.Create(HabitInput{Name: "  Meditate ", Category: "  self   care "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if habit.Name != "Meditate" || habit.Category != "Self Care" {
		t.Errorf("habit = %+v", habit)
	}
	if habit.Frequency != model.HabitFrequencyDaily || habit.TargetDaysPerWeek != 7 || !habit.IsActive {
		t.Errorf("defaults = %+v", habit)
	}

	var verr *ValidationError
	for _, in := range []HabitInput{{Name: ""}, {Name: "x", Frequency: "hourly"}, {Name: "x", TargetDaysPerWeek: 8}} {
		if _, err := svc.Create(in); !errors.As(err, &verr) {
			t.Errorf("Create(%+v) = %v, want ValidationError", in, err)
		}
	}
}

func TestHabitService_Progress(t *testing.T) {
	// Thursday
	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	svc := newHabitService(t, now)

	habit, err := svc.Create(HabitInput{Name: "Walk", Frequency: model.HabitFrequencyWeekly, TargetDaysPerWeek: 4})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Streak of 3 (Mon-Wed), today done, and a gap on the previous Sunday.
	for _, d := range []string{"2026-03-07", "2026-03-09", "2026-03-10", "2026-03-11", "2026-03-12"} {
		if _, err := svc.ToggleCompletion(habit.ID, d, ""); err != nil {
			t.Fatalf("ToggleCompletion %s: %v", d, err)
		}
	}

	p, err := svc.Progress(habit.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	want := model.HabitProgress{HabitID: habit.ID, Streak: 3, CompletedToday: true, WeekCompletions: 4, TargetDaysPerWeek: 4, WeekGoalMet: true}
	if *p != want {
		t.Errorf("progress = %+v, want %+v", *p, want)
	}
}

func TestHabitService_ToggleTwiceRestores(t *testing.T) {
	svc := newHabitService(t, time.Now())

	habit, err := svc.Create(HabitInput{Name: "Floss"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	on, err := svc.ToggleCompletion(habit.ID, "2026-03-10", "done")
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v", on, err)
	}
	on, err = svc.ToggleCompletion(habit.ID, "2026-03-10", "")
	if err != nil || on {
		t.Fatalf("second toggle = %v, %v", on, err)
	}

	completions, err := svc.Completions(habit.ID, model.FullDateWindow())
	if err != nil || len(completions) != 0 {
		t.Errorf("completions = %v, %v", completions, err)
	}

	if _, err := svc.ToggleCompletion(999, "2026-03-10", ""); !errors.Is(err, repository.ErrHabitNotFound) {
		t.Errorf("toggle unknown habit = %v", err)
	}
	var verr *ValidationError
	if _, err := svc.ToggleCompletion(habit.ID, "10/03/2026", ""); !errors.As(err, &verr) {
		t.Errorf("toggle bad date = %v", err)
	}
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		day  time.Time
		want model.DateWindow
	}{
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), model.DateWindow{Start: "2026-03-09", End: "2026-03-15"}},
		{time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), model.DateWindow{Start: "2026-03-09", End: "2026-03-15"}},
		{time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC), model.DateWindow{Start: "2026-03-30", End: "2026-04-05"}},
	}

	for _, tt := range tests {
		if got := weekWindow(tt.day); got != tt.want {
			t.Errorf("weekWindow(%s) = %+v, want %+v", tt.day.Format(time.DateOnly), got, tt.want)
		}
	}
}
