package streak_test

import (
	"errors"
	"testing"
	"time"

	"github.com/nzoschke/healthmate/internal/model"
	"github.com/nzoschke/healthmate/internal/streak"
)

// memLookup records completions by date and counts lookups.
type memLookup struct {
	dates   map[string]bool
	lookups int
}

func (m *memLookup) Completed(habitID int64, date string) (bool, error) {
	m.lookups++
	return m.dates[date], nil
}

func completedDaysAgo(today time.Time, days ...int) *memLookup {
	m := &memLookup{dates: map[string]bool{}}
	for _, d := range days {
		m.dates[model.DateKey(today.AddDate(0, 0, -d))] = true
	}
	return m
}

func lastNDays(n int) []int {
	days := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, i)
	}
	return days
}

var today = time.Date(2026, time.March, 29, 10, 30, 0, 0, time.UTC)

func TestCalculate_NoCompletions(t *testing.T) {
	lookup := completedDaysAgo(today)

	got, err := streak.Calculate(lookup, 1, today)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
	if lookup.lookups != 1 {
		t.Errorf("lookups = %d, want 1", lookup.lookups)
	}
}

func TestCalculate_LastNDays(t *testing.T) {
	for _, n := range []int{1, 2, 7, 30, 364, 365} {
		lookup := completedDaysAgo(today, lastNDays(n)...)

		got, err := streak.Calculate(lookup, 1, today)
		if err != nil {
			t.Fatalf("n=%d: Calculate error: %v", n, err)
		}
		if got != n {
			t.Errorf("n=%d: streak = %d, want %d", n, got, n)
		}
	}
}

func TestCalculate_CappedAtOneYear(t *testing.T) {
	lookup := completedDaysAgo(today, lastNDays(500)...)

	got, err := streak.Calculate(lookup, 1, today)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if got != streak.MaxDays {
		t.Errorf("streak = %d, want %d", got, streak.MaxDays)
	}
	if lookup.lookups != streak.MaxDays {
		t.Errorf("lookups = %d, want %d", lookup.lookups, streak.MaxDays)
	}
}

func TestCalculate_GapThreeDaysAgo(t *testing.T) {
	days := []int{0, 1, 2}
	for i := 4; i <= 40; i++ {
		days = append(days, i)
	}
	lookup := completedDaysAgo(today, days...)

	got, err := streak.Calculate(lookup, 1, today)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

func TestCalculate_TodayDoesNotCount(t *testing.T) {
	lookup := completedDaysAgo(today, 0)

	got, err := streak.Calculate(lookup, 1, today)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestCalculate_AcrossMonthBoundary(t *testing.T) {
	march2 := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)
	lookup := streak.LookupFunc(func(_ int64, date string) (bool, error) {
		return date == "2026-03-01" || date == "2026-02-28" || date == "2026-02-27", nil
	})

	got, err := streak.Calculate(lookup, 1, march2)
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestCalculate_LookupError(t *testing.T) {
	boom := errors.New("boom")
	lookup := streak.LookupFunc(func(int64, string) (bool, error) {
		return false, boom
	})

	_, err := streak.Calculate(lookup, 1, today)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}
