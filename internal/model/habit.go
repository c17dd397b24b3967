package model

const (
	HabitFrequencyDaily  = "daily"
	HabitFrequencyWeekly = "weekly"
)

type Habit struct {
	ID                int64  `db:"id" json:"id"`
	Name              string `db:"name" json:"name"`
	Description       string `db:"description" json:"description"`
	Category          string `db:"category" json:"category"`
	Icon              string `db:"icon" json:"icon"`
	Color             string `db:"color" json:"color"`
	Frequency         string `db:"frequency" json:"frequency"`
	TargetDaysPerWeek int    `db:"target_days_per_week" json:"target_days_per_week"`
	IsActive          bool   `db:"is_active" json:"is_active"`
	CreatedAt         int64  `db:"created_at" json:"created_at"`
}

type HabitCompletion struct {
	ID          int64  `db:"id" json:"id"`
	HabitID     int64  `db:"habit_id" json:"habit_id"`
	Date        string `db:"date" json:"date"` // YYYY-MM-DD
	CompletedAt int64  `db:"completed_at" json:"completed_at"`
	Note        string `db:"note" json:"note"`
}

// HabitProgress is the per-habit view the habit screen renders.
type HabitProgress struct {
	HabitID           int64 `json:"habit_id"`
	Streak            int   `json:"streak"`
	CompletedToday    bool  `json:"completed_today"`
	WeekCompletions   int   `json:"week_completions"`
	TargetDaysPerWeek int   `json:"target_days_per_week"`
	WeekGoalMet       bool  `json:"week_goal_met"`
}
