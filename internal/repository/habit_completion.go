package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/model"
)

type HabitCompletionRepository interface {
	// Toggle removes the completion for (habitID, date) if present, otherwise
	// creates it. It reports whether the habit is completed afterwards.
	Toggle(completion *model.HabitCompletion) (bool, error)
	Completed(habitID int64, date string) (bool, error)
	Between(habitID int64, w model.DateWindow) ([]*model.HabitCompletion, error)
	Count(habitID int64, w model.DateWindow) (int, error)
}

type habitCompletionRepository struct {
	db *sqlx.DB
}

func NewHabitCompletionRepository(db *sqlx.DB) HabitCompletionRepository {
	return &habitCompletionRepository{db: db}
}

func (r *habitCompletionRepository) Toggle(c *model.HabitCompletion) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.Get(&id, `SELECT id FROM habit_completions WHERE habit_id = $1 AND date = $2`, c.HabitID, c.Date)
	switch {
	case err == nil:
		_, err = tx.Exec(`DELETE FROM habit_completions WHERE id = $1`, id)
		if err != nil {
			return false, fmt.Errorf("failed to delete completion: %w", err)
		}
		return false, tx.Commit()
	case err != sql.ErrNoRows:
		return false, err
	}

	// The unique (habit_id, date) constraint absorbs a concurrent insert.
	query := `INSERT INTO habit_completions (habit_id, date, completed_at, note)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (habit_id, date) DO NOTHING`
	_, err = tx.Exec(query, c.HabitID, c.Date, c.CompletedAt, c.Note)
	if err != nil {
		return false, fmt.Errorf("failed to create completion: %w", err)
	}

	return true, tx.Commit()
}

// Completed implements streak.Lookup.
func (r *habitCompletionRepository) Completed(habitID int64, date string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM habit_completions WHERE habit_id = $1 AND date = $2`
	err := r.db.QueryRow(query, habitID, date).Scan(&count)
	return count > 0, err
}

// Between returns completions with start <= date <= end, oldest first.
func (r *habitCompletionRepository) Between(habitID int64, w model.DateWindow) ([]*model.HabitCompletion, error) {
	completions := []*model.HabitCompletion{}
	query := `SELECT * FROM habit_completions
	          WHERE habit_id = $1 AND date BETWEEN $2 AND $3
	          ORDER BY date ASC`

	err := r.db.Select(&completions, query, habitID, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	return completions, nil
}

func (r *habitCompletionRepository) Count(habitID int64, w model.DateWindow) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM habit_completions WHERE habit_id = $1 AND date BETWEEN $2 AND $3`
	err := r.db.QueryRow(query, habitID, w.Start, w.End).Scan(&count)
	return count, err
}
