package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/model"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	Create(habit *model.Habit) error
	ByID(id int64) (*model.Habit, error)
	Habits(activeOnly bool) ([]*model.Habit, error)
	Update(habit *model.Habit) error
	Deactivate(id int64) error
	Delete(id int64) error
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(habit *model.Habit) error {
	query := `INSERT INTO habits (name, description, category, icon, color, frequency, target_days_per_week, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	return r.db.QueryRow(query,
		habit.Name,
		habit.Description,
		habit.Category,
		habit.Icon,
		habit.Color,
		habit.Frequency,
		habit.TargetDaysPerWeek,
		habit.IsActive,
		habit.CreatedAt,
	).Scan(&habit.ID)
}

func (r *habitRepository) ByID(id int64) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1`

	err := r.db.Get(habit, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}

	return habit, err
}

func (r *habitRepository) Habits(activeOnly bool) ([]*model.Habit, error) {
	habits := []*model.Habit{}

	var err error
	if activeOnly {
		err = r.db.Select(&habits, `SELECT * FROM habits WHERE is_active = $1 ORDER BY created_at ASC, id ASC`, true)
	} else {
		err = r.db.Select(&habits, `SELECT * FROM habits ORDER BY created_at ASC, id ASC`)
	}
	if err != nil {
		return nil, err
	}

	return habits, nil
}

func (r *habitRepository) Update(habit *model.Habit) error {
	query := `UPDATE habits
	          SET name = $1, description = $2, category = $3, icon = $4, color = $5,
	              frequency = $6, target_days_per_week = $7, is_active = $8
	          WHERE id = $9`

	result, err := r.db.Exec(query,
		habit.Name,
		habit.Description,
		habit.Category,
		habit.Icon,
		habit.Color,
		habit.Frequency,
		habit.TargetDaysPerWeek,
		habit.IsActive,
		habit.ID,
	)
	return checkAffected(result, err, ErrHabitNotFound)
}

func (r *habitRepository) Deactivate(id int64) error {
	result, err := r.db.Exec(`UPDATE habits SET is_active = $1 WHERE id = $2`, false, id)
	return checkAffected(result, err, ErrHabitNotFound)
}

// Delete removes the habit; its completions go with it.
func (r *habitRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM habits WHERE id = $1`, id)
	return checkAffected(result, err, ErrHabitNotFound)
}

// checkAffected maps a zero-row write to notFound.
func checkAffected(result sql.Result, err error, notFound error) error {
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
