package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/model"
)

var (
	ErrMealNotFound = errors.New("meal not found")
)

type MealRepository interface {
	Create(meal *model.MealLog) error
	ByID(id int64) (*model.MealLog, error)
	Between(w model.TimeWindow) ([]*model.MealLog, error)
	ImagePaths() ([]string, error)
	Delete(id int64) error
	DeleteAll() (int64, error)
}

type mealRepository struct {
	db *sqlx.DB
}

func NewMealRepository(db *sqlx.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(meal *model.MealLog) error {
	query := `INSERT INTO meal_logs (food_name, calories, protein, carbs, fat, meal_type, image_path, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	return r.db.QueryRow(query,
		meal.FoodName,
		meal.Calories,
		meal.Protein,
		meal.Carbs,
		meal.Fat,
		meal.MealType,
		meal.ImagePath,
		meal.Timestamp,
	).Scan(&meal.ID)
}

func (r *mealRepository) ByID(id int64) (*model.MealLog, error) {
	meal := &model.MealLog{}
	query := `SELECT * FROM meal_logs WHERE id = $1`

	err := r.db.Get(meal, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrMealNotFound
	}

	return meal, err
}

// Between returns meals with start <= timestamp <= end, newest first.
func (r *mealRepository) Between(w model.TimeWindow) ([]*model.MealLog, error) {
	meals := []*model.MealLog{}
	query := `SELECT * FROM meal_logs
	          WHERE timestamp BETWEEN $1 AND $2
	          ORDER BY timestamp DESC, id DESC`

	err := r.db.Select(&meals, query, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	return meals, nil
}

// ImagePaths lists the stored image keys of all meals.
func (r *mealRepository) ImagePaths() ([]string, error) {
	paths := []string{}
	query := `SELECT image_path FROM meal_logs WHERE image_path IS NOT NULL AND image_path <> ''`

	err := r.db.Select(&paths, query)
	if err != nil {
		return nil, err
	}

	return paths, nil
}

func (r *mealRepository) Delete(id int64) error {
	query := `DELETE FROM meal_logs WHERE id = $1`
	result, err := r.db.Exec(query, id)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMealNotFound
	}

	return nil
}

func (r *mealRepository) DeleteAll() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM meal_logs`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
