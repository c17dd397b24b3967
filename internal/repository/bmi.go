package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/model"
)

var (
	ErrBMISampleNotFound = errors.New("bmi sample not found")
)

type BMIRepository interface {
	Create(sample *model.BMISample) error
	ByID(id int64) (*model.BMISample, error)
	Latest() (*model.BMISample, error)
	Between(w model.TimeWindow) ([]*model.BMISample, error)
	Delete(id int64) error
	DeleteAll() (int64, error)
}

type bmiRepository struct {
	db *sqlx.DB
}

func NewBMIRepository(db *sqlx.DB) BMIRepository {
	return &bmiRepository{db: db}
}

func (r *bmiRepository) Create(sample *model.BMISample) error {
	query := `INSERT INTO bmi_samples (weight_kg, height_cm, bmi, category, timestamp)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	return r.db.QueryRow(query,
		sample.WeightKg,
		sample.HeightCm,
		sample.BMI,
		sample.Category,
		sample.Timestamp,
	).Scan(&sample.ID)
}

func (r *bmiRepository) ByID(id int64) (*model.BMISample, error) {
	sample := &model.BMISample{}
	query := `SELECT * FROM bmi_samples WHERE id = $1`

	err := r.db.Get(sample, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrBMISampleNotFound
	}

	return sample, err
}

func (r *bmiRepository) Latest() (*model.BMISample, error) {
	sample := &model.BMISample{}
	query := `SELECT * FROM bmi_samples ORDER BY timestamp DESC, id DESC LIMIT 1`

	err := r.db.Get(sample, query)
	if err == sql.ErrNoRows {
		return nil, ErrBMISampleNotFound
	}

	return sample, err
}

// Between returns samples with start <= timestamp <= end, newest first.
func (r *bmiRepository) Between(w model.TimeWindow) ([]*model.BMISample, error) {
	samples := []*model.BMISample{}
	query := `SELECT * FROM bmi_samples
	          WHERE timestamp BETWEEN $1 AND $2
	          ORDER BY timestamp DESC, id DESC`

	err := r.db.Select(&samples, query, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	return samples, nil
}

func (r *bmiRepository) Delete(id int64) error {
	query := `DELETE FROM bmi_samples WHERE id = $1`
	result, err := r.db.Exec(query, id)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBMISampleNotFound
	}

	return nil
}

func (r *bmiRepository) DeleteAll() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM bmi_samples`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
