package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrPreferenceNotFound = errors.New("preference not found")
)

type PreferenceRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(key string) (string, error) {
	var value string
	err := r.db.Get(&value, `SELECT value FROM preferences WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return "", ErrPreferenceNotFound
	}

	return value, err
}

func (r *preferenceRepository) Set(key, value string) error {
	query := `INSERT INTO preferences (key, value) VALUES ($1, $2)
	          ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	_, err := r.db.Exec(query, key, value)
	return err
}
