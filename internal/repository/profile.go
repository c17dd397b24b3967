package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	Create(profile *model.Profile) error
	ByID(id int64) (*model.Profile, error)
	Profiles() ([]*model.Profile, error)
	Active() (*model.Profile, error)
	Update(profile *model.Profile) error
	SetActive(id int64) error
	Delete(id int64) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	query := `INSERT INTO profiles (name, age, gender, height_cm, target_weight_kg, goal, activity_level, avatar_color, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	return r.db.QueryRow(query,
		profile.Name,
		profile.Age,
		profile.Gender,
		profile.HeightCm,
		profile.TargetWeightKg,
		profile.Goal,
		profile.ActivityLevel,
		profile.AvatarColor,
		false,
		profile.CreatedAt,
	).Scan(&profile.ID)
}

func (r *profileRepository) ByID(id int64) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE id = $1`, id)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Profiles() ([]*model.Profile, error) {
	profiles := []*model.Profile{}
	err := r.db.Select(&profiles, `SELECT * FROM profiles ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepository) Active() (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE is_active = $1`, true)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Update(profile *model.Profile) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET name = $1, age = $2, gender = $3, height_cm = $4, target_weight_kg = $5,
		    goal = $6, activity_level = $7, avatar_color = $8
		WHERE id = $9
	`, profile.Name, profile.Age, profile.Gender, profile.HeightCm, profile.TargetWeightKg,
		profile.Goal, profile.ActivityLevel, profile.AvatarColor, profile.ID)

	return checkAffected(result, err, ErrProfileNotFound)
}

// SetActive deactivates every profile and activates id in one transaction.
func (r *profileRepository) SetActive(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE profiles SET is_active = $1 WHERE is_active = $2`, false, true)
	if err != nil {
		return fmt.Errorf("failed to deactivate profiles: %w", err)
	}

	result, err := tx.Exec(`UPDATE profiles SET is_active = $1 WHERE id = $2`, true, id)
	err = checkAffected(result, err, ErrProfileNotFound)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *profileRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = $1`, id)
	return checkAffected(result, err, ErrProfileNotFound)
}
