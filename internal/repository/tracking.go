package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/nzoschke/healthmate/internal/model"
)

var (
	ErrTrackingNotFound = errors.New("tracking not found")
)

type TrackingRepository interface {
	ByDate(date string) (*model.DailyTracking, error)
	Between(w model.DateWindow) ([]*model.DailyTracking, error)
	Upsert(t *model.DailyTracking) error
	AddWater(date string, delta int, timestamp int64) (*model.DailyTracking, error)
}

type trackingRepository struct {
	db *sqlx.DB
}

func NewTrackingRepository(db *sqlx.DB) TrackingRepository {
	return &trackingRepository{db: db}
}

func (r *trackingRepository) ByDate(date string) (*model.DailyTracking, error) {
	t := &model.DailyTracking{}
	query := `SELECT * FROM daily_tracking WHERE date = $1`

	err := r.db.Get(t, query, date)
	if err == sql.ErrNoRows {
		return nil, ErrTrackingNotFound
	}

	return t, err
}

// Between returns days with start <= date <= end, oldest first.
func (r *trackingRepository) Between(w model.DateWindow) ([]*model.DailyTracking, error) {
	days := []*model.DailyTracking{}
	query := `SELECT * FROM daily_tracking WHERE date BETWEEN $1 AND $2 ORDER BY date ASC`

	err := r.db.Select(&days, query, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	return days, nil
}

func (r *trackingRepository) Upsert(t *model.DailyTracking) error {
	query := `INSERT INTO daily_tracking (date, water_glasses, sleep_hours, timestamp)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (date) DO UPDATE
	          SET water_glasses = excluded.water_glasses,
	              sleep_hours = excluded.sleep_hours,
	              timestamp = excluded.timestamp`

	_, err := r.db.Exec(query, t.Date, t.WaterGlasses, t.SleepHours, t.Timestamp)
	return err
}

// AddWater adjusts the glass count in one statement, clamping at zero.
func (r *trackingRepository) AddWater(date string, delta int, timestamp int64) (*model.DailyTracking, error) {
	initial := max(delta, 0)

	t := &model.DailyTracking{}
	query := `INSERT INTO daily_tracking (date, water_glasses, sleep_hours, timestamp)
	          VALUES ($1, $2, 0, $4)
	          ON CONFLICT (date) DO UPDATE
	          SET water_glasses = CASE
	                  WHEN daily_tracking.water_glasses + $3 < 0 THEN 0
	                  ELSE daily_tracking.water_glasses + $3
	              END,
	              timestamp = excluded.timestamp
	          RETURNING date, water_glasses, sleep_hours, timestamp`

	err := r.db.Get(t, query, date, initial, delta, timestamp)
	if err != nil {
		return nil, err
	}

	return t, nil
}
