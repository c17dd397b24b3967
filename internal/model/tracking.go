package model

type DailyTracking struct {
	Date         string  `db:"date" json:"date"` // YYYY-MM-DD
	WaterGlasses int     `db:"water_glasses" json:"water_glasses"`
	SleepHours   float64 `db:"sleep_hours" json:"sleep_hours"`
	Timestamp    int64   `db:"timestamp" json:"timestamp"`
}
