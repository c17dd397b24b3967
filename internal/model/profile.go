package model

type Profile struct {
	ID             int64   `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Age            int     `db:"age" json:"age"`
	Gender         string  `db:"gender" json:"gender"`
	HeightCm       float64 `db:"height_cm" json:"height_cm"`
	TargetWeightKg float64 `db:"target_weight_kg" json:"target_weight_kg"`
	Goal           string  `db:"goal" json:"goal"`
	ActivityLevel  string  `db:"activity_level" json:"activity_level"`
	AvatarColor    string  `db:"avatar_color" json:"avatar_color"`
	IsActive       bool    `db:"is_active" json:"is_active"`
	CreatedAt      int64   `db:"created_at" json:"created_at"`
}
