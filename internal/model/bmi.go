package model

const (
	BMICategoryUnderweight = "Underweight"
	BMICategoryNormal      = "Normal"
	BMICategoryOverweight  = "Overweight"
	BMICategoryObese       = "Obese"
)

type BMISample struct {
	ID        int64   `db:"id" json:"id"`
	WeightKg  float64 `db:"weight_kg" json:"weight_kg"`
	HeightCm  float64 `db:"height_cm" json:"height_cm"`
	BMI       float64 `db:"bmi" json:"bmi"`
	Category  string  `db:"category" json:"category"`
	Timestamp int64   `db:"timestamp" json:"timestamp"` // ms epoch
}
