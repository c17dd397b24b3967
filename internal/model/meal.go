package model

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

var MealTypes = []string{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

type MealLog struct {
	ID        int64   `db:"id" json:"id"`
	FoodName  string  `db:"food_name" json:"food_name"`
	Calories  float64 `db:"calories" json:"calories"`
	Protein   float64 `db:"protein" json:"protein"`
	Carbs     float64 `db:"carbs" json:"carbs"`
	Fat       float64 `db:"fat" json:"fat"`
	MealType  string  `db:"meal_type" json:"meal_type"`
	ImagePath *string `db:"image_path" json:"image_path,omitempty"`
	Timestamp int64   `db:"timestamp" json:"timestamp"` // ms epoch

	// Computed fields (not in database)
	ImageURL string `db:"-" json:"image_url,omitempty"`
}

// Nutrition is a macro breakdown, used for scan drafts and daily totals.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (n *Nutrition) Add(m *MealLog) {
	n.Calories += m.Calories
	n.Protein += m.Protein
	n.Carbs += m.Carbs
	n.Fat += m.Fat
}

type MealSummary struct {
	Date      string    `json:"date"`
	MealCount int       `json:"meal_count"`
	Totals    Nutrition `json:"totals"`
}

// MealDraft is the result of a food scan, awaiting confirmation.
type MealDraft struct {
	FoodName   string    `json:"food_name"`
	Nutrition  Nutrition `json:"nutrition"`
	Labels     []string  `json:"labels,omitempty"`
	ImageToken string    `json:"image_token"`
	RawReply   string    `json:"raw_reply,omitempty"`
}

func IsMealType(s string) bool {
	for _, t := range MealTypes {
		if t == s {
			return true
		}
	}
	return false
}
