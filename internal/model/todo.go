package model

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Todo struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Category    string `db:"category" json:"category"`
	Priority    string `db:"priority" json:"priority"`
	DueDate     *int64 `db:"due_date" json:"due_date,omitempty"`
	IsCompleted bool   `db:"is_completed" json:"is_completed"`
	CompletedAt *int64 `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt   int64  `db:"created_at" json:"created_at"`
}

// PriorityRank orders priorities High > Medium > Low; unknown values sort last.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func IsPriority(p string) bool {
	return PriorityRank(p) < 3
}
