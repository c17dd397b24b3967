// Package streak counts consecutive days of habit completions.
package streak

import (
	"time"

	"github.com/nzoschke/healthmate/internal/model"
)

// MaxDays caps a streak at one year of lookups.
const MaxDays = 365

// Lookup answers whether a habit has a completion on a YYYY-MM-DD date.
type Lookup interface {
	Completed(habitID int64, date string) (bool, error)
}

// LookupFunc adapts a plain function to Lookup.
type LookupFunc func(habitID int64, date string) (bool, error)

func (f LookupFunc) Completed(habitID int64, date string) (bool, error) {
	return f(habitID, date)
}

// Calculate walks backward from the day before today and counts contiguous
// completed days. Today never counts; it is reported separately by callers.
// today must already be in the user's location.
func Calculate(lookup Lookup, habitID int64, today time.Time) (int, error) {
	day := today.AddDate(0, 0, -1)
	count := 0

	for count < MaxDays {
		ok, err := lookup.Completed(habitID, model.DateKey(day))
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		count++
		day = day.AddDate(0, 0, -1)
	}

	return count, nil
}
