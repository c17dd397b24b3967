package model

import (
	"errors"
	"math"
	"time"
)

// DateLayout is the day-granularity key used by completions and daily tracking.
const DateLayout = "2006-01-02"

var ErrInvalidWindow = errors.New("window start is after end")

// TimeWindow is an inclusive range of millisecond epoch timestamps.
type TimeWindow struct {
	Start int64
	End   int64
}

func FullTimeWindow() TimeWindow {
	return TimeWindow{Start: 0, End: math.MaxInt64}
}

// DayWindow covers one calendar day of t in loc, both ends inclusive.
func DayWindow(t time.Time, loc *time.Location) TimeWindow {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return TimeWindow{Start: start.UnixMilli(), End: end.UnixMilli() - 1}
}

func (w TimeWindow) Validate() error {
	if w.Start > w.End {
		return ErrInvalidWindow
	}
	return nil
}

// DateWindow is an inclusive range of YYYY-MM-DD keys. Keys compare lexically.
type DateWindow struct {
	Start string
	End   string
}

func FullDateWindow() DateWindow {
	return DateWindow{Start: "0000-01-01", End: "9999-12-31"}
}

func (w DateWindow) Validate() error {
	if w.Start > w.End {
		return ErrInvalidWindow
	}
	return nil
}

// DateKey formats t as a calendar date in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDateKey(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
