// Package reports turns transaction rows into chart series: a bucketed
// expense-over-time series and a per-category expense breakdown.
package reports

import (
	"errors"
	"fmt"
	"time"

	"spendwize/internal/models"
)

// ErrUnknownRange is returned for a range selector other than week, month
// or year.
var ErrUnknownRange = errors.New("reports: unknown range")

// Range selects the reporting window.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// ParseRange validates s as a Range.
func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case RangeWeek, RangeMonth, RangeYear:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
}

// Unit is the bucket width of a window.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitMonth Unit = "month"
)

const (
	dayKeyLayout     = "2006-01-02"
	monthKeyLayout   = "2006-01"
	dayLabelLayout   = "Jan 2"
	monthLabelLayout = "Jan 2006"
)

// Window is an inclusive span of calendar dates split into buckets. From
// and To are UTC midnights of their calendar days.
type Window struct {
	Range Range     `json:"range"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
	Unit  Unit      `json:"unit"`
}

// NewWindow builds the window for r ending today. Today is the calendar day
// of now in now's own location, so callers pick the reporting time zone by
// passing now.In(loc).
func NewWindow(r Range, now time.Time) (Window, error) {
	today := models.CalendarDate(now)
	w := Window{Range: r, To: today}

	switch r {
	case RangeWeek:
		w.From = today.AddDate(0, 0, -6)
		w.Unit = UnitDay
	case RangeMonth:
		w.From = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		w.Unit = UnitDay
	case RangeYear:
		w.From = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		w.Unit = UnitMonth
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownRange, r)
	}
	return w, nil
}

// Contains reports whether the calendar day of t lies in [From, To].
func (w Window) Contains(t time.Time) bool {
	d := models.CalendarDate(t)
	return !d.Before(w.From) && !d.After(w.To)
}

// Key returns the bucket key of the calendar day of t.
func (w Window) Key(t time.Time) string {
	d := models.CalendarDate(t)
	if w.Unit == UnitMonth {
		return d.Format(monthKeyLayout)
	}
	return d.Format(dayKeyLayout)
}

// Label renders a bucket key for display. Keys that do not parse are
// returned unchanged.
func (w Window) Label(key string) string {
	if w.Unit == UnitMonth {
		t, err := time.Parse(monthKeyLayout, key)
		if err != nil {
			return key
		}
		return t.Format(monthLabelLayout)
	}
	t, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format(dayLabelLayout)
}

// Keys enumerates every bucket key in the window in ascending order.
func (w Window) Keys() []string {
	var keys []string
	if w.Unit == UnitMonth {
		last := time.Date(w.To.Year(), w.To.Month(), 1, 0, 0, 0, 0, time.UTC)
		for d := time.Date(w.From.Year(), w.From.Month(), 1, 0, 0, 0, 0, time.UTC); !d.After(last); d = d.AddDate(0, 1, 0) {
			keys = append(keys, d.Format(monthKeyLayout))
		}
		return keys
	}
	for d := w.From; !d.After(w.To); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(dayKeyLayout))
	}
	return keys
}
