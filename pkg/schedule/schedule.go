// Package schedule generates due dates for recurring tasks and computes
// drag-and-drop reschedules. All calculations preserve the time-of-day and
// location of the anchor date; only calendar days move.
package schedule

import (
	"fmt"
	"time"
)

// Frequency is the recurrence unit of a rule.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Rule describes how a task recurs: every Interval units of Frequency.
type Rule struct {
	Frequency Frequency
	Interval  int
}

// Validate reports whether the rule is usable.
func (r Rule) Validate() error {
	switch r.Frequency {
	case Daily, Weekly, Monthly:
	default:
		return fmt.Errorf("unknown frequency: %q", r.Frequency)
	}

	if r.Interval < 1 {
		return fmt.Errorf("interval must be at least 1, got %d", r.Interval)
	}

	return nil
}

// Occurrences returns the first n due dates of a recurring task anchored at
// start, including start itself. Monthly recurrence anchors on start's
// day-of-month and clamps to the last day of shorter months: a task anchored
// on Jan 31 falls due Feb 28 (or 29), then Mar 31 again.
func Occurrences(start time.Time, r Rule, n int) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("occurrence count must be at least 1, got %d", n)
	}

	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		switch r.Frequency {
		case Daily:
			dates = append(dates, start.AddDate(0, 0, i*r.Interval))
		case Weekly:
			dates = append(dates, start.AddDate(0, 0, i*r.Interval*7))
		case Monthly:
			dates = append(dates, addMonthsClamped(start, i*r.Interval))
		}
	}

	return dates, nil
}

// addMonthsClamped advances t by months, keeping t's day-of-month where the
// target month allows it and clamping to the month's last day otherwise.
// time.AddDate alone would roll Jan 31 + 1 month over into March.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Reschedule moves a due date to the calendar day of target while keeping
// the original time-of-day and location. This is the drop half of a
// drag-and-drop move: the board supplies the day, the task keeps its time.
func Reschedule(due, target time.Time) time.Time {
	year, month, day := target.Date()
	hour, min, sec := due.Clock()

	return time.Date(year, month, day, hour, min, sec, due.Nanosecond(), due.Location())
}

// ShiftSeries shifts every date at or after from by the whole-day delta
// between from and to, leaving earlier dates untouched. Used when moving one
// occurrence of a series should drag the remaining occurrences with it.
func ShiftSeries(dates []time.Time, from, to time.Time) []time.Time {
	days := daysBetween(from, to)

	shifted := make([]time.Time, len(dates))
	for i, d := range dates {
		if d.Before(from) {
			shifted[i] = d
			continue
		}
		shifted[i] = d.AddDate(0, 0, days)
	}

	return shifted
}

// daysBetween returns the signed number of calendar days from a to b,
// ignoring time-of-day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(bu.Sub(au).Hours() / 24)
}
