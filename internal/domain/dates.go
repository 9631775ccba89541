package domain

import (
	"math"
	"time"
)

// DateLayout is the calendar-date format used everywhere in PayGuard.
// Due dates carry no time component.
const DateLayout = "2006-01-02"

// IsValidDate reports whether s is a well-formed YYYY-MM-DD date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// DaysDifference returns the signed number of calendar days from one date to
// another, rounding up partial days. Positive when to is after from.
// Both arguments are YYYY-MM-DD strings; malformed input counts as the zero date.
func DaysDifference(from, to string) int {
	f, _ := time.Parse(DateLayout, from)
	t, _ := time.Parse(DateLayout, to)
	hours := t.Sub(f).Hours()
	return int(math.Ceil(hours / 24))
}

// DaysOverdue returns how many days past its due date a bill is on the given
// day. Never negative: a bill due today or in the future is 0 days overdue.
func DaysOverdue(dueDate, today string) int {
	d := DaysDifference(dueDate, today)
	if d < 0 {
		return 0
	}
	return d
}
