package models

import "time"

// DateRange is an inclusive [From, To] window. A zero bound is open.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the window, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// SingleDay reports whether both bounds fall on the same calendar day.
func (r DateRange) SingleDay() bool {
	if r.From.IsZero() || r.To.IsZero() {
		return false
	}
	fy, fm, fd := r.From.Date()
	ty, tm, td := r.To.In(r.From.Location()).Date()
	return fy == ty && fm == tm && fd == td
}
