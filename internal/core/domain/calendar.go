package domain

import "time"

// CalendarDay is one cell of the month grid. It is always derived fresh from
// the current appointment cache and never persisted.
type CalendarDay struct {
	Date           time.Time     `json:"date"`
	Appointments   []Appointment `json:"appointments"`
	IsCurrentMonth bool          `json:"isCurrentMonth"`
	IsToday        bool          `json:"isToday"`
	IsSelected     bool          `json:"isSelected"`
}

// CalendarMonth always holds exactly 42 days: six full weeks anchored on the
// Sunday on or before the first of the month.
type CalendarMonth struct {
	Year  int           `json:"year"`
	Month time.Month    `json:"month"`
	Days  []CalendarDay `json:"days"`
}
