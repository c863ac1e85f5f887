package services

import (
	"time"

	"github.com/ampliar/clinic-data-gateway/internal/core/domain"
	"github.com/ampliar/clinic-data-gateway/internal/utils"
)

const calendarCells = 42 // six full weeks

// BuildMonth derives the month grid for the month containing reference. The
// grid starts on the Sunday on or before the first of the month and always
// spans exactly six weeks, so the view never reflows between months.
// Appointments are bucketed by exact calendar-date match against their Date
// field.
func BuildMonth(reference time.Time, appointments []domain.Appointment, selected string, now time.Time) *domain.CalendarMonth {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))

	byDate := make(map[string][]domain.Appointment)
	for _, a := range appointments {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	today := utils.DateString(now)

	days := make([]domain.CalendarDay, 0, calendarCells)
	for i := 0; i < calendarCells; i++ {
		day := start.AddDate(0, 0, i)
		key := utils.DateString(day)

		cell := byDate[key]
		if cell == nil {
			cell = []domain.Appointment{}
		}

		days = append(days, domain.CalendarDay{
			Date:           day,
			Appointments:   cell,
			IsCurrentMonth: day.Month() == reference.Month() && day.Year() == reference.Year(),
			IsToday:        key == today,
			IsSelected:     selected != "" && key == selected,
		})
	}

	return &domain.CalendarMonth{
		Year:  reference.Year(),
		Month: reference.Month(),
		Days:  days,
	}
}
