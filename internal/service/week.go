package service

import "time"

// WeekForDate estimates the NFL week for t from the calendar: week 1 starts
// on the Tuesday before the first Thursday of September. Dates before that
// count as week 1.
func WeekForDate(t time.Time) int {
	firstSeptember := time.Date(t.Year(), time.September, 1, 0, 0, 0, 0, t.Location())
	offset := (int(time.Thursday) - int(firstSeptember.Weekday()) + 7) % 7
	start := firstSeptember.AddDate(0, 0, offset-2)

	if t.Before(start) {
		return 1
	}
	days := int(t.Sub(start).Hours() / 24)
	return days/7 + 1
}
