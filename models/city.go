package models

import (
	"strconv"
	"strings"
)

// City is a serviced location with its working calendar.
type City struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	NameIt  string `db:"name_it" json:"nameIt,omitempty"`
	NameEn  string `db:"name_en" json:"nameEn,omitempty"`
	Enabled bool   `db:"enabled" json:"enabled"`
	// WorkingDays is a comma-separated set of ISO weekday numbers,
	// 1=Monday .. 7=Sunday, e.g. "1,2,3,4,5,6".
	WorkingDays string `db:"working_days" json:"workingDays"`
	StartTime   string `db:"start_time" json:"startTime"` // "HH:MM", must precede EndTime
	EndTime     string `db:"end_time" json:"endTime"`
}

// WorksOnWeekday reports whether the given ISO weekday (1=Monday) is in the
// city's working-day set.
func (c City) WorksOnWeekday(day int) bool {
	for _, part := range strings.Split(c.WorkingDays, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n == day {
			return true
		}
	}
	return false
}
