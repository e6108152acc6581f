// Package availability computes open time slots for a city and date from
// its working-hours configuration and blocked-slot records. Slot granularity
// is fixed at one hour.
package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cleanitalia/models"
)

// NotWorkingDayMessage is returned alongside an empty slot list when the
// requested date falls outside the city's working-day set.
const NotWorkingDayMessage = "not a working day"

// parseHHMM converts "HH:MM" into minutes from midnight.
func parseHHMM(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// ComputeSlots enumerates one "HH:00" slot per whole hour between the city's
// working-hours start and end, excluding hours blocked for that date. A
// blocked record with no time blocks the entire day. The returned message is
// non-empty only when the date is not a working day.
func ComputeSlots(city models.City, date string, blocked []models.BlockedSlot) ([]string, string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, "", fmt.Errorf("invalid date %q: %w", date, err)
	}

	// time.Weekday has Sunday=0; the working-day set uses 1=Monday..7=Sunday.
	isoDay := int(day.Weekday())
	if isoDay == 0 {
		isoDay = 7
	}
	if !city.WorksOnWeekday(isoDay) {
		return []string{}, NotWorkingDayMessage, nil
	}

	startMin, err := parseHHMM(city.StartTime)
	if err != nil {
		return nil, "", err
	}
	endMin, err := parseHHMM(city.EndTime)
	if err != nil {
		return nil, "", err
	}

	blockedHours := make(map[int]bool)
	for _, b := range blocked {
		if b.Time == "" {
			// Whole day blocked.
			return []string{}, "", nil
		}
		if min, err := parseHHMM(b.Time); err == nil {
			blockedHours[min/60] = true
		}
	}

	slots := []string{}
	firstHour := (startMin + 59) / 60
	for h := firstHour; h*60 < endMin; h++ {
		if blockedHours[h] {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots, "", nil
}
