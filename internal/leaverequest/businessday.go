package leaverequest

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountBusinessDays counts the calendar days in [start, end] that are
// neither weekend days nor listed holidays. Dates are compared at day
// granularity in UTC.
func CountBusinessDays(start, end time.Time, holidays []time.Time) decimal.Decimal {
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[dayKey(h)] = true
	}

	count := int64(0)
	for d := truncateToDay(start); !d.After(truncateToDay(end)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if holidaySet[dayKey(d)] {
			continue
		}
		count++
	}

	return decimal.NewFromInt(count)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
