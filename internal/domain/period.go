package domain

import (
	"fmt"
	"time"
)

// Period is a symbolic reporting window anchored on "now".
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodTotal   Period = "total"
)

// ParsePeriod validates a period string. An empty string defaults to total.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly, PeriodTotal:
		return Period(s), nil
	case "":
		return PeriodTotal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// Window resolves the period into an inclusive [start, end] date window
// anchored on now. Weeks run Monday through Sunday. bounded is false for
// the total period, which covers all of history.
func (p Period) Window(now time.Time) (start, end Date, bounded bool) {
	today := DateOf(now)

	switch p {
	case PeriodDaily:
		return today, today, true
	case PeriodWeekly:
		// Normalize Sunday to 7 so the week starts on Monday.
		wd := int(today.Weekday())
		if wd == 0 {
			wd = 7
		}
		start = today.AddDays(-(wd - 1))
		return start, start.AddDays(6), true
	case PeriodMonthly:
		start = NewDate(today.Year(), today.Month(), 1)
		return start, NewDate(today.Year(), today.Month()+1, 0), true
	case PeriodYearly:
		return NewDate(today.Year(), time.January, 1), NewDate(today.Year(), time.December, 31), true
	default:
		return Date{}, Date{}, false
	}
}

// Contains reports whether d falls inside the window p resolves to at now.
func (p Period) Contains(d Date, now time.Time) bool {
	start, end, bounded := p.Window(now)
	if !bounded {
		return true
	}
	return !d.Before(start) && !d.After(end)
}
