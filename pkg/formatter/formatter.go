package formatter

import (
	"fmt"
	"strings"
	"time"
)

// Relative age units as shown to readers.
const (
	unitMinute = "phút"
	unitHour   = "giờ"
	unitDay    = "ngày"
	unitMonth  = "tháng"
	unitYear   = "năm"
)

// Relative age modes accepted by ParseRelativeAgeMode.
const (
	ModeFixed  = "fixed"
	ModeLegacy = "legacy"
)

// RelativeAgeFunc renders the time elapsed between createdAt and now.
type RelativeAgeFunc func(now, createdAt time.Time) string

// ParseRelativeAgeMode returns the relative age function for a config value.
// An empty mode selects the fixed computation.
func ParseRelativeAgeMode(mode string) (RelativeAgeFunc, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeFixed:
		return RelativeAge, nil
	case ModeLegacy:
		return LegacyRelativeAge, nil
	default:
		return nil, fmt.Errorf("unknown relative age mode %q", mode)
	}
}

// RelativeAge converts the age of a post into a short label.
// Example: created 5 hours before now -> "5 giờ"
//
// Thresholds: minutes below 61, hours below 25, days below 31, calendar
// months below 13, then calendar years.
func RelativeAge(now, createdAt time.Time) string {
	e := elapsedSince(now, createdAt)
	switch {
	case e.minutes < 61:
		return label(e.minutes, unitMinute)
	case e.hours < 25:
		return label(e.hours, unitHour)
	case e.days < 31:
		return label(e.days, unitDay)
	case e.months < 13:
		return label(e.months, unitMonth)
	default:
		return label(e.months/12, unitYear)
	}
}

// LegacyRelativeAge keeps the output of the first web client, whose month
// branch compared days against 13 instead of months. That branch can never
// fire once days reach 31, so every age of a month or more is rendered in
// years, including "0 năm" for ages below a year.
func LegacyRelativeAge(now, createdAt time.Time) string {
	e := elapsedSince(now, createdAt)
	switch {
	case e.minutes < 61:
		return label(e.minutes, unitMinute)
	case e.hours < 25:
		return label(e.hours, unitHour)
	case e.days < 31:
		return label(e.days, unitDay)
	case e.days < 13:
		return label(e.months, unitMonth)
	default:
		return label(e.months/12, unitYear)
	}
}

type elapsed struct {
	minutes int
	hours   int
	days    int
	months  int
}

func elapsedSince(now, createdAt time.Time) elapsed {
	d := now.Sub(createdAt)
	if d < 0 {
		return elapsed{}
	}
	return elapsed{
		minutes: int(d / time.Minute),
		hours:   int(d / time.Hour),
		days:    int(d / (24 * time.Hour)),
		months:  monthsBetween(createdAt.In(now.Location()), now),
	}
}

// monthsBetween counts whole calendar months from `from` to `to`.
func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() || (to.Day() == from.Day() && clock(to) < clock(from)) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func clock(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

func label(n int, unit string) string {
	return fmt.Sprintf("%d %s", n, unit)
}
