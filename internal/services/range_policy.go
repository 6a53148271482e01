package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrRangeFromDateInvalid = errors.New("invalid from date")
	ErrRangeToDateInvalid   = errors.New("invalid to date")
	ErrRangeInvalid         = errors.New("invalid range")
	ErrMonthInvalid         = errors.New("invalid month")
	ErrRangeTooLong         = errors.New("range too long")
)

const maxDisplayRangeDays = 3 * 366

// ParseDisplayRange parses an inclusive YYYY-MM-DD range for calendar output.
func ParseDisplayRange(rawFrom string, rawTo string) (time.Time, time.Time, error) {
	from, err := ParseDayKey(strings.TrimSpace(rawFrom))
	if err != nil {
		return time.Time{}, time.Time{}, ErrRangeFromDateInvalid
	}
	to, err := ParseDayKey(strings.TrimSpace(rawTo))
	if err != nil {
		return time.Time{}, time.Time{}, ErrRangeToDateInvalid
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrRangeInvalid
	}
	if daysBetween(from, to) > maxDisplayRangeDays {
		return time.Time{}, time.Time{}, ErrRangeTooLong
	}
	return from, to, nil
}

// ParseMonthValue parses YYYY-MM; an empty value selects the month of now.
func ParseMonthValue(raw string, now time.Time) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return NewMonthView(DateAtLocation(now, time.UTC)).Month, nil
	}
	parsed, err := time.ParseInLocation("2006-01", value, time.UTC)
	if err != nil {
		return time.Time{}, ErrMonthInvalid
	}
	return parsed, nil
}
