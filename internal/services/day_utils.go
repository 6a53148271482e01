package services

import "time"

const dayKeyLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// LocalDay is the calendar day of value as seen in location, expressed as UTC
// midnight so it compares with day keys.
func LocalDay(value time.Time, location *time.Location) time.Time {
	year, month, day := DateAtLocation(value, location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDayKey parses a YYYY-MM-DD key as a UTC calendar day.
func ParseDayKey(raw string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, raw, time.UTC)
}

func DayKey(day time.Time) string {
	if day.IsZero() {
		return ""
	}
	return day.Format(dayKeyLayout)
}

func addDays(day time.Time, days int) time.Time {
	return day.AddDate(0, 0, days)
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a time.Time, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	return a.Format(dayKeyLayout) == b.Format(dayKeyLayout)
}

func betweenCalendarDaysInclusive(day time.Time, start time.Time, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !day.Before(start) && !day.After(end)
}
