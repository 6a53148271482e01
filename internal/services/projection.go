package services

import "time"

const DefaultPredictionCount = 3

// ProjectFutureCycles repeats the historical averages forward from the last
// period start for cycles 0..count, stopping at the first projected start past
// rangeEnd. Period marks need only the average cycle length; ovulation marks
// also need the ovulation offset; fertile marks need both offsets.
func ProjectFutureCycles(averages *HistoricalAverages, count int, rangeStart time.Time, rangeEnd time.Time) []CalendarMark {
	if averages == nil || averages.AvgCycleLength == nil || averages.LastPeriodStart.IsZero() || count < 0 {
		return []CalendarMark{}
	}
	cycleLength := *averages.AvgCycleLength
	if cycleLength <= 0 {
		return []CalendarMark{}
	}

	marks := make([]CalendarMark, 0)
	emit := func(day time.Time, category MarkCategory) {
		if betweenCalendarDaysInclusive(day, rangeStart, rangeEnd) {
			marks = append(marks, CalendarMark{Date: day, Category: category})
		}
	}

	for cycle := 0; cycle <= count; cycle++ {
		start := addDays(averages.LastPeriodStart, cycle*cycleLength)
		if start.After(rangeEnd) {
			break
		}

		for offset := 0; offset < periodLengthDays; offset++ {
			emit(addDays(start, offset), MarkPredictedPeriod)
		}

		if averages.AvgOvulationOffset == nil {
			continue
		}
		ovulation := addDays(start, *averages.AvgOvulationOffset)

		if averages.AvgFertileOffset != nil {
			periodEnd := addDays(start, periodLengthDays-1)
			forEachDay(addDays(periodEnd, *averages.AvgFertileOffset), ovulation, func(day time.Time) {
				emit(day, MarkPredictedFertile)
			})
		}

		emit(ovulation, MarkPredictedOvulation)
	}

	return marks
}

// NextPeriodStart is the first projected period start after today.
func NextPeriodStart(averages *HistoricalAverages, today time.Time) (time.Time, bool) {
	if averages == nil || averages.AvgCycleLength == nil || *averages.AvgCycleLength <= 0 || averages.LastPeriodStart.IsZero() {
		return time.Time{}, false
	}
	next := averages.LastPeriodStart
	for !next.After(today) {
		next = addDays(next, *averages.AvgCycleLength)
	}
	return next, true
}
