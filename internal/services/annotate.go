package services

import "time"

// Annotate maps cycles onto paint instructions within [rangeStart, rangeEnd].
// Period days are painted first and never receive another cycle category.
func Annotate(cycles []Cycle, rangeStart time.Time, rangeEnd time.Time) []CalendarMark {
	set := newMarkSet()
	inRange := func(day time.Time) bool {
		return betweenCalendarDaysInclusive(day, rangeStart, rangeEnd)
	}
	paint := func(day time.Time, category MarkCategory) {
		if !inRange(day) || set.isPeriodDay(day) {
			return
		}
		set.add(day, category)
	}

	for _, cycle := range cycles {
		forEachDay(cycle.PeriodStart, cycle.PeriodEnd, func(day time.Time) {
			if !inRange(day) || set.isPeriodDay(day) {
				return
			}
			if sameCalendarDay(day, cycle.PeriodStart) {
				set.add(day, MarkPeriodStart)
				return
			}
			set.add(day, MarkPeriod)
		})
	}

	for _, cycle := range cycles {
		if cycle.HasFertileWindow() {
			forEachDay(cycle.FertileStart, cycle.FertileEnd, func(day time.Time) {
				paint(day, MarkFertile)
			})
		}
	}

	for _, cycle := range cycles {
		if !cycle.SurgeDate.IsZero() {
			paint(cycle.SurgeDate, MarkSurge)
		}
	}

	for _, cycle := range cycles {
		if !cycle.HasOvulation() || !inRange(cycle.OvulationDate) || set.isPeriodDay(cycle.OvulationDate) {
			continue
		}
		set.remove(cycle.OvulationDate, MarkFertile)
		set.add(cycle.OvulationDate, MarkOvulation)
	}

	for _, cycle := range cycles {
		if !cycle.Completed || !cycle.HasOvulation() {
			continue
		}
		forEachDay(addDays(cycle.OvulationDate, 1), cycle.End, func(day time.Time) {
			paint(day, MarkLuteal)
		})
	}

	return set.marks()
}

// AnnotateObservations emits symptom and temperature markers for logged days.
func AnnotateObservations(observations []Observation, rangeStart time.Time, rangeEnd time.Time) []CalendarMark {
	set := newMarkSet()
	for _, observation := range observations {
		if !betweenCalendarDaysInclusive(observation.Date, rangeStart, rangeEnd) {
			continue
		}
		symptoms := observation.Symptoms
		if symptoms.Spotting {
			set.add(observation.Date, MarkSpotting)
		}
		if symptoms.Cramps {
			set.add(observation.Date, MarkCramps)
		}
		if symptoms.BreastChanges {
			set.add(observation.Date, MarkBreastChanges)
		}
		if symptoms.Digestive {
			set.add(observation.Date, MarkDigestive)
		}
		if symptoms.Intercourse {
			set.add(observation.Date, MarkIntercourse)
		}
		if observation.HasTemperature {
			set.add(observation.Date, MarkTemperature)
		}
	}
	return set.marks()
}
