package services

import "time"

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseFertile    = "fertile"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
	PhaseUnknown    = "unknown"
)

type TodaySummary struct {
	CycleDay          int
	DaysPastOvulation int
	HasOvulation      bool
	Phase             string
}

// DescribeToday places today within the live cycle. CycleDay is 0 when no
// period start precedes today.
func DescribeToday(model CycleModel, now time.Time) TodaySummary {
	summary := TodaySummary{Phase: PhaseUnknown}
	today := DateAtLocation(now, time.UTC)

	cycle, ok := cycleContaining(model.Cycles, today)
	if !ok {
		return summary
	}

	summary.CycleDay = daysBetween(cycle.PeriodStart, today) + 1
	if cycle.HasOvulation() && !today.Before(cycle.OvulationDate) {
		summary.HasOvulation = true
		summary.DaysPastOvulation = daysBetween(cycle.OvulationDate, today)
	}
	summary.Phase = detectPhase(cycle, today)
	return summary
}

func cycleContaining(cycles []Cycle, today time.Time) (Cycle, bool) {
	for index := len(cycles) - 1; index >= 0; index-- {
		cycle := cycles[index]
		if today.Before(cycle.PeriodStart) {
			continue
		}
		if cycle.Completed && today.After(cycle.End) {
			return Cycle{}, false
		}
		return cycle, true
	}
	return Cycle{}, false
}

func detectPhase(cycle Cycle, today time.Time) string {
	switch {
	case betweenCalendarDaysInclusive(today, cycle.PeriodStart, cycle.PeriodEnd):
		return PhaseMenstrual
	case !cycle.HasOvulation():
		return PhaseUnknown
	case sameCalendarDay(today, cycle.OvulationDate):
		return PhaseOvulation
	case betweenCalendarDaysInclusive(today, cycle.FertileStart, cycle.FertileEnd):
		return PhaseFertile
	case today.Before(cycle.OvulationDate):
		return PhaseFollicular
	default:
		return PhaseLuteal
	}
}
