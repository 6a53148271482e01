package services

import (
	"math"
	"sort"
	"time"
)

const (
	periodLengthDays       = 5
	fertileBackfillDays    = 5
	ovulationAfterSurgeDay = 1
)

// Cycle spans [PeriodStart, next PeriodStart) when completed, or
// [PeriodStart, now] for the live cycle. Zero dates mean the landmark was not
// detected.
type Cycle struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	End           time.Time
	SurgeDate     time.Time
	OvulationDate time.Time
	FertileStart  time.Time
	FertileEnd    time.Time
	FirstFertile  time.Time
	Length        int
	LutealLength  int
	Completed     bool
}

func (cycle Cycle) HasOvulation() bool {
	return !cycle.OvulationDate.IsZero()
}

func (cycle Cycle) HasFertileWindow() bool {
	return !cycle.FertileStart.IsZero() && !cycle.FertileEnd.IsZero()
}

type HistoricalAverages struct {
	AvgCycleLength     *int
	AvgFertileOffset   *int
	AvgOvulationOffset *int
	LastPeriodStart    time.Time
}

type CycleModel struct {
	Cycles       []Cycle
	Averages     *HistoricalAverages
	Observations []Observation
}

func (model CycleModel) LiveCycle() (Cycle, bool) {
	if len(model.Cycles) == 0 {
		return Cycle{}, false
	}
	last := model.Cycles[len(model.Cycles)-1]
	return last, !last.Completed
}

// BuildCycles segments observations into cycles at every period-start marker
// and derives historical averages from the completed ones. It keeps no state
// between calls.
func BuildCycles(observations []Observation, now time.Time) CycleModel {
	sorted := make([]Observation, 0, len(observations))
	sorted = append(sorted, observations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	model := CycleModel{Cycles: []Cycle{}, Observations: sorted}

	landmarks := DetectCycleStarts(sorted)
	if len(landmarks) == 0 {
		return model
	}

	for index := 0; index+1 < len(landmarks); index++ {
		start := landmarks[index]
		next := landmarks[index+1]
		inRange := observationsBetween(sorted, start, next)
		model.Cycles = append(model.Cycles, buildCycle(start, next, inRange))
	}

	last := landmarks[len(landmarks)-1]
	today := DateAtLocation(now, time.UTC)
	model.Cycles = append(model.Cycles, buildLiveCycle(last, today, observationsBetween(sorted, last, time.Time{})))

	if len(landmarks) >= 2 {
		averages := computeAverages(model.Cycles)
		averages.LastPeriodStart = last
		model.Averages = &averages
	}

	return model
}

// DetectCycleStarts returns the ascending, de-duplicated period-start dates.
func DetectCycleStarts(observations []Observation) []time.Time {
	starts := make([]time.Time, 0)
	seen := make(map[string]bool)
	for _, observation := range observations {
		if !observation.IsPeriodStart {
			continue
		}
		key := DayKey(observation.Date)
		if seen[key] {
			continue
		}
		seen[key] = true
		starts = append(starts, DateAtLocation(observation.Date, time.UTC))
	}
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})
	return starts
}

// observationsBetween returns observations in [from, to); a zero to is unbounded.
func observationsBetween(observations []Observation, from time.Time, to time.Time) []Observation {
	selected := make([]Observation, 0)
	for _, observation := range observations {
		if observation.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !observation.Date.Before(to) {
			continue
		}
		selected = append(selected, observation)
	}
	return selected
}

func buildCycle(start time.Time, nextStart time.Time, observations []Observation) Cycle {
	cycle := detectLandmarks(start, observations)
	cycle.End = addDays(nextStart, -1)
	cycle.Length = daysBetween(start, nextStart)
	cycle.Completed = true
	if cycle.HasOvulation() {
		cycle.LutealLength = daysBetween(cycle.OvulationDate, nextStart)
	}
	return cycle
}

func buildLiveCycle(start time.Time, today time.Time, observations []Observation) Cycle {
	cycle := detectLandmarks(start, observations)
	cycle.End = today
	if cycle.End.Before(start) {
		cycle.End = start
	}
	return cycle
}

func detectLandmarks(start time.Time, observations []Observation) Cycle {
	cycle := Cycle{
		PeriodStart: start,
		PeriodEnd:   addDays(start, periodLengthDays-1),
	}

	cycle.SurgeDate = detectSurge(observations)
	if !cycle.SurgeDate.IsZero() {
		cycle.OvulationDate = addDays(cycle.SurgeDate, ovulationAfterSurgeDay)
	}

	for _, observation := range observations {
		if observation.Signal == SignalFertile && observation.Date.After(cycle.PeriodEnd) {
			cycle.FirstFertile = observation.Date
			break
		}
	}

	if cycle.HasOvulation() {
		cycle.FertileStart, cycle.FertileEnd = detectFertileWindow(cycle.PeriodEnd, cycle.OvulationDate, observations)
	}

	return cycle
}

// detectSurge prefers the first label-classified surge and falls back to the
// latest numeric surge reading.
func detectSurge(observations []Observation) time.Time {
	var latestNumeric time.Time
	for _, observation := range observations {
		if observation.Signal != SignalSurge {
			continue
		}
		if !observation.SignalNumeric {
			return observation.Date
		}
		latestNumeric = observation.Date
	}
	return latestNumeric
}

func detectFertileWindow(periodEnd time.Time, ovulation time.Time, observations []Observation) (time.Time, time.Time) {
	lastEligible := addDays(ovulation, -1)

	var first time.Time
	var last time.Time
	for _, observation := range observations {
		if observation.Signal != SignalFertile {
			continue
		}
		if !observation.Date.After(periodEnd) || observation.Date.After(lastEligible) {
			continue
		}
		if first.IsZero() {
			first = observation.Date
		}
		last = observation.Date
	}

	if first.IsZero() {
		return addDays(ovulation, -fertileBackfillDays), lastEligible
	}
	return first, last
}

func computeAverages(cycles []Cycle) HistoricalAverages {
	lengths := make([]int, 0, len(cycles))
	fertileOffsets := make([]int, 0, len(cycles))
	ovulationOffsets := make([]int, 0, len(cycles))

	for _, cycle := range cycles {
		if !cycle.Completed {
			continue
		}
		lengths = append(lengths, cycle.Length)
		if cycle.HasOvulation() && !cycle.FirstFertile.IsZero() {
			fertileOffsets = append(fertileOffsets, daysBetween(cycle.PeriodEnd, cycle.FirstFertile))
		}
		if cycle.HasOvulation() {
			ovulationOffsets = append(ovulationOffsets, daysBetween(cycle.PeriodStart, cycle.OvulationDate))
		}
	}

	return HistoricalAverages{
		AvgCycleLength:     roundedMean(lengths),
		AvgFertileOffset:   roundedMean(fertileOffsets),
		AvgOvulationOffset: roundedMean(ovulationOffsets),
	}
}

// roundedMean rounds half away from zero; nil when there are no samples.
func roundedMean(values []int) *int {
	if len(values) == 0 {
		return nil
	}
	var total int
	for _, value := range values {
		total += value
	}
	mean := int(math.Round(float64(total) / float64(len(values))))
	return &mean
}
