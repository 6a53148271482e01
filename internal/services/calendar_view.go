package services

import "time"

// ViewState is the presentation-owned position of the calendar: either a month
// or, in cycle view, an index into the cycle list.
type ViewState struct {
	Month      time.Time
	CycleView  bool
	CycleIndex int
}

type CalendarView struct {
	RangeStart time.Time
	RangeEnd   time.Time
	Logged     []CalendarMark
	Symptoms   []CalendarMark
	Predicted  []CalendarMark
}

func NewMonthView(day time.Time) ViewState {
	year, month, _ := day.Date()
	return ViewState{Month: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// NewCycleView points at the most recent cycle.
func NewCycleView(model CycleModel) ViewState {
	index := len(model.Cycles) - 1
	if index < 0 {
		index = 0
	}
	return ViewState{CycleView: true, CycleIndex: index}
}

func (view ViewState) ShiftMonth(offset int) ViewState {
	shifted := view
	shifted.Month = NewMonthView(view.Month).Month.AddDate(0, offset, 0)
	return shifted
}

func (view ViewState) ShiftCycle(offset int, cycleCount int) ViewState {
	shifted := view
	shifted.CycleIndex = view.CycleIndex + offset
	if shifted.CycleIndex >= cycleCount {
		shifted.CycleIndex = cycleCount - 1
	}
	if shifted.CycleIndex < 0 {
		shifted.CycleIndex = 0
	}
	return shifted
}

// DisplayRange resolves the inclusive date range the view covers. A live
// cycle runs to its expected end when an average length is known, else to now.
func (view ViewState) DisplayRange(model CycleModel, now time.Time) (time.Time, time.Time, bool) {
	if !view.CycleView {
		start := NewMonthView(view.Month).Month
		return start, start.AddDate(0, 1, -1), true
	}

	if view.CycleIndex < 0 || view.CycleIndex >= len(model.Cycles) {
		return time.Time{}, time.Time{}, false
	}
	cycle := model.Cycles[view.CycleIndex]
	start := cycle.PeriodStart
	end := cycle.End
	if !cycle.Completed {
		if model.Averages != nil && model.Averages.AvgCycleLength != nil {
			end = addDays(start, *model.Averages.AvgCycleLength-1)
		} else {
			end = DateAtLocation(now, time.UTC)
		}
	}
	if end.Before(start) {
		end = start
	}
	return start, end, true
}

// BuildCalendar assembles every paint instruction for the view's range.
func BuildCalendar(model CycleModel, view ViewState, now time.Time, predictionCount int) CalendarView {
	rangeStart, rangeEnd, ok := view.DisplayRange(model, now)
	if !ok {
		return CalendarView{Logged: []CalendarMark{}, Symptoms: []CalendarMark{}, Predicted: []CalendarMark{}}
	}
	if predictionCount < 0 {
		predictionCount = DefaultPredictionCount
	}

	return CalendarView{
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Logged:     Annotate(model.Cycles, rangeStart, rangeEnd),
		Symptoms:   AnnotateObservations(model.Observations, rangeStart, rangeEnd),
		Predicted:  ProjectFutureCycles(model.Averages, predictionCount, rangeStart, rangeEnd),
	}
}
