package services

import (
	"sort"
	"time"
)

type MarkCategory string

const (
	MarkPeriodStart        MarkCategory = "period-start"
	MarkPeriod             MarkCategory = "period"
	MarkFertile            MarkCategory = "fertile"
	MarkSurge              MarkCategory = "surge"
	MarkOvulation          MarkCategory = "ovulation"
	MarkLuteal             MarkCategory = "luteal"
	MarkPredictedPeriod    MarkCategory = "predicted-period"
	MarkPredictedFertile   MarkCategory = "predicted-fertile"
	MarkPredictedOvulation MarkCategory = "predicted-ovulation"
	MarkSpotting           MarkCategory = "spotting"
	MarkCramps             MarkCategory = "cramps"
	MarkBreastChanges      MarkCategory = "breast-changes"
	MarkDigestive          MarkCategory = "digestive"
	MarkIntercourse        MarkCategory = "intercourse"
	MarkTemperature        MarkCategory = "temperature"
)

var markCategoryOrder = map[MarkCategory]int{
	MarkPeriodStart:        0,
	MarkPeriod:             1,
	MarkFertile:            2,
	MarkSurge:              3,
	MarkOvulation:          4,
	MarkLuteal:             5,
	MarkPredictedPeriod:    6,
	MarkPredictedFertile:   7,
	MarkPredictedOvulation: 8,
	MarkSpotting:           9,
	MarkCramps:             10,
	MarkBreastChanges:      11,
	MarkDigestive:          12,
	MarkIntercourse:        13,
	MarkTemperature:        14,
}

// CalendarMark is a single paint instruction for the renderer.
type CalendarMark struct {
	Date     time.Time
	Category MarkCategory
}

func (category MarkCategory) isPeriod() bool {
	return category == MarkPeriodStart || category == MarkPeriod
}

// markSet collects at most one mark per (date, category) pair.
type markSet struct {
	byDate map[string]map[MarkCategory]bool
	dates  map[string]time.Time
}

func newMarkSet() *markSet {
	return &markSet{
		byDate: make(map[string]map[MarkCategory]bool),
		dates:  make(map[string]time.Time),
	}
}

func (set *markSet) has(day time.Time, category MarkCategory) bool {
	return set.byDate[DayKey(day)][category]
}

func (set *markSet) isPeriodDay(day time.Time) bool {
	return set.has(day, MarkPeriodStart) || set.has(day, MarkPeriod)
}

func (set *markSet) add(day time.Time, category MarkCategory) {
	key := DayKey(day)
	categories, ok := set.byDate[key]
	if !ok {
		categories = make(map[MarkCategory]bool)
		set.byDate[key] = categories
		set.dates[key] = day
	}
	categories[category] = true
}

func (set *markSet) remove(day time.Time, category MarkCategory) {
	delete(set.byDate[DayKey(day)], category)
}

func (set *markSet) marks() []CalendarMark {
	marks := make([]CalendarMark, 0, len(set.byDate))
	for key, categories := range set.byDate {
		for category := range categories {
			marks = append(marks, CalendarMark{Date: set.dates[key], Category: category})
		}
	}
	SortMarks(marks)
	return marks
}

// SortMarks orders marks by date, then by category precedence.
func SortMarks(marks []CalendarMark) {
	sort.SliceStable(marks, func(i, j int) bool {
		if !marks[i].Date.Equal(marks[j].Date) {
			return marks[i].Date.Before(marks[j].Date)
		}
		return markCategoryOrder[marks[i].Category] < markCategoryOrder[marks[j].Category]
	})
}

func forEachDay(from time.Time, to time.Time, apply func(day time.Time)) {
	if from.IsZero() || to.IsZero() {
		return
	}
	for day := from; !day.After(to); day = addDays(day, 1) {
		apply(day)
	}
}
