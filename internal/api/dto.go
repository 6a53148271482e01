package api

import (
	"time"

	"github.com/terraincognita07/bloomcal/internal/models"
	"github.com/terraincognita07/bloomcal/internal/services"
)

type entryResponse struct {
	Date      string         `json:"date"`
	Source    string         `json:"source"`
	Document  map[string]any `json:"document"`
	UpdatedAt string         `json:"updated_at"`
}

type cycleResponse struct {
	PeriodStart   string  `json:"period_start"`
	PeriodEnd     string  `json:"period_end"`
	End           string  `json:"end"`
	SurgeDate     *string `json:"surge_date"`
	OvulationDate *string `json:"ovulation_date"`
	FertileStart  *string `json:"fertile_start"`
	FertileEnd    *string `json:"fertile_end"`
	FirstFertile  *string `json:"first_fertile"`
	Length        *int    `json:"length"`
	LutealLength  *int    `json:"luteal_length"`
	Completed     bool    `json:"completed"`
}

type averagesResponse struct {
	AvgCycleLength     *int   `json:"avg_cycle_length"`
	AvgFertileOffset   *int   `json:"avg_fertile_offset"`
	AvgOvulationOffset *int   `json:"avg_ovulation_offset"`
	LastPeriodStart    string `json:"last_period_start"`
}

type cyclesResponse struct {
	Cycles   []cycleResponse   `json:"cycles"`
	Averages *averagesResponse `json:"averages"`
}

type markResponse struct {
	Date     string `json:"date"`
	Category string `json:"category"`
}

type calendarViewResponse struct {
	Mode       string `json:"mode"`
	Month      string `json:"month,omitempty"`
	CycleIndex *int   `json:"cycle_index,omitempty"`
	CycleCount int    `json:"cycle_count"`
}

type calendarResponse struct {
	View       calendarViewResponse `json:"view"`
	RangeStart *string              `json:"range_start"`
	RangeEnd   *string              `json:"range_end"`
	Logged     []markResponse       `json:"logged"`
	Symptoms   []markResponse       `json:"symptoms"`
	Predicted  []markResponse       `json:"predicted"`
}

type todayResponse struct {
	Date              string  `json:"date"`
	CycleDay          *int    `json:"cycle_day"`
	DaysPastOvulation *int    `json:"days_past_ovulation"`
	Phase             string  `json:"phase"`
	NextPeriod        *string `json:"next_period"`
}

func newEntryResponse(entry models.Entry) entryResponse {
	document := entry.Document
	if document == nil {
		document = map[string]any{}
	}
	updatedAt := ""
	if !entry.UpdatedAt.IsZero() {
		updatedAt = entry.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return entryResponse{
		Date:      entry.DateKey,
		Source:    entry.Source,
		Document:  document,
		UpdatedAt: updatedAt,
	}
}

func newCycleResponse(cycle services.Cycle) cycleResponse {
	response := cycleResponse{
		PeriodStart:   formatDay(cycle.PeriodStart),
		PeriodEnd:     formatDay(cycle.PeriodEnd),
		End:           formatDay(cycle.End),
		SurgeDate:     optionalDay(cycle.SurgeDate),
		OvulationDate: optionalDay(cycle.OvulationDate),
		FertileStart:  optionalDay(cycle.FertileStart),
		FertileEnd:    optionalDay(cycle.FertileEnd),
		FirstFertile:  optionalDay(cycle.FirstFertile),
		Completed:     cycle.Completed,
	}
	if cycle.Completed {
		length := cycle.Length
		response.Length = &length
		if cycle.HasOvulation() {
			luteal := cycle.LutealLength
			response.LutealLength = &luteal
		}
	}
	return response
}

func newCyclesResponse(model services.CycleModel) cyclesResponse {
	cycles := make([]cycleResponse, 0, len(model.Cycles))
	for _, cycle := range model.Cycles {
		cycles = append(cycles, newCycleResponse(cycle))
	}

	response := cyclesResponse{Cycles: cycles}
	if model.Averages != nil {
		response.Averages = &averagesResponse{
			AvgCycleLength:     model.Averages.AvgCycleLength,
			AvgFertileOffset:   model.Averages.AvgFertileOffset,
			AvgOvulationOffset: model.Averages.AvgOvulationOffset,
			LastPeriodStart:    formatDay(model.Averages.LastPeriodStart),
		}
	}
	return response
}

func newMarkResponses(marks []services.CalendarMark) []markResponse {
	response := make([]markResponse, 0, len(marks))
	for _, mark := range marks {
		response = append(response, markResponse{Date: formatDay(mark.Date), Category: string(mark.Category)})
	}
	return response
}

func newCalendarResponse(view services.ViewState, cycleCount int, calendar services.CalendarView) calendarResponse {
	viewResponse := calendarViewResponse{Mode: "month", CycleCount: cycleCount}
	if view.CycleView {
		index := view.CycleIndex
		viewResponse.Mode = "cycle"
		viewResponse.CycleIndex = &index
	} else {
		viewResponse.Month = view.Month.Format("2006-01")
	}

	return calendarResponse{
		View:       viewResponse,
		RangeStart: optionalDay(calendar.RangeStart),
		RangeEnd:   optionalDay(calendar.RangeEnd),
		Logged:     newMarkResponses(calendar.Logged),
		Symptoms:   newMarkResponses(calendar.Symptoms),
		Predicted:  newMarkResponses(calendar.Predicted),
	}
}
