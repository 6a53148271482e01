package api

import (
	"net/http"
	"testing"
)

func TestGetCyclesFromStoredEntries(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)
	seedTwoCycles(t, app, cookie)

	var body cyclesResponse
	response := doJSONRequest(t, app, http.MethodGet, "/api/cycles", cookie, nil)
	decodeJSONResponse(t, response, &body)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	if len(body.Cycles) != 2 {
		t.Fatalf("expected 2 cycles, got %d", len(body.Cycles))
	}
	first := body.Cycles[0]
	if first.PeriodStart != "2025-01-01" || !first.Completed || first.Length == nil || *first.Length != 28 {
		t.Fatalf("unexpected first cycle %+v", first)
	}
	if first.OvulationDate == nil || *first.OvulationDate != "2025-01-16" {
		t.Fatalf("expected ovulation on 2025-01-16, got %v", first.OvulationDate)
	}
	live := body.Cycles[1]
	if live.PeriodStart != "2025-01-29" || live.Completed || live.Length != nil {
		t.Fatalf("unexpected live cycle %+v", live)
	}
	if body.Averages == nil || body.Averages.AvgCycleLength == nil || *body.Averages.AvgCycleLength != 28 {
		t.Fatalf("expected average cycle length 28, got %+v", body.Averages)
	}
	if body.Averages.LastPeriodStart != "2025-01-29" {
		t.Fatalf("expected last period start 2025-01-29, got %s", body.Averages.LastPeriodStart)
	}
}

func TestGetCyclesWithoutHistory(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)

	var body cyclesResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/cycles", cookie, nil), &body)
	if body.Cycles == nil || len(body.Cycles) != 0 || body.Averages != nil {
		t.Fatalf("expected empty cycles and null averages, got %+v", body)
	}
}

func TestComputeCyclesUsesPostedEntries(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)
	seedTwoCycles(t, app, cookie)

	var body cyclesResponse
	response := doJSONRequest(t, app, http.MethodPost, "/api/cycles/compute", cookie, map[string]any{
		"entries": []map[string]any{
			{"date": "2024-03-01", "phase": "day1-period"},
			{"date": "2024-03-31", "phase": "day1-period"},
		},
	})
	decodeJSONResponse(t, response, &body)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if len(body.Cycles) != 2 || body.Cycles[0].PeriodStart != "2024-03-01" || *body.Cycles[0].Length != 30 {
		t.Fatalf("expected cycles from posted entries only, got %+v", body.Cycles)
	}

	var empty cyclesResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodPost, "/api/cycles/compute", cookie, map[string]any{"entries": []any{}}), &empty)
	if len(empty.Cycles) != 0 {
		t.Fatalf("expected empty posted entries to ignore the store, got %d cycles", len(empty.Cycles))
	}
}

func TestGetCalendarMonthView(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)
	seedTwoCycles(t, app, cookie)

	var current calendarResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/calendar", cookie, nil), &current)
	if current.View.Mode != "month" || current.View.Month != "2025-02" || current.View.CycleCount != 2 {
		t.Fatalf("unexpected view %+v", current.View)
	}
	if current.RangeStart == nil || *current.RangeStart != "2025-02-01" || current.RangeEnd == nil || *current.RangeEnd != "2025-02-28" {
		t.Fatalf("unexpected range %v..%v", current.RangeStart, current.RangeEnd)
	}
	if !hasMark(current.Predicted, "2025-02-26", "predicted-period") {
		t.Fatalf("expected predicted period on 2025-02-26, got %+v", current.Predicted)
	}

	var january calendarResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/calendar?month=2025-01", cookie, nil), &january)
	if !hasMark(january.Logged, "2025-01-01", "period-start") || !hasMark(january.Logged, "2025-01-16", "ovulation") {
		t.Fatalf("expected logged period start and ovulation in January, got %+v", january.Logged)
	}
	if !hasMark(january.Logged, "2025-01-15", "surge") {
		t.Fatalf("expected surge mark on 2025-01-15, got %+v", january.Logged)
	}
}

func TestGetCalendarCycleView(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)
	seedTwoCycles(t, app, cookie)

	var latest calendarResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/calendar?view=cycle", cookie, nil), &latest)
	if latest.View.Mode != "cycle" || latest.View.CycleIndex == nil || *latest.View.CycleIndex != 1 {
		t.Fatalf("expected latest cycle view, got %+v", latest.View)
	}
	if latest.RangeStart == nil || *latest.RangeStart != "2025-01-29" {
		t.Fatalf("expected live cycle range start 2025-01-29, got %v", latest.RangeStart)
	}

	var first calendarResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/calendar?view=cycle&cycle=0", cookie, nil), &first)
	if first.RangeStart == nil || *first.RangeStart != "2025-01-01" || first.RangeEnd == nil || *first.RangeEnd != "2025-01-28" {
		t.Fatalf("expected first cycle range, got %v..%v", first.RangeStart, first.RangeEnd)
	}
}

func TestGetCalendarValidation(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)
	seedTwoCycles(t, app, cookie)

	targets := []string{
		"/api/calendar?view=week",
		"/api/calendar?month=2025-13",
		"/api/calendar?view=cycle&cycle=5",
		"/api/calendar?view=cycle&cycle=last",
		"/api/calendar?count=99",
	}
	for _, target := range targets {
		response := doJSONRequest(t, app, http.MethodGet, target, cookie, nil)
		response.Body.Close()
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, response.StatusCode)
		}
	}
}

func TestGetPredictions(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)
	seedTwoCycles(t, app, cookie)

	var body struct {
		From      string         `json:"from"`
		To        string         `json:"to"`
		Predicted []markResponse `json:"predicted"`
	}
	response := doJSONRequest(t, app, http.MethodGet, "/api/predictions?from=2025-02-01&to=2025-03-31&count=1", cookie, nil)
	decodeJSONResponse(t, response, &body)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if body.From != "2025-02-01" || body.To != "2025-03-31" {
		t.Fatalf("unexpected echoed range %s..%s", body.From, body.To)
	}
	for _, day := range []string{"2025-02-26", "2025-02-28", "2025-03-02"} {
		if !hasMark(body.Predicted, day, "predicted-period") {
			t.Fatalf("expected predicted period on %s, got %+v", day, body.Predicted)
		}
	}
	if hasMark(body.Predicted, "2025-03-26", "predicted-period") {
		t.Fatal("expected projection to stop after the requested count")
	}

	for _, target := range []string{
		"/api/predictions?to=2025-03-31",
		"/api/predictions?from=2025-03-31&to=2025-02-01",
		"/api/predictions?from=2025-02-01&to=2025-03-31&count=-2",
	} {
		invalid := doJSONRequest(t, app, http.MethodGet, target, cookie, nil)
		invalid.Body.Close()
		if invalid.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, invalid.StatusCode)
		}
	}
}

func TestGetToday(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)
	seedTwoCycles(t, app, cookie)

	var body todayResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/today", cookie, nil), &body)
	if body.Date != "2025-02-10" || body.CycleDay == nil || *body.CycleDay != 13 {
		t.Fatalf("unexpected today summary %+v", body)
	}
	if body.DaysPastOvulation != nil {
		t.Fatalf("expected no days past ovulation in the live cycle, got %d", *body.DaysPastOvulation)
	}
	if body.NextPeriod == nil || *body.NextPeriod != "2025-02-26" {
		t.Fatalf("expected next period 2025-02-26, got %v", body.NextPeriod)
	}
}

func TestGetTodayWithoutHistory(t *testing.T) {
	t.Parallel()

	app, cookie := newSignedInApp(t)

	var body todayResponse
	decodeJSONResponse(t, doJSONRequest(t, app, http.MethodGet, "/api/today", cookie, nil), &body)
	if body.CycleDay != nil || body.NextPeriod != nil || body.Phase != "unknown" {
		t.Fatalf("expected empty today summary, got %+v", body)
	}
}
