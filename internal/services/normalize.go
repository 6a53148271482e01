package services

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	minTemperatureCelsius      = 35.0
	maxTemperatureCelsius      = 38.5
	fahrenheitDetectionCeiling = 80.0
	epochMillisecondsFloor     = 1e11
)

type RawRecord map[string]any

type SymptomFlags struct {
	Spotting      bool `json:"spotting"`
	Cramps        bool `json:"cramps"`
	BreastChanges bool `json:"breast_changes"`
	Digestive     bool `json:"digestive"`
	Intercourse   bool `json:"intercourse"`
}

func (flags SymptomFlags) Any() bool {
	return flags.Spotting || flags.Cramps || flags.BreastChanges || flags.Digestive || flags.Intercourse
}

type Observation struct {
	Date           time.Time
	IsPeriodStart  bool
	Signal         OvulationSignal
	SignalNumeric  bool
	Temperature    float64
	HasTemperature bool
	Symptoms       SymptomFlags
	Source         string
}

var (
	dateFieldCandidates        = []string{"entryDate", "date", "timestamp", "createdAt", "id"}
	phaseFieldCandidates       = []string{"phase", "cyclePhase", "marker", "periodPhase"}
	periodStartFlagCandidates  = []string{"isPeriodStart", "day1"}
	signalFieldCandidates      = []string{"opk", "opkResult", "ovk", "ovkResult"}
	temperatureFieldCandidates = []string{"bbt", "temperature", "temp"}
	intercourseFieldCandidates = []string{"sex", "intercourse"}
)

var periodStartMarkers = map[string]bool{
	"day1period":  true,
	"day1":        true,
	"periodday1":  true,
	"periodstart": true,
	"cycleday1":   true,
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Normalize resolves a raw document into an Observation. It reports false when
// none of the date fields yields a calendar day.
func Normalize(raw RawRecord) (Observation, bool) {
	day, ok := resolveRecordDate(raw)
	if !ok {
		return Observation{}, false
	}

	observation := Observation{
		Date:          day,
		IsPeriodStart: recordMarksPeriodStart(raw),
		Signal:        SignalNone,
		Source:        strings.ToLower(strings.TrimSpace(stringField(raw, "source"))),
	}

	for _, field := range signalFieldCandidates {
		signal, numeric := ClassifyOvulationSignal(raw[field])
		if signal.rank() > observation.Signal.rank() {
			observation.Signal = signal
			observation.SignalNumeric = numeric
		}
	}

	for _, field := range temperatureFieldCandidates {
		if celsius, ok := ParseTemperature(raw[field]); ok {
			observation.Temperature = celsius
			observation.HasTemperature = true
			break
		}
	}

	observation.Symptoms = SymptomFlags{
		Spotting:      symptomPresent(raw["spotting"]),
		Cramps:        symptomPresent(raw["cramps"]),
		BreastChanges: symptomPresent(raw["breastChanges"]),
		Digestive:     symptomPresent(raw["digestive"]),
	}
	for _, field := range intercourseFieldCandidates {
		if affirmative(raw[field]) {
			observation.Symptoms.Intercourse = true
		}
	}

	return observation, true
}

// NormalizeAll drops unresolvable records and collapses same-day collisions.
func NormalizeAll(records []RawRecord, preferredSource string) []Observation {
	observations := make([]Observation, 0, len(records))
	for _, record := range records {
		if observation, ok := Normalize(record); ok {
			observations = append(observations, observation)
		}
	}
	return MergeObservations(observations, preferredSource)
}

// IsPeriodStartMarker compares a phase label against the known day-one spellings,
// ignoring case, punctuation and whitespace.
func IsPeriodStartMarker(value string) bool {
	var builder strings.Builder
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)
		}
	}
	return periodStartMarkers[builder.String()]
}

// ParseTemperature returns a Celsius reading. Values above 80 are treated as
// Fahrenheit. Readings outside the physiological range are reported as absent.
func ParseTemperature(value any) (float64, bool) {
	var reading float64
	switch typed := value.(type) {
	case nil:
		return 0, false
	case string:
		parsed, ok := parseTemperatureText(typed)
		if !ok {
			return 0, false
		}
		reading = parsed
	default:
		parsed, ok := numericValue(value)
		if !ok {
			return 0, false
		}
		reading = parsed
	}

	if math.IsNaN(reading) || math.IsInf(reading, 0) {
		return 0, false
	}
	if reading > fahrenheitDetectionCeiling {
		reading = (reading - 32) * 5 / 9
	}
	if reading < minTemperatureCelsius || reading > maxTemperatureCelsius {
		return 0, false
	}
	return math.Round(reading*100) / 100, true
}

func parseTemperatureText(raw string) (float64, bool) {
	var builder strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			builder.WriteRune(r)
		}
	}
	cleaned := builder.String()
	if strings.Count(cleaned, ",") == 1 && !strings.Contains(cleaned, ".") {
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}
	if cleaned == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func resolveRecordDate(raw RawRecord) (time.Time, bool) {
	for _, field := range dateFieldCandidates {
		value, exists := raw[field]
		if !exists || value == nil {
			continue
		}
		if day, ok := resolveDateValue(value); ok {
			return day, true
		}
	}
	return time.Time{}, false
}

type asTimeConverter interface {
	AsTime() time.Time
}

type toTimeConverter interface {
	ToTime() time.Time
}

func resolveDateValue(value any) (time.Time, bool) {
	switch typed := value.(type) {
	case time.Time:
		return instantDay(typed)
	case *time.Time:
		if typed == nil {
			return time.Time{}, false
		}
		return instantDay(*typed)
	case asTimeConverter:
		return instantDay(typed.AsTime())
	case toTimeConverter:
		return instantDay(typed.ToTime())
	case map[string]any:
		for _, key := range []string{"seconds", "_seconds"} {
			if seconds, ok := numericValue(typed[key]); ok {
				return instantDay(time.Unix(int64(seconds), 0))
			}
		}
		return time.Time{}, false
	case string:
		return parseDateText(typed)
	}

	if number, ok := numericValue(value); ok {
		return epochDay(number)
	}
	return time.Time{}, false
}

func parseDateText(raw string) (time.Time, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return instantDay(parsed)
		}
	}
	if number, err := strconv.ParseFloat(text, 64); err == nil {
		return epochDay(number)
	}
	// Record identifiers such as "2025-01-15_phone" carry the day as a prefix.
	if len(text) > 10 {
		if parsed, err := time.Parse("2006-01-02", text[:10]); err == nil {
			return instantDay(parsed)
		}
	}
	return time.Time{}, false
}

func epochDay(number float64) (time.Time, bool) {
	if number <= 0 || math.IsNaN(number) || math.IsInf(number, 0) {
		return time.Time{}, false
	}
	if number >= epochMillisecondsFloor {
		return instantDay(time.UnixMilli(int64(number)))
	}
	return instantDay(time.Unix(int64(number), 0))
}

func instantDay(value time.Time) (time.Time, bool) {
	if value.IsZero() {
		return time.Time{}, false
	}
	return DateAtLocation(value, time.UTC), true
}

func recordMarksPeriodStart(raw RawRecord) bool {
	for _, field := range phaseFieldCandidates {
		if IsPeriodStartMarker(stringField(raw, field)) {
			return true
		}
	}
	for _, field := range periodStartFlagCandidates {
		if flag, ok := raw[field].(bool); ok && flag {
			return true
		}
	}
	return false
}

func stringField(raw RawRecord, field string) string {
	value, ok := raw[field].(string)
	if !ok {
		return ""
	}
	return value
}

func symptomPresent(value any) bool {
	switch typed := value.(type) {
	case string:
		normalized := strings.ToLower(strings.TrimSpace(typed))
		return normalized != "" && normalized != "none"
	case bool:
		return typed
	default:
		return false
	}
}

func affirmative(value any) bool {
	switch typed := value.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "yes", "y", "true":
			return true
		}
		return false
	case bool:
		return typed
	default:
		return false
	}
}
