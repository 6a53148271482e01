package services

import (
	"encoding/json"
	"strconv"
	"strings"
)

type OvulationSignal string

const (
	SignalNone    OvulationSignal = "none"
	SignalFertile OvulationSignal = "fertile"
	SignalSurge   OvulationSignal = "surge"
)

const (
	surgeReadingThreshold   = 1.0
	fertileReadingThreshold = 0.1
)

type signalLabelRule struct {
	substring string
	signal    OvulationSignal
}

// Label rules are checked in order before any numeric interpretation.
var signalLabelRules = []signalLabelRule{
	{substring: "solid", signal: SignalSurge},
	{substring: "surge", signal: SignalSurge},
	{substring: "flashing", signal: SignalFertile},
}

func (signal OvulationSignal) rank() int {
	switch signal {
	case SignalSurge:
		return 2
	case SignalFertile:
		return 1
	default:
		return 0
	}
}

// ClassifyOvulationSignal maps a raw test reading onto a signal class. The second
// result reports whether the class was derived from a numeric reading rather than
// a label.
func ClassifyOvulationSignal(value any) (OvulationSignal, bool) {
	switch typed := value.(type) {
	case nil:
		return SignalNone, false
	case string:
		return classifySignalText(typed)
	case json.Number:
		return classifySignalText(typed.String())
	}

	reading, ok := numericValue(value)
	if !ok {
		return SignalNone, false
	}
	return classifySignalReading(reading), true
}

func classifySignalText(raw string) (OvulationSignal, bool) {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" {
		return SignalNone, false
	}
	for _, rule := range signalLabelRules {
		if strings.Contains(label, rule.substring) {
			return rule.signal, false
		}
	}

	reading, ok := leadingNumber(label)
	if !ok {
		return SignalNone, false
	}
	return classifySignalReading(reading), true
}

func classifySignalReading(reading float64) OvulationSignal {
	switch {
	case reading >= surgeReadingThreshold:
		return SignalSurge
	case reading >= fertileReadingThreshold:
		return SignalFertile
	default:
		return SignalNone
	}
}

func numericValue(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case json.Number:
		parsed, err := typed.Float64()
		return parsed, err == nil
	default:
		return 0, false
	}
}

// leadingNumber parses the longest numeric prefix, so "1.2 mIU" reads as 1.2.
func leadingNumber(raw string) (float64, bool) {
	end := 0
	seenDigit := false
	seenDot := false
scan:
	for index, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = index + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && index == 0:
		default:
			break scan
		}
	}
	if !seenDigit {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(raw[:end], 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
