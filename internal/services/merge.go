package services

import (
	"sort"
	"strings"
)

// MergeObservations keeps one observation per calendar day, ordered by date.
// On a collision the period-start record wins, then the record from the
// preferred source, then the record that appeared first.
func MergeObservations(observations []Observation, preferredSource string) []Observation {
	preferred := strings.ToLower(strings.TrimSpace(preferredSource))

	byDate := make(map[string]Observation, len(observations))
	order := make([]string, 0, len(observations))
	for _, observation := range observations {
		key := observation.Date.Format("2006-01-02")
		existing, exists := byDate[key]
		if !exists {
			byDate[key] = observation
			order = append(order, key)
			continue
		}
		if observationOutranks(observation, existing, preferred) {
			byDate[key] = observation
		}
	}

	merged := make([]Observation, 0, len(order))
	for _, key := range order {
		merged = append(merged, byDate[key])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}

func observationOutranks(candidate Observation, existing Observation, preferredSource string) bool {
	if candidate.IsPeriodStart != existing.IsPeriodStart {
		return candidate.IsPeriodStart
	}
	if preferredSource == "" {
		return false
	}
	candidatePreferred := candidate.Source == preferredSource
	existingPreferred := existing.Source == preferredSource
	return candidatePreferred && !existingPreferred
}
