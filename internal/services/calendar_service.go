package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/bloomcal/internal/models"
)

type EntryReader interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Entry, error)
}

type CalendarService struct {
	entries         EntryReader
	preferredSource string
}

// InitOptions configures a single computation. Entries, when non-nil, replace
// the store fetch. OnComputed receives the final cycle list.
type InitOptions struct {
	Entries    []RawRecord
	OnComputed func([]Cycle)
	Now        time.Time
}

func NewCalendarService(entries EntryReader, preferredSource string) *CalendarService {
	return &CalendarService{
		entries:         entries,
		preferredSource: strings.ToLower(strings.TrimSpace(preferredSource)),
	}
}

// Initialize loads the user's entries and rebuilds the cycle model from
// scratch. A failed fetch is logged and treated as an empty history.
func (service *CalendarService) Initialize(ctx context.Context, userID uint, options InitOptions) CycleModel {
	now := options.Now
	if now.IsZero() {
		now = time.Now()
	}

	records := options.Entries
	if records == nil {
		records = service.fetchRecords(ctx, userID)
	}

	model := BuildCycles(NormalizeAll(records, service.preferredSource), now)
	if options.OnComputed != nil {
		options.OnComputed(model.Cycles)
	}
	return model
}

func (service *CalendarService) fetchRecords(ctx context.Context, userID uint) []RawRecord {
	if service.entries == nil {
		return nil
	}
	entries, err := service.entries.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("load entries for user %d failed: %v", userID, err)
		return nil
	}
	return RecordsFromEntries(entries)
}

func RecordsFromEntries(entries []models.Entry) []RawRecord {
	records := make([]RawRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, RecordFromEntry(entry))
	}
	return records
}

// RecordFromEntry exposes the stored document to the normalizer. The document
// key stands in as the record id and the stored source fills a missing one.
func RecordFromEntry(entry models.Entry) RawRecord {
	record := make(RawRecord, len(entry.Document)+2)
	for key, value := range entry.Document {
		record[key] = value
	}
	if _, ok := record["id"]; !ok && entry.DateKey != "" {
		record["id"] = entry.DateKey
	}
	if _, ok := record["source"]; !ok && entry.Source != "" {
		record["source"] = entry.Source
	}
	return record
}
