package services

import (
	"context"
	"errors"
	"strings"

	"github.com/terraincognita07/bloomcal/internal/models"
)

var (
	ErrEntryDateInvalid    = errors.New("invalid entry date")
	ErrEntryDocumentEmpty  = errors.New("entry document is empty")
	ErrEntryLoadFailed     = errors.New("load entries failed")
	ErrEntrySaveFailed     = errors.New("save entry failed")
	ErrEntryDeleteFailed   = errors.New("delete entry failed")
	ErrEntryDateUnresolved = errors.New("entry date could not be resolved")
	ErrEntryDateMismatch   = errors.New("entry document date does not match the entry day")
	ErrEntrySuperseded     = errors.New("entry day already holds a higher-ranked document")
)

type EntryRepository interface {
	EntryReader
	FindByUserAndDate(ctx context.Context, userID uint, dateKey string) (models.Entry, bool, error)
	Upsert(ctx context.Context, entry *models.Entry) error
	DeleteByUserAndDate(ctx context.Context, userID uint, dateKey string) error
}

type EntryService struct {
	entries         EntryRepository
	preferredSource string
}

// NewEntryService stores documents through entries. preferredSource ranks
// same-day imports the way the calendar merges observations.
func NewEntryService(entries EntryRepository, preferredSource string) *EntryService {
	return &EntryService{
		entries:         entries,
		preferredSource: strings.ToLower(strings.TrimSpace(preferredSource)),
	}
}

func (service *EntryService) ListEntries(ctx context.Context, userID uint) ([]models.Entry, error) {
	entries, err := service.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrEntryLoadFailed
	}
	return entries, nil
}

// SaveEntry stores the raw document under its calendar day, replacing any
// document already kept for that day. A date carried inside the document must
// resolve to the same day.
func (service *EntryService) SaveEntry(ctx context.Context, userID uint, dateKey string, document map[string]any, source string) (models.Entry, error) {
	day, err := ParseDayKey(strings.TrimSpace(dateKey))
	if err != nil {
		return models.Entry{}, ErrEntryDateInvalid
	}
	if len(document) == 0 {
		return models.Entry{}, ErrEntryDocumentEmpty
	}
	if documentDay, ok := resolveRecordDate(document); ok && !sameCalendarDay(documentDay, day) {
		return models.Entry{}, ErrEntryDateMismatch
	}

	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		source = models.SourceManual
	}

	entry := models.Entry{
		UserID:   userID,
		DateKey:  DayKey(day),
		Source:   source,
		Document: document,
	}
	if err := service.entries.Upsert(ctx, &entry); err != nil {
		return models.Entry{}, ErrEntrySaveFailed
	}
	return entry, nil
}

// ImportRecord stores a legacy document under the day the normalizer resolves
// for it. When the day is already taken the stored document is kept unless
// the incoming one outranks it: a period start beats anything else, then the
// preferred source. The kept entry is returned with ErrEntrySuperseded.
func (service *EntryService) ImportRecord(ctx context.Context, userID uint, record RawRecord, source string) (models.Entry, error) {
	day, ok := resolveRecordDate(record)
	if !ok {
		return models.Entry{}, ErrEntryDateUnresolved
	}
	dateKey := DayKey(day)

	existing, found, err := service.entries.FindByUserAndDate(ctx, userID, dateKey)
	if err != nil {
		return models.Entry{}, ErrEntryLoadFailed
	}
	if found && !service.importOutranks(models.Entry{DateKey: dateKey, Source: source, Document: record}, existing) {
		return existing, ErrEntrySuperseded
	}
	return service.SaveEntry(ctx, userID, dateKey, record, source)
}

func (service *EntryService) importOutranks(incoming models.Entry, stored models.Entry) bool {
	current, ok := Normalize(RecordFromEntry(stored))
	if !ok {
		return true
	}
	candidate, ok := Normalize(RecordFromEntry(incoming))
	if !ok {
		return false
	}
	return observationOutranks(candidate, current, service.preferredSource)
}

func (service *EntryService) DeleteEntry(ctx context.Context, userID uint, dateKey string) error {
	day, err := ParseDayKey(strings.TrimSpace(dateKey))
	if err != nil {
		return ErrEntryDateInvalid
	}
	if err := service.entries.DeleteByUserAndDate(ctx, userID, DayKey(day)); err != nil {
		return ErrEntryDeleteFailed
	}
	return nil
}
