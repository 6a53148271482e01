package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/terraincognita07/bloomcal/internal/db"
	"github.com/terraincognita07/bloomcal/internal/models"
	"github.com/terraincognita07/bloomcal/internal/services"
)

var errUnsupportedExport = errors.New("export must be a JSON array of documents or an object keyed by document id")

type ImportReport struct {
	Read       int
	Imported   int
	Skipped    int
	Superseded int
}

// RunImportCommand loads a document export into the entry store of the user
// with email. Documents whose day cannot be resolved are skipped. When several
// documents share a day the highest-ranked one is kept, with preferredSource
// breaking ties between non-period documents.
func RunImportCommand(ctx context.Context, dbPath string, email string, exportPath string, preferredSource string, out io.Writer) (ImportReport, error) {
	payload, err := os.ReadFile(exportPath)
	if err != nil {
		return ImportReport{}, fmt.Errorf("read export: %w", err)
	}
	records, err := DecodeExport(payload)
	if err != nil {
		return ImportReport{}, err
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return ImportReport{}, fmt.Errorf("database init failed: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	userID, err := findUserID(database, email)
	if err != nil {
		return ImportReport{}, err
	}

	entryService := services.NewEntryService(db.NewEntryRepository(database), preferredSource)
	report := ImportReport{Read: len(records)}
	for index, record := range records {
		if _, err := entryService.ImportRecord(ctx, userID, record, models.SourceImport); err != nil {
			switch {
			case errors.Is(err, services.ErrEntryDateUnresolved):
				report.Skipped++
				fmt.Fprintf(out, "skipped document %d: no resolvable date\n", index+1)
				continue
			case errors.Is(err, services.ErrEntrySuperseded):
				report.Superseded++
				fmt.Fprintf(out, "superseded document %d: day already holds a higher-ranked document\n", index+1)
				continue
			}
			return report, fmt.Errorf("import document %d: %w", index+1, err)
		}
		report.Imported++
	}

	fmt.Fprintf(out, "Imported %d of %d documents (%d skipped, %d superseded)\n", report.Imported, report.Read, report.Skipped, report.Superseded)
	return report, nil
}

// DecodeExport accepts either a JSON array of documents or an object mapping
// document ids to documents. Object keys become the id of documents that
// carry none.
func DecodeExport(payload []byte) ([]services.RawRecord, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, errUnsupportedExport
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	switch trimmed[0] {
	case '[':
		var records []services.RawRecord
		if err := decoder.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode export: %w", err)
		}
		return compactRecords(records), nil
	case '{':
		var keyed map[string]services.RawRecord
		if err := decoder.Decode(&keyed); err != nil {
			return nil, fmt.Errorf("decode export: %w", err)
		}
		ids := make([]string, 0, len(keyed))
		for id := range keyed {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		records := make([]services.RawRecord, 0, len(keyed))
		for _, id := range ids {
			record := keyed[id]
			if record == nil {
				continue
			}
			if _, ok := record["id"]; !ok {
				record["id"] = id
			}
			records = append(records, record)
		}
		return records, nil
	default:
		return nil, errUnsupportedExport
	}
}

func compactRecords(records []services.RawRecord) []services.RawRecord {
	compacted := records[:0]
	for _, record := range records {
		if record != nil {
			compacted = append(compacted, record)
		}
	}
	return compacted
}
