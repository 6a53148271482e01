package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/bloomcal/internal/db"
)

func RunMigrationStatusCommand(dbPath string, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() { _ = db.Close(database) }()

	states, err := db.MigrationStatus(database)
	if err != nil {
		return fmt.Errorf("load migration status: %w", err)
	}
	for _, state := range states {
		status := "pending"
		if state.Applied {
			status = "applied"
		}
		fmt.Fprintf(out, "%s  %-8s %s\n", state.Version, status, state.Name)
	}
	return nil
}
