package db

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/bloomcal/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
var addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)

type schemaMigration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

// MigrationState reports whether an embedded migration has been recorded in
// schema_migrations.
type MigrationState struct {
	Version string
	Name    string
	Applied bool
}

func migrate(database *gorm.DB) error {
	pending, err := pendingMigrations(database)
	if err != nil {
		return err
	}

	for _, migration := range pending {
		if err := applyMigration(database, migration); err != nil {
			return err
		}
		log.Printf("applied migration %s", migration.Name)
	}
	return nil
}

// MigrationStatus lists every embedded migration in apply order.
func MigrationStatus(database *gorm.DB) ([]MigrationState, error) {
	if err := ensureSchemaMigrationsTable(database); err != nil {
		return nil, err
	}
	migrations, err := loadSchemaMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := loadAppliedVersions(database)
	if err != nil {
		return nil, err
	}

	states := make([]MigrationState, 0, len(migrations))
	for _, migration := range migrations {
		_, ok := applied[migration.Version]
		states = append(states, MigrationState{Version: migration.Version, Name: migration.Name, Applied: ok})
	}
	return states, nil
}

func pendingMigrations(database *gorm.DB) ([]schemaMigration, error) {
	if err := ensureSchemaMigrationsTable(database); err != nil {
		return nil, err
	}
	migrations, err := loadSchemaMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := loadAppliedVersions(database)
	if err != nil {
		return nil, err
	}

	pending := make([]schemaMigration, 0, len(migrations))
	for _, migration := range migrations {
		if _, ok := applied[migration.Version]; !ok {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

func ensureSchemaMigrationsTable(database *gorm.DB) error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func loadSchemaMigrations() ([]schemaMigration, error) {
	files, err := fs.ReadDir(embeddedmigrations.Scripts, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(files))
	byVersion := make(map[string]string, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		matches := migrationFilePattern.FindStringSubmatch(name)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		if existing, ok := byVersion[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, existing, name)
		}
		byVersion[version] = name

		body, err := fs.ReadFile(embeddedmigrations.Scripts, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, schemaMigration{Version: version, Order: order, Name: name, SQL: string(body)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		if migrations[i].Order == migrations[j].Order {
			return migrations[i].Name < migrations[j].Name
		}
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func loadAppliedVersions(database *gorm.DB) (map[string]struct{}, error) {
	var rows []struct {
		Version string `gorm:"column:version"`
	}
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		applied[row.Version] = struct{}{}
	}
	return applied, nil
}

func applyMigration(database *gorm.DB, migration schemaMigration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		statements := splitSQLStatements(migration.SQL)
		if len(statements) == 0 {
			return errors.New("migration has no SQL statements")
		}

		for _, statement := range statements {
			skip, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", migration.Name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.Name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.Name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded lets ADD COLUMN statements re-run against a database
// that already carries the column.
func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatementPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}
	return tableHasColumn(database, unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]))
}

func tableHasColumn(database *gorm.DB, table string, column string) (bool, error) {
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(strings.TrimSpace(existing.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
