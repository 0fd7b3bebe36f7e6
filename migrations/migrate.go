// Package migrations embeds the SQL schema of the ontime database and applies
// it with goose. Each supported dialect keeps its own directory of numbered
// migrations.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// ErrUnknownDialect is returned for drivers that have no migration set.
var ErrUnknownDialect = errors.New("no migrations for driver")

// Migrate applies all pending migrations for the given database/sql driver
// name ("pgx" or "sqlite3").
func Migrate(ctx context.Context, db *sql.DB, driver string, log *logger.Logger) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{log})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func dialectFor(driver string) (string, string, error) {
	switch driver {
	case "pgx", "postgres":
		return string(goose.DialectPostgres), "postgres", nil
	case "sqlite3", "sqlite":
		return string(goose.DialectSQLite3), "sqlite", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownDialect, driver)
	}
}

// gooseLogger routes goose progress output into the application logger.
type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	if g.log == nil {
		return
	}
	g.log.Info().Str("func", "migrations.Migrate").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	if g.log == nil {
		return
	}
	g.log.Error().Str("func", "migrations.Migrate").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
