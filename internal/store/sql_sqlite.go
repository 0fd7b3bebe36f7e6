package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
)

// NewConnectSQLite opens an SQLite database. Foreign keys are always switched
// on so that deleting a user cascades to its todos and notes. In-memory
// databases are limited to one connection because every connection would
// otherwise see its own empty database.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn := sqliteDSN(cfg.DSN)

	if err := ensureDBDir(dsn); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database directory")
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	conn, err := sql.Open(config.DriverSQLite, dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if isMemoryDSN(dsn) {
		conn.SetMaxOpenConns(1)
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Bool("in_memory", isMemoryDSN(dsn)).Msg("connected to database successfully")

	return newDB(conn, config.DriverSQLite, log), nil
}

// sqliteDSN appends the connection parameters the repositories rely on
// unless the caller already set them.
func sqliteDSN(dsn string) string {
	params := make([]string, 0, 2)
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk=") {
		params = append(params, "_foreign_keys=on")
	}
	if !strings.Contains(dsn, "_busy_timeout") && !strings.Contains(dsn, "_timeout=") {
		params = append(params, "_busy_timeout=5000")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + strings.Join(params, "&")
}

func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// ensureDBDir creates the parent directory of a plain database file path.
func ensureDBDir(dsn string) error {
	if isMemoryDSN(dsn) || strings.HasPrefix(dsn, "file:") {
		return nil
	}

	path := dsn
	if i := strings.IndexRune(path, '?'); i >= 0 {
		path = path[:i]
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	return os.MkdirAll(dir, 0o755)
}

// asSQLiteError unwraps err to the go-sqlite3 driver error, if it is one.
func asSQLiteError(err error) (sqlite3.Error, bool) {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr, true
	}

	return sqlite3.Error{}, false
}

// classifySQLite reads the extended result code of a go-sqlite3 error. The
// message of a unique failure names the column, e.g.
// "UNIQUE constraint failed: users.username".
func classifySQLite(err error) driverFailure {
	liteErr, ok := asSQLiteError(err)
	if !ok {
		return driverFailure{kind: failureOther}
	}

	switch {
	case liteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		return driverFailure{kind: failureUnique, constraint: liteErr.Error()}
	case liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey:
		return driverFailure{kind: failureForeignKey}
	case liteErr.Code == sqlite3.ErrBusy, liteErr.Code == sqlite3.ErrLocked:
		return driverFailure{kind: failureUnavailable}
	default:
		return driverFailure{kind: failureOther}
	}
}
