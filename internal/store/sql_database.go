package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/migrations"
	sq "github.com/Masterminds/squirrel"
)

// DB is the shared connection pool together with the dialect specific
// pieces the repositories need: the squirrel statement builder with the
// right placeholder format and the driver failure classifier.
type DB struct {
	*sql.DB
	driver          string
	builder         sq.StatementBuilderType
	classifyFailure failureClassifier
	logger          *logger.Logger
	now             func() time.Time
}

// querier is satisfied by both *sql.DB and *sql.Conn.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sessionCtxKey struct{}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, cfg.Driver)
	}
}

func newDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		driver:  driver,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
		now:     func() time.Time { return time.Now().UTC() },
	}

	switch driver {
	case config.DriverPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.classifyFailure = classifyPostgres
	default:
		db.classifyFailure = classifySQLite
	}

	return db
}

// Driver returns the database/sql driver name of the pool.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate brings the schema up to date.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.driver, db.logger)
}

// OpenSession takes a dedicated connection from the pool and binds it to
// the returned context. Repositories called with that context run every
// statement on this connection. release returns the connection to the pool.
func (db *DB) OpenSession(ctx context.Context) (context.Context, func() error, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("%w: %w", ErrOpeningSession, err)
	}

	return context.WithValue(ctx, sessionCtxKey{}, conn), conn.Close, nil
}

// executor returns the session bound to ctx, or the pool when there is none.
func (db *DB) executor(ctx context.Context) querier {
	if conn, ok := ctx.Value(sessionCtxKey{}).(*sql.Conn); ok && conn != nil {
		return conn
	}

	return db.DB
}
