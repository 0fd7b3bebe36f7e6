// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/ontime/internal/logger"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(context.Background(), db, "pgx", logger.Nop())
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(context.Background(), db, "pgx", logger.Nop())
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnknownDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, "mysql", logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

// TestMigrate_SQLiteSchema applies the sqlite migrations to an in-memory
// database and checks that deleting a user cascades to its todos and notes.
func TestMigrate_SQLiteSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrate_test?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, Migrate(context.Background(), db, "sqlite3", logger.Nop()))
	// running twice is a no-op
	require.NoError(t, Migrate(context.Background(), db, "sqlite3", logger.Nop()))

	res, err := db.Exec(`INSERT INTO users (username, email, password_hash) VALUES ('alice', 'a@x.com', 'h')`)
	require.NoError(t, err)
	userID, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO todos (user_id, task) VALUES (?, 'buy milk')`, userID)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO notes (user_id, content) VALUES (?, 'hello')`, userID)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (username, email, password_hash) VALUES ('alice', 'b@x.com', 'h')`)
	assert.Error(t, err, "duplicate username must be rejected")

	_, err = db.Exec(`DELETE FROM users WHERE id = ?`, userID)
	require.NoError(t, err)

	var todos, notes int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM todos`).Scan(&todos))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&notes))
	assert.Zero(t, todos)
	assert.Zero(t, notes)
}
