package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/XSAM/otelsql"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	_ "modernc.org/sqlite"
)

const credentialsSchema = `
	CREATE TABLE IF NOT EXISTS credentials (
		profile    TEXT PRIMARY KEY,
		token      TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		is_admin   INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)
`

// OpenSQLite opens (creating if needed) the local credential database.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {

	db, err := otelsql.Open("sqlite", path, otelsql.WithAttributes(attribute.String("db.system", "sqlite")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// a single writer keeps sqlite from returning SQLITE_BUSY
	db.SetMaxOpenConns(1)

	dbx := sqlx.NewDb(db, "sqlite")

	if err := dbx.PingContext(ctx); err != nil {
		_ = dbx.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := dbx.ExecContext(ctx, credentialsSchema); err != nil {
		_ = dbx.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Debug("Credential database ready", slog.String("path", path))

	return dbx, nil
}
