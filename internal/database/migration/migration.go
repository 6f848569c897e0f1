package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is checked to decide whether the schema exists.
const sentinelTable = "public.document_uploads"

var steps = []migrationStep{
	{
		Name: "create_table_document_uploads",
		SQL: `CREATE TABLE IF NOT EXISTS document_uploads (
  id            UUID        PRIMARY KEY,
  vendor_id     TEXT        NOT NULL,
  document_type TEXT        NOT NULL,
  file_name     TEXT        NOT NULL,
  file_url      TEXT        NOT NULL,
  storage_key   TEXT        NOT NULL UNIQUE,
  size          BIGINT      NOT NULL CHECK (size >= 0),
  content_type  TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_document_uploads_vendor_created",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_uploads_vendor_created ON document_uploads (vendor_id, created_at DESC);`,
	},
	{
		Name: "create_index_document_uploads_document_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_uploads_document_type ON document_uploads (lower(document_type));`,
	},
}

// EnsureMigrated creates the ledger schema when the sentinel table is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	l := log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	l.Info().Str("status", "starting").Msg("db_migration_check")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		l.Error().
			Str("status", "error").
			Str("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("db_migration_failed")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		l.Info().
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("db_migration_skip")
		return nil
	}

	l.Info().Str("status", "in_progress").Msg("db_migration_start")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			l.Error().
				Str("status", "error").
				Str("migration_step", step.Name).
				Str("error_message", err.Error()).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Msg("db_migration_failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		l.Info().
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("db_migration_step")
	}

	l.Info().
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("db_migration_success")

	return nil
}
