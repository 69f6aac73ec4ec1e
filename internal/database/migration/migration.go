package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Counters that are uint64 in the domain are stored as NUMERIC(20,0) so the
// full unsigned range round-trips.
var steps = []migrationStep{
	{
		Name: "create_table_registries",
		SQL: `CREATE TABLE IF NOT EXISTS registries (
  owner          TEXT          PRIMARY KEY,
  total_datasets NUMERIC(20,0) NOT NULL DEFAULT 0 CHECK (total_datasets >= 0),
  created_at     TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_reputations",
		SQL: `CREATE TABLE IF NOT EXISTS reputations (
  contributor         TEXT          PRIMARY KEY,
  total_uploads       BIGINT        NOT NULL DEFAULT 0 CHECK (total_uploads BETWEEN 0 AND 4294967295),
  total_quality_score NUMERIC(20,0) NOT NULL DEFAULT 0 CHECK (total_quality_score >= 0),
  total_downloads     NUMERIC(20,0) NOT NULL DEFAULT 0 CHECK (total_downloads >= 0),
  total_citations     BIGINT        NOT NULL DEFAULT 0 CHECK (total_citations BETWEEN 0 AND 4294967295),
  reputation_score    BIGINT        NOT NULL DEFAULT 0 CHECK (reputation_score BETWEEN 0 AND 4294967295),
  download_time       BIGINT        NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_table_datasets",
		SQL: `CREATE TABLE IF NOT EXISTS datasets (
  id               UUID          PRIMARY KEY,
  registry         TEXT          NOT NULL REFERENCES registries (owner),
  contributor      TEXT          NOT NULL REFERENCES reputations (contributor),
  content_hash     BYTEA         NOT NULL CHECK (octet_length(content_hash) = 32),
  ai_metadata      BYTEA,
  file_name        TEXT          NOT NULL CHECK (octet_length(file_name) <= 100),
  file_size        BIGINT        NOT NULL CHECK (file_size BETWEEN 0 AND 104857600),
  data_uri         TEXT,
  column_count     NUMERIC(20,0) NOT NULL DEFAULT 0,
  row_count        NUMERIC(20,0) NOT NULL DEFAULT 0,
  quality_score    SMALLINT      NOT NULL CHECK (quality_score BETWEEN 0 AND 100),
  upload_timestamp TIMESTAMPTZ   NOT NULL,
  last_updated     TIMESTAMPTZ,
  download_count   BIGINT        NOT NULL DEFAULT 0 CHECK (download_count BETWEEN 0 AND 4294967295),
  is_active        BOOLEAN       NOT NULL DEFAULT TRUE
);`,
	},
	{
		Name: "create_index_datasets_registry",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_datasets_registry ON datasets (registry);`,
	},
	{
		Name: "create_index_datasets_contributor",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_datasets_contributor ON datasets (contributor);`,
	},
	{
		Name: "create_index_datasets_upload_timestamp",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_datasets_upload_timestamp ON datasets (upload_timestamp DESC, id DESC);`,
	},
}

// EnsureMigrated checks if the 'datasets' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.datasets') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.String("error_message", err.Error()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
