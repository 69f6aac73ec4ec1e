// Package database opens the record store behind repository.Ledger.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"

	"datasetregistry/internal/config"
	"datasetregistry/internal/database/migration"
	"datasetregistry/internal/repository"
	"datasetregistry/internal/repository/leveldb"
	"datasetregistry/internal/repository/postgres"
)

const pingTimeout = 5 * time.Second

// sqlOpen is swapped out in tests.
var sqlOpen = sql.Open

var (
	tracedDriverOnce sync.Once
	tracedDriverName string
	tracedDriverErr  error
)

// tracedDriver wraps the pgx driver with otelsql. database/sql keeps every
// registered driver for the life of the process, so this happens once.
func tracedDriver() (string, error) {
	tracedDriverOnce.Do(func() {
		tracedDriverName, tracedDriverErr = otelsql.Register("pgx",
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
			otelsql.WithSQLCommenter(true),
		)
	})
	return tracedDriverName, tracedDriverErr
}

// OpenLedger opens the record store selected by cfg.StoreDriver.
// For postgres the schema is migrated before the ledger is returned.
// The returned close function releases the underlying connection or files.
func OpenLedger(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (repository.Ledger, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := openPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("ledger_opened",
			zap.String("driver", cfg.StoreDriver),
			zap.String("db_host", cfg.Database.Host),
			zap.String("application_name", cfg.Database.ApplicationName),
			zap.Int("max_open_conns", db.Stats().MaxOpenConnections),
		)
		return postgres.NewLedgerPostgres(db), db.Close, nil

	case config.StoreDriverLevelDB:
		l, err := leveldb.Open(cfg.LevelDB.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open leveldb ledger: %w", err)
		}
		log.Info("ledger_opened", zap.String("driver", cfg.StoreDriver), zap.String("path", cfg.LevelDB.Path))
		return l, l.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// openPostgres opens the traced connection pool and waits for the server.
func openPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := ledgerDSN(c)
	if err != nil {
		return nil, err
	}
	driverName, err := tracedDriver()
	if err != nil {
		return nil, fmt.Errorf("register traced pgx driver: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping ledger database: %w", err)
	}
	return db, nil
}

// ledgerDSN renders the pgx connection URL. Parameters pgx does not know
// itself (application_name, statement_timeout, lock_timeout) are sent to the
// server as session settings on every pooled connection.
func ledgerDSN(c config.DatabaseConfig) (string, error) {
	var missing []string
	for _, f := range []struct{ key, val string }{
		{"DB_HOST", c.Host},
		{"DB_PORT", c.Port},
		{"DB_USER", c.User},
		{"DB_NAME", c.Name},
	} {
		if f.val == "" {
			missing = append(missing, f.key)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("ledger database config: missing %s", strings.Join(missing, ", "))
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.ApplicationName != "" {
		q.Set("application_name", c.ApplicationName)
	}
	if c.StatementTimeoutMs > 0 {
		q.Set("statement_timeout", strconv.Itoa(c.StatementTimeoutMs))
	}
	if c.LockTimeoutMs > 0 {
		q.Set("lock_timeout", strconv.Itoa(c.LockTimeoutMs))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
