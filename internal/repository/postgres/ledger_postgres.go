package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"datasetregistry/internal/model"
	"datasetregistry/internal/repository"
)

// LedgerPostgres is a PostgreSQL implementation of repository.Ledger.
// It uses database/sql with parameterized queries and contains no business logic.
// Rows read for update are locked with SELECT ... FOR UPDATE, so transactions
// touching the same registry or reputation are serialized by the database.
type LedgerPostgres struct {
	db *sql.DB
}

// NewLedgerPostgres creates a new LedgerPostgres repository.
func NewLedgerPostgres(db *sql.DB) *LedgerPostgres {
	return &LedgerPostgres{db: db}
}

var _ repository.Ledger = (*LedgerPostgres)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	registryColumns   = `owner, total_datasets, created_at`
	reputationColumns = `contributor, total_uploads, total_quality_score, total_downloads,
		total_citations, reputation_score, download_time`
	datasetColumns = `id, registry, contributor, content_hash, ai_metadata, file_name, file_size,
		data_uri, column_count, row_count, quality_score, upload_timestamp, last_updated,
		download_count, is_active`
)

// CreateRegistry inserts a registry row unless the owner already has one.
func (r *LedgerPostgres) CreateRegistry(ctx context.Context, reg *model.Registry) error {
	const q = `
		INSERT INTO registries (owner, total_datasets, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner) DO NOTHING
	`
	return insertOnce(ctx, r.db, q, reg.Owner, numeric(reg.TotalDatasets), reg.CreatedAt)
}

// CreateReputation inserts a reputation row unless the contributor already has one.
func (r *LedgerPostgres) CreateReputation(ctx context.Context, rep *model.Reputation) error {
	const q = `
		INSERT INTO reputations (contributor, total_uploads, total_quality_score, total_downloads,
			total_citations, reputation_score, download_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (contributor) DO NOTHING
	`
	return insertOnce(ctx, r.db, q,
		rep.Contributor,
		rep.TotalUploads,
		numeric(rep.TotalQualityScore),
		numeric(rep.TotalDownloads),
		rep.TotalCitations,
		rep.ReputationScore,
		rep.DownloadTime,
	)
}

// FindRegistry fetches a registry by owner.
func (r *LedgerPostgres) FindRegistry(ctx context.Context, owner string) (*model.Registry, error) {
	return findRegistry(ctx, r.db, owner, false)
}

// FindReputation fetches a reputation by contributor.
func (r *LedgerPostgres) FindReputation(ctx context.Context, contributor string) (*model.Reputation, error) {
	return findReputation(ctx, r.db, contributor, false)
}

// FindDataset fetches a single dataset by its ID.
func (r *LedgerPostgres) FindDataset(ctx context.Context, id string) (*model.Dataset, error) {
	return findDataset(ctx, r.db, id, false)
}

// ListDatasets returns datasets using LIMIT/OFFSET pagination and a total count.
func (r *LedgerPostgres) ListDatasets(ctx context.Context, f repository.DatasetFilter, pq repository.PageQuery) (*repository.PageResult[model.Dataset], error) {
	where, args := buildDatasetWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	qList := fmt.Sprintf(`
		SELECT %s
		FROM datasets
		%s
		ORDER BY upload_timestamp DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, datasetColumns, where, n+1, n+2)

	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Dataset, 0)
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *ds)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Dataset]{
		Items: items,
		Total: total,
	}, nil
}

// WithTx runs fn in a SQL transaction, committing only if fn succeeds.
func (r *LedgerPostgres) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&txPostgres{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w; rollback failed: %v", err, rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// PingContext checks database connectivity.
func (r *LedgerPostgres) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// txPostgres implements repository.Tx on top of *sql.Tx.
type txPostgres struct {
	tx *sql.Tx
}

func (t *txPostgres) RegistryForUpdate(ctx context.Context, owner string) (*model.Registry, error) {
	return findRegistry(ctx, t.tx, owner, true)
}

func (t *txPostgres) ReputationForUpdate(ctx context.Context, contributor string) (*model.Reputation, error) {
	return findReputation(ctx, t.tx, contributor, true)
}

func (t *txPostgres) DatasetForUpdate(ctx context.Context, id string) (*model.Dataset, error) {
	return findDataset(ctx, t.tx, id, true)
}

func (t *txPostgres) InsertDataset(ctx context.Context, ds *model.Dataset) error {
	const q = `
		INSERT INTO datasets (id, registry, contributor, content_hash, ai_metadata, file_name,
			file_size, data_uri, column_count, row_count, quality_score, upload_timestamp,
			last_updated, download_count, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING
	`
	return insertOnce(ctx, t.tx, q,
		ds.ID,
		ds.Registry,
		ds.Contributor,
		ds.ContentHash[:],
		ds.AIMetadata,
		ds.FileName,
		int64(ds.FileSize),
		ds.DataURI,
		numeric(ds.ColumnCount),
		numeric(ds.RowCount),
		ds.QualityScore,
		ds.UploadTimestamp,
		ds.LastUpdated,
		ds.DownloadCount,
		ds.IsActive,
	)
}

func (t *txPostgres) UpdateDataset(ctx context.Context, ds *model.Dataset) error {
	const q = `
		UPDATE datasets
		SET last_updated = $2, download_count = $3, is_active = $4
		WHERE id = $1
	`
	return updateOne(ctx, t.tx, q, ds.ID, ds.LastUpdated, ds.DownloadCount, ds.IsActive)
}

func (t *txPostgres) UpdateRegistry(ctx context.Context, reg *model.Registry) error {
	const q = `UPDATE registries SET total_datasets = $2 WHERE owner = $1`
	return updateOne(ctx, t.tx, q, reg.Owner, numeric(reg.TotalDatasets))
}

func (t *txPostgres) UpdateReputation(ctx context.Context, rep *model.Reputation) error {
	const q = `
		UPDATE reputations
		SET total_uploads = $2, total_quality_score = $3, total_downloads = $4,
			total_citations = $5, reputation_score = $6, download_time = $7
		WHERE contributor = $1
	`
	return updateOne(ctx, t.tx, q,
		rep.Contributor,
		rep.TotalUploads,
		numeric(rep.TotalQualityScore),
		numeric(rep.TotalDownloads),
		rep.TotalCitations,
		rep.ReputationScore,
		rep.DownloadTime,
	)
}

func insertOnce(ctx context.Context, q queryer, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrAlreadyExists
	}
	return nil
}

func updateOne(ctx context.Context, q queryer, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func lockClause(forUpdate bool) string {
	if forUpdate {
		return " FOR UPDATE"
	}
	return ""
}

func findRegistry(ctx context.Context, q queryer, owner string, forUpdate bool) (*model.Registry, error) {
	query := `SELECT ` + registryColumns + ` FROM registries WHERE owner = $1` + lockClause(forUpdate)
	var (
		reg   model.Registry
		total numeric
	)
	if err := q.QueryRowContext(ctx, query, owner).Scan(&reg.Owner, &total, &reg.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	reg.TotalDatasets = uint64(total)
	return &reg, nil
}

func findReputation(ctx context.Context, q queryer, contributor string, forUpdate bool) (*model.Reputation, error) {
	query := `SELECT ` + reputationColumns + ` FROM reputations WHERE contributor = $1` + lockClause(forUpdate)
	var (
		rep                model.Reputation
		quality, downloads numeric
	)
	if err := q.QueryRowContext(ctx, query, contributor).Scan(
		&rep.Contributor,
		&rep.TotalUploads,
		&quality,
		&downloads,
		&rep.TotalCitations,
		&rep.ReputationScore,
		&rep.DownloadTime,
	); err != nil {
		return nil, notFound(err)
	}
	rep.TotalQualityScore = uint64(quality)
	rep.TotalDownloads = uint64(downloads)
	return &rep, nil
}

func findDataset(ctx context.Context, q queryer, id string, forUpdate bool) (*model.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE id = $1` + lockClause(forUpdate)
	ds, err := scanDataset(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return ds, nil
}

func scanDataset(row rowScanner) (*model.Dataset, error) {
	var (
		ds            model.Dataset
		hash          []byte
		fileSize      int64
		columns, rows numeric
		dataURI       sql.NullString
	)
	if err := row.Scan(
		&ds.ID,
		&ds.Registry,
		&ds.Contributor,
		&hash,
		&ds.AIMetadata,
		&ds.FileName,
		&fileSize,
		&dataURI,
		&columns,
		&rows,
		&ds.QualityScore,
		&ds.UploadTimestamp,
		&ds.LastUpdated,
		&ds.DownloadCount,
		&ds.IsActive,
	); err != nil {
		return nil, err
	}
	if len(hash) != model.HashSize {
		return nil, fmt.Errorf("dataset %s: content hash has %d bytes", ds.ID, len(hash))
	}
	copy(ds.ContentHash[:], hash)
	ds.FileSize = uint64(fileSize)
	ds.DataURI = dataURI.String
	ds.ColumnCount = uint64(columns)
	ds.RowCount = uint64(rows)
	return &ds, nil
}

// buildDatasetWhere builds the WHERE clause and arguments for a dataset filter.
func buildDatasetWhere(f repository.DatasetFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if f.Contributor != "" {
		args = append(args, f.Contributor)
		conditions = append(conditions, fmt.Sprintf("contributor = $%d", len(args)))
	}
	if f.Registry != "" {
		args = append(args, f.Registry)
		conditions = append(conditions, fmt.Sprintf("registry = $%d", len(args)))
	}
	if f.ActiveOnly {
		conditions = append(conditions, "is_active")
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
