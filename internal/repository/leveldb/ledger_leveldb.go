// Package leveldb implements repository.Ledger on an embedded goleveldb
// database. Each record kind lives in its own pool, marked by a one-byte key
// prefix. A transaction collects its writes in a leveldb.Batch that is
// written in a single atomic, synced operation on commit.
package leveldb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"datasetregistry/internal/model"
	"datasetregistry/internal/repository"
)

// record pools
const (
	prefixRegistry   byte = 'R'
	prefixReputation byte = 'P'
	prefixDataset    byte = 'D'
)

// LedgerLevelDB is a goleveldb implementation of repository.Ledger.
// Writers are serialized by a store-wide lock held for the whole transaction,
// so concurrent read-modify-write cycles on the same record cannot interleave.
type LedgerLevelDB struct {
	mu sync.Mutex
	db *leveldb.DB
}

var _ repository.Ledger = (*LedgerLevelDB)(nil)

// Open opens (creating if needed) the database at path.
func Open(path string) (*LedgerLevelDB, error) {
	db, err := leveldb.OpenFile(path, &ldb_opt.Options{ErrorIfExist: false})
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &LedgerLevelDB{db: db}, nil
}

// OpenMemory opens a database that lives only in memory.
func OpenMemory() (*LedgerLevelDB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory leveldb: %w", err)
	}
	return &LedgerLevelDB{db: db}, nil
}

// Close releases the database.
func (l *LedgerLevelDB) Close() error {
	return l.db.Close()
}

// prepend the prefix onto the key
func poolKey(prefix byte, key string) []byte {
	k := make([]byte, 1, len(key)+1)
	k[0] = prefix
	return append(k, key...)
}

// CreateRegistry stores reg unless its owner already has a registry.
func (l *LedgerLevelDB) CreateRegistry(ctx context.Context, reg *model.Registry) error {
	return l.createOnce(ctx, poolKey(prefixRegistry, reg.Owner), reg)
}

// CreateReputation stores rep unless its contributor already has a reputation.
func (l *LedgerLevelDB) CreateReputation(ctx context.Context, rep *model.Reputation) error {
	return l.createOnce(ctx, poolKey(prefixReputation, rep.Contributor), rep)
}

func (l *LedgerLevelDB) createOnce(ctx context.Context, key []byte, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	exists, err := l.db.Has(key, nil)
	if err != nil {
		return err
	}
	if exists {
		return repository.ErrAlreadyExists
	}
	return l.db.Put(key, value, &ldb_opt.WriteOptions{Sync: true})
}

// FindRegistry reads a registry by owner.
func (l *LedgerLevelDB) FindRegistry(ctx context.Context, owner string) (*model.Registry, error) {
	var reg model.Registry
	if err := l.get(ctx, poolKey(prefixRegistry, owner), &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindReputation reads a reputation by contributor.
func (l *LedgerLevelDB) FindReputation(ctx context.Context, contributor string) (*model.Reputation, error) {
	var rep model.Reputation
	if err := l.get(ctx, poolKey(prefixReputation, contributor), &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// FindDataset reads a dataset by ID.
func (l *LedgerLevelDB) FindDataset(ctx context.Context, id string) (*model.Dataset, error) {
	var ds model.Dataset
	if err := l.get(ctx, poolKey(prefixDataset, id), &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (l *LedgerLevelDB) get(ctx context.Context, key []byte, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := l.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(value, v)
}

// ListDatasets scans the dataset pool, newest upload first.
func (l *LedgerLevelDB) ListDatasets(ctx context.Context, f repository.DatasetFilter, pq repository.PageQuery) (*repository.PageResult[model.Dataset], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{prefixDataset}), nil)
	defer iter.Release()

	matched := make([]model.Dataset, 0)
	for iter.Next() {
		var ds model.Dataset
		if err := json.Unmarshal(iter.Value(), &ds); err != nil {
			return nil, fmt.Errorf("decode dataset %q: %w", iter.Key()[1:], err)
		}
		if f.Contributor != "" && ds.Contributor != f.Contributor {
			continue
		}
		if f.Registry != "" && ds.Registry != f.Registry {
			continue
		}
		if f.ActiveOnly && !ds.IsActive {
			continue
		}
		matched = append(matched, ds)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.UploadTimestamp.Equal(b.UploadTimestamp) {
			return a.UploadTimestamp.After(b.UploadTimestamp)
		}
		return a.ID > b.ID
	})

	total := len(matched)
	start := min(max(pq.Offset, 0), total)
	end := total
	if pq.Limit > 0 {
		end = min(start+pq.Limit, total)
	}

	return &repository.PageResult[model.Dataset]{
		Items: matched[start:end],
		Total: total,
	}, nil
}

// WithTx runs fn while holding the writer lock and commits its batch atomically.
func (l *LedgerLevelDB) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &txLevelDB{
		db:      l.db,
		batch:   new(leveldb.Batch),
		pending: make(map[string][]byte),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if tx.batch.Len() == 0 {
		return nil
	}
	if err := l.db.Write(tx.batch, &ldb_opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// PingContext reports whether the database is open.
func (l *LedgerLevelDB) PingContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := l.db.GetProperty("leveldb.num-files-at-level0")
	return err
}

// txLevelDB buffers writes; reads see the transaction's own writes first.
type txLevelDB struct {
	db      *leveldb.DB
	batch   *leveldb.Batch
	pending map[string][]byte
}

func (t *txLevelDB) lookup(key []byte) ([]byte, error) {
	if v, ok := t.pending[string(key)]; ok {
		return v, nil
	}
	v, err := t.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, repository.ErrNotFound
	}
	return v, err
}

func (t *txLevelDB) read(ctx context.Context, key []byte, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := t.lookup(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(value, v)
}

func (t *txLevelDB) put(key []byte, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}
	t.pending[string(key)] = value
	t.batch.Put(key, value)
	return nil
}

func (t *txLevelDB) replace(ctx context.Context, key []byte, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.lookup(key); err != nil {
		return err
	}
	return t.put(key, v)
}

func (t *txLevelDB) RegistryForUpdate(ctx context.Context, owner string) (*model.Registry, error) {
	var reg model.Registry
	if err := t.read(ctx, poolKey(prefixRegistry, owner), &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (t *txLevelDB) ReputationForUpdate(ctx context.Context, contributor string) (*model.Reputation, error) {
	var rep model.Reputation
	if err := t.read(ctx, poolKey(prefixReputation, contributor), &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (t *txLevelDB) DatasetForUpdate(ctx context.Context, id string) (*model.Dataset, error) {
	var ds model.Dataset
	if err := t.read(ctx, poolKey(prefixDataset, id), &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (t *txLevelDB) InsertDataset(ctx context.Context, ds *model.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := poolKey(prefixDataset, ds.ID)
	_, err := t.lookup(key)
	switch {
	case err == nil:
		return repository.ErrAlreadyExists
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}
	return t.put(key, ds)
}

func (t *txLevelDB) UpdateDataset(ctx context.Context, ds *model.Dataset) error {
	return t.replace(ctx, poolKey(prefixDataset, ds.ID), ds)
}

func (t *txLevelDB) UpdateRegistry(ctx context.Context, reg *model.Registry) error {
	return t.replace(ctx, poolKey(prefixRegistry, reg.Owner), reg)
}

func (t *txLevelDB) UpdateReputation(ctx context.Context, rep *model.Reputation) error {
	return t.replace(ctx, poolKey(prefixReputation, rep.Contributor), rep)
}
