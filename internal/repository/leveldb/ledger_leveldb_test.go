package leveldb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasetregistry/internal/model"
	"datasetregistry/internal/repository"
)

func newLedger(t *testing.T) *LedgerLevelDB {
	l, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedgerLevelDB_CreateOnce(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	now := time.Now().UTC()

	require.NoError(t, l.CreateRegistry(ctx, &model.Registry{Owner: "owner-1", CreatedAt: now}))
	assert.ErrorIs(t, l.CreateRegistry(ctx, &model.Registry{Owner: "owner-1"}), repository.ErrAlreadyExists)

	require.NoError(t, l.CreateReputation(ctx, &model.Reputation{Contributor: "contrib-1"}))
	assert.ErrorIs(t, l.CreateReputation(ctx, &model.Reputation{Contributor: "contrib-1"}), repository.ErrAlreadyExists)

	reg, err := l.FindRegistry(ctx, "owner-1")
	require.NoError(t, err)
	assert.True(t, now.Equal(reg.CreatedAt))

	_, err = l.FindRegistry(ctx, "owner-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = l.FindReputation(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = l.FindDataset(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLedgerLevelDB_WithTxCommit(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	require.NoError(t, l.CreateRegistry(ctx, &model.Registry{Owner: "owner-1"}))

	err := l.WithTx(ctx, func(tx repository.Tx) error {
		reg, err := tx.RegistryForUpdate(ctx, "owner-1")
		if err != nil {
			return err
		}
		reg.TotalDatasets = 7
		if err := tx.UpdateRegistry(ctx, reg); err != nil {
			return err
		}
		// reads inside the transaction see its own writes
		again, err := tx.RegistryForUpdate(ctx, "owner-1")
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(7), again.TotalDatasets)
		return tx.InsertDataset(ctx, &model.Dataset{ID: "ds-1", Registry: "owner-1", IsActive: true})
	})
	require.NoError(t, err)

	reg, err := l.FindRegistry(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), reg.TotalDatasets)

	ds, err := l.FindDataset(ctx, "ds-1")
	require.NoError(t, err)
	assert.True(t, ds.IsActive)
}

func TestLedgerLevelDB_WithTxRollback(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	require.NoError(t, l.CreateRegistry(ctx, &model.Registry{Owner: "owner-1", TotalDatasets: 3}))

	boom := errors.New("boom")
	err := l.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.InsertDataset(ctx, &model.Dataset{ID: "ds-1"}); err != nil {
			return err
		}
		if err := tx.UpdateRegistry(ctx, &model.Registry{Owner: "owner-1", TotalDatasets: 4}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	reg, err := l.FindRegistry(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), reg.TotalDatasets)

	_, err = l.FindDataset(ctx, "ds-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLedgerLevelDB_TxRules(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)

	err := l.WithTx(ctx, func(tx repository.Tx) error {
		return tx.UpdateReputation(ctx, &model.Reputation{Contributor: "ghost"})
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = l.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.InsertDataset(ctx, &model.Dataset{ID: "ds-1"}); err != nil {
			return err
		}
		return tx.InsertDataset(ctx, &model.Dataset{ID: "ds-1"})
	})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = l.WithTx(cancelled, func(tx repository.Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLedgerLevelDB_ListDatasets(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []model.Dataset{
		{ID: "a", Registry: "r1", Contributor: "c1", UploadTimestamp: base, IsActive: true},
		{ID: "b", Registry: "r1", Contributor: "c2", UploadTimestamp: base.Add(time.Hour), IsActive: true},
		{ID: "c", Registry: "r2", Contributor: "c1", UploadTimestamp: base.Add(2 * time.Hour), IsActive: false},
		{ID: "d", Registry: "r1", Contributor: "c1", UploadTimestamp: base.Add(3 * time.Hour), IsActive: true},
	}
	require.NoError(t, l.WithTx(ctx, func(tx repository.Tx) error {
		for i := range seed {
			if err := tx.InsertDataset(ctx, &seed[i]); err != nil {
				return err
			}
		}
		return nil
	}))

	ids := func(items []model.Dataset) []string {
		out := make([]string, 0, len(items))
		for _, ds := range items {
			out = append(out, ds.ID)
		}
		return out
	}

	tests := []struct {
		name      string
		filter    repository.DatasetFilter
		page      repository.PageQuery
		wantIDs   []string
		wantTotal int
	}{
		{name: "all newest first", page: repository.PageQuery{Limit: 10}, wantIDs: []string{"d", "c", "b", "a"}, wantTotal: 4},
		{name: "by contributor", filter: repository.DatasetFilter{Contributor: "c1"}, page: repository.PageQuery{Limit: 10}, wantIDs: []string{"d", "c", "a"}, wantTotal: 3},
		{name: "active in registry", filter: repository.DatasetFilter{Registry: "r1", ActiveOnly: true}, page: repository.PageQuery{Limit: 10}, wantIDs: []string{"d", "b", "a"}, wantTotal: 3},
		{name: "paged", page: repository.PageQuery{Limit: 2, Offset: 1}, wantIDs: []string{"c", "b"}, wantTotal: 4},
		{name: "offset past end", page: repository.PageQuery{Limit: 2, Offset: 9}, wantIDs: []string{}, wantTotal: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := l.ListDatasets(ctx, tt.filter, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Equal(t, tt.wantIDs, ids(res.Items))
		})
	}
}

func TestLedgerLevelDB_Reopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir()

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.CreateReputation(ctx, &model.Reputation{Contributor: "c1", TotalUploads: 2, TotalQualityScore: 150}))
	require.NoError(t, l.PingContext(ctx))
	require.NoError(t, l.Close())
	assert.Error(t, l.PingContext(ctx))

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()

	rep, err := l.FindReputation(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), rep.TotalUploads)
	assert.Equal(t, uint64(150), rep.TotalQualityScore)
}
