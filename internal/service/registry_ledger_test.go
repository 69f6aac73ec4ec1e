package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"datasetregistry/internal/clock"
	"datasetregistry/internal/core"
	"datasetregistry/internal/model"
	"datasetregistry/internal/repository"
	"datasetregistry/internal/repository/leveldb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLedgerService wires the service to an in-memory goleveldb ledger with an
// initialized registry and a registered contributor.
func newLedgerService(t *testing.T, c clock.Clock) (RegistryService, *leveldb.LedgerLevelDB) {
	t.Helper()
	l, err := leveldb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	svc := NewRegistryService(l, nil, Options{Clock: c})
	ctx := context.Background()
	_, err = svc.Initialize(ctx, adminID)
	require.NoError(t, err)
	_, err = svc.RegisterContributor(ctx, contributorID)
	require.NoError(t, err)
	return svc, l
}

func requestWith(mutate func(req *CreateDatasetRequest)) CreateDatasetRequest {
	req := validRequest()
	if mutate != nil {
		mutate(&req)
	}
	return req
}

func assertUntouched(t *testing.T, svc RegistryService) {
	t.Helper()
	ctx := context.Background()

	reg, err := svc.GetRegistry(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reg.TotalDatasets)

	rep, err := svc.GetReputation(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), rep.TotalUploads)
	assert.Equal(t, uint64(0), rep.TotalQualityScore)

	list, err := svc.ListDatasets(ctx, DatasetQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}

func TestCreateDataset_ValidationLeavesNoTrace(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *CreateDatasetRequest)
		wantErr error
	}{
		{
			name:    "file name of 101 bytes",
			mutate:  func(req *CreateDatasetRequest) { req.FileName = strings.Repeat("f", 101) },
			wantErr: core.ErrFileNameTooLong,
		},
		{
			name:    "quality score 101",
			mutate:  func(req *CreateDatasetRequest) { req.QualityScore = 101 },
			wantErr: core.ErrInvalidQualityScore,
		},
		{
			name:    "file size one byte over the limit",
			mutate:  func(req *CreateDatasetRequest) { req.FileSize = 104_857_601 },
			wantErr: core.ErrFileTooLarge,
		},
		{
			name: "name checked before score and size",
			mutate: func(req *CreateDatasetRequest) {
				req.FileName = strings.Repeat("f", 101)
				req.QualityScore = 200
				req.FileSize = 1 << 40
			},
			wantErr: core.ErrFileNameTooLong,
		},
		{
			name: "score checked before size",
			mutate: func(req *CreateDatasetRequest) {
				req.QualityScore = 200
				req.FileSize = 1 << 40
			},
			wantErr: core.ErrInvalidQualityScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newLedgerService(t, clock.Fixed(fixedNow))

			ds, err := svc.CreateDataset(context.Background(), requestWith(tt.mutate))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, ds)
			assertUntouched(t, svc)
		})
	}
}

func TestCreateDataset_FreshRecords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerService(t, clock.Fixed(fixedNow))

	ds, err := svc.CreateDataset(ctx, validRequest())
	require.NoError(t, err)

	assert.True(t, ds.IsActive)
	assert.Equal(t, uint32(0), ds.DownloadCount)
	assert.Nil(t, ds.LastUpdated)
	assert.True(t, ds.UploadTimestamp.Equal(fixedNow))
	assert.Equal(t, core.DatasetAddress(adminID, 0), ds.ID)

	reg, err := svc.GetRegistry(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), reg.TotalDatasets)

	rep, err := svc.GetReputation(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), rep.TotalUploads)
	assert.Equal(t, uint64(80), rep.TotalQualityScore)

	stored, err := svc.GetDataset(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ContentHash, stored.ContentHash)
	assert.Equal(t, ds.AIMetadata, stored.AIMetadata)
	assert.True(t, stored.UploadTimestamp.Equal(fixedNow))
}

// tickClock advances by one second per reading.
type tickClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func TestCreateDataset_Conservation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerService(t, &tickClock{now: fixedNow})

	scores := []uint8{50, 70, 0, 100, 33}
	var sum uint64
	ids := make(map[string]bool)
	for _, q := range scores {
		ds, err := svc.CreateDataset(ctx, requestWith(func(req *CreateDatasetRequest) { req.QualityScore = q }))
		require.NoError(t, err)
		ids[ds.ID] = true
		sum += uint64(q)
	}
	assert.Len(t, ids, len(scores), "every dataset gets its own address")

	reg, err := svc.GetRegistry(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(scores)), reg.TotalDatasets)

	rep, err := svc.GetReputation(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, uint32(len(scores)), rep.TotalUploads)
	assert.Equal(t, sum, rep.TotalQualityScore)

	list, err := svc.ListDatasets(ctx, DatasetQuery{Contributor: contributorID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, len(scores), list.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, uint8(33), list.Items[0].QualityScore, "newest first")
}

func TestCreateDataset_TwoUploadsSameContributor(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerService(t, &tickClock{now: fixedNow})

	for _, q := range []uint8{50, 70} {
		_, err := svc.CreateDataset(ctx, requestWith(func(req *CreateDatasetRequest) { req.QualityScore = q }))
		require.NoError(t, err)
	}

	rep, err := svc.GetReputation(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), rep.TotalUploads)
	assert.Equal(t, uint64(120), rep.TotalQualityScore)
}

func TestCreateDataset_OverflowIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	l, err := leveldb.OpenMemory()
	require.NoError(t, err)
	defer l.Close()

	svc := NewRegistryService(l, nil, Options{Clock: clock.Fixed(fixedNow)})
	_, err = svc.Initialize(ctx, adminID)
	require.NoError(t, err)
	require.NoError(t, l.CreateReputation(ctx, &model.Reputation{
		Contributor:       contributorID,
		TotalUploads:      7,
		TotalQualityScore: ^uint64(0) - 10,
	}))

	_, err = svc.CreateDataset(ctx, validRequest())
	assert.ErrorIs(t, err, core.ErrNumericalOverflow)

	reg, err := svc.GetRegistry(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), reg.TotalDatasets)

	_, err = svc.GetDataset(ctx, core.DatasetAddress(adminID, 0))
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	rep, err := svc.GetReputation(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), rep.TotalUploads)
}

func TestCreateDataset_CallerTimestampIgnored(t *testing.T) {
	// The request type carries no timestamp at all; the stored value must be
	// the clock reading even when the clock is far from wall time.
	past := time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC)
	svc, _ := newLedgerService(t, clock.Fixed(past))

	ds, err := svc.CreateDataset(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, ds.UploadTimestamp.Equal(past))
}

func TestCreateDataset_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerService(t, &tickClock{now: fixedNow})

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateDataset(ctx, validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	reg, err := svc.GetRegistry(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, uint64(workers), reg.TotalDatasets)

	rep, err := svc.GetReputation(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, uint32(workers), rep.TotalUploads)
	assert.Equal(t, uint64(workers*80), rep.TotalQualityScore)
}

func TestDownloadAndDeactivate_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedgerService(t, clock.Fixed(fixedNow))

	ds, err := svc.CreateDataset(ctx, validRequest())
	require.NoError(t, err)

	res, err := svc.RecordDownload(ctx, ds.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), res.Dataset.DownloadCount)
	assert.Empty(t, res.URL)

	rep, err := svc.GetReputation(ctx, contributorID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rep.TotalDownloads)
	assert.Equal(t, fixedNow.Unix(), rep.DownloadTime)

	_, err = svc.Deactivate(ctx, ds.ID, userID)
	assert.ErrorIs(t, err, core.ErrUnauthorizedUpdate)

	off, err := svc.Deactivate(ctx, ds.ID, contributorID)
	require.NoError(t, err)
	assert.False(t, off.IsActive)
	require.NotNil(t, off.LastUpdated)

	_, err = svc.RecordDownload(ctx, ds.ID, userID)
	assert.ErrorIs(t, err, core.ErrDatasetInactive)

	active, err := svc.ListDatasets(ctx, DatasetQuery{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 0, active.Total)

	stored, err := svc.GetDataset(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), stored.DownloadCount)
	assert.True(t, ds.UploadTimestamp.Equal(stored.UploadTimestamp))
}

func TestRegisterContributor_Twice(t *testing.T) {
	svc, _ := newLedgerService(t, clock.System{})
	_, err := svc.RegisterContributor(context.Background(), contributorID)
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}
