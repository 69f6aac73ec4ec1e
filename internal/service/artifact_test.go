package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"io"
	"strings"
	"testing"

	"datasetregistry/internal/core"
	"datasetregistry/internal/storage"
	storeMocks "datasetregistry/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegistryService_UploadArtifact(t *testing.T) {
	ctx := context.Background()
	content := "id,score\n1,80\n"
	size := int64(len(content))

	tests := []struct {
		name       string
		filename   string
		size       int64
		noStore    bool
		nilReader  bool
		setupMocks func(mStore *storeMocks.MockStorage)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:     "happy path",
			filename: "Scores.CSV",
			size:     size,
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, ArtifactKeyPrefix) && strings.HasSuffix(key, ".csv")
				}), mock.Anything, storage.PutObjectOptions{
					Size:        size,
					ContentType: "text/csv",
					Metadata:    map[string]string{"original-filename": "Scores.CSV"},
				}).Return(storeMocks.DrainPut(size), nil)
			},
		},
		{
			name:     "object storage not configured",
			filename: "a.csv",
			size:     size,
			noStore:  true,
			wantErr:  ErrStorageUnavailable,
		},
		{
			name:      "nil reader",
			filename:  "a.csv",
			size:      size,
			nilReader: true,
			wantErr:   ErrReaderNil,
		},
		{
			name:     "unknown size",
			filename: "a.csv",
			size:     -1,
			wantErr:  ErrSizeRequired,
		},
		{
			name:     "too large",
			filename: "a.csv",
			size:     core.MaxFileSize + 1,
			wantErr:  core.ErrFileTooLarge,
		},
		{
			name:     "storage error",
			filename: "a.csv",
			size:     size,
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:     "short write is rolled back",
			filename: "a.csv",
			size:     size,
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storeMocks.DrainPut(3), nil)
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
			},
			wantErrMsg: "stored 3 of 14 bytes",
		},
		{
			name:     "short write with failed rollback",
			filename: "a.csv",
			size:     size,
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storeMocks.DrainPut(3), nil)
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "stored 3 of 14 bytes; rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			if tt.setupMocks != nil {
				tt.setupMocks(mStore)
			}

			var store storage.Storage = mStore
			if tt.noStore {
				store = nil
			}
			svc := NewRegistryService(newMockLedger(), store, Options{})

			var r io.Reader = strings.NewReader(content)
			if tt.nilReader {
				r = nil
			}
			a, err := svc.UploadArtifact(ctx, r, tt.filename, "text/csv", tt.size)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, a)
			default:
				require.NoError(t, err)
				assert.Equal(t, sha256.Sum256([]byte(content)), [32]byte(a.ContentHash))
				assert.Equal(t, size, a.Size)
				assert.True(t, strings.HasPrefix(a.Key, ArtifactKeyPrefix))
				assert.LessOrEqual(t, len(a.Key), core.MaxDataURILen)
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestArtifactExt(t *testing.T) {
	assert.Equal(t, ".parquet", artifactExt("train.PARQUET"))
	assert.Equal(t, "", artifactExt("README"))
	assert.Equal(t, "", artifactExt("x."+strings.Repeat("a", 40)))
}
