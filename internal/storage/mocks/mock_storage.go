package mocks

import (
	"context"
	"io"
	"time"

	"datasetregistry/internal/storage"

	"github.com/stretchr/testify/mock"
)

// PutFunc computes the Put result from the actual call. Return one from
// On("Put") when the test needs the upload stream consumed.
type PutFunc func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo

// DrainPut reads the whole stream, as a real store would, and reports
// stored bytes for the key. A stored value below opt.Size models a short write.
func DrainPut(stored int64) PutFunc {
	return func(_ context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
		_, _ = io.Copy(io.Discard, r)
		return storage.ObjectInfo{Key: key, Size: stored, ContentType: opt.ContentType}
	}
}

// MockStorage is a testify mock of the artifact store.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(PutFunc); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
