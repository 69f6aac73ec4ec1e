package mocks

import (
	"context"

	"datasetregistry/internal/model"
	"datasetregistry/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockLedger is a testify mock of repository.Ledger.
// WithTx hands Tx to the callback, so expectations on the transaction
// are set on Tx and the callback error is returned unless the
// WithTx expectation overrides it with its own.
type MockLedger struct {
	mock.Mock
	Tx *MockTx
}

func (m *MockLedger) CreateRegistry(ctx context.Context, reg *model.Registry) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockLedger) CreateReputation(ctx context.Context, rep *model.Reputation) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

func (m *MockLedger) FindRegistry(ctx context.Context, owner string) (*model.Registry, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registry), args.Error(1)
}

func (m *MockLedger) FindReputation(ctx context.Context, contributor string) (*model.Reputation, error) {
	args := m.Called(ctx, contributor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reputation), args.Error(1)
}

func (m *MockLedger) FindDataset(ctx context.Context, id string) (*model.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockLedger) ListDatasets(ctx context.Context, f repository.DatasetFilter, pq repository.PageQuery) (*repository.PageResult[model.Dataset], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Dataset]), args.Error(1)
}

func (m *MockLedger) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}

func (m *MockLedger) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTx is a testify mock of repository.Tx.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) RegistryForUpdate(ctx context.Context, owner string) (*model.Registry, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registry), args.Error(1)
}

func (m *MockTx) ReputationForUpdate(ctx context.Context, contributor string) (*model.Reputation, error) {
	args := m.Called(ctx, contributor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reputation), args.Error(1)
}

func (m *MockTx) DatasetForUpdate(ctx context.Context, id string) (*model.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockTx) InsertDataset(ctx context.Context, ds *model.Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *MockTx) UpdateDataset(ctx context.Context, ds *model.Dataset) error {
	args := m.Called(ctx, ds)
	return args.Error(0)
}

func (m *MockTx) UpdateRegistry(ctx context.Context, reg *model.Registry) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockTx) UpdateReputation(ctx context.Context, rep *model.Reputation) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}
