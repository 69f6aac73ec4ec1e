package mocks

import (
	"context"
	"io"

	"datasetregistry/internal/model"
	"datasetregistry/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) Initialize(ctx context.Context, admin string) (*model.Registry, error) {
	args := m.Called(ctx, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registry), args.Error(1)
}

func (m *MockRegistryService) RegisterContributor(ctx context.Context, contributor string) (*model.Reputation, error) {
	args := m.Called(ctx, contributor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reputation), args.Error(1)
}

func (m *MockRegistryService) CreateDataset(ctx context.Context, req service.CreateDatasetRequest) (*model.Dataset, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockRegistryService) GetRegistry(ctx context.Context, owner string) (*model.Registry, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registry), args.Error(1)
}

func (m *MockRegistryService) GetReputation(ctx context.Context, contributor string) (*model.Reputation, error) {
	args := m.Called(ctx, contributor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reputation), args.Error(1)
}

func (m *MockRegistryService) GetDataset(ctx context.Context, id string) (*model.Dataset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockRegistryService) ListDatasets(ctx context.Context, q service.DatasetQuery) (*service.DatasetListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DatasetListResult), args.Error(1)
}

func (m *MockRegistryService) RecordDownload(ctx context.Context, id, user string) (*service.DownloadResult, error) {
	args := m.Called(ctx, id, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadResult), args.Error(1)
}

func (m *MockRegistryService) Deactivate(ctx context.Context, id, actor string) (*model.Dataset, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dataset), args.Error(1)
}

func (m *MockRegistryService) UploadArtifact(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Artifact, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artifact), args.Error(1)
}
