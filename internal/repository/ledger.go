package repository

import (
	"context"

	"datasetregistry/internal/model"
)

// DatasetFilter narrows a dataset listing. Empty fields match everything.
type DatasetFilter struct {
	Contributor string
	Registry    string
	ActiveOnly  bool
}

// Ledger is the record store behind the registry: addressable registries,
// reputations and datasets plus an all-or-nothing unit of work.
// No business logic here, strictly persistence operations.
type Ledger interface {
	// CreateRegistry stores a new registry keyed by its owner.
	// Returns ErrAlreadyExists if the owner already has one.
	CreateRegistry(ctx context.Context, reg *model.Registry) error

	// CreateReputation stores a new reputation keyed by its contributor.
	// Returns ErrAlreadyExists if the contributor already has one.
	CreateReputation(ctx context.Context, rep *model.Reputation) error

	FindRegistry(ctx context.Context, owner string) (*model.Registry, error)
	FindReputation(ctx context.Context, contributor string) (*model.Reputation, error)
	FindDataset(ctx context.Context, id string) (*model.Dataset, error)

	// ListDatasets returns a page of datasets, newest first, and the total matching count.
	ListDatasets(ctx context.Context, f DatasetFilter, pq PageQuery) (*PageResult[model.Dataset], error)

	// WithTx runs fn inside one transaction. Every write made through tx becomes
	// visible together when fn returns nil; nothing is written when it returns an error.
	// Records read through the ForUpdate methods stay locked against concurrent
	// transactions until WithTx returns.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// PingContext verifies the store is reachable.
	PingContext(ctx context.Context) error
}

// Tx is the view of the ledger inside a transaction.
type Tx interface {
	RegistryForUpdate(ctx context.Context, owner string) (*model.Registry, error)
	ReputationForUpdate(ctx context.Context, contributor string) (*model.Reputation, error)
	DatasetForUpdate(ctx context.Context, id string) (*model.Dataset, error)

	// InsertDataset returns ErrAlreadyExists if the dataset address is taken.
	InsertDataset(ctx context.Context, ds *model.Dataset) error
	UpdateDataset(ctx context.Context, ds *model.Dataset) error
	UpdateRegistry(ctx context.Context, reg *model.Registry) error
	UpdateReputation(ctx context.Context, rep *model.Reputation) error
}
