package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"datasetregistry/internal/clock"
	"datasetregistry/internal/core"
	"datasetregistry/internal/identity"
	"datasetregistry/internal/model"
	"datasetregistry/internal/repository"
	"datasetregistry/internal/storage"
)

// Operation names used as metric labels.
const (
	opInitialize          = "initialize"
	opRegisterContributor = "register_contributor"
	opCreateDataset       = "create_dataset"
	opRecordDownload      = "record_download"
	opDeactivate          = "deactivate"
	opUploadArtifact      = "upload_artifact"
)

const (
	defaultListLimit     = 10
	maxListLimit         = 100
	defaultPresignExpiry = 15 * time.Minute
)

// CreateDatasetRequest is a dataset registration as presented by a caller.
// Admin names the registry the dataset is counted under and User is the acting party.
type CreateDatasetRequest struct {
	Admin string
	User  string
	core.CreateDatasetInput
}

// DatasetQuery filters and pages a dataset listing.
type DatasetQuery struct {
	Contributor string
	Registry    string
	ActiveOnly  bool
	Limit       int
	Offset      int
}

// DatasetListResult is the service-level DTO for paginated datasets.
type DatasetListResult struct {
	Items []model.Dataset `json:"data"`
	Total int             `json:"total"`
}

// DownloadResult is a counted download. URL is set when the dataset's
// DataURI points at a stored artifact and object storage is configured.
type DownloadResult struct {
	Dataset *model.Dataset `json:"dataset"`
	URL     string         `json:"url,omitempty"`
}

// RegistryService defines the use cases of the dataset registry.
type RegistryService interface {
	// Initialize creates the empty registry administered by admin.
	Initialize(ctx context.Context, admin string) (*model.Registry, error)

	// RegisterContributor creates the empty reputation of contributor.
	// A contributor must be registered before any of their datasets.
	RegisterContributor(ctx context.Context, contributor string) (*model.Reputation, error)

	// CreateDataset validates the request and, in one atomic commit, stores the
	// dataset, increments the registry total and credits the contributor's reputation.
	CreateDataset(ctx context.Context, req CreateDatasetRequest) (*model.Dataset, error)

	GetRegistry(ctx context.Context, owner string) (*model.Registry, error)
	GetReputation(ctx context.Context, contributor string) (*model.Reputation, error)
	GetDataset(ctx context.Context, id string) (*model.Dataset, error)

	// ListDatasets returns datasets newest first using limit/offset and a total count.
	ListDatasets(ctx context.Context, q DatasetQuery) (*DatasetListResult, error)

	// RecordDownload counts a download of an active dataset by user.
	RecordDownload(ctx context.Context, id, user string) (*DownloadResult, error)

	// Deactivate marks a dataset inactive. Only its contributor may do so.
	Deactivate(ctx context.Context, id, actor string) (*model.Dataset, error)

	// UploadArtifact streams a data file into object storage and returns its key and sha256.
	// originalFilename is used only to extract the extension.
	UploadArtifact(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*model.Artifact, error)
}

// Options carries the capabilities injected into the service.
// Zero values select the system clock, the open policy, no metrics and no logging.
type Options struct {
	Clock         clock.Clock
	Policy        identity.Policy
	Metrics       *Metrics
	Logger        *zap.Logger
	PresignExpiry time.Duration
}

// registryService is a concrete implementation of RegistryService.
type registryService struct {
	ledger        repository.Ledger
	store         storage.Storage
	clock         clock.Clock
	policy        identity.Policy
	metrics       *Metrics
	log           *zap.Logger
	presignExpiry time.Duration
}

// NewRegistryService constructs a new RegistryService. store may be nil, in which
// case artifact uploads fail with ErrStorageUnavailable and downloads carry no URL.
func NewRegistryService(ledger repository.Ledger, store storage.Storage, opts Options) RegistryService {
	s := &registryService{
		ledger:        ledger,
		store:         store,
		clock:         opts.Clock,
		policy:        opts.Policy,
		metrics:       opts.Metrics,
		log:           opts.Logger,
		presignExpiry: opts.PresignExpiry,
	}
	if s.clock == nil {
		s.clock = clock.System{}
	}
	if s.policy == "" {
		s.policy = identity.PolicyOpen
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.presignExpiry <= 0 {
		s.presignExpiry = defaultPresignExpiry
	}
	return s
}

func (s *registryService) Initialize(ctx context.Context, admin string) (reg *model.Registry, err error) {
	defer func() { s.metrics.observeError(opInitialize, err) }()

	if err := identity.Validate(admin); err != nil {
		return nil, err
	}
	r := core.NewRegistry(admin, s.clock.Now())
	if err := s.ledger.CreateRegistry(ctx, &r); err != nil {
		return nil, fmt.Errorf("create registry: %w", err)
	}
	s.log.Info("registry_initialized", zap.String("owner", admin))
	return &r, nil
}

func (s *registryService) RegisterContributor(ctx context.Context, contributor string) (rep *model.Reputation, err error) {
	defer func() { s.metrics.observeError(opRegisterContributor, err) }()

	if err := identity.Validate(contributor); err != nil {
		return nil, err
	}
	r := core.NewReputation(contributor)
	if err := s.ledger.CreateReputation(ctx, &r); err != nil {
		return nil, fmt.Errorf("create reputation: %w", err)
	}
	s.log.Info("contributor_registered", zap.String("contributor", contributor))
	return &r, nil
}

func (s *registryService) CreateDataset(ctx context.Context, req CreateDatasetRequest) (ds *model.Dataset, err error) {
	defer func() { s.metrics.observeError(opCreateDataset, err) }()

	parties := identity.Parties{Admin: req.Admin, User: req.User, Contributor: req.Contributor}
	if err := parties.Validate(); err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(parties); err != nil {
		return nil, err
	}
	// Reject malformed input before any record is locked.
	if err := core.Validate(req.CreateDatasetInput); err != nil {
		return nil, err
	}

	var created model.Dataset
	err = s.ledger.WithTx(ctx, func(tx repository.Tx) error {
		reg, err := tx.RegistryForUpdate(ctx, req.Admin)
		if err != nil {
			return notFoundAs(err, ErrRegistryNotFound)
		}
		rep, err := tx.ReputationForUpdate(ctx, req.Contributor)
		if err != nil {
			return notFoundAs(err, ErrReputationNotFound)
		}

		nextReg, nextRep, d, err := core.CreateDataset(*reg, *rep, req.CreateDatasetInput, s.clock.Now())
		if err != nil {
			return err
		}

		if err := tx.InsertDataset(ctx, &d); err != nil {
			return fmt.Errorf("insert dataset %s: %w", d.ID, err)
		}
		if err := tx.UpdateRegistry(ctx, &nextReg); err != nil {
			return fmt.Errorf("update registry: %w", err)
		}
		if err := tx.UpdateReputation(ctx, &nextRep); err != nil {
			return fmt.Errorf("update reputation: %w", err)
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.observeCreated()
	s.log.Info("dataset_created",
		zap.String("dataset_id", created.ID),
		zap.String("registry", created.Registry),
		zap.String("contributor", created.Contributor),
		zap.Uint8("quality_score", created.QualityScore),
	)
	return &created, nil
}

// GetRegistry returns the registry administered by owner.
func (s *registryService) GetRegistry(ctx context.Context, owner string) (*model.Registry, error) {
	if owner == "" {
		return nil, ErrIDRequired
	}
	reg, err := s.ledger.FindRegistry(ctx, owner)
	if err != nil {
		return nil, notFoundAs(err, ErrRegistryNotFound)
	}
	return reg, nil
}

// GetReputation returns the reputation of contributor.
func (s *registryService) GetReputation(ctx context.Context, contributor string) (*model.Reputation, error) {
	if contributor == "" {
		return nil, ErrIDRequired
	}
	rep, err := s.ledger.FindReputation(ctx, contributor)
	if err != nil {
		return nil, notFoundAs(err, ErrReputationNotFound)
	}
	return rep, nil
}

// GetDataset returns a dataset by ID.
func (s *registryService) GetDataset(ctx context.Context, id string) (*model.Dataset, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	ds, err := s.ledger.FindDataset(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrDatasetNotFound)
	}
	return ds, nil
}

// ListDatasets returns paginated datasets without exposing repository types.
func (s *registryService) ListDatasets(ctx context.Context, q DatasetQuery) (*DatasetListResult, error) {
	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}
	if q.Limit > maxListLimit {
		q.Limit = maxListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	res, err := s.ledger.ListDatasets(ctx,
		repository.DatasetFilter{Contributor: q.Contributor, Registry: q.Registry, ActiveOnly: q.ActiveOnly},
		repository.PageQuery{Limit: q.Limit, Offset: q.Offset},
	)
	if err != nil {
		return nil, err
	}
	return &DatasetListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *registryService) RecordDownload(ctx context.Context, id, user string) (res *DownloadResult, err error) {
	defer func() { s.metrics.observeError(opRecordDownload, err) }()

	if id == "" {
		return nil, ErrIDRequired
	}
	if err := identity.Validate(user); err != nil {
		return nil, err
	}

	var updated model.Dataset
	err = s.ledger.WithTx(ctx, func(tx repository.Tx) error {
		ds, err := tx.DatasetForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrDatasetNotFound)
		}
		rep, err := tx.ReputationForUpdate(ctx, ds.Contributor)
		if err != nil {
			return notFoundAs(err, ErrReputationNotFound)
		}

		nextDS, nextRep, err := core.RecordDownload(*ds, *rep, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.UpdateDataset(ctx, &nextDS); err != nil {
			return fmt.Errorf("update dataset: %w", err)
		}
		if err := tx.UpdateReputation(ctx, &nextRep); err != nil {
			return fmt.Errorf("update reputation: %w", err)
		}
		updated = nextDS
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("dataset_downloaded",
		zap.String("dataset_id", updated.ID),
		zap.String("user", user),
		zap.Uint32("download_count", updated.DownloadCount),
	)

	res = &DownloadResult{Dataset: &updated}
	if s.store != nil && strings.HasPrefix(updated.DataURI, ArtifactKeyPrefix) {
		url, perr := s.store.PresignGet(ctx, updated.DataURI, s.presignExpiry)
		if perr != nil {
			// The download is already counted; the caller still gets the record.
			s.log.Warn("presign_failed", zap.String("dataset_id", updated.ID), zap.Error(perr))
		} else {
			res.URL = url
		}
	}
	return res, nil
}

func (s *registryService) Deactivate(ctx context.Context, id, actor string) (ds *model.Dataset, err error) {
	defer func() { s.metrics.observeError(opDeactivate, err) }()

	if id == "" {
		return nil, ErrIDRequired
	}
	if err := identity.Validate(actor); err != nil {
		return nil, err
	}

	var updated model.Dataset
	err = s.ledger.WithTx(ctx, func(tx repository.Tx) error {
		cur, err := tx.DatasetForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrDatasetNotFound)
		}
		next, err := core.Deactivate(*cur, actor, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.UpdateDataset(ctx, &next); err != nil {
			return fmt.Errorf("update dataset: %w", err)
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("dataset_deactivated", zap.String("dataset_id", updated.ID), zap.String("actor", actor))
	return &updated, nil
}

// notFoundAs replaces a store miss with the service's own sentinel.
func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
