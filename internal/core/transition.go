package core

import (
	"time"

	"datasetregistry/internal/model"
)

// NewRegistry returns an empty registry for owner.
func NewRegistry(owner string, now time.Time) model.Registry {
	return model.Registry{Owner: owner, CreatedAt: now}
}

// NewReputation returns an empty reputation for contributor.
func NewReputation(contributor string) model.Reputation {
	return model.Reputation{Contributor: contributor}
}

// CreateDataset materializes a dataset from in and returns the registry and
// reputation as they must be after the creation. now is the only timestamp
// source. On error the returned records are zero and the arguments are
// untouched.
func CreateDataset(reg model.Registry, rep model.Reputation, in CreateDatasetInput, now time.Time) (model.Registry, model.Reputation, model.Dataset, error) {
	if err := Validate(in); err != nil {
		return model.Registry{}, model.Reputation{}, model.Dataset{}, err
	}
	if rep.Contributor != in.Contributor {
		return model.Registry{}, model.Reputation{}, model.Dataset{}, ErrInvalidReputationUpdate
	}

	ds := model.Dataset{
		ID:              DatasetAddress(reg.Owner, reg.TotalDatasets),
		Registry:        reg.Owner,
		Contributor:     in.Contributor,
		ContentHash:     in.ContentHash,
		AIMetadata:      append([]byte(nil), in.AIMetadata...),
		FileName:        in.FileName,
		FileSize:        in.FileSize,
		DataURI:         in.DataURI,
		ColumnCount:     in.ColumnCount,
		RowCount:        in.RowCount,
		QualityScore:    in.QualityScore,
		UploadTimestamp: now,
		LastUpdated:     nil,
		DownloadCount:   0,
		IsActive:        true,
	}

	total, err := checkedAdd(reg.TotalDatasets, 1)
	if err != nil {
		return model.Registry{}, model.Reputation{}, model.Dataset{}, err
	}
	uploads, err := checkedAdd(rep.TotalUploads, 1)
	if err != nil {
		return model.Registry{}, model.Reputation{}, model.Dataset{}, err
	}
	quality, err := checkedAdd(rep.TotalQualityScore, uint64(in.QualityScore))
	if err != nil {
		return model.Registry{}, model.Reputation{}, model.Dataset{}, err
	}

	reg.TotalDatasets = total
	rep.TotalUploads = uploads
	rep.TotalQualityScore = quality
	return reg, rep, ds, nil
}

// RecordDownload counts one download of ds against its contributor's reputation.
func RecordDownload(ds model.Dataset, rep model.Reputation, now time.Time) (model.Dataset, model.Reputation, error) {
	if !ds.IsActive {
		return model.Dataset{}, model.Reputation{}, ErrDatasetInactive
	}
	if rep.Contributor != ds.Contributor {
		return model.Dataset{}, model.Reputation{}, ErrInvalidReputationUpdate
	}

	count, err := checkedAdd(ds.DownloadCount, 1)
	if err != nil {
		return model.Dataset{}, model.Reputation{}, err
	}
	downloads, err := checkedAdd(rep.TotalDownloads, 1)
	if err != nil {
		return model.Dataset{}, model.Reputation{}, err
	}

	ds.DownloadCount = count
	rep.TotalDownloads = downloads
	rep.DownloadTime = now.Unix()
	return ds, rep, nil
}

// Deactivate marks ds inactive on behalf of actor, who must be its contributor.
func Deactivate(ds model.Dataset, actor string, now time.Time) (model.Dataset, error) {
	if actor != ds.Contributor {
		return model.Dataset{}, ErrUnauthorizedUpdate
	}
	if !ds.IsActive {
		return model.Dataset{}, ErrDatasetInactive
	}
	ds.IsActive = false
	ds.LastUpdated = &now
	return ds, nil
}
