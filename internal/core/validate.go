package core

import "datasetregistry/internal/model"

// Field limits.
const (
	MaxFileNameLen  = 100
	MaxQualityScore = 100
	MaxFileSize     = 104_857_600
	MaxDataURILen   = 128
)

// CreateDatasetInput carries the caller-supplied fields of a dataset.
type CreateDatasetInput struct {
	Contributor  string
	ContentHash  model.Hash
	AIMetadata   []byte
	FileName     string
	FileSize     uint64
	DataURI      string
	ColumnCount  uint64
	RowCount     uint64
	QualityScore uint8
}

// Validate checks the input in a fixed order and returns the first violation.
func Validate(in CreateDatasetInput) error {
	if len(in.FileName) > MaxFileNameLen {
		return ErrFileNameTooLong
	}
	if in.QualityScore > MaxQualityScore {
		return ErrInvalidQualityScore
	}
	if in.FileSize > MaxFileSize {
		return ErrFileTooLarge
	}
	if len(in.DataURI) > MaxDataURILen {
		return ErrDataURITooLong
	}
	return nil
}
