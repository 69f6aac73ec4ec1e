package service

import (
	"errors"

	"datasetregistry/internal/core"
	"datasetregistry/internal/identity"
	"datasetregistry/internal/model"
	"datasetregistry/internal/repository"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrRegistryNotFound   = errors.New("registry not found")
	ErrReputationNotFound = errors.New("reputation not found")
	ErrDatasetNotFound    = errors.New("dataset not found")
	ErrReaderNil          = errors.New("reader is nil")
	ErrSizeRequired       = errors.New("content length is required")
	ErrStorageUnavailable = errors.New("object storage is not configured")
)

// Machine-readable error codes shared by metrics labels and API responses.
const (
	CodeFileNameTooLong         = "FILE_NAME_TOO_LONG"
	CodeInvalidQualityScore     = "INVALID_QUALITY_SCORE"
	CodeFileTooLarge            = "FILE_TOO_LARGE"
	CodeDataURITooLong          = "DATA_URI_TOO_LONG"
	CodeNumericalOverflow       = "NUMERICAL_OVERFLOW"
	CodeDatasetInactive         = "DATASET_INACTIVE"
	CodeUnauthorizedUpdate      = "UNAUTHORIZED_UPDATE"
	CodeInvalidReputationUpdate = "INVALID_REPUTATION_UPDATE"
	CodeInvalidIdentity         = "INVALID_IDENTITY"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeInvalidContentHash      = "INVALID_CONTENT_HASH"
	CodeRegistryNotFound        = "REGISTRY_NOT_FOUND"
	CodeReputationNotFound      = "REPUTATION_NOT_FOUND"
	CodeDatasetNotFound         = "DATASET_NOT_FOUND"
	CodeAlreadyExists           = "ALREADY_EXISTS"
	CodeIDRequired              = "ID_REQUIRED"
	CodeInvalidFile             = "INVALID_FILE"
	CodeSizeRequired            = "SIZE_REQUIRED"
	CodeStorageUnavailable      = "STORAGE_UNAVAILABLE"
	CodeInternal                = "INTERNAL_ERROR"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{core.ErrFileNameTooLong, CodeFileNameTooLong},
	{core.ErrInvalidQualityScore, CodeInvalidQualityScore},
	{core.ErrFileTooLarge, CodeFileTooLarge},
	{core.ErrDataURITooLong, CodeDataURITooLong},
	{core.ErrNumericalOverflow, CodeNumericalOverflow},
	{core.ErrDatasetInactive, CodeDatasetInactive},
	{core.ErrUnauthorizedUpdate, CodeUnauthorizedUpdate},
	{core.ErrInvalidReputationUpdate, CodeInvalidReputationUpdate},
	{identity.ErrInvalidIdentity, CodeInvalidIdentity},
	{identity.ErrUnauthorized, CodeUnauthorized},
	{model.ErrInvalidHash, CodeInvalidContentHash},
	{ErrRegistryNotFound, CodeRegistryNotFound},
	{ErrReputationNotFound, CodeReputationNotFound},
	{ErrDatasetNotFound, CodeDatasetNotFound},
	{repository.ErrAlreadyExists, CodeAlreadyExists},
	{ErrIDRequired, CodeIDRequired},
	{ErrReaderNil, CodeInvalidFile},
	{ErrSizeRequired, CodeSizeRequired},
	{ErrStorageUnavailable, CodeStorageUnavailable},
}

// ErrorCode classifies err. Unknown errors are CodeInternal.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeInternal
}
