// Package core holds the data-integrity rules of the registry: request
// validation, overflow-checked counters and the pure state transitions that
// create datasets and keep registry and reputation totals in step.
//
// Nothing here performs I/O. Callers load records, run a transition and
// persist every returned record in one atomic commit, or none of them.
package core

import "errors"

// Validation errors: the caller must fix the request.
var (
	ErrFileNameTooLong     = errors.New("file name too long")
	ErrInvalidQualityScore = errors.New("invalid quality score (must be 0-100)")
	ErrFileTooLarge        = errors.New("file too large (max 100MB)")
	ErrDataURITooLong      = errors.New("data uri too long")
)

// State and limit errors: the request was well formed but cannot be applied.
var (
	ErrNumericalOverflow       = errors.New("numerical overflow occurred")
	ErrDatasetInactive         = errors.New("dataset is inactive")
	ErrUnauthorizedUpdate      = errors.New("unauthorized to update this dataset")
	ErrInvalidReputationUpdate = errors.New("invalid reputation update")
)

var validationErrors = []error{
	ErrFileNameTooLong,
	ErrInvalidQualityScore,
	ErrFileTooLarge,
	ErrDataURITooLong,
}

// IsValidation reports whether err was caused by malformed input rather than
// by the state of the records it targets.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
