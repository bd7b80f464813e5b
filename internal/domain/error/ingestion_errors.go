package error

import "errors"

// Ingestion domain errors.
var (
	// ErrSnapshotFetchFailed is returned when the external snapshot cannot be retrieved.
	ErrSnapshotFetchFailed = errors.New("failed to fetch snapshot")

	// ErrSnapshotMalformed is returned when the snapshot cannot be decoded or a record is incomplete.
	ErrSnapshotMalformed = errors.New("malformed snapshot")

	// ErrIngestionInProgress is returned when another ingestion holds the lock.
	ErrIngestionInProgress = errors.New("ingestion already in progress")

	// ErrSnapshotLoadFailed is returned when the store rejects the replacement.
	ErrSnapshotLoadFailed = errors.New("failed to load snapshot into store")

	// ErrRateLimited is returned when a client triggers ingestion too often.
	ErrRateLimited = errors.New("too many requests")
)

// IngestionErrorCode defines error codes for ingestion errors.
// Format: ING-XXYYYY where XX is category and YYYY is specific error.
type IngestionErrorCode string

const (
	// Fetch errors (01XXXX)
	ErrCodeSnapshotFetchFailed IngestionErrorCode = "ING-010001"
	ErrCodeSnapshotBadStatus   IngestionErrorCode = "ING-010002"

	// Snapshot validation errors (02XXXX)
	ErrCodeSnapshotNotArray     IngestionErrorCode = "ING-020001"
	ErrCodeSnapshotMissingField IngestionErrorCode = "ING-020002"
	ErrCodeSnapshotInvalidValue IngestionErrorCode = "ING-020003"
	ErrCodeSnapshotDuplicateID  IngestionErrorCode = "ING-020004"

	// Concurrency errors (03XXXX)
	ErrCodeIngestionInProgress IngestionErrorCode = "ING-030001"
	ErrCodeRateLimited         IngestionErrorCode = "ING-030002"

	// Internal errors (99XXXX)
	ErrCodeSnapshotLoadFailed IngestionErrorCode = "ING-990001"
	ErrCodeIngestionLockError IngestionErrorCode = "ING-990002"
)

// IngestionError represents an ingestion error with code and message.
type IngestionError struct {
	Code    IngestionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *IngestionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *IngestionError) Unwrap() error {
	return e.Err
}

// NewIngestionError creates a new IngestionError with the given code and message.
func NewIngestionError(code IngestionErrorCode, message string, err error) *IngestionError {
	return &IngestionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
