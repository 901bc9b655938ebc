package trash

import "errors"

// Errors returned by bin operations. Callers decide per kind whether a
// failure aborts a batch or is reported and skipped.
var (
	// ErrInvalidBin is returned when the bin root lacks its files/ or
	// info/ subdirectory
	ErrInvalidBin = errors.New("not a valid trash bin")

	// ErrAlreadyExists is returned when a write or restore target already
	// exists; nothing is overwritten
	ErrAlreadyExists = errors.New("path already exists")

	// ErrInvalidMetadata is returned when a trashinfo file cannot be
	// parsed or lacks a required field
	ErrInvalidMetadata = errors.New("invalid trashinfo file")

	// ErrNotFound is returned when no trashinfo file matches a path being
	// restored
	ErrNotFound = errors.New("no matching item in trash bin")

	// ErrAmbiguousMatch is returned when multiple trashinfo files record
	// the same original path
	ErrAmbiguousMatch = errors.New("multiple matching items in trash bin")

	// ErrTooManyCollisions is returned when name resolution runs out of
	// suffixes
	ErrTooManyCollisions = errors.New("too many name collisions in trash bin")

	// ErrOrphaned is returned when a trashinfo file has no content file
	// paired with it
	ErrOrphaned = errors.New("trashinfo file is orphaned")
)

// OpError wraps an error with additional context about the bin operation
type OpError struct {
	// Op is the operation that failed (e.g., "trash", "restore", "delete")
	Op string

	// Path is the path of the file that caused the error
	Path string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *OpError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError creates a new OpError
func NewOpError(op, path string, err error) error {
	return &OpError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsInvalidBin returns true if the error is ErrInvalidBin
func IsInvalidBin(err error) bool {
	return errors.Is(err, ErrInvalidBin)
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists returns true if the error is ErrAlreadyExists
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidMetadata returns true if the error is ErrInvalidMetadata
func IsInvalidMetadata(err error) bool {
	return errors.Is(err, ErrInvalidMetadata)
}

// IsAmbiguousMatch returns true if the error is ErrAmbiguousMatch
func IsAmbiguousMatch(err error) bool {
	return errors.Is(err, ErrAmbiguousMatch)
}

// IsTooManyCollisions returns true if the error is ErrTooManyCollisions
func IsTooManyCollisions(err error) bool {
	return errors.Is(err, ErrTooManyCollisions)
}

// IsOrphaned returns true if the error is ErrOrphaned
func IsOrphaned(err error) bool {
	return errors.Is(err, ErrOrphaned)
}
