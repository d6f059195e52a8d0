package storage

import "errors"

// Common storage errors
var (
	// ErrNotFound indicates that the requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique or primary key violation
	ErrAlreadyExists = errors.New("already exists")

	// ErrReferenceNotFound indicates a foreign key violation: the referenced row does not exist
	ErrReferenceNotFound = errors.New("referenced row not found")

	// ErrCheckFailed indicates that a value violates a CHECK constraint
	ErrCheckFailed = errors.New("value violates a check constraint")

	// ErrNotFirstUser indicates that CreateFirstUser found registered users
	ErrNotFirstUser = errors.New("users already registered")
)

// ConstraintError wraps one of the sentinel errors above with the column the
// database reported. Column may be empty when the driver does not say.
type ConstraintError struct {
	Err    error
	Cause  error
	Column string
}

func (e *ConstraintError) Error() string {
	if e.Column == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Column
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// ConstraintColumn returns the column of a constraint violation, if err carries one.
func ConstraintColumn(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Column
	}
	return ""
}
