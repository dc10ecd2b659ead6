package ulid

import (
	"golang.org/x/xerrors"
)

var (
	InvalidLengthError    = xerrors.New("invalid length")
	InvalidTimestampError = xerrors.New("invalid timestamp")
	InvalidULIDError      = xerrors.New("invalid ulid")
	EntropyError          = xerrors.New("failed to read entropy")
)

// parseError is returned by ParseAny; it matches InvalidULIDError and unwraps
// to the underlying cause.
type parseError struct {
	err error
}

func newParseError(err error) parseError {
	return parseError{err: err}
}

func (e parseError) Error() string {
	if e.err == nil {
		return InvalidULIDError.Error()
	}

	return InvalidULIDError.Error() + ": " + e.err.Error()
}

func (e parseError) Is(target error) bool {
	return target == InvalidULIDError
}

func (e parseError) Unwrap() error {
	return e.err
}
