package dbhelper

import "errors"

// Store-level failure kinds. Anything a store returns that is not one of
// these sentinels is a storage failure and maps to a generic server error
// at the route boundary.
var (
	ErrNotFound       = errors.New("record not found")
	ErrConflict       = errors.New("identifier already in use")
	ErrBadCredentials = errors.New("credentials do not match")
	ErrBadCode        = errors.New("verification code does not match")
)
