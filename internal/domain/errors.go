package domain

import "errors"

// ErrNotFound indicates no cart exists with the requested id. Absence is a
// normal outcome, not a failure.
var ErrNotFound = errors.New("cart not found")
