package services

import "errors"

// ErrNotFound marks the primary subject of an operation as missing. It is
// the one fatal error class of the analysis routines; external source
// failures degrade instead.
var ErrNotFound = errors.New("not found")

// ErrValidation marks rejected input (unknown chain, bad severity,
// out-of-range percentage).
var ErrValidation = errors.New("validation failed")
