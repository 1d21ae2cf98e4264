package serde

import (
	"github.com/cockroachdb/errors"

	"objtree/tracker"
)

var (
	ErrOwnershipViolation = tracker.ErrOwnershipViolation
	ErrDanglingReference  = tracker.ErrDanglingReference

	ErrTypeMismatch       = errors.New("type mismatch")
	ErrVersionMismatch    = errors.New("version mismatch")
	ErrMissingCaster      = errors.New("no caster registered")
	ErrUnsupported        = errors.New("unsupported type")
	ErrMalformed          = errors.New("malformed tree")
	ErrInvalidDestination = errors.New("destination must be a non-nil pointer")
)
