package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so coordinators can branch on them without knowing which backend
// produced them.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: key does not exist in the store
// - ErrConflict: conditional write lost to an earlier writer
// - ErrUnavailable: backend temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
