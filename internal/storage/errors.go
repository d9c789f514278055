package storage

import "errors"

// ErrNotFound is returned for owner-scoped lookups and deletes that matched
// nothing, so handlers can answer 404 without leaking other users' rows.
var ErrNotFound = errors.New("record not found")
