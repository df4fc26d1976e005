package store

import "errors"

// Sentinel errors returned by store operations.
//
// ErrNotFound covers both "no such row" and "row owned by someone else":
// every query is scoped by owner_id, so the two cases are indistinguishable
// at this layer. Callers must not try to tell them apart.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
