package store

import "errors"

// Sentinel errors returned by the stores; handlers map them with errors.Is.
var (
	// ErrNotFound means no document matched the lookup key.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateEntry means the game id is already in the user's collection.
	ErrDuplicateEntry = errors.New("store: duplicate collection entry")
	// ErrEntryNotFound means the game id is not in the user's collection.
	ErrEntryNotFound = errors.New("store: collection entry not found")
)
