package storage

import "errors"

// Common storage errors
var (
	// ErrExtIDConflict indicates that ext_id is already bound to another guid
	ErrExtIDConflict = errors.New("ext_id is bound to another guid")

	// ErrCollectionModified indicates that the collection changed after
	// the timestamp the batch was based on
	ErrCollectionModified = errors.New("collection modified")
)
