package ht

import "errors"

var (
	ErrNullTable    = errors.New("null table")
	ErrNullKey      = errors.New("null key")
	ErrNullValue    = errors.New("null value")
	ErrNullIterator = errors.New("null iterator")
	ErrNullPrefix   = errors.New("null prefix")

	ErrKeyAlreadyInUse = errors.New("key already in use")
	ErrKeyNotInUse     = errors.New("key not in use")

	// ErrNonpositiveLength is returned when a table is created or resized
	// to less than one bucket.
	ErrNonpositiveLength = errors.New("nonpositive length")

	ErrUnknownWidth = errors.New("unknown hash width")

	// ErrPrefixAlgorithm is returned when a prefix was created with
	// a different hash algorithm than the table it's used with.
	ErrPrefixAlgorithm = errors.New("prefix hash algorithm mismatch")

	// ErrIterating is returned by mutating methods
	// called from within an Iterate visitor.
	ErrIterating = errors.New("table is being iterated")
)
