package dataset

import "errors"

// Domain-specific errors for dataset operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnknownEntity is returned when a search names an entity type the
	// dataset does not contain.
	ErrUnknownEntity = errors.New("dataset: unknown entity type")

	// ErrDatasetUnreadable is returned by HealthCheck when the dataset root
	// is missing or unreadable. Individual shard failures never produce it;
	// they degrade to empty results.
	ErrDatasetUnreadable = errors.New("dataset: root unreadable")
)
