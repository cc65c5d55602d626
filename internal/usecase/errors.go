package usecase

import "errors"

// Sentinel errors shared across services. HTTP status mapping and reply text
// both key off these, so every failure a sender can act on has its own value.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Lookup failures.
	ErrFixtureNotFound  = errors.New("fixture not found")
	ErrAmbiguousFixture = errors.New("fixture reference is ambiguous")

	// Extraction failures.
	ErrModelOutputInvalid     = errors.New("model output does not match the report schema")
	ErrInconsistentWithFormat = errors.New("reported result is inconsistent with the match format")
	ErrExtractionTimeout      = errors.New("score extraction timed out")

	// Write failures.
	ErrAlreadyComplete  = errors.New("match is already recorded")
	ErrStoreUnavailable = errors.New("score store is unavailable")
)
