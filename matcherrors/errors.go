package matcherrors

import "errors"

// Sentinel errors shared across package boundaries — sarsa, cmd/train,
// and episodestore — so callers can compare with errors.Is instead of
// each package defining its own copy.
var (
	// ErrMismatchedModelSize means a neural network's input width does
	// not match the fixed state-action vector length the observer
	// package builds.
	ErrMismatchedModelSize = errors.New("sarsa: model input size does not match state-action vector length")

	// ErrNoLegalActions means the engine reported zero legal actions
	// while a round was still in progress — an engine invariant
	// violation, since a player with no playable cards can't exist
	// given proper deal/follow-suit bookkeeping.
	ErrNoLegalActions = errors.New("sarsa: no legal actions while game in progress")

	// ErrStoreUnconfigured is returned by episodestore operations that
	// require a configured database when called on a nil/no-op store.
	ErrStoreUnconfigured = errors.New("episodestore: no database configured")
)
