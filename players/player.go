// Package players implements simple opponents used to evaluate a
// trained SARSA model: a uniform-random baseline and a small
// heuristic that plays toward trumps during the build phase and tries
// to win cheaply during the score phase.
package players

import (
	"math/rand"

	"germanwhist/cards"
	"germanwhist/whist"
)

// Player chooses a card to play given a read-only view of the current
// state. rng is always supplied, even to players that ignore it, so
// every implementation has the same signature and callers never need
// to special-case "does this player need randomness".
type Player interface {
	PlayCard(view whist.PlayerView, rng *rand.Rand) cards.Card
}
