package players

import (
	"math/rand"

	"germanwhist/cards"
	"germanwhist/whist"
)

// RandomPlayer plays a uniformly random card among those currently
// legal. Used as the fixed opponent baseline for P10.
type RandomPlayer struct{}

func (RandomPlayer) PlayCard(view whist.PlayerView, rng *rand.Rand) cards.Card {
	playable := view.PlayableCards()
	return playable[rng.Intn(len(playable))]
}
