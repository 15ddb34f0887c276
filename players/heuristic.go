package players

import (
	"math/rand"
	"sort"

	"germanwhist/cards"
	"germanwhist/whist"
)

// HeuristicPlayer plays a fixed, non-learned strategy: during the
// build phase it goes after the revealed card if it looks worth
// winning (trump, or at/above MinNonTrumpRankToWin), otherwise it
// ditches its weakest non-trump; during the score phase it plays the
// cheapest card that beats the lead, or ditches if it can't win.
type HeuristicPlayer struct {
	// MinNonTrumpRankToWin is the lowest non-trump rank this player
	// will chase the revealed card for. nil means never chase a
	// non-trump revealed card.
	MinNonTrumpRankToWin *cards.Rank
}

func (h HeuristicPlayer) tryToWin(c cards.Card, trump cards.Suit) bool {
	if c.Suit == trump {
		return true
	}
	if h.MinNonTrumpRankToWin == nil {
		return false
	}
	return c.Rank.OrdAceHigh() >= h.MinNonTrumpRankToWin.OrdAceHigh()
}

// sortedByRankThenSuit orders playable cards low-to-high by rank, with
// ties broken by trump-first suit ordering, matching the way the
// original heuristic orders its candidate cards before picking.
func sortedByRankThenSuit(hand []cards.Card, trump cards.Suit) []cards.Card {
	out := make([]cards.Card, len(hand))
	copy(out, hand)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank.OrdAceHigh() != out[j].Rank.OrdAceHigh() {
			return out[i].Rank.OrdAceHigh() < out[j].Rank.OrdAceHigh()
		}
		iTrump, jTrump := out[i].Suit == trump, out[j].Suit == trump
		if iTrump != jTrump {
			return iTrump
		}
		return out[i].Suit.Ord() < out[j].Suit.Ord()
	})
	return out
}

func winsAgainst(leading, follow cards.Card, trump cards.Suit) bool {
	if follow.Suit == leading.Suit {
		return follow.Rank.OrdAceHigh() > leading.Rank.OrdAceHigh()
	}
	return follow.Suit == trump
}

func (h HeuristicPlayer) PlayCard(view whist.PlayerView, rng *rand.Rand) cards.Card {
	cardsByRank := sortedByRankThenSuit(view.PlayableCards(), view.Trump)

	if view.Revealed != nil {
		if h.tryToWin(*view.Revealed, view.Trump) {
			// Play the highest non-trump, falling back to the lowest
			// trump if every playable card is trump.
			for i := len(cardsByRank) - 1; i >= 0; i-- {
				if cardsByRank[i].Suit != view.Trump {
					return cardsByRank[i]
				}
			}
			return cardsByRank[0]
		}
		// Ditch the lowest non-trump, falling back to the lowest trump.
		for _, c := range cardsByRank {
			if c.Suit != view.Trump {
				return c
			}
		}
		return cardsByRank[0]
	}

	if view.LeadingCard == nil {
		return cardsByRank[0]
	}

	for _, c := range cardsByRank {
		if winsAgainst(*view.LeadingCard, c, view.Trump) {
			return c
		}
	}
	return cardsByRank[0]
}
