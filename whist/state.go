package whist

import (
	"math/rand"

	"germanwhist/cards"
)

// gameState holds the full, uncensored state of a round in progress.
type gameState struct {
	deck  *cards.Deck
	hands [2][]cards.Card
	score [2]int
	trump cards.Suit

	// played holds the first card of the current trick, if any.
	played *cards.Card

	// active is the player whose turn it is to act.
	active int

	// roundsLeft counts down one per completed trick, starting at 26.
	roundsLeft int

	// revealed is the face-up card the current trick is being played
	// for; nil once the deck and up-card are exhausted.
	revealed *cards.Card
}

// newGameState deals a fresh round: 13 cards to each hand, one card
// turned face up to set trump, starting with the given active player.
func newGameState(rng *rand.Rand, active int) *gameState {
	deck := cards.New()
	deck.Shuffle(rng)

	hand0, _ := deck.DrawN(13)
	hand1, _ := deck.DrawN(13)
	up, _ := deck.Draw()

	return &gameState{
		deck:       deck,
		hands:      [2][]cards.Card{hand0, hand1},
		score:      [2]int{0, 0},
		trump:      up.Suit,
		active:     active,
		roundsLeft: 26,
		revealed:   &up,
	}
}

// hasSuit reports whether player holds any card of suit s.
func (gs *gameState) hasSuit(player int, s cards.Suit) bool {
	for _, c := range gs.hands[player] {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// hasCard reports whether player holds exactly c.
func (gs *gameState) hasCard(player int, c cards.Card) bool {
	for _, h := range gs.hands[player] {
		if h == c {
			return true
		}
	}
	return false
}

// removeCard deletes c from player's hand, reporting MissingCard if
// the player didn't hold it.
func (gs *gameState) removeCard(player int, c cards.Card) *ActionError {
	hand := gs.hands[player]
	for i, h := range hand {
		if h == c {
			gs.hands[player] = append(hand[:i], hand[i+1:]...)
			return nil
		}
	}
	return &ActionError{Kind: MissingCard}
}

func (gs *gameState) addCard(player int, c cards.Card) {
	gs.hands[player] = append(gs.hands[player], c)
}

// playableCards returns the cards player may legally play given the
// currently led card, if any: follow suit if able, otherwise anything.
func (gs *gameState) playableCards(player int) []cards.Card {
	if gs.played != nil && gs.hasSuit(player, gs.played.Suit) {
		var out []cards.Card
		for _, c := range gs.hands[player] {
			if c.Suit == gs.played.Suit {
				out = append(out, c)
			}
		}
		return out
	}
	out := make([]cards.Card, len(gs.hands[player]))
	copy(out, gs.hands[player])
	return out
}

// scoreHand reports whether the leading card beats the following card,
// given the round's trump suit. Trumps beat non-trumps; otherwise the
// higher card of the suit led wins, and an off-suit, non-trump follow
// never wins.
func (gs *gameState) scoreHand(leading, following cards.Card) bool {
	if leading.Suit == gs.trump {
		return following.Suit != gs.trump || leading.Rank.OrdAceHigh() > following.Rank.OrdAceHigh()
	}
	if following.Suit == gs.trump {
		return false
	}
	if following.Suit != leading.Suit {
		return true
	}
	return leading.Rank.OrdAceHigh() > following.Rank.OrdAceHigh()
}

func (gs *gameState) draw() (cards.Card, bool) {
	return gs.deck.Draw()
}

func (gs *gameState) incrementScore(player, points int) {
	gs.score[player] += points
}

// PlayerView is a read-only, censored snapshot of the round as seen by
// one player: their own hand plus all publicly known state.
type PlayerView struct {
	Player      int
	Hand        []cards.Card
	Revealed    *cards.Card
	LeadingCard *cards.Card
	Trump       cards.Suit
	Score       [2]int
}

func (gs *gameState) playerView(player int) PlayerView {
	hand := make([]cards.Card, len(gs.hands[player]))
	copy(hand, gs.hands[player])
	return PlayerView{
		Player:      player,
		Hand:        hand,
		Revealed:    gs.revealed,
		LeadingCard: gs.played,
		Trump:       gs.trump,
		Score:       gs.score,
	}
}

// PlayableCards returns the cards the viewing player may legally play.
// Assumes the viewing player is the active player.
func (v PlayerView) PlayableCards() []cards.Card {
	if v.LeadingCard != nil {
		has := false
		for _, c := range v.Hand {
			if c.Suit == v.LeadingCard.Suit {
				has = true
				break
			}
		}
		if has {
			var out []cards.Card
			for _, c := range v.Hand {
				if c.Suit == v.LeadingCard.Suit {
					out = append(out, c)
				}
			}
			return out
		}
	}
	out := make([]cards.Card, len(v.Hand))
	copy(out, v.Hand)
	return out
}

// HasSuit reports whether the viewing player holds any card of suit s.
func (v PlayerView) HasSuit(s cards.Suit) bool {
	for _, c := range v.Hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// displayOrder reports whether c1 sorts before c2 for display purposes:
// grouped by suit with trump first, ace-high within suit.
func (gs *gameState) displayOrder(c1, c2 cards.Card) bool {
	s1 := ordForDisplay(c1.Suit, gs.trump)
	s2 := ordForDisplay(c2.Suit, gs.trump)
	if s1 != s2 {
		return s1 < s2
	}
	return c1.Rank.OrdAceHigh() < c2.Rank.OrdAceHigh()
}

func ordForDisplay(s, trump cards.Suit) uint8 {
	if s != trump {
		return s.Ord() + 4
	}
	return s.Ord()
}
