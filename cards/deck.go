package cards

import "math/rand"

// Deck is an ordered, drawable sequence of cards. Callers supply the
// random source so shuffles are reproducible under a fixed seed.
type Deck struct {
	cards []Card
}

// New returns a deck holding all 52 cards in index order, unshuffled.
func New() *Deck {
	return &Deck{cards: All()}
}

// Len returns the number of cards remaining in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Shuffle randomizes the remaining cards in place using rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card of the deck. ok is false if the
// deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// DrawN removes and returns the top n cards of the deck. ok is false if
// fewer than n cards remain, in which case the deck is left untouched.
func (d *Deck) DrawN(n int) (drawn []Card, ok bool) {
	if n > len(d.cards) {
		return nil, false
	}
	drawn = make([]Card, n)
	copy(drawn, d.cards[len(d.cards)-n:])
	d.cards = d.cards[:len(d.cards)-n]
	// Reverse so drawn[0] is the first card drawn (deck top).
	for i, j := 0, len(drawn)-1; i < j; i, j = i+1, j-1 {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	}
	return drawn, true
}

// Peek returns the top card without removing it.
func (d *Deck) Peek() (card Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}
