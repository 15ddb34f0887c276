package cards

import (
	"math/rand"
	"testing"
)

func TestDeck_NewHoldsAllCards(t *testing.T) {
	d := New()
	if d.Len() != NumCards {
		t.Fatalf("expected %d cards, got %d", NumCards, d.Len())
	}
}

func TestDeck_DrawRemovesCards(t *testing.T) {
	d := New()
	c, ok := d.Draw()
	if !ok {
		t.Fatal("expected a card")
	}
	if d.Len() != NumCards-1 {
		t.Errorf("expected %d cards remaining, got %d", NumCards-1, d.Len())
	}
	_ = c
}

func TestDeck_DrawOnEmptyDeckFails(t *testing.T) {
	d := New()
	for {
		if _, ok := d.Draw(); !ok {
			break
		}
	}
	if _, ok := d.Draw(); ok {
		t.Error("expected Draw to fail on empty deck")
	}
}

func TestDeck_DrawNReturnsRequestedCount(t *testing.T) {
	d := New()
	hand, ok := d.DrawN(13)
	if !ok {
		t.Fatal("expected DrawN to succeed")
	}
	if len(hand) != 13 {
		t.Errorf("expected 13 cards, got %d", len(hand))
	}
	if d.Len() != NumCards-13 {
		t.Errorf("expected %d cards remaining, got %d", NumCards-13, d.Len())
	}
}

func TestDeck_DrawNFailsWithoutMutatingOnShortage(t *testing.T) {
	d := New()
	before := d.Len()
	if _, ok := d.DrawN(NumCards + 1); ok {
		t.Error("expected DrawN to fail when not enough cards remain")
	}
	if d.Len() != before {
		t.Errorf("deck should be untouched after failed DrawN, got %d want %d", d.Len(), before)
	}
}

func TestDeck_ShuffleIsDeterministicUnderFixedSeed(t *testing.T) {
	d1 := New()
	d1.Shuffle(rand.New(rand.NewSource(42)))

	d2 := New()
	d2.Shuffle(rand.New(rand.NewSource(42)))

	for i := range d1.cards {
		if d1.cards[i] != d2.cards[i] {
			t.Fatalf("shuffle not reproducible at index %d: %s vs %s", i, d1.cards[i], d2.cards[i])
		}
	}
}

func TestDeck_ShuffleIsAPermutation(t *testing.T) {
	d := New()
	d.Shuffle(rand.New(rand.NewSource(1)))

	seen := make(map[int]bool, NumCards)
	for _, c := range d.cards {
		seen[c.Index()] = true
	}
	if len(seen) != NumCards {
		t.Errorf("expected shuffle to retain all %d cards, got %d distinct", NumCards, len(seen))
	}
}
