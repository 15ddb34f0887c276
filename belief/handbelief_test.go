package belief

import (
	"math"
	"testing"

	"germanwhist/cards"
)

const floatTolerance = 1e-5

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestHandBelief_ClearThenRandomDrawGivesUniformProbability(t *testing.T) {
	hb := New()
	hb.Clear()
	hb.RandomCardsDrawn(13)

	want := 13.0 / 52.0
	for _, c := range cards.All() {
		if got := hb.P(c); !almostEqual(got, want) {
			t.Fatalf("P(%s) = %v, want %v", c, got, want)
		}
	}
}

func TestHandBelief_EmptySuitRedistributesMass(t *testing.T) {
	hb := New()
	hb.Clear()
	hb.RandomCardsDrawn(13)
	hb.EmptySuit(cards.Clubs)

	for _, c := range cards.All() {
		if c.Suit == cards.Clubs {
			if got := hb.P(c); !almostEqual(got, 0) {
				t.Errorf("P(%s) = %v, want 0", c, got)
			}
			continue
		}
		want := 13.0 / 39.0
		if got := hb.P(c); !almostEqual(got, want) {
			t.Errorf("P(%s) = %v, want %v", c, got, want)
		}
	}
}

func TestHandBelief_CardDrawnSetsProbabilityToOne(t *testing.T) {
	hb := New()
	hb.Clear()
	hb.RandomCardsDrawn(13)

	c := cards.Card{Rank: cards.Ace, Suit: cards.Spades}
	hb.CardDrawn(c)

	if got := hb.P(c); !almostEqual(got, 1) {
		t.Errorf("P(%s) = %v, want 1", c, got)
	}
}

func TestHandBelief_CardPlayedAndCardSeenZeroProbability(t *testing.T) {
	hb := New()
	hb.Clear()
	hb.RandomCardsDrawn(13)

	played := cards.Card{Rank: cards.Ace, Suit: cards.Spades}
	hb.CardPlayed(played)
	if got := hb.P(played); !almostEqual(got, 0) {
		t.Errorf("P(%s) after CardPlayed = %v, want 0", played, got)
	}

	seen := cards.Card{Rank: cards.King, Suit: cards.Hearts}
	hb.CardSeen(seen)
	if got := hb.P(seen); !almostEqual(got, 0) {
		t.Errorf("P(%s) after CardSeen = %v, want 0", seen, got)
	}
}

func TestHandBelief_EmptySuitZeroesAllCardsOfThatSuit(t *testing.T) {
	hb := New()
	hb.Clear()
	hb.RandomCardsDrawn(13)
	hb.EmptySuit(cards.Hearts)

	for _, c := range cards.All() {
		if c.Suit != cards.Hearts {
			continue
		}
		if got := hb.P(c); !almostEqual(got, 0) {
			t.Errorf("P(%s) = %v, want 0", c, got)
		}
	}
}

func TestHandBelief_PreservesExpectedHandSizeAcrossOperations(t *testing.T) {
	hb := New()
	hb.Clear()
	hb.RandomCardsDrawn(13)

	ops := []func(){
		func() { hb.CardDrawn(cards.Card{Rank: cards.Two, Suit: cards.Clubs}) },
		func() { hb.CardSeen(cards.Card{Rank: cards.Three, Suit: cards.Clubs}) },
		func() { hb.EmptySuit(cards.Diamonds) },
		func() { hb.CardDrawn(cards.Card{Rank: cards.Four, Suit: cards.Hearts}) },
		func() { hb.CardSeen(cards.Card{Rank: cards.Five, Suit: cards.Spades}) },
	}

	// Each CardDrawn adds one known card to the hand; CardSeen and
	// EmptySuit leave the hand size as it is.
	expected := []float64{14, 14, 14, 15, 15}
	for i, op := range ops {
		op()
		if got := hb.NumCards(); !almostEqual(got, expected[i]) {
			t.Fatalf("after op %d: NumCards() = %v, want %v", i, got, expected[i])
		}
	}
}

func TestHandBelief_CardPlayedShrinksExpectedHandSize(t *testing.T) {
	hb := New()
	hb.Clear()
	hb.RandomCardsDrawn(13)

	hb.CardPlayed(cards.Card{Rank: cards.Two, Suit: cards.Clubs})

	if got := hb.NumCards(); !almostEqual(got, 12) {
		t.Errorf("NumCards() = %v, want 12", got)
	}
}

func TestHandBelief_OntoVectorRespectsSuitOrdering(t *testing.T) {
	hb := New()
	hb.Clear()
	hb.RandomCardsDrawn(13)

	order := [cards.NumSuits]cards.Suit{cards.Spades, cards.Hearts, cards.Diamonds, cards.Clubs}
	vec := make([]float64, cards.NumCards)
	hb.OntoVector(vec, order)

	want := 13.0 / 52.0
	for i, v := range vec {
		if !almostEqual(v, want) {
			t.Fatalf("vec[%d] = %v, want %v", i, v, want)
		}
	}

	// The first 13 slots correspond to Spades under this ordering.
	hb.EmptySuit(cards.Spades)
	hb.OntoVector(vec, order)
	for i := 0; i < 13; i++ {
		if !almostEqual(vec[i], 0) {
			t.Errorf("vec[%d] = %v, want 0 (spades slot)", i, vec[i])
		}
	}
}
