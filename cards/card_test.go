package cards

import "testing"

func TestAll_ReturnsFiftyTwoUniqueCards(t *testing.T) {
	all := All()
	if len(all) != NumCards {
		t.Fatalf("expected %d cards, got %d", NumCards, len(all))
	}

	seen := make(map[int]bool, NumCards)
	for _, c := range all {
		if seen[c.Index()] {
			t.Errorf("duplicate index %d for card %s", c.Index(), c)
		}
		seen[c.Index()] = true
	}
}

func TestCard_IndexRoundTrips(t *testing.T) {
	for _, c := range All() {
		got := CardFromIndex(c.Index())
		if got != c {
			t.Errorf("CardFromIndex(%d) = %s, want %s", c.Index(), got, c)
		}
	}
}

func TestCard_IndexMatchesRankPlusThirteenTimesSuit(t *testing.T) {
	c := Card{Rank: Jack, Suit: Hearts}
	want := int(Jack) + 13*int(Hearts)
	if got := c.Index(); got != want {
		t.Errorf("Index() = %d, want %d", got, want)
	}
}

func TestParse_RoundTripsWithString(t *testing.T) {
	for _, c := range All() {
		parsed, err := Parse(c.String())
		if err != nil {
			t.Fatalf("Parse(%s) error: %v", c, err)
		}
		if parsed != c {
			t.Errorf("Parse(%s) = %s, want %s", c, parsed, c)
		}
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	if _, err := Parse("??"); err == nil {
		t.Error("expected error for garbage input")
	}
	if _, err := Parse("2"); err == nil {
		t.Error("expected error for short input")
	}
}
