package players

import (
	"math/rand"
	"testing"

	"germanwhist/whist"
)

func TestRandomPlayer_AlwaysPlaysALegalCard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := whist.NewRound(whist.DefaultScoringRules())
	r.StartRound(rng, nil)

	p := RandomPlayer{}
	for !r.IsGameOver() {
		view := r.ActivePlayerView()
		card := p.PlayCard(view, rng)

		legal := false
		for _, c := range view.PlayableCards() {
			if c == card {
				legal = true
				break
			}
		}
		if !legal {
			t.Fatalf("RandomPlayer chose illegal card %v", card)
		}

		if _, err := r.PlayAction(whist.Action{Player: r.ActivePlayer(), Card: card}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestHeuristicPlayer_AlwaysPlaysALegalCard(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	r := whist.NewRound(whist.DefaultScoringRules())
	r.StartRound(rng, nil)

	jack, _ := New("heuristic")

	for !r.IsGameOver() {
		view := r.ActivePlayerView()
		card := jack.PlayCard(view, rng)

		legal := false
		for _, c := range view.PlayableCards() {
			if c == card {
				legal = true
				break
			}
		}
		if !legal {
			t.Fatalf("HeuristicPlayer chose illegal card %v", card)
		}

		if _, err := r.PlayAction(whist.Action{Player: r.ActivePlayer(), Card: card}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestRegistry_NewReturnsFalseForUnknownName(t *testing.T) {
	if _, ok := New("nonexistent"); ok {
		t.Error("expected New to fail for an unregistered name")
	}
}

func TestRegistry_NamesListsAllRegisteredPlayers(t *testing.T) {
	names := Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 registered players, got %d: %v", len(names), names)
	}
}
