// Package observer turns the censored event stream one player receives
// from the engine into a fixed-size feature vector suitable as network
// input, while tracking that player's own hand and belief about the
// opponent's.
package observer

import (
	"germanwhist/belief"
	"germanwhist/cards"
	"germanwhist/whist"
)

// StateVectorLength is the length of the state-only feature vector:
// 5 blocks of 52 cards plus 3 scalars.
const StateVectorLength = 5*cards.NumCards + 3

// ActionVectorLength is the length of the one-hot action vector.
const ActionVectorLength = cards.NumCards

// StateActionVectorLength is the length of the concatenated
// state-action vector fed to the network.
const StateActionVectorLength = StateVectorLength + ActionVectorLength

// PlayerObserver rebuilds one player's worldview from the events that
// player is entitled to see: their own hand, their belief about the
// opponent's hand, and all public state.
type PlayerObserver struct {
	player int
	belief *belief.HandBelief

	hand map[cards.Card]bool

	trump        cards.Suit
	activePlayer int
	revealed     *cards.Card
	leading      *cards.Card
	played       map[cards.Card]bool
	score        [2]int

	// suitOrder is recomputed after every event: trump first, then
	// descending by held-count, then canonical suit ordinal.
	suitOrder [cards.NumSuits]cards.Suit
}

// New returns an observer for player, with an empty hand and a fully
// void belief, ready to receive a Start event.
func New(player int) *PlayerObserver {
	o := &PlayerObserver{
		player: player,
		belief: belief.New(),
		hand:   make(map[cards.Card]bool),
		played: make(map[cards.Card]bool),
	}
	o.recomputeSuitOrder()
	return o
}

// Player returns the index of the player this observer tracks.
func (o *PlayerObserver) Player() int { return o.player }

// Belief exposes the tracked opponent-hand belief, mainly for tests.
func (o *PlayerObserver) Belief() *belief.HandBelief { return o.belief }

// recomputeSuitOrder sorts suits by (trump-first, held-count
// descending, canonical ordinal), breaking ties by ordinal since Go's
// sort is otherwise unstable across equal keys here.
func (o *PlayerObserver) recomputeSuitOrder() {
	counts := map[cards.Suit]int{}
	for c := range o.hand {
		counts[c.Suit]++
	}

	order := cards.AllSuits()
	sorted := make([]cards.Suit, len(order))
	copy(sorted, order[:])

	less := func(a, b cards.Suit) bool {
		aTrump, bTrump := a == o.trump, b == o.trump
		if aTrump != bTrump {
			return aTrump
		}
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a.Ord() < b.Ord()
	}

	// Simple insertion sort: NumSuits is always 4.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && less(sorted[j], sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	copy(o.suitOrder[:], sorted)
}

// OnEvent folds a single censored event into this observer's state.
func (o *PlayerObserver) OnEvent(ev whist.GameEvent) {
	switch ev.Kind {
	case whist.EventStart:
		o.onStart(ev.Start)
	case whist.EventAction:
		o.onAction(ev.Action)
	case whist.EventCard:
		o.onCard(ev.Card)
	case whist.EventTrick:
		o.onTrick(ev.Trick)
	}
	o.recomputeSuitOrder()
}

func (o *PlayerObserver) onStart(ev *whist.StartRoundEvent) {
	o.hand = make(map[cards.Card]bool, len(ev.Hand))
	for _, c := range ev.Hand {
		o.hand[c] = true
	}
	o.played = make(map[cards.Card]bool)
	o.trump = ev.Trump
	o.activePlayer = ev.StartingPlayer
	up := ev.Revealed
	o.revealed = &up
	o.leading = nil
	o.score = [2]int{0, 0}

	o.belief.Clear()
	o.belief.RandomCardsDrawn(13)
	// The up-card is public and was dealt aside, not into either hand.
	o.belief.CardSeen(ev.Revealed)
}

func (o *PlayerObserver) onAction(ev *whist.ActionEvent) {
	if ev.Player == o.player {
		delete(o.hand, ev.Card)
		o.belief.CardPlayed(ev.Card)
	} else {
		o.belief.CardSeen(ev.Card)
	}
	o.played[ev.Card] = true

	if o.leading == nil {
		c := ev.Card
		o.leading = &c
	} else {
		o.leading = nil
	}
	// Per spec.md Design Note 9's Open Question resolution: the Trick
	// event's active_player is authoritative. We do not mutate
	// activePlayer here even though the original source's one revision
	// did.
}

func (o *PlayerObserver) onCard(ev *whist.CardEvent) {
	if ev.Card == nil {
		// We're the opponent of a blind draw; we know the opponent
		// drew a card but not its identity, so their believed hand
		// grows by one card that could be any unseen card.
		o.belief.RandomCardsDrawn(1)
		return
	}
	if ev.Player == o.player {
		o.hand[*ev.Card] = true
	} else {
		o.belief.CardDrawn(*ev.Card)
	}
}

func (o *PlayerObserver) onTrick(ev *whist.TrickEvent) {
	o.activePlayer = ev.ActivePlayer
	o.revealed = ev.Revealed
	o.leading = nil
	o.score = ev.Score
}

// StateVector builds the full 263-length state feature vector for the
// current observer state.
func (o *PlayerObserver) StateVector(out []float64) {
	if len(out) != StateVectorLength {
		panic("observer: StateVector requires a buffer of length StateVectorLength")
	}
	o.buildState(out)
}

// StateActionVector builds the concatenated state-action vector for
// the given candidate action. If reuseState is true, only the action
// block (offset StateVectorLength) is rewritten; this is the hot path
// during greedy action selection over many candidate cards sharing the
// same state.
func (o *PlayerObserver) StateActionVector(out []float64, action cards.Card, reuseState bool) {
	if len(out) != StateActionVectorLength {
		panic("observer: StateActionVector requires a buffer of length StateActionVectorLength")
	}
	if !reuseState {
		o.buildState(out[:StateVectorLength])
	}
	o.buildAction(out[StateVectorLength:], action)
}

func (o *PlayerObserver) slotOf(c cards.Card) int {
	suitPos := 0
	for i, s := range o.suitOrder {
		if s == c.Suit {
			suitPos = i
			break
		}
	}
	return int(c.Rank.OrdAceHigh()) + 13*suitPos
}

func oneHotOrBipolar(vec []float64, c *cards.Card, slotOf func(cards.Card) int) {
	for i := range vec {
		vec[i] = -1
	}
	if c != nil {
		vec[slotOf(*c)] = 1
	}
}

func (o *PlayerObserver) buildState(out []float64) {
	own := out[0:cards.NumCards]
	oppBelief := out[cards.NumCards : 2*cards.NumCards]
	playedPile := out[2*cards.NumCards : 3*cards.NumCards]
	revealedBlock := out[3*cards.NumCards : 4*cards.NumCards]
	ledBlock := out[4*cards.NumCards : 5*cards.NumCards]

	for i := range own {
		own[i] = -1
	}
	for c := range o.hand {
		own[o.slotOf(c)] = 1
	}

	o.belief.OntoVector(oppBelief, o.suitOrder)
	for i, p := range oppBelief {
		oppBelief[i] = 2*p - 1
	}
	// The belief vector is written in suit-order-major, rank-ascending
	// layout already matching slotOf's indexing convention.

	for i := range playedPile {
		playedPile[i] = -1
	}
	for c := range o.played {
		playedPile[o.slotOf(c)] = 1
	}

	oneHotOrBipolar(revealedBlock, o.revealed, o.slotOf)
	oneHotOrBipolar(ledBlock, o.leading, o.slotOf)

	if o.activePlayer == o.player {
		out[5*cards.NumCards] = 1
	} else {
		out[5*cards.NumCards] = -1
	}
	out[5*cards.NumCards+1] = 2*float64(o.score[o.player])/13 - 1
	out[5*cards.NumCards+2] = 2*float64(o.score[1-o.player])/13 - 1
}

func (o *PlayerObserver) buildAction(out []float64, action cards.Card) {
	for i := range out {
		out[i] = -1
	}
	out[o.slotOf(action)] = 1
}
