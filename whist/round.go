package whist

import (
	"math/rand"

	"germanwhist/cards"
)

// Action is a player's proposed play of a single card.
type Action struct {
	Player int
	Card   cards.Card
}

// ScoringRules sets how many points a trick is worth in each of the
// round's two halves. The conventional rules are {0, 1}: only tricks
// won during the score phase count.
type ScoringRules struct {
	BuildPoints int
	ScorePoints int
}

// DefaultScoringRules returns the conventional German Whist scoring:
// build-phase tricks are worth nothing, score-phase tricks are worth 1.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{BuildPoints: 0, ScorePoints: 1}
}

// Round is the engine for a single round of German Whist. It holds all
// state privately; callers only ever see it through PlayerView and the
// events returned by StartRound/PlayAction.
type Round struct {
	state *gameState
	phase phaseKind
	rules ScoringRules
}

// NewRound constructs a round in the GameOver phase, holding no state
// until StartRound is called. Matches the original's two-step
// new/start_round lifecycle, which lets a trainer reuse one Round
// value across many episodes.
func NewRound(rules ScoringRules) *Round {
	return &Round{phase: phaseGameOver, rules: rules}
}

// StartRound deals a new round and returns the per-player Start events.
// If startingPlayer is nil, rng picks the opener at random.
func (r *Round) StartRound(rng *rand.Rand, startingPlayer *int) [2][]GameEvent {
	start := 0
	if startingPlayer != nil {
		start = *startingPlayer
	} else if rng.Intn(2) == 1 {
		start = 1
	}

	r.phase = phasePlaying
	r.state = newGameState(rng, start)

	hand0 := make([]cards.Card, len(r.state.hands[0]))
	copy(hand0, r.state.hands[0])
	hand1 := make([]cards.Card, len(r.state.hands[1]))
	copy(hand1, r.state.hands[1])

	up := *r.state.revealed

	ev0 := GameEvent{Kind: EventStart, Start: &StartRoundEvent{
		Hand: hand0, Revealed: up, Trump: r.state.trump, StartingPlayer: start,
	}}
	ev1 := GameEvent{Kind: EventStart, Start: &StartRoundEvent{
		Hand: hand1, Revealed: up, Trump: r.state.trump, StartingPlayer: start,
	}}

	return [2][]GameEvent{{ev0}, {ev1}}
}

// ActivePlayer returns the player whose turn it is to act.
func (r *Round) ActivePlayer() int {
	return r.state.active
}

// ActivePlayerView returns the active player's censored view of state.
func (r *Round) ActivePlayerView() PlayerView {
	return r.state.playerView(r.state.active)
}

// PlayerView returns player's censored view of state, regardless of
// whose turn it is.
func (r *Round) PlayerView(player int) PlayerView {
	return r.state.playerView(player)
}

// IsGameOver reports whether the round has concluded.
func (r *Round) IsGameOver() bool {
	return r.phase == phaseGameOver
}

// Winner returns the player with the higher score, valid only once
// IsGameOver is true. Ties favor player 0, mirroring the original's
// `s[0] < s[1]` comparison.
func (r *Round) Winner() (player int, ok bool) {
	if !r.IsGameOver() {
		return 0, false
	}
	if r.state.score[0] < r.state.score[1] {
		return 1, true
	}
	return 0, true
}

// PossibleActions enumerates the legal actions for the active player.
func (r *Round) PossibleActions() []Action {
	if r.phase != phasePlaying {
		return nil
	}
	view := r.state.playerView(r.state.active)
	playable := view.PlayableCards()
	actions := make([]Action, len(playable))
	for i, c := range playable {
		actions[i] = Action{Player: r.state.active, Card: c}
	}
	return actions
}

// PlayAction submits a card play. On success it returns the per-player
// censored event streams produced by resolving the action (and, if the
// card completed a trick, the trick itself).
func (r *Round) PlayAction(action Action) ([2][]GameEvent, *ActionError) {
	if r.phase != phasePlaying {
		return [2][]GameEvent{}, &ActionError{Kind: GameOver}
	}

	gs := r.state

	if action.Player != gs.active {
		return [2][]GameEvent{}, &ActionError{Kind: WrongPlayer, Expected: gs.active}
	}
	if !gs.hasCard(action.Player, action.Card) {
		return [2][]GameEvent{}, &ActionError{Kind: MissingCard}
	}

	var events [2][]GameEvent

	if gs.played == nil {
		if err := gs.removeCard(action.Player, action.Card); err != nil {
			return [2][]GameEvent{}, err
		}

		actionEv := GameEvent{Kind: EventAction, Action: &ActionEvent{Player: action.Player, Card: action.Card}}
		events[0] = append(events[0], actionEv)
		events[1] = append(events[1], actionEv)

		played := action.Card
		gs.played = &played
		gs.active = 1 - gs.active

		return events, nil
	}

	leading := *gs.played
	gs.played = nil

	if gs.hasSuit(action.Player, leading.Suit) && action.Card.Suit != leading.Suit {
		return [2][]GameEvent{}, &ActionError{Kind: NotFollowingSuit}
	}
	if err := gs.removeCard(action.Player, action.Card); err != nil {
		return [2][]GameEvent{}, err
	}

	actionEv := GameEvent{Kind: EventAction, Action: &ActionEvent{Player: action.Player, Card: action.Card}}
	events[0] = append(events[0], actionEv)
	events[1] = append(events[1], actionEv)

	follow := gs.active
	lead := 1 - gs.active

	winner := follow
	if gs.scoreHand(leading, action.Card) {
		winner = lead
	}
	loser := 1 - winner

	cardsPlayed := [2]cards.Card{leading, action.Card}
	if lead == 1 {
		cardsPlayed[0], cardsPlayed[1] = cardsPlayed[1], cardsPlayed[0]
	}

	if gs.revealed != nil {
		received := *gs.revealed
		gs.revealed = nil
		gs.addCard(winner, received)

		recEv := GameEvent{Kind: EventCard, Card: &CardEvent{Player: winner, Card: &received}}
		events[winner] = append(events[winner], recEv)
		events[loser] = append(events[loser], recEv)

		draw, ok := gs.draw()
		if !ok {
			panic("whist: expected a card left after trick")
		}
		gs.addCard(loser, draw)

		events[loser] = append(events[loser], GameEvent{Kind: EventCard, Card: &CardEvent{Player: loser, Card: &draw}})
		events[winner] = append(events[winner], GameEvent{Kind: EventCard, Card: &CardEvent{Player: loser, Card: nil}})

		if gs.deck.Len() > 0 {
			next, _ := gs.draw()
			gs.revealed = &next
		}

		gs.incrementScore(winner, r.rules.BuildPoints)
	} else {
		gs.incrementScore(winner, r.rules.ScorePoints)
	}

	gs.active = winner
	gs.roundsLeft--

	trick := GameEvent{Kind: EventTrick, Trick: &TrickEvent{
		LeadingPlayer: lead,
		ActivePlayer:  gs.active,
		CardsPlayed:   cardsPlayed,
		Revealed:      gs.revealed,
		Score:         gs.score,
	}}
	events[loser] = append(events[loser], trick)
	events[winner] = append(events[winner], trick)

	if gs.roundsLeft == 0 {
		r.phase = phaseGameOver
	}

	return events, nil
}
