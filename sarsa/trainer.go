// Package sarsa implements on-policy SARSA(λ) self-play training over
// the German Whist engine: two observers track each player's
// worldview, a shared network estimates Q(state, action), and
// per-player eligibility traces carry credit across a player's own
// turns to the terminal win/lose reward.
package sarsa

import (
	"math/rand"

	"germanwhist/cards"
	"germanwhist/matcherrors"
	"germanwhist/neuralnet"
	"germanwhist/observer"
	"germanwhist/whist"
)

// Parameters holds the three SARSA(λ) hyperparameters. Defaults
// reproduce the original's chosen values.
type Parameters struct {
	Lambda float64 // trace decay
	Gamma  float64 // reward discount
	Eps    float64 // exploration rate
}

// DefaultParameters returns λ=0.8, γ=1.0, ε=0.01.
func DefaultParameters() Parameters {
	return Parameters{Lambda: 0.8, Gamma: 1.0, Eps: 0.01}
}

// player bundles one seat's observer with its SARSA bookkeeping: an
// eligibility trace (one entry per network parameter) and the Q-value
// from that seat's previous step.
type player struct {
	obs   *observer.PlayerObserver
	trace []float64
	lastQ float64
}

func newPlayer(seat int, numParameters int) *player {
	return &player{
		obs:   observer.New(seat),
		trace: make([]float64, numParameters),
	}
}

// Trainer runs SARSA(λ) self-play episodes against a shared network.
type Trainer struct {
	players [2]*player
	model   *neuralnet.NeuralNet
	engine  *whist.Round
	params  Parameters

	// scratch reused across an entire episode
	stateAction []float64
	grad        []float64
}

// New constructs a trainer. It fails if model's input width doesn't
// match the fixed state-action vector length the observer builds.
func New(rules whist.ScoringRules, model *neuralnet.NeuralNet, params Parameters) (*Trainer, error) {
	if model.NumInputs() != observer.StateActionVectorLength {
		return nil, matcherrors.ErrMismatchedModelSize
	}

	numParams := model.NumParameters()
	return &Trainer{
		players:     [2]*player{newPlayer(0, numParams), newPlayer(1, numParams)},
		model:       model,
		engine:      whist.NewRound(rules),
		params:      params,
		stateAction: make([]float64, observer.StateActionVectorLength),
		grad:        make([]float64, numParams),
	}, nil
}

// CurrentModel exposes the trainer's network, e.g. to persist or
// evaluate it outside the training loop.
func (tr *Trainer) CurrentModel() *neuralnet.NeuralNet {
	return tr.model
}

// EpisodeResult summarizes one completed training episode.
type EpisodeResult struct {
	Winner int
	Score  [2]int
	Steps  int
}

// TrainOnEpisode plays one full round of self-play, updating the
// network after every step and at the terminal reward. If dualTrain
// is false, only player 0's trace drives a weight update; player 1's
// trace still accumulates so the network's Q-estimates for player 1
// remain meaningful to evaluate, but its updates are withheld. A
// failed episode (an engine error, which choosing only among
// PossibleActions does not trigger) is abandoned without a terminal
// update; weight updates already applied at its earlier steps,
// including the step whose action failed, are not rolled back.
// onEpisode, if non-nil, is called once after a successful episode with
// a summary suitable for persistence or broadcast; the trainer itself
// knows nothing about storage or transport.
func (tr *Trainer) TrainOnEpisode(rng *rand.Rand, dualTrain bool, onEpisode EpisodeObserver) (EpisodeResult, error) {
	startEvents := tr.engine.StartRound(rng, nil)
	for seat := 0; seat < 2; seat++ {
		p := tr.players[seat]
		for i := range p.trace {
			p.trace[i] = 0
		}
		p.lastQ = 0
		for _, ev := range startEvents[seat] {
			p.obs.OnEvent(ev)
		}
	}

	// Every non-terminal step's immediate reward is 0; only the terminal
	// update below carries a non-zero reward.
	const stepReward = 0.0

	steps := 0
	for !tr.engine.IsGameOver() {
		active := tr.engine.ActivePlayer()
		actions := tr.engine.PossibleActions()
		if len(actions) == 0 {
			return EpisodeResult{}, matcherrors.ErrNoLegalActions
		}

		p := tr.players[active]
		action := tr.chooseAction(p, actions, rng)

		q := tr.model.EvaluateWithGradient(tr.stateAction, tr.grad)

		tr.applyUpdate(active, stepReward+tr.params.Gamma*q-p.lastQ, p.trace, dualTrain)

		for i := range p.trace {
			p.trace[i] = tr.params.Lambda*tr.params.Gamma*p.trace[i] + tr.grad[i]
		}
		p.lastQ = q

		events, err := tr.engine.PlayAction(whist.Action{Player: active, Card: action})
		if err != nil {
			return EpisodeResult{}, err
		}
		for seat := 0; seat < 2; seat++ {
			for _, ev := range events[seat] {
				tr.players[seat].obs.OnEvent(ev)
			}
		}
		steps++
	}

	winner, _ := tr.engine.Winner()
	loser := 1 - winner
	const (
		rWin  = 1.0
		rLose = 0.0
	)
	tr.applyUpdate(winner, rWin-tr.players[winner].lastQ, tr.players[winner].trace, dualTrain)
	tr.applyUpdate(loser, rLose-tr.players[loser].lastQ, tr.players[loser].trace, dualTrain)

	result := EpisodeResult{Winner: winner, Score: tr.currentScore(), Steps: steps}
	if onEpisode != nil {
		onEpisode(EpisodeSummary{Winner: result.Winner, Score: result.Score, Steps: result.Steps, Epsilon: tr.params.Eps})
	}
	return result, nil
}

// applyUpdate calls UpdateWeights unless seat is player 1 and
// dualTrain is off, per spec.md Design Note 9's dual-train toggle.
func (tr *Trainer) applyUpdate(seat int, err float64, trace []float64, dualTrain bool) {
	if seat == 1 && !dualTrain {
		return
	}
	tr.model.UpdateWeights(err, trace)
}

// chooseAction picks an action for p via ε-greedy selection (pure
// greedy during evaluation is EvaluateEpisode, below), writing the chosen
// state-action vector into tr.stateAction.
func (tr *Trainer) chooseAction(p *player, actions []whist.Action, rng *rand.Rand) cards.Card {
	if rng.Float64() < tr.params.Eps {
		a := actions[rng.Intn(len(actions))]
		p.obs.StateActionVector(tr.stateAction, a.Card, false)
		return a.Card
	}
	return tr.greedyAction(p, actions)
}

// greedyAction evaluates every candidate action's Q-value, reusing the
// state block of tr.stateAction across candidates, and leaves the
// winning candidate's vector in tr.stateAction.
func (tr *Trainer) greedyAction(p *player, actions []whist.Action) cards.Card {
	p.obs.StateVector(tr.stateAction[:observer.StateVectorLength])

	best := actions[0].Card
	bestQ := tr.evaluateCandidate(p, best)
	for _, a := range actions[1:] {
		q := tr.evaluateCandidate(p, a.Card)
		if q > bestQ {
			bestQ = q
			best = a.Card
		}
	}

	p.obs.StateActionVector(tr.stateAction, best, true)
	return best
}

// evaluateCandidate writes action's one-hot block into tr.stateAction
// (reusing the already-built state block) and returns the network's Q
// estimate, without computing a gradient.
func (tr *Trainer) evaluateCandidate(p *player, action cards.Card) float64 {
	p.obs.StateActionVector(tr.stateAction, action, true)
	out := [1]float64{}
	tr.model.Evaluate(tr.stateAction, out[:])
	return out[0]
}

func (tr *Trainer) currentScore() [2]int {
	view0 := tr.engine.PlayerView(0)
	return view0.Score
}

// Opponent chooses a card given a read-only view of the round, for use
// as the non-model seat in EvaluateEpisode. players.Player satisfies
// this directly; sarsa depends only on the narrow interface it needs
// so it need not import the players package.
type Opponent interface {
	PlayCard(view whist.PlayerView, rng *rand.Rand) cards.Card
}

// EvaluateEpisode plays one full round on the trainer's own engine
// with modelSeat driven by the current network (pure greedy, no
// exploration) and the other seat driven by opponent. No weight
// updates or trace bookkeeping occur; it exists to measure a trained
// model's win rate against a fixed baseline. As in TrainOnEpisode,
// both seats' observers are reset and rebuilt from this episode's own
// StartRound, so evaluation never reads stale worldview state left
// over from training.
func (tr *Trainer) EvaluateEpisode(rng *rand.Rand, modelSeat int, opponent Opponent) (winner int, err error) {
	startEvents := tr.engine.StartRound(rng, nil)
	for seat := 0; seat < 2; seat++ {
		for _, ev := range startEvents[seat] {
			tr.players[seat].obs.OnEvent(ev)
		}
	}

	for !tr.engine.IsGameOver() {
		active := tr.engine.ActivePlayer()
		actions := tr.engine.PossibleActions()
		if len(actions) == 0 {
			return 0, matcherrors.ErrNoLegalActions
		}

		var chosen cards.Card
		if active == modelSeat {
			chosen = tr.greedyAction(tr.players[active], actions)
		} else {
			chosen = opponent.PlayCard(tr.engine.PlayerView(active), rng)
		}

		events, actionErr := tr.engine.PlayAction(whist.Action{Player: active, Card: chosen})
		if actionErr != nil {
			return 0, actionErr
		}
		for seat := 0; seat < 2; seat++ {
			for _, ev := range events[seat] {
				tr.players[seat].obs.OnEvent(ev)
			}
		}
	}

	winner, _ = tr.engine.Winner()
	return winner, nil
}
