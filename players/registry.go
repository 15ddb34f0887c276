package players

import "germanwhist/cards"

// Constructor builds a Player from a name, used so cmd/train can pick
// an evaluation opponent by a config string instead of a type switch.
type Constructor func() Player

// registry maps opponent names to constructors, preserving
// registration order for deterministic listing — the same pattern the
// teacher's power-up registry uses for its catalog.
type registry struct {
	byName map[string]Constructor
	order  []string
}

func newRegistry() *registry {
	return &registry{byName: make(map[string]Constructor)}
}

func (r *registry) register(name string, ctor Constructor) {
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = ctor
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *registry {
	r := newRegistry()
	r.register("random", func() Player { return RandomPlayer{} })
	r.register("heuristic", func() Player {
		jack := cards.Jack
		return HeuristicPlayer{MinNonTrumpRankToWin: &jack}
	})
	return r
}

// New constructs the named opponent, or (nil, false) if name isn't
// registered.
func New(name string) (Player, bool) {
	ctor, ok := defaultRegistry.byName[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Names lists the registered opponent names, in registration order.
func Names() []string {
	out := make([]string, len(defaultRegistry.order))
	copy(out, defaultRegistry.order)
	return out
}
