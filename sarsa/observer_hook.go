package sarsa

// EpisodeSummary reports the outcome of one finished training episode,
// handed to an EpisodeObserver so callers can persist or broadcast it
// without the trainer knowing anything about storage or transport.
type EpisodeSummary struct {
	Winner  int
	Score   [2]int
	Steps   int
	Epsilon float64
}

// EpisodeObserver is notified once per completed episode. Implementations
// must not block the training loop; a nil EpisodeObserver is a valid
// no-op, matching the teacher's nil-checked historyStore pattern.
type EpisodeObserver func(EpisodeSummary)
