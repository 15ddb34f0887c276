package episodestore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"germanwhist/matcherrors"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS training_episodes (
	id        BIGSERIAL PRIMARY KEY,
	run_id    TEXT NOT NULL,
	sequence  INTEGER NOT NULL,
	winner    SMALLINT NOT NULL,
	score0    SMALLINT NOT NULL,
	score1    SMALLINT NOT NULL,
	steps     SMALLINT NOT NULL,
	epsilon   DOUBLE PRECISION NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS training_episodes_run_id_sequence_idx
	ON training_episodes (run_id, sequence);
`

// Store persists training episode summaries to Postgres. A nil *Store
// (or one built from an empty DSN) is a valid no-op: every method
// short-circuits so callers never need to branch on whether a database
// is configured.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore opens a pool against dsn and bootstraps the schema. Passing
// an empty dsn returns (nil, nil): a disabled store, not an error, so
// cmd/train can wire an unconfigured episodestore exactly as the
// original wires an unconfigured history store.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("episodestore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("episodestore: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("episodestore: bootstrap schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the pool. Safe to call on a nil or disabled store.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// InsertEpisode records one training episode. It is a no-op returning
// nil on a disabled store so training loops can call it unconditionally.
func (s *Store) InsertEpisode(ctx context.Context, rec EpisodeRecord) error {
	if s == nil || s.pool == nil {
		return nil
	}

	const q = `
INSERT INTO training_episodes (run_id, sequence, winner, score0, score1, steps, epsilon)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := s.pool.Exec(ctx, q, rec.RunID, rec.Sequence, rec.Winner, rec.Score0, rec.Score1, rec.Steps, rec.Epsilon)
	if err != nil {
		return fmt.Errorf("episodestore: insert episode: %w", err)
	}
	return nil
}

// RecentEpisodes returns the most recent limit episodes for runID,
// newest first. On a disabled store it returns matcherrors.ErrStoreUnconfigured,
// since unlike InsertEpisode there is no sensible zero-value result to
// hand back to a caller expecting data.
func (s *Store) RecentEpisodes(ctx context.Context, runID string, limit int) ([]EpisodeRecord, error) {
	if s == nil || s.pool == nil {
		return nil, matcherrors.ErrStoreUnconfigured
	}

	const q = `
SELECT run_id, sequence, winner, score0, score1, steps, epsilon
FROM training_episodes
WHERE run_id = $1
ORDER BY sequence DESC
LIMIT $2
`
	rows, err := s.pool.Query(ctx, q, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("episodestore: query recent episodes: %w", err)
	}
	defer rows.Close()

	var out []EpisodeRecord
	for rows.Next() {
		var rec EpisodeRecord
		if err := rows.Scan(&rec.RunID, &rec.Sequence, &rec.Winner, &rec.Score0, &rec.Score1, &rec.Steps, &rec.Epsilon); err != nil {
			return nil, fmt.Errorf("episodestore: scan episode row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("episodestore: iterate episode rows: %w", err)
	}
	return out, nil
}
