// Package history persists finished simulation matches to SQLite so
// long batch runs can be mined afterwards for rule and bot tuning.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/JustABard/thunee/internal/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id           TEXT PRIMARY KEY,
	seed         INTEGER NOT NULL,
	rounds       INTEGER NOT NULL,
	redeals      INTEGER NOT NULL,
	winning_team INTEGER NOT NULL,
	balls_team0  INTEGER NOT NULL,
	balls_team1  INTEGER NOT NULL,
	points_team0 INTEGER NOT NULL,
	points_team1 INTEGER NOT NULL,
	target       INTEGER NOT NULL,
	duration_ms  INTEGER NOT NULL,
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_matches_created_at ON matches(created_at);
CREATE TABLE IF NOT EXISTS rounds (
	match_id      TEXT NOT NULL REFERENCES matches(id),
	round_no      INTEGER NOT NULL,
	points_team0  INTEGER NOT NULL,
	points_team1  INTEGER NOT NULL,
	balls_team0   INTEGER NOT NULL,
	balls_team1   INTEGER NOT NULL,
	counting_team INTEGER NOT NULL,
	PRIMARY KEY (match_id, round_no)
);
`

// Store is a SQLite-backed archive of match results.
type Store struct {
	db  *sql.DB
	log *logrus.Entry
}

// Record is one archived match row.
type Record struct {
	MatchID     uuid.UUID
	Seed        uint64
	Rounds      int
	Redeals     int
	WinningTeam int
	Balls       [2]int
	Points      [2]int
	Target      int
	Duration    time.Duration
	CreatedAt   time.Time
}

// Summary aggregates the archive for a quick batch readout.
type Summary struct {
	Matches  int
	TeamWins [2]int
	Redeals  int
}

// Open opens (creating if needed) the archive at path. Use ":memory:"
// for an ephemeral store.
func Open(path string, logger *logrus.Logger) (*Store, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %q: %w", path, err)
	}
	// modernc.org/sqlite serializes through a single connection; more
	// would contend on the write lock.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	return &Store{db: db, log: logger.WithField("store", path)}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult archives one finished match along with every per-round
// scoring breakdown it carries.
func (s *Store) SaveResult(ctx context.Context, res *sim.Result) error {
	const matchQ = `
INSERT INTO matches (
	id, seed, rounds, redeals, winning_team,
	balls_team0, balls_team1, points_team0, points_team1,
	target, duration_ms, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	const roundQ = `
INSERT INTO rounds (
	match_id, round_no, points_team0, points_team1,
	balls_team0, balls_team1, counting_team
) VALUES (?, ?, ?, ?, ?, ?, ?)`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("history: begin: %w", err)
	}
	defer tx.Rollback()

	id := res.MatchID.String()
	_, err = tx.ExecContext(ctx, matchQ,
		id,
		int64(res.Seed),
		res.Rounds,
		res.Redeals,
		res.WinningTeam,
		res.Balls[0], res.Balls[1],
		res.Points[0], res.Points[1],
		res.Target,
		res.Duration.Milliseconds(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("history: save %s: %w", res.MatchID, err)
	}
	for i, br := range res.RoundBreakdowns {
		_, err = tx.ExecContext(ctx, roundQ,
			id, i+1,
			br.TeamPoints[0], br.TeamPoints[1],
			br.Balls[0], br.Balls[1],
			br.CountingTeam,
		)
		if err != nil {
			return fmt.Errorf("history: save %s round %d: %w", res.MatchID, i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history: commit %s: %w", res.MatchID, err)
	}
	s.log.WithField("match", res.MatchID).Debug("archived match")
	return nil
}

// RoundRecord is one archived per-round scoring row.
type RoundRecord struct {
	RoundNo      int
	Points       [2]int
	Balls        [2]int
	CountingTeam int
}

// Rounds returns the archived breakdowns of one match in play order.
func (s *Store) Rounds(ctx context.Context, matchID uuid.UUID) ([]RoundRecord, error) {
	const q = `
SELECT round_no, points_team0, points_team1, balls_team0, balls_team1, counting_team
FROM rounds
WHERE match_id = ?
ORDER BY round_no`

	rows, err := s.db.QueryContext(ctx, q, matchID.String())
	if err != nil {
		return nil, fmt.Errorf("history: rounds of %s: %w", matchID, err)
	}
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		var rec RoundRecord
		if err := rows.Scan(
			&rec.RoundNo, &rec.Points[0], &rec.Points[1],
			&rec.Balls[0], &rec.Balls[1], &rec.CountingTeam,
		); err != nil {
			return nil, fmt.Errorf("history: scan round: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Recent returns up to limit archived matches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	const q = `
SELECT id, seed, rounds, redeals, winning_team,
	balls_team0, balls_team1, points_team0, points_team1,
	target, duration_ms, created_at
FROM matches
ORDER BY created_at DESC, id DESC
LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec        Record
			id         string
			seed       int64
			durationMS int64
		)
		if err := rows.Scan(
			&id, &seed, &rec.Rounds, &rec.Redeals, &rec.WinningTeam,
			&rec.Balls[0], &rec.Balls[1], &rec.Points[0], &rec.Points[1],
			&rec.Target, &durationMS, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		rec.MatchID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("history: bad match id %q: %w", id, err)
		}
		rec.Seed = uint64(seed)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summarize tallies the whole archive.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	const q = `
SELECT
	COUNT(*),
	COALESCE(SUM(CASE WHEN winning_team = 0 THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN winning_team = 1 THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(redeals), 0)
FROM matches`

	var sum Summary
	err := s.db.QueryRowContext(ctx, q).Scan(
		&sum.Matches, &sum.TeamWins[0], &sum.TeamWins[1], &sum.Redeals,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("history: summarize: %w", err)
	}
	return sum, nil
}
