package store

import (
	"context"
	"database/sql"
	"fmt"
)

// WriteRun inserts a run record and its verdicts in one transaction.
// Uses ON CONFLICT(token) DO NOTHING for idempotency - a duplicate run
// token leaves the existing record and verdicts untouched and returns
// inserted=false.
//
// Verdicts are stored with their slice index as position so constraint
// declaration order survives the round trip.
func (s *Store) WriteRun(ctx context.Context, rec RunRecord, verdicts []Verdict) (inserted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	goal := sql.NullFloat64{Float64: rec.Goal, Valid: rec.Found}
	solution := sql.NullString{String: rec.Solution, Valid: rec.Found}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(token, problem, mode, samples, workers, seed, seq, found, goal, solution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		rec.Token,
		rec.Problem,
		rec.Mode,
		rec.Samples,
		rec.Workers,
		rec.Seed,
		rec.Seq,
		rec.Found,
		goal,
		solution,
	)
	if err != nil {
		return false, fmt.Errorf("write run: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write run: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Token already recorded; verdicts were written with it.
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("write run: commit (existing): %w", err)
		}
		return false, nil
	}

	for i, v := range verdicts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO verdicts
			(run_token, position, name, satisfied)
			VALUES (?, ?, ?, ?)
		`,
			rec.Token,
			i,
			v.Name,
			v.Satisfied,
		)
		if err != nil {
			return false, fmt.Errorf("write run: insert verdict %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("write run: commit: %w", err)
	}

	return true, nil
}
