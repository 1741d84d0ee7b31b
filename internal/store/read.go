package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadRun retrieves a single run by token.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, token string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, problem, mode, samples, workers, seed, seq, found, goal, solution
		FROM runs
		WHERE token = ?
	`, token)

	return scanRunRow(row)
}

// ReadRunsForProblem returns all runs for a problem name.
// Results ordered by seq ASC, token ASC COLLATE BINARY for
// deterministic iteration.
//
// Returns an empty slice (not nil) if no runs exist for the problem.
func (s *Store) ReadRunsForProblem(ctx context.Context, problemName string) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, problem, mode, samples, workers, seed, seq, found, goal, solution
		FROM runs
		WHERE problem = ?
		ORDER BY seq ASC, token COLLATE BINARY ASC
	`, problemName)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// ReadAllRuns returns every run in the ledger with deterministic ordering.
func (s *Store) ReadAllRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, problem, mode, samples, workers, seed, seq, found, goal, solution
		FROM runs
		ORDER BY seq ASC, token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query all runs: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// ReadVerdicts returns the verdicts for a run in declaration order.
//
// Returns an empty slice (not nil) if the run recorded no verdicts.
func (s *Store) ReadVerdicts(ctx context.Context, runToken string) ([]Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, position, name, satisfied
		FROM verdicts
		WHERE run_token = ?
		ORDER BY position ASC
	`, runToken)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []Verdict
	for rows.Next() {
		var v Verdict
		if err := rows.Scan(&v.RunToken, &v.Position, &v.Name, &v.Satisfied); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		verdicts = append(verdicts, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}

	if verdicts == nil {
		verdicts = []Verdict{}
	}

	return verdicts, nil
}

func collectRuns(rows *sql.Rows) ([]RunRecord, error) {
	var runs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if runs == nil {
		runs = []RunRecord{}
	}

	return runs, nil
}

func scanRun(rows *sql.Rows) (RunRecord, error) {
	var rec RunRecord
	var goal sql.NullFloat64
	var solution sql.NullString

	if err := rows.Scan(
		&rec.Token, &rec.Problem, &rec.Mode, &rec.Samples, &rec.Workers,
		&rec.Seed, &rec.Seq, &rec.Found, &goal, &solution,
	); err != nil {
		return RunRecord{}, fmt.Errorf("scan run: %w", err)
	}

	rec.Goal = goal.Float64
	rec.Solution = solution.String

	return rec, nil
}

func scanRunRow(row *sql.Row) (RunRecord, error) {
	var rec RunRecord
	var goal sql.NullFloat64
	var solution sql.NullString

	if err := row.Scan(
		&rec.Token, &rec.Problem, &rec.Mode, &rec.Samples, &rec.Workers,
		&rec.Seed, &rec.Seq, &rec.Found, &goal, &solution,
	); err != nil {
		return RunRecord{}, err
	}

	rec.Goal = goal.Float64
	rec.Solution = solution.String

	return rec, nil
}
