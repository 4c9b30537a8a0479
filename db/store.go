// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/printvote/models"
	"github.com/danielhkuo/printvote/registry"
)

// Store is a registry.Store backed by database/sql
type Store struct {
	db *sql.DB
}

var _ registry.Store = (*Store)(nil)

// NewStore creates the schema on db and seeds the candidate list.
// Vote counts start at zero regardless of the seed values.
func NewStore(ctx context.Context, db *sql.DB, candidates []models.Candidate) (*Store, error) {
	if err := CreateSchema(db); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, c := range candidates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO candidate (id, position, name, party, vote_count)
			VALUES (?, ?, ?, ?, 0)
		`, c.ID, i, c.Name, c.Party)
		if err != nil {
			return nil, fmt.Errorf("failed to seed candidate %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit candidates: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) InsertVoter(ctx context.Context, v models.Voter) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM voter WHERE id = ?)
	`, v.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check voter: %w", err)
	}
	if exists {
		return registry.ErrDuplicateVoter
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO voter (id, name, age, credential, enrolled_at)
		VALUES (?, ?, ?, ?, ?)
	`, v.ID, v.Name, v.Age, v.Credential, v.EnrolledAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert voter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit voter: %w", err)
	}
	return nil
}

func (s *Store) GetVoter(ctx context.Context, id string) (models.Voter, error) {
	var v models.Voter
	var enrolledAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, age, credential, enrolled_at FROM voter WHERE id = ?
	`, id).Scan(&v.ID, &v.Name, &v.Age, &v.Credential, &enrolledAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Voter{}, registry.ErrUnknownVoter
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}

	v.EnrolledAt = fromUnixNano(enrolledAt)
	return v, nil
}

func (s *Store) ListVoters(ctx context.Context) ([]models.Voter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, age, credential, enrolled_at
		FROM voter
		ORDER BY enrolled_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		var enrolledAt int64
		if err := rows.Scan(&v.ID, &v.Name, &v.Age, &v.Credential, &enrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		v.EnrolledAt = fromUnixNano(enrolledAt)
		voters = append(voters, v)
	}

	return voters, rows.Err()
}

func (s *Store) HasVoted(ctx context.Context, voterID string) (bool, error) {
	var voted bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM vote WHERE voter_id = ?)
	`, voterID).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return voted, nil
}

func (s *Store) ListVotes(ctx context.Context) ([]models.VoteRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, voter_id, candidate_id, cast_at
		FROM vote
		ORDER BY cast_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.VoteRecord{}
	for rows.Next() {
		var rec models.VoteRecord
		var castAt int64
		if err := rows.Scan(&rec.ID, &rec.VoterID, &rec.CandidateID, &castAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		rec.CastAt = fromUnixNano(castAt)
		votes = append(votes, rec)
	}

	return votes, rows.Err()
}

// InsertVote bumps the candidate's count and stores the record in one
// transaction
func (s *Store) InsertVote(ctx context.Context, rec models.VoteRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var voted bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM vote WHERE voter_id = ?)
	`, rec.VoterID).Scan(&voted)
	if err != nil {
		return fmt.Errorf("failed to check vote: %w", err)
	}
	if voted {
		return registry.ErrAlreadyVoted
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE candidate SET vote_count = vote_count + 1 WHERE id = ?
	`, rec.CandidateID)
	if err != nil {
		return fmt.Errorf("failed to update vote count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return registry.ErrUnknownCandidate
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, voter_id, candidate_id, cast_at)
		VALUES (?, ?, ?, ?)
	`, rec.ID, rec.VoterID, rec.CandidateID, rec.CastAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

func (s *Store) GetCandidate(ctx context.Context, id int) (models.Candidate, error) {
	var c models.Candidate
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, party, vote_count FROM candidate WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Party, &c.VoteCount)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, registry.ErrUnknownCandidate
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	return c, nil
}

func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, party, vote_count
		FROM candidate
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM vote`,
		`DELETE FROM voter`,
		`UPDATE candidate SET vote_count = 0`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset registry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
