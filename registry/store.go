// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"

	"github.com/danielhkuo/printvote/models"
)

// Store holds registry state. The Registry calls a Store with its own lock
// held, one operation at a time.
type Store interface {
	// InsertVoter fails with ErrDuplicateVoter if the id is taken
	InsertVoter(ctx context.Context, v models.Voter) error
	// GetVoter fails with ErrUnknownVoter
	GetVoter(ctx context.Context, id string) (models.Voter, error)
	ListVoters(ctx context.Context) ([]models.Voter, error)

	HasVoted(ctx context.Context, voterID string) (bool, error)
	ListVotes(ctx context.Context) ([]models.VoteRecord, error)
	// InsertVote increments the candidate's count and stores the record as
	// one step. Fails with ErrAlreadyVoted or ErrUnknownCandidate and
	// changes nothing in that case.
	InsertVote(ctx context.Context, rec models.VoteRecord) error

	// GetCandidate fails with ErrUnknownCandidate
	GetCandidate(ctx context.Context, id int) (models.Candidate, error)
	// ListCandidates returns candidates in seed order
	ListCandidates(ctx context.Context) ([]models.Candidate, error)

	// Reset drops voters and votes and zeroes every vote count.
	// The candidate list is kept.
	Reset(ctx context.Context) error
}
