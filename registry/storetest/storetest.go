// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storetest holds the behavioral suite every registry.Store must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/printvote/models"
	"github.com/danielhkuo/printvote/registry"
)

// Factory builds an empty store seeded with the given candidates
type Factory func(t *testing.T, candidates []models.Candidate) registry.Store

// Candidates is the seed the suite runs against
func Candidates() []models.Candidate {
	return []models.Candidate{
		{ID: 1, Name: "Alice Johnson", Party: "Progressive Party"},
		{ID: 2, Name: "Bob Martinez", Party: "Unity Alliance"},
		{ID: 3, Name: "Carol Zhang", Party: "Future Forward"},
	}
}

func voter(id string, at time.Time) models.Voter {
	return models.Voter{
		ID:         id,
		Name:       "Voter " + id,
		Age:        30,
		Credential: "cred-" + id,
		EnrolledAt: at,
	}
}

// Run executes the suite against stores built by newStore
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("voters", func(t *testing.T) {
		s := newStore(t, Candidates())

		require.NoError(t, s.InsertVoter(ctx, voter("V1", base)))
		err := s.InsertVoter(ctx, voter("V1", base.Add(time.Second)))
		assert.ErrorIs(t, err, registry.ErrDuplicateVoter)

		got, err := s.GetVoter(ctx, "V1")
		require.NoError(t, err)
		assert.Equal(t, "Voter V1", got.Name)
		assert.Equal(t, 30, got.Age)
		assert.Equal(t, "cred-V1", got.Credential)
		assert.True(t, got.EnrolledAt.Equal(base), "enrolled_at changed: %v", got.EnrolledAt)

		_, err = s.GetVoter(ctx, "nobody")
		assert.ErrorIs(t, err, registry.ErrUnknownVoter)

		require.NoError(t, s.InsertVoter(ctx, voter("V2", base)))
		voters, err := s.ListVoters(ctx)
		require.NoError(t, err)
		assert.Len(t, voters, 2)
	})

	t.Run("candidates keep seed order", func(t *testing.T) {
		s := newStore(t, Candidates())

		candidates, err := s.ListCandidates(ctx)
		require.NoError(t, err)
		require.Len(t, candidates, 3)
		for i, c := range Candidates() {
			assert.Equal(t, c.ID, candidates[i].ID)
			assert.Equal(t, c.Name, candidates[i].Name)
			assert.Equal(t, c.Party, candidates[i].Party)
			assert.Zero(t, candidates[i].VoteCount)
		}

		c, err := s.GetCandidate(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Bob Martinez", c.Name)

		_, err = s.GetCandidate(ctx, 99)
		assert.ErrorIs(t, err, registry.ErrUnknownCandidate)
	})

	t.Run("votes", func(t *testing.T) {
		s := newStore(t, Candidates())
		require.NoError(t, s.InsertVoter(ctx, voter("V1", base)))

		voted, err := s.HasVoted(ctx, "V1")
		require.NoError(t, err)
		assert.False(t, voted)

		rec := models.VoteRecord{ID: "vote-1", VoterID: "V1", CandidateID: 2, CastAt: base}
		require.NoError(t, s.InsertVote(ctx, rec))

		voted, err = s.HasVoted(ctx, "V1")
		require.NoError(t, err)
		assert.True(t, voted)

		c, err := s.GetCandidate(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, c.VoteCount)

		// A second vote changes nothing
		err = s.InsertVote(ctx, models.VoteRecord{ID: "vote-2", VoterID: "V1", CandidateID: 3, CastAt: base})
		assert.ErrorIs(t, err, registry.ErrAlreadyVoted)

		votes, err := s.ListVotes(ctx)
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, "vote-1", votes[0].ID)
		assert.Equal(t, 2, votes[0].CandidateID)

		c, err = s.GetCandidate(ctx, 3)
		require.NoError(t, err)
		assert.Zero(t, c.VoteCount)
	})

	t.Run("vote for unknown candidate changes nothing", func(t *testing.T) {
		s := newStore(t, Candidates())
		require.NoError(t, s.InsertVoter(ctx, voter("V1", base)))

		err := s.InsertVote(ctx, models.VoteRecord{ID: "vote-1", VoterID: "V1", CandidateID: 42, CastAt: base})
		assert.ErrorIs(t, err, registry.ErrUnknownCandidate)

		voted, err := s.HasVoted(ctx, "V1")
		require.NoError(t, err)
		assert.False(t, voted)

		votes, err := s.ListVotes(ctx)
		require.NoError(t, err)
		assert.Empty(t, votes)
	})

	t.Run("reset", func(t *testing.T) {
		s := newStore(t, Candidates())
		require.NoError(t, s.InsertVoter(ctx, voter("V1", base)))
		require.NoError(t, s.InsertVoter(ctx, voter("V2", base)))
		require.NoError(t, s.InsertVote(ctx, models.VoteRecord{ID: "a", VoterID: "V1", CandidateID: 1, CastAt: base}))
		require.NoError(t, s.InsertVote(ctx, models.VoteRecord{ID: "b", VoterID: "V2", CandidateID: 1, CastAt: base}))

		require.NoError(t, s.Reset(ctx))

		voters, err := s.ListVoters(ctx)
		require.NoError(t, err)
		assert.Empty(t, voters)

		votes, err := s.ListVotes(ctx)
		require.NoError(t, err)
		assert.Empty(t, votes)

		candidates, err := s.ListCandidates(ctx)
		require.NoError(t, err)
		require.Len(t, candidates, 3)
		for _, c := range candidates {
			assert.Zero(t, c.VoteCount, "candidate %d", c.ID)
		}

		// The same ids can enroll and vote again
		require.NoError(t, s.InsertVoter(ctx, voter("V1", base)))
		require.NoError(t, s.InsertVote(ctx, models.VoteRecord{ID: "c", VoterID: "V1", CandidateID: 3, CastAt: base}))
	})
}
