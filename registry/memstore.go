// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielhkuo/printvote/models"
)

// MemoryStore is the default map-backed Store. State lives only as long
// as the process.
type MemoryStore struct {
	mu         sync.RWMutex
	voters     map[string]models.Voter
	votes      map[string]models.VoteRecord // keyed by voter id; doubles as the voted set
	candidates []models.Candidate
	index      map[int]int // candidate id -> position in candidates
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store seeded with the given candidates.
// Vote counts start at zero regardless of the seed values.
func NewMemoryStore(candidates []models.Candidate) (*MemoryStore, error) {
	s := &MemoryStore{
		voters:     make(map[string]models.Voter),
		votes:      make(map[string]models.VoteRecord),
		candidates: make([]models.Candidate, 0, len(candidates)),
		index:      make(map[int]int, len(candidates)),
	}

	for _, c := range candidates {
		if _, dup := s.index[c.ID]; dup {
			return nil, fmt.Errorf("duplicate candidate id %d", c.ID)
		}
		c.VoteCount = 0
		s.index[c.ID] = len(s.candidates)
		s.candidates = append(s.candidates, c)
	}

	return s, nil
}

func (s *MemoryStore) InsertVoter(_ context.Context, v models.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.voters[v.ID]; exists {
		return ErrDuplicateVoter
	}
	s.voters[v.ID] = v
	return nil
}

func (s *MemoryStore) GetVoter(_ context.Context, id string) (models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, exists := s.voters[id]
	if !exists {
		return models.Voter{}, ErrUnknownVoter
	}
	return v, nil
}

func (s *MemoryStore) ListVoters(_ context.Context) ([]models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	voters := make([]models.Voter, 0, len(s.voters))
	for _, v := range s.voters {
		voters = append(voters, v)
	}
	return voters, nil
}

func (s *MemoryStore) HasVoted(_ context.Context, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, voted := s.votes[voterID]
	return voted, nil
}

func (s *MemoryStore) ListVotes(_ context.Context) ([]models.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	votes := make([]models.VoteRecord, 0, len(s.votes))
	for _, rec := range s.votes {
		votes = append(votes, rec)
	}
	return votes, nil
}

func (s *MemoryStore) InsertVote(_ context.Context, rec models.VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, voted := s.votes[rec.VoterID]; voted {
		return ErrAlreadyVoted
	}
	pos, ok := s.index[rec.CandidateID]
	if !ok {
		return ErrUnknownCandidate
	}

	s.candidates[pos].VoteCount++
	s.votes[rec.VoterID] = rec
	return nil
}

func (s *MemoryStore) GetCandidate(_ context.Context, id int) (models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return models.Candidate{}, ErrUnknownCandidate
	}
	return s.candidates[pos], nil
}

func (s *MemoryStore) ListCandidates(_ context.Context) ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent modification of internal state
	out := make([]models.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.voters = make(map[string]models.Voter)
	s.votes = make(map[string]models.VoteRecord)
	for i := range s.candidates {
		s.candidates[i].VoteCount = 0
	}
	return nil
}
