// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/danielhkuo/printvote/auth"
	"github.com/danielhkuo/printvote/models"
)

// DefaultAuthorizationTTL is how long a successful verification stays usable
const DefaultAuthorizationTTL = 5 * time.Minute

// Registry owns the voters, candidates and votes of one election session.
// Every operation runs under a single lock, so the sum of vote counts always
// equals the number of voters who have voted.
type Registry struct {
	mu     sync.Mutex
	store  Store
	grants map[string]models.Authorization // token -> grant
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Registry)

// WithAuthorizationTTL sets how long a verification authorizes a vote
func WithAuthorizationTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func New(store Store, opts ...Option) *Registry {
	r := &Registry{
		store:  store,
		grants: make(map[string]models.Authorization),
		ttl:    DefaultAuthorizationTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enroll registers a new voter and returns the stored record, including the
// simulated credential the voter must present at verification.
func (r *Registry) Enroll(ctx context.Context, voterID, name string, age int) (models.Voter, error) {
	voterID = strings.TrimSpace(voterID)
	name = norm.NFC.String(strings.TrimSpace(name))

	if voterID == "" || name == "" {
		return models.Voter{}, ErrMissingField
	}
	if age < models.MinVoterAge {
		return models.Voter{}, ErrUnderage
	}
	if age > models.MaxVoterAge {
		return models.Voter{}, ErrInvalidAge
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	credential, err := auth.GenerateCredential(voterID, name, now)
	if err != nil {
		return models.Voter{}, err
	}

	voter := models.Voter{
		ID:         voterID,
		Name:       name,
		Age:        age,
		Credential: credential,
		EnrolledAt: now,
	}
	if err := r.store.InsertVoter(ctx, voter); err != nil {
		return models.Voter{}, err
	}

	return voter, nil
}

// Scan simulates the fingerprint reader: it hands back the credential stored
// for a known voter. There is no biometric input.
func (r *Registry) Scan(ctx context.Context, voterID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	voter, err := r.store.GetVoter(ctx, strings.TrimSpace(voterID))
	if err != nil {
		return "", err
	}
	return voter.Credential, nil
}

// Voter returns an enrolled voter
func (r *Registry) Voter(ctx context.Context, voterID string) (models.Voter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.GetVoter(ctx, strings.TrimSpace(voterID))
}

// Verify checks a presented credential and, on success, issues a short-lived
// authorization for exactly one vote. Verifying again revokes any earlier
// authorization for the same voter.
func (r *Registry) Verify(ctx context.Context, voterID, credential string) (models.Authorization, error) {
	voterID = strings.TrimSpace(voterID)

	r.mu.Lock()
	defer r.mu.Unlock()

	voter, err := r.store.GetVoter(ctx, voterID)
	if err != nil {
		return models.Authorization{}, err
	}

	voted, err := r.store.HasVoted(ctx, voterID)
	if err != nil {
		return models.Authorization{}, err
	}
	if voted {
		return models.Authorization{}, ErrAlreadyVoted
	}

	if err := auth.ValidateCredential(credential, voter.Credential); err != nil {
		return models.Authorization{}, ErrCredentialMismatch
	}

	token, err := auth.GenerateAuthorizationToken()
	if err != nil {
		return models.Authorization{}, err
	}

	now := r.now()
	r.purgeExpired(now)
	for t, g := range r.grants {
		if g.VoterID == voterID {
			delete(r.grants, t)
		}
	}

	grant := models.Authorization{
		Token:     token,
		VoterID:   voterID,
		ExpiresAt: now.Add(r.ttl),
	}
	r.grants[token] = grant

	return grant, nil
}

// CastVote records one vote for a verified voter and consumes the
// authorization. An unknown candidate leaves the authorization in place so
// the caller can retry.
func (r *Registry) CastVote(ctx context.Context, voterID, token string, candidateID int) (models.VoteReceipt, error) {
	voterID = strings.TrimSpace(voterID)

	r.mu.Lock()
	defer r.mu.Unlock()

	voted, err := r.store.HasVoted(ctx, voterID)
	if err != nil {
		return models.VoteReceipt{}, err
	}
	if voted {
		return models.VoteReceipt{}, ErrAlreadyVoted
	}

	now := r.now()
	grant, ok := r.grants[token]
	if !ok || grant.VoterID != voterID {
		return models.VoteReceipt{}, ErrNotAuthorized
	}
	if !now.Before(grant.ExpiresAt) {
		delete(r.grants, token)
		return models.VoteReceipt{}, ErrNotAuthorized
	}

	candidate, err := r.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return models.VoteReceipt{}, err
	}

	rec := models.VoteRecord{
		ID:          uuid.NewString(),
		VoterID:     voterID,
		CandidateID: candidate.ID,
		CastAt:      now,
	}
	if err := r.store.InsertVote(ctx, rec); err != nil {
		return models.VoteReceipt{}, err
	}
	delete(r.grants, token)

	return models.VoteReceipt{
		VoteID:        rec.ID,
		VoterID:       voterID,
		CandidateID:   candidate.ID,
		CandidateName: candidate.Name,
		CastAt:        now,
		Message:       fmt.Sprintf("Vote cast for %s!", candidate.Name),
	}, nil
}

// Tally ranks candidates by vote count
func (r *Registry) Tally(ctx context.Context) (models.Tally, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidates, err := r.store.ListCandidates(ctx)
	if err != nil {
		return models.Tally{}, err
	}
	return BuildTally(candidates), nil
}

// Candidates returns the seeded candidates in seed order
func (r *Registry) Candidates(ctx context.Context) ([]models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.ListCandidates(ctx)
}

// ListVoters returns every enrolled voter in enrollment order with its
// voting status. Credentials are not included.
func (r *Registry) ListVoters(ctx context.Context) ([]models.VoterSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	voters, err := r.store.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	votes, err := r.store.ListVotes(ctx)
	if err != nil {
		return nil, err
	}

	voted := make(map[string]bool, len(votes))
	for _, rec := range votes {
		voted[rec.VoterID] = true
	}

	sort.Slice(voters, func(i, j int) bool {
		if !voters[i].EnrolledAt.Equal(voters[j].EnrolledAt) {
			return voters[i].EnrolledAt.Before(voters[j].EnrolledAt)
		}
		return voters[i].ID < voters[j].ID
	})

	now := r.now()
	summaries := make([]models.VoterSummary, len(voters))
	for i, v := range voters {
		summaries[i] = models.VoterSummary{
			ID:         v.ID,
			Name:       v.Name,
			Age:        v.Age,
			EnrolledAt: v.EnrolledAt,
			Enrolled:   humanize.RelTime(v.EnrolledAt, now, "ago", "from now"),
			HasVoted:   voted[v.ID],
		}
	}
	return summaries, nil
}

// Stats summarizes enrollment and turnout
func (r *Registry) Stats(ctx context.Context) (models.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	voters, err := r.store.ListVoters(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	votes, err := r.store.ListVotes(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	candidates, err := r.store.ListCandidates(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	return models.Stats{
		EnrolledVoters: len(voters),
		VotesCast:      len(votes),
		PendingVotes:   len(voters) - len(votes),
		Candidates:     len(candidates),
		TurnoutPercent: percentOf(len(votes), len(voters)),
	}, nil
}

// Reset clears voters, votes and outstanding authorizations and zeroes all
// vote counts
func (r *Registry) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Reset(ctx); err != nil {
		return err
	}
	r.grants = make(map[string]models.Authorization)
	return nil
}

// purgeExpired drops authorizations that can no longer be used.
// Caller must hold r.mu.
func (r *Registry) purgeExpired(now time.Time) {
	for token, g := range r.grants {
		if !now.Before(g.ExpiresAt) {
			delete(r.grants, token)
		}
	}
}

// percentOf returns part/max(whole,1)*100 rounded to one decimal place
func percentOf(part, whole int) float64 {
	if whole < 1 {
		whole = 1
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
