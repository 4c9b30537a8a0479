// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry is the voting core: enrollment, simulated fingerprint
verification, vote casting, and tallying over one in-memory session.

# Registry

A Registry wraps a Store and serializes every operation behind one mutex:

	store, _ := registry.NewMemoryStore(seed.DefaultCandidates())
	reg := registry.New(store, registry.WithAuthorizationTTL(5*time.Minute))

State is volatile. Nothing survives a restart, and Reset empties it on
demand while keeping the candidate list.

# Voting Flow

	voter, err := reg.Enroll(ctx, "V1", "Alice", 30)
	grant, err := reg.Verify(ctx, "V1", voter.Credential)
	receipt, err := reg.CastVote(ctx, "V1", grant.Token, 2)
	tally, err := reg.Tally(ctx)

Verify returns an Authorization that CastVote consumes. It is one-shot and
expires after the configured TTL. Scan stands in for a fingerprint reader by
returning the stored credential of a known voter.

# Errors

Operations return sentinel errors (ErrDuplicateVoter, ErrUnderage,
ErrUnknownVoter, ErrAlreadyVoted, ErrCredentialMismatch,
ErrUnknownCandidate, ErrMissingField, ErrInvalidAge, ErrNotAuthorized).
Kind maps them to stable string codes for API responses.

# Stores

MemoryStore is the default. The db package provides a SQLite-backed Store
running on an in-memory database.
*/
package registry
