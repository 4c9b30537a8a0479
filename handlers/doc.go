// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the printvote API.

# Handler Types

Each handler is a struct with registry and config dependencies:

  - VoterHandler: Enrollment, voter listing, scan and verification
  - VotingHandler: Casting the single vote
  - ResultsHandler: Tally, candidates and stats
  - AdminHandler: Registry reset

Handlers are created via constructor functions that accept the registry and
Config:

	voterHandler := handlers.NewVoterHandler(reg, cfg)

# Voting Flow

	POST /voters             → Enroll (returns credential)
	POST /voters/{id}/scan   → Scan (simulated reader, returns credential)
	POST /voters/{id}/verify → Verify (returns one-shot authorization)
	POST /votes              → CastVote (X-Voter-ID + X-Authorization)

A voter who has already voted always gets 409 already_voted, whatever
authorization they present.

# Errors

Registry errors are translated in one place (errors.go):

	400  missing_field, underage, invalid_age, invalid_json
	401  credential_mismatch, not_authorized, missing_admin_key
	403  invalid_admin_key
	404  unknown_voter, unknown_candidate
	409  duplicate_voter, already_voted
	500  internal (details are logged, not returned)

# Logging

Domain events (voter enrolled, voter verified, vote cast, registry reset)
are logged with slog. Client IPs appear only as auth.HashIP digests.
*/
package handlers
