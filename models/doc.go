// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - EnrollVoterRequest: voter_id, name, age
  - VerifyVoterRequest: credential
  - CastVoteRequest: candidate_id

# Response Types

Types for JSON responses:

  - EnrollVoterResponse: voter_id, credential, enrolled_at
  - ScanResponse: voter_id, credential
  - VerifyVoterResponse: voter_id, authorization, expires_at
  - VoteReceipt: vote_id, candidate_name, cast_at
  - ResetResponse: message, reset_at
  - ErrorResponse: error, message, code

# Domain Types

  - Voter: enrolled voter with its simulated credential (never serialized)
  - Candidate: seeded candidate and running vote count
  - VoteRecord: one per voter who has voted
  - Authorization: short-lived, one-shot grant to cast a vote
  - Tally, TallyEntry: ranked results with percentages
  - VoterSummary, Stats: registry overview

# Constants

Enrollment limits:

	MinVoterAge = 18
	MaxVoterAge = 120
*/
package models
