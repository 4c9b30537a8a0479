// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Enrollment limits
const (
	MinVoterAge = 18
	MaxVoterAge = 120
)

// Request types

type EnrollVoterRequest struct {
	VoterID string `json:"voter_id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
}

type VerifyVoterRequest struct {
	Credential string `json:"credential"`
}

// Voter identity and authorization travel in headers, see handlers.CastVote
type CastVoteRequest struct {
	CandidateID int `json:"candidate_id"`
}

// Response types

type EnrollVoterResponse struct {
	VoterID    string    `json:"voter_id"`
	Credential string    `json:"credential"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type ScanResponse struct {
	VoterID    string `json:"voter_id"`
	Credential string `json:"credential"`
}

type VerifyVoterResponse struct {
	VoterID       string    `json:"voter_id"`
	Authorization string    `json:"authorization"`
	ExpiresAt     time.Time `json:"expires_at"`
	Message       string    `json:"message"`
}

type ResetResponse struct {
	Message string    `json:"message"`
	ResetAt time.Time `json:"reset_at"`
}

// Domain types

// Voter is an enrolled voter. Immutable after enrollment.
type Voter struct {
	ID         string    `json:"voter_id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Credential string    `json:"-"` // Never expose in JSON
	EnrolledAt time.Time `json:"enrolled_at"`
}

type Candidate struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Party     string `json:"party"`
	VoteCount int    `json:"vote_count"`
}

// VoteRecord exists at most once per voter
type VoteRecord struct {
	ID          string    `json:"vote_id"`
	VoterID     string    `json:"voter_id"`
	CandidateID int       `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

// Authorization is the one-shot grant returned by a successful verification
type Authorization struct {
	Token     string    `json:"authorization"`
	VoterID   string    `json:"voter_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VoteReceipt struct {
	VoteID        string    `json:"vote_id"`
	VoterID       string    `json:"voter_id"`
	CandidateID   int       `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	CastAt        time.Time `json:"cast_at"`
	Message       string    `json:"message"`
}

// Tally types

type TallyEntry struct {
	Rank       int       `json:"rank"` // 1-indexed ranking
	Candidate  Candidate `json:"candidate"`
	VoteCount  int       `json:"vote_count"`
	Percentage float64   `json:"percentage"` // one decimal place
}

type Tally struct {
	TotalVotes int          `json:"total_votes"`
	Entries    []TallyEntry `json:"entries"`
	Winner     *TallyEntry  `json:"winner,omitempty"` // nil until the first vote
}

type VoterSummary struct {
	ID         string    `json:"voter_id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Enrolled   string    `json:"enrolled"` // humanized, e.g. "3 minutes ago"
	HasVoted   bool      `json:"has_voted"`
}

type Stats struct {
	EnrolledVoters int     `json:"enrolled_voters"`
	VotesCast      int     `json:"votes_cast"`
	PendingVotes   int     `json:"pending_votes"`
	Candidates     int     `json:"candidates"`
	TurnoutPercent float64 `json:"turnout_percent"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"` // stable error kind, e.g. "already_voted"
}
