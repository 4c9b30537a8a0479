// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import "errors"

// Expected, caller-recoverable outcomes of registry operations.
// Stores return these (possibly wrapped) so callers can use errors.Is.
var (
	ErrMissingField       = errors.New("voter id and name are required")
	ErrUnderage           = errors.New("voter must be at least 18 years old")
	ErrInvalidAge         = errors.New("age is out of range")
	ErrDuplicateVoter     = errors.New("voter id already exists")
	ErrUnknownVoter       = errors.New("voter id not found")
	ErrAlreadyVoted       = errors.New("voter has already cast a vote")
	ErrCredentialMismatch = errors.New("fingerprint verification failed")
	ErrUnknownCandidate   = errors.New("invalid candidate")
	ErrNotAuthorized      = errors.New("voter is not authorized to vote")
)

// Stable error kind codes
const (
	KindMissingField       = "missing_field"
	KindUnderage           = "underage"
	KindInvalidAge         = "invalid_age"
	KindDuplicateVoter     = "duplicate_voter"
	KindUnknownVoter       = "unknown_voter"
	KindAlreadyVoted       = "already_voted"
	KindCredentialMismatch = "credential_mismatch"
	KindUnknownCandidate   = "unknown_candidate"
	KindNotAuthorized      = "not_authorized"
	KindInternal           = "internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrMissingField, KindMissingField},
	{ErrUnderage, KindUnderage},
	{ErrInvalidAge, KindInvalidAge},
	{ErrDuplicateVoter, KindDuplicateVoter},
	{ErrUnknownVoter, KindUnknownVoter},
	{ErrAlreadyVoted, KindAlreadyVoted},
	{ErrCredentialMismatch, KindCredentialMismatch},
	{ErrUnknownCandidate, KindUnknownCandidate},
	{ErrNotAuthorized, KindNotAuthorized},
}

// Kind maps an error to its stable kind code. Errors outside the taxonomy
// (store faults) are KindInternal; a nil error has no kind.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
