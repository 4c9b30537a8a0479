// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidAdminKey   = errors.New("invalid admin key")
	ErrInvalidCredential = errors.New("credential mismatch")
)

// credentialNonceLen is the number of random bytes mixed into each credential
const credentialNonceLen = 16

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateCredential derives the simulated fingerprint for a voter.
// The digest covers the voter ID, name, enrollment time and a random nonce,
// so two enrollments never share a credential even with identical inputs.
func GenerateCredential(voterID, name string, at time.Time) (string, error) {
	nonce := make([]byte, credentialNonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate credential nonce: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(voterID))
	h.Write([]byte(name))
	h.Write([]byte(at.UTC().Format(time.RFC3339Nano)))
	h.Write(nonce)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ValidateCredential compares a presented credential with the stored one
// in constant time
func ValidateCredential(presented, stored string) error {
	if presented == "" || !hmac.Equal([]byte(presented), []byte(stored)) {
		return ErrInvalidCredential
	}
	return nil
}

// GenerateAuthorizationToken creates a random secure token that lets a
// verified voter cast exactly one vote
func GenerateAuthorizationToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate authorization token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateAdminKey checks the presented admin key against the configured one
func ValidateAdminKey(presented, expected string) error {
	if presented == "" || expected == "" {
		return ErrInvalidAdminKey
	}
	// Compare digests so the comparison time does not depend on key length
	a := sha256.Sum256([]byte(presented))
	b := sha256.Sum256([]byte(expected))
	if !hmac.Equal(a[:], b[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
