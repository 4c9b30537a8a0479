// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and token generation utilities.

# Simulated Credentials

There is no fingerprint reader. A voter's "fingerprint" is a SHA-256 digest
of the voter ID, name, enrollment time and a random nonce:

	cred, err := auth.GenerateCredential(voterID, name, time.Now())
	err = auth.ValidateCredential(presented, cred)

Validation is plain equality (constant time). It is not biometric matching.

# Authorization Tokens

A successful verification yields a random 24-byte token that authorizes
exactly one vote:

	token, err := auth.GenerateAuthorizationToken()

Tokens are URL-safe base64 without padding.

# Admin Key

Registry reset requires the configured admin key:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

# IP Hashing

Client addresses are only logged as salted digests:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
