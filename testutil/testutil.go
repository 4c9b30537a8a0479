// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/printvote/cliparse"
	"github.com/danielhkuo/printvote/db"
	"github.com/danielhkuo/printvote/models"
	"github.com/danielhkuo/printvote/registry"
	"github.com/danielhkuo/printvote/seed"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// GetTestConfig returns a config suitable for handler tests
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:       cliparse.DefaultPort,
		StoreType:  cliparse.StoreMemory,
		AdminKey:   TestAdminKey,
		IPHashSalt: "test-ip-salt",
		AuthTTL:    cliparse.DefaultAuthTTL,
	}
}

// NewTestRegistry returns a registry on a fresh memory store seeded with
// the default candidates
func NewTestRegistry(t *testing.T, opts ...registry.Option) *registry.Registry {
	t.Helper()
	return NewTestRegistryWithStore(t, cliparse.StoreMemory, opts...)
}

// NewTestRegistryWithStore is NewTestRegistry for a given store type
// (cliparse.StoreMemory or cliparse.StoreSQLite)
func NewTestRegistryWithStore(t *testing.T, storeType string, opts ...registry.Option) *registry.Registry {
	t.Helper()

	var store registry.Store
	switch storeType {
	case cliparse.StoreMemory:
		s, err := registry.NewMemoryStore(seed.DefaultCandidates())
		if err != nil {
			t.Fatalf("Failed to create memory store: %v", err)
		}
		store = s
	case cliparse.StoreSQLite:
		conn, err := db.Open()
		if err != nil {
			t.Fatalf("Failed to open test database: %v", err)
		}
		t.Cleanup(func() { conn.Close() })

		s, err := db.NewStore(context.Background(), conn, seed.DefaultCandidates())
		if err != nil {
			t.Fatalf("Failed to create sql store: %v", err)
		}
		store = s
	default:
		t.Fatalf("Unknown store type %q", storeType)
	}

	return registry.New(store, opts...)
}

// EnrollTestVoter enrolls a voter directly through the registry
func EnrollTestVoter(t *testing.T, reg *registry.Registry, voterID, name string, age int) models.Voter {
	t.Helper()

	voter, err := reg.Enroll(context.Background(), voterID, name, age)
	if err != nil {
		t.Fatalf("Failed to enroll voter %s: %v", voterID, err)
	}
	return voter
}

// AuthorizeTestVoter enrolls a voter and verifies them, returning the
// authorization needed to cast a vote
func AuthorizeTestVoter(t *testing.T, reg *registry.Registry, voterID string) models.Authorization {
	t.Helper()

	voter := EnrollTestVoter(t, reg, voterID, "Voter "+voterID, 30)
	grant, err := reg.Verify(context.Background(), voterID, voter.Credential)
	if err != nil {
		t.Fatalf("Failed to verify voter %s: %v", voterID, err)
	}
	return grant
}

// CastTestVote runs the full enroll, verify and cast flow for one voter
func CastTestVote(t *testing.T, reg *registry.Registry, voterID string, candidateID int) models.VoteReceipt {
	t.Helper()

	grant := AuthorizeTestVoter(t, reg, voterID)
	receipt, err := reg.CastVote(context.Background(), voterID, grant.Token, candidateID)
	if err != nil {
		t.Fatalf("Failed to cast vote for %s: %v", voterID, err)
	}
	return receipt
}

// FixedClock returns a clock option that always reports at
func FixedClock(at time.Time) registry.Option {
	return registry.WithClock(func() time.Time { return at })
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorCode checks the status and the error kind code of an error
// response
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v (body %q)", err, w.Body.String())
	}
	if resp.Code != code {
		t.Errorf("Expected error code %q, got %q (message %q)", code, resp.Code, resp.Message)
	}
}
