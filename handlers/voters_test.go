// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/printvote/models"
	"github.com/danielhkuo/printvote/registry"
	"github.com/danielhkuo/printvote/testutil"
)

func TestEnroll(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	handler := NewVoterHandler(reg, testutil.GetTestConfig())

	testutil.EnrollTestVoter(t, reg, "TAKEN", "Existing Voter", 40)

	tests := []struct {
		name           string
		body           any
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "valid enrollment",
			body:           models.EnrollVoterRequest{VoterID: "V001", Name: "Alice", Age: 30},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "exactly eighteen",
			body:           models.EnrollVoterRequest{VoterID: "V002", Name: "Bob", Age: 18},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing voter id",
			body:           models.EnrollVoterRequest{Name: "Carol", Age: 30},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   registry.KindMissingField,
		},
		{
			name:           "blank name",
			body:           models.EnrollVoterRequest{VoterID: "V003", Name: "   ", Age: 30},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   registry.KindMissingField,
		},
		{
			name:           "underage",
			body:           models.EnrollVoterRequest{VoterID: "V004", Name: "Dan", Age: 17},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   registry.KindUnderage,
		},
		{
			name:           "implausible age",
			body:           models.EnrollVoterRequest{VoterID: "V005", Name: "Eve", Age: 500},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   registry.KindInvalidAge,
		},
		{
			name:           "duplicate voter id",
			body:           models.EnrollVoterRequest{VoterID: "TAKEN", Name: "Mallory", Age: 30},
			expectedStatus: http.StatusConflict,
			expectedCode:   registry.KindDuplicateVoter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/voters", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Enroll(w, req)

			if tt.expectedStatus != http.StatusCreated {
				testutil.AssertErrorCode(t, w, tt.expectedStatus, tt.expectedCode)
				return
			}

			testutil.AssertStatus(t, w, http.StatusCreated)

			var resp models.EnrollVoterResponse
			testutil.AssertJSON(t, w, &resp)

			want := tt.body.(models.EnrollVoterRequest)
			if resp.VoterID != want.VoterID {
				t.Errorf("Expected voter_id %s, got %s", want.VoterID, resp.VoterID)
			}
			if len(resp.Credential) != 64 {
				t.Errorf("Expected 64-char credential, got %q", resp.Credential)
			}
			if resp.EnrolledAt.IsZero() {
				t.Error("Expected enrolled_at to be set")
			}
		})
	}
}

func TestEnrollInvalidJSON(t *testing.T) {
	handler := NewVoterHandler(testutil.NewTestRegistry(t), testutil.GetTestConfig())

	for _, body := range []string{"", "{not json", `{"voter_id":"V1","age":"old"}`} {
		req := httptest.NewRequest("POST", "/voters", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Enroll(w, req)

		testutil.AssertErrorCode(t, w, http.StatusBadRequest, KindInvalidJSON)
	}
}

func TestListVoters(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	handler := NewVoterHandler(reg, testutil.GetTestConfig())

	t.Run("empty registry", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest("GET", "/voters", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("Expected empty JSON array, got %s", body)
		}
	})

	t.Run("voting status is reported", func(t *testing.T) {
		testutil.CastTestVote(t, reg, "V001", 1)
		testutil.EnrollTestVoter(t, reg, "V002", "Bob", 45)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest("GET", "/voters", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		if strings.Contains(w.Body.String(), "credential") {
			t.Error("Voter listing must not expose credentials")
		}

		var voters []models.VoterSummary
		testutil.AssertJSON(t, w, &voters)

		if len(voters) != 2 {
			t.Fatalf("Expected 2 voters, got %d", len(voters))
		}
		byID := map[string]models.VoterSummary{}
		for _, v := range voters {
			byID[v.ID] = v
		}
		if !byID["V001"].HasVoted {
			t.Error("Expected V001 to have voted")
		}
		if byID["V002"].HasVoted {
			t.Error("Expected V002 not to have voted")
		}
		if byID["V002"].Enrolled == "" {
			t.Error("Expected humanized enrollment time")
		}
	})
}

func TestScan(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	handler := NewVoterHandler(reg, testutil.GetTestConfig())
	voter := testutil.EnrollTestVoter(t, reg, "V001", "Alice", 30)

	t.Run("known voter", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/voters/V001/scan", nil)
		req.SetPathValue("id", "V001")
		w := httptest.NewRecorder()

		handler.Scan(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ScanResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Credential != voter.Credential {
			t.Error("Expected scan to return the enrolled credential")
		}
	})

	t.Run("unknown voter", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/voters/NOPE/scan", nil)
		req.SetPathValue("id", "NOPE")
		w := httptest.NewRecorder()

		handler.Scan(w, req)

		testutil.AssertErrorCode(t, w, http.StatusNotFound, registry.KindUnknownVoter)
	})

	t.Run("missing id", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/voters//scan", nil)
		w := httptest.NewRecorder()

		handler.Scan(w, req)

		testutil.AssertErrorCode(t, w, http.StatusBadRequest, registry.KindMissingField)
	})
}

func TestVerify(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoterHandler(reg, cfg)

	alice := testutil.EnrollTestVoter(t, reg, "V001", "Alice", 30)
	testutil.CastTestVote(t, reg, "V002", 2)

	tests := []struct {
		name           string
		voterID        string
		credential     string
		expectedStatus int
		expectedCode   string
	}{
		{"wrong credential", "V001", strings.Repeat("0", 64), http.StatusUnauthorized, registry.KindCredentialMismatch},
		{"empty credential", "V001", "", http.StatusUnauthorized, registry.KindCredentialMismatch},
		{"unknown voter", "NOPE", alice.Credential, http.StatusNotFound, registry.KindUnknownVoter},
		{"already voted", "V002", "irrelevant", http.StatusConflict, registry.KindAlreadyVoted},
		// Last: a successful verify is followed by a vote
		{"matching credential", "V001", alice.Credential, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/voters/"+tt.voterID+"/verify",
				models.VerifyVoterRequest{Credential: tt.credential}, nil)
			req.SetPathValue("id", tt.voterID)
			w := httptest.NewRecorder()

			handler.Verify(w, req)

			if tt.expectedStatus != http.StatusOK {
				testutil.AssertErrorCode(t, w, tt.expectedStatus, tt.expectedCode)
				return
			}

			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.VerifyVoterResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Authorization == "" {
				t.Error("Expected an authorization token")
			}
			if resp.VoterID != tt.voterID {
				t.Errorf("Expected voter_id %s, got %s", tt.voterID, resp.VoterID)
			}
			if !resp.ExpiresAt.After(alice.EnrolledAt) {
				t.Error("Expected expires_at after enrollment")
			}

			// The token must be usable for exactly this voter
			if _, err := reg.CastVote(context.Background(), "V001", resp.Authorization, 1); err != nil {
				t.Errorf("Expected issued authorization to be accepted: %v", err)
			}
		})
	}
}
