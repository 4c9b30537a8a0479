// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/printvote/cliparse"
	"github.com/danielhkuo/printvote/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different
// voters are all counted exactly once
func TestConcurrentVotes(t *testing.T) {
	for _, storeType := range []string{cliparse.StoreMemory, cliparse.StoreSQLite} {
		t.Run(storeType, func(t *testing.T) {
			reg := testutil.NewTestRegistryWithStore(t, storeType)
			handler := NewVotingHandler(reg, testutil.GetTestConfig())

			numVoters := 20
			tokens := make([]string, numVoters)
			for i := range numVoters {
				tokens[i] = testutil.AuthorizeTestVoter(t, reg, fmt.Sprintf("V%03d", i)).Token
			}

			var successCount atomic.Int32
			var wg sync.WaitGroup

			for i := range numVoters {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					w := httptest.NewRecorder()
					handler.CastVote(w, castVoteRequest(fmt.Sprintf("V%03d", idx), tokens[idx], idx%4+1))
					if w.Code == http.StatusCreated {
						successCount.Add(1)
					}
				}(i)
			}

			wg.Wait()

			if int(successCount.Load()) != numVoters {
				t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
			}

			tally, err := reg.Tally(t.Context())
			if err != nil {
				t.Fatal(err)
			}
			if tally.TotalVotes != numVoters {
				t.Errorf("Expected %d total votes, got %d", numVoters, tally.TotalVotes)
			}
			for _, e := range tally.Entries {
				if e.VoteCount != numVoters/4 {
					t.Errorf("Expected %d votes for candidate %d, got %d", numVoters/4, e.Candidate.ID, e.VoteCount)
				}
			}
		})
	}
}

// TestConcurrentDoubleVote fires the same authorization many times at once;
// exactly one request may succeed
func TestConcurrentDoubleVote(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	handler := NewVotingHandler(reg, testutil.GetTestConfig())
	grant := testutil.AuthorizeTestVoter(t, reg, "V001")

	attempts := 10
	codes := make([]int, attempts)
	var wg sync.WaitGroup

	for i := range attempts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest("V001", grant.Token, idx%4+1))
			codes[idx] = w.Code
		}(i)
	}

	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	if created != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", created)
	}
	if conflicts != attempts-1 {
		t.Errorf("Expected %d conflicts, got %d", attempts-1, conflicts)
	}

	voters, err := reg.ListVoters(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(voters) != 1 || voters[0].ID != "V001" || !voters[0].HasVoted {
		t.Errorf("Expected V001 to be recorded as voted once, got %+v", voters)
	}
}
