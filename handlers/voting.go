// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/printvote/auth"
	"github.com/danielhkuo/printvote/cliparse"
	"github.com/danielhkuo/printvote/middleware"
	"github.com/danielhkuo/printvote/models"
	"github.com/danielhkuo/printvote/registry"
)

// Headers identifying a verified voter on POST /votes
const (
	VoterIDHeader       = "X-Voter-ID"
	AuthorizationHeader = "X-Authorization"
)

type VotingHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewVotingHandler(reg *registry.Registry, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{reg: reg, cfg: cfg}
}

// CastVote handles POST /votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voterID := r.Header.Get(VoterIDHeader)
	if voterID == "" {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, registry.KindMissingField, VoterIDHeader+" header is required")
		return
	}

	// A missing token is rejected by the registry after the already-voted
	// check, so repeat voters always see 409
	token := r.Header.Get(AuthorizationHeader)

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		writeInvalidJSON(w)
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	receipt, err := h.reg.CastVote(r.Context(), voterID, token, req.CandidateID)
	if err != nil {
		writeRegistryError(w, err, "cast vote",
			"voter_id", voterID,
			"candidate_id", req.CandidateID,
			"ip_hash", ipHash,
		)
		return
	}

	slog.Info("vote cast",
		"vote_id", receipt.VoteID,
		"voter_id", receipt.VoterID,
		"candidate_id", receipt.CandidateID,
		"ip_hash", ipHash,
	)

	middleware.JSONResponse(w, http.StatusCreated, receipt)
}
