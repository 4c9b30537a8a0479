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

type VoterHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewVoterHandler(reg *registry.Registry, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{reg: reg, cfg: cfg}
}

// Enroll handles POST /voters
func (h *VoterHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req models.EnrollVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		writeInvalidJSON(w)
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	voter, err := h.reg.Enroll(r.Context(), req.VoterID, req.Name, req.Age)
	if err != nil {
		writeRegistryError(w, err, "enroll", "voter_id", req.VoterID, "ip_hash", ipHash)
		return
	}

	slog.Info("voter enrolled", "voter_id", voter.ID, "ip_hash", ipHash)

	middleware.JSONResponse(w, http.StatusCreated, models.EnrollVoterResponse{
		VoterID:    voter.ID,
		Credential: voter.Credential,
		EnrolledAt: voter.EnrolledAt,
	})
}

// List handles GET /voters
func (h *VoterHandler) List(w http.ResponseWriter, r *http.Request) {
	voters, err := h.reg.ListVoters(r.Context())
	if err != nil {
		writeRegistryError(w, err, "list voters")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// Scan handles POST /voters/{id}/scan. It stands in for the fingerprint
// reader and returns the credential a successful scan would produce.
func (h *VoterHandler) Scan(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, registry.KindMissingField, "voter id is required")
		return
	}

	credential, err := h.reg.Scan(r.Context(), voterID)
	if err != nil {
		writeRegistryError(w, err, "scan", "voter_id", voterID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ScanResponse{
		VoterID:    voterID,
		Credential: credential,
	})
}

// Verify handles POST /voters/{id}/verify
func (h *VoterHandler) Verify(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, registry.KindMissingField, "voter id is required")
		return
	}

	var req models.VerifyVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		writeInvalidJSON(w)
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	grant, err := h.reg.Verify(r.Context(), voterID, req.Credential)
	if err != nil {
		writeRegistryError(w, err, "verify", "voter_id", voterID, "ip_hash", ipHash)
		return
	}

	slog.Info("voter verified", "voter_id", grant.VoterID, "expires_at", grant.ExpiresAt, "ip_hash", ipHash)

	middleware.JSONResponse(w, http.StatusOK, models.VerifyVoterResponse{
		VoterID:       grant.VoterID,
		Authorization: grant.Token,
		ExpiresAt:     grant.ExpiresAt,
		Message:       "Fingerprint verified. You may now vote.",
	})
}
