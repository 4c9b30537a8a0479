// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/printvote/cliparse"
	"github.com/danielhkuo/printvote/middleware"
	"github.com/danielhkuo/printvote/registry"
)

type ResultsHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewResultsHandler(reg *registry.Registry, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{reg: reg, cfg: cfg}
}

// GetResults handles GET /results
// Results are live; the winner is omitted until the first vote is cast.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	tally, err := h.reg.Tally(r.Context())
	if err != nil {
		writeRegistryError(w, err, "tally")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally)
}

// ListCandidates handles GET /candidates
func (h *ResultsHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.reg.Candidates(r.Context())
	if err != nil {
		writeRegistryError(w, err, "list candidates")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// GetStats handles GET /stats
func (h *ResultsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reg.Stats(r.Context())
	if err != nil {
		writeRegistryError(w, err, "stats")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
