// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/printvote/cliparse"
	"github.com/danielhkuo/printvote/handlers"
	"github.com/danielhkuo/printvote/middleware"
	"github.com/danielhkuo/printvote/registry"
)

// Banner is served at GET /
const Banner = "printvote API v1"

func NewRouter(reg *registry.Registry, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(reg, cfg)
	votingHandler := handlers.NewVotingHandler(reg, cfg)
	resultsHandler := handlers.NewResultsHandler(reg, cfg)
	adminHandler := handlers.NewAdminHandler(reg, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Enrollment and verification
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.Enroll))
	mux.HandleFunc("GET /voters", middleware.WithLogging(voterHandler.List))
	mux.HandleFunc("POST /voters/{id}/scan", middleware.WithLogging(voterHandler.Scan))
	mux.HandleFunc("POST /voters/{id}/verify", middleware.WithLogging(voterHandler.Verify))

	// Voting (requires X-Voter-ID and X-Authorization)
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))

	// Live results
	mux.HandleFunc("GET /candidates", middleware.WithLogging(resultsHandler.ListCandidates))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /stats", middleware.WithLogging(resultsHandler.GetStats))

	// Administration (requires X-Admin-Key)
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.Reset))

	// Root endpoint (exact match only)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	return mux
}
