// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the printvote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(reg, cfg)

# Endpoints

Health and banner:

	GET /health
	GET /      (exact path only)

Enrollment and verification:

	POST /voters             - Enroll voter (returns credential)
	GET  /voters             - List voters with voting status
	POST /voters/{id}/scan   - Simulated fingerprint scan
	POST /voters/{id}/verify - Verify credential (returns authorization)

Voting (requires X-Voter-ID and X-Authorization):

	POST /votes - Cast the single vote

Results (public, live):

	GET /candidates - Candidates in seed order
	GET /results    - Ranked tally with percentages
	GET /stats      - Enrollment and turnout

Administration (requires X-Admin-Key):

	POST /admin/reset - Clear voters, votes and authorizations

Every route except /health and / is wrapped in middleware.WithLogging.
*/
package router
