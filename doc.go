// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the printvote API server.

printvote is a demo voting registry: voters enroll with a simulated
fingerprint credential, verify it to obtain a one-shot authorization, and
cast exactly one vote for a fixed candidate. Results are live.

# Starting the Server

The admin key is the only required setting:

	ADMIN_KEY=secret go run .

Or with flags:

	go run . -p 3318 -s sqlite -admin-key secret -candidates ballot.yaml

# Configuration

Required settings:

  - ADMIN_KEY (-admin-key): Key for POST /admin/reset

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORE_TYPE (-s): memory (default) or sqlite, both volatile
  - CANDIDATES_FILE (-candidates): YAML candidate list
  - AUTH_TTL (-auth-ttl): Authorization lifetime (default: 5m)
  - IP_HASH_SALT (-ip-salt): Salt for client IP hashes in logs
  - -env-file: Env file to load first (default .env when present)

# Architecture

  - registry: Voter registry, the single source of truth (one mutex)
  - db: In-memory SQLite implementation of registry.Store
  - seed: Built-in and YAML candidate lists
  - handlers: HTTP request handlers (voters, voting, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Credential and token generation, admin key check
  - cliparse: Configuration parsing
  - client, cli, cmd/printvotectl: Command-line client

See package documentation for each component.
*/
package main
