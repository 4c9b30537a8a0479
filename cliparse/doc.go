// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - StoreType: Registry backend, "memory" or "sqlite" (default: memory)
  - AdminKey: Key required by POST /admin/reset (required)
  - IPHashSalt: Salt for client IP hashes in logs (random per process if unset)
  - CandidatesFile: YAML candidate list (built-in list if unset)
  - AuthTTL: Lifetime of an authorization issued by verify (default: 5m)
  - EnvFile: Env file loaded before the fallbacks are read

# CLI Flags

	-p            Server port
	-s            Store type
	-admin-key    Admin key
	-ip-salt      IP hash salt
	-candidates   Candidates YAML file
	-auth-ttl     Authorization lifetime (Go duration)
	-env-file     Env file (default .env, ignored when missing)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	STORE_TYPE      → -s
	ADMIN_KEY       → -admin-key
	IP_HASH_SALT    → -ip-salt
	CANDIDATES_FILE → -candidates
	AUTH_TTL        → -auth-ttl

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over the env file.

# Validation

ParseFlags returns an error if:

  - ADMIN_KEY is not provided
  - the store type is not memory or sqlite
  - PORT or AUTH_TTL cannot be parsed, or the TTL is not positive
  - an explicit -env-file cannot be read

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	reg := registry.New(store, registry.WithAuthorizationTTL(cfg.AuthTTL))
	mux := router.NewRouter(reg, cfg)
*/
package cliparse
