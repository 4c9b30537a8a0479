// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides a SQL-backed registry.Store on an in-memory SQLite
database (modernc.org/sqlite, no cgo).

# Opening

	conn, err := db.Open()
	store, err := db.NewStore(ctx, conn, seed.DefaultCandidates())

Open pins the pool to one connection: an in-memory database belongs to the
connection that created it. Nothing is written to disk, so the store is
exactly as volatile as registry.MemoryStore.

# Schema Creation

CreateSchema initializes all required tables and is safe to call multiple
times (IF NOT EXISTS everywhere).

# Tables

  - candidate: seeded candidates, running vote_count, position for seed order
  - voter: enrolled voters with their simulated credential
  - vote: one row per voter who has voted (voter_id is UNIQUE)

# Relationships

	voter 1──0..1 vote
	candidate 1──* vote

Timestamps are stored as Unix nanoseconds.
*/
package db
