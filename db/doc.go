// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores the ledger event journal.

# Connections

Open selects the driver from the configured database type:

	conn, err := db.Open(db.TypeSQLite, "quickly-vote.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses modernc.org/sqlite (no cgo); PostgreSQL uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Journal

The journal is an observer of the ledger, not its storage. Handlers pass the
events returned by each successful ledger call to Record:

	journal := db.NewJournal(conn)
	err := journal.Record(ctx, events)

Events keep the sequence number assigned by the ledger, so List returns them
in ledger order regardless of insertion order:

	entries, err := journal.List(ctx, afterSeq, limit)
*/
package db
