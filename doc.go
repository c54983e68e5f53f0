// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote runs a single voting ledger: an owner whitelists voters, opens
proposal registration, opens voting, and tallies. Voters submit proposals
and cast one vote each.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	OWNER_ADDRESS=0x... CALLER_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -owner 0x... -key-salt ...

Variables can also live in a .env file in the working directory.

Print the owner's caller key:

	go run . -owner 0x... -key-salt ... -owner-key

# Configuration

Required settings:

  - OWNER_ADDRESS (-owner): the ledger owner
  - CALLER_KEY_SALT (-key-salt): Secret for caller key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): journal database (default: quickly-vote.db)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ledger: the voting state machine
  - handlers: HTTP request handlers (ledger operations, event journal)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, ledger error mapping
  - models: Domain, request and response types
  - auth: Caller identification
  - db: Event journal storage
  - cliparse: Configuration parsing

The ledger is held in memory; the database only journals emitted events.

See package documentation for each component.
*/
package main
