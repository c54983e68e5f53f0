// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: journal database (default: quickly-vote.db for sqlite)
  - DatabaseType: sqlite (default) or postgres
  - OwnerAddress: the ledger owner (required)
  - CallerKeySalt: Secret for caller key HMAC (required)
  - PrintOwnerKey: print the owner's caller key and exit

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-owner      Owner address
	-key-salt   Caller key salt
	-owner-key  Print owner key

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	OWNER_ADDRESS   → -owner
	CALLER_KEY_SALT → -key-salt

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file first, without overriding variables that are already set:

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}

# Validation

ParseFlags returns an error if:

  - the owner address is missing or not a 20-byte hex address
  - CALLER_KEY_SALT is missing
  - DATABASE_TYPE is postgres and no DATABASE_URL is given
*/
package cliparse
