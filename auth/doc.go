// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth identifies callers of the ledger API.

# Caller Identity

Every request that acts as an address carries two headers:

	X-Caller-Address: 0x5B38Da6a701c568545dCfcB03FcB875f56beddC4
	X-Caller-Key:     <caller key>

CallerFromRequest parses the address and checks the key.

# Caller Keys

Caller keys use HMAC-SHA256 over the lowercase hex address:

	key := auth.GenerateCallerKey(addr, salt)
	err := auth.ValidateCallerKey(addr, key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same address and salt always produce the same key, so nothing is stored.
Voters receive their key when the owner whitelists them; the owner's key is
printed by the -owner-key flag.

# Event IDs

Journal entries get random UUIDs:

	id := auth.NewEventID()
*/
package auth
