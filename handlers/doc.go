// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

  - LedgerHandler: ledger operations (voters, workflow, proposals, votes)
  - EventHandler: event journal listing

Handlers are created via constructor functions:

	ledgerHandler := handlers.NewLedgerHandler(l, cfg)
	eventHandler := handlers.NewEventHandler(journal)

# Callers

Operations that act as an address require the X-Caller-Address and
X-Caller-Key headers (see package auth). Missing or invalid headers get 401;
the ledger then decides whether that address may perform the call.

# Workflow

Owner-only calls, each one step forward:

	POST /voters                      → AddVoter (returns the voter's caller_key)
	POST /workflow/proposals/start    → StartProposalsRegistering
	POST /workflow/proposals/end      → EndProposalsRegistering
	POST /workflow/voting/start       → StartVotingSession
	POST /workflow/voting/end         → EndVotingSession
	POST /workflow/tally              → TallyVotes

Voter-only calls:

	POST /proposals        → AddProposal
	POST /votes            → SetVote
	GET  /voters/{address} → GetVoter
	GET  /proposals/{id}   → GetProposal

Public:

	GET /workflow → GetStatus
	GET /winner   → GetWinner (after tally)
	GET /events   → ListEvents

# Journal

JournalObserver adapts a Journal into a ledger observer. The ledger calls it
under its lock, so events are recorded in seq order and a reader paging
with ?after= never skips one. A journal failure is logged; the ledger call
has already taken effect and the client still gets its success response.

	l := ledger.New(owner,
		ledger.WithSeqStart(last),
		ledger.WithObserver(handlers.JournalObserver(journal)),
	)
*/
package handlers
