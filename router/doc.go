// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(l, journal, cfg)

# Endpoints

Health:

	GET /health

Workflow (owner, status is public):

	GET  /workflow
	POST /workflow/proposals/start
	POST /workflow/proposals/end
	POST /workflow/voting/start
	POST /workflow/voting/end
	POST /workflow/tally

Voters:

	POST /voters            - Whitelist (owner)
	GET  /voters/{address}  - Read a voter record (voters)

Proposals and votes (voters):

	POST /proposals
	GET  /proposals/{id}
	POST /votes

Public:

	GET /winner
	GET /events?after=&limit=
*/
package router
