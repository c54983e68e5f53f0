// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
)

// NewRouter registers all routes. l should already report its events to
// journal (see handlers.JournalObserver); the router only reads journal.
func NewRouter(l *ledger.Ledger, journal handlers.Journal, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	ledgerHandler := handlers.NewLedgerHandler(l, cfg)
	eventHandler := handlers.NewEventHandler(journal)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Workflow (owner operations, status is public)
	mux.HandleFunc("GET /workflow", middleware.WithLogging(ledgerHandler.GetStatus))
	mux.HandleFunc("POST /workflow/proposals/start", middleware.WithLogging(ledgerHandler.StartProposalsRegistering))
	mux.HandleFunc("POST /workflow/proposals/end", middleware.WithLogging(ledgerHandler.EndProposalsRegistering))
	mux.HandleFunc("POST /workflow/voting/start", middleware.WithLogging(ledgerHandler.StartVotingSession))
	mux.HandleFunc("POST /workflow/voting/end", middleware.WithLogging(ledgerHandler.EndVotingSession))
	mux.HandleFunc("POST /workflow/tally", middleware.WithLogging(ledgerHandler.TallyVotes))

	// Voter registry
	mux.HandleFunc("POST /voters", middleware.WithLogging(ledgerHandler.AddVoter))
	mux.HandleFunc("GET /voters/{address}", middleware.WithLogging(ledgerHandler.GetVoter))

	// Proposals and votes (voters only)
	mux.HandleFunc("POST /proposals", middleware.WithLogging(ledgerHandler.AddProposal))
	mux.HandleFunc("GET /proposals/{id}", middleware.WithLogging(ledgerHandler.GetProposal))
	mux.HandleFunc("POST /votes", middleware.WithLogging(ledgerHandler.SetVote))

	// Results and event journal (public)
	mux.HandleFunc("GET /winner", middleware.WithLogging(ledgerHandler.GetWinner))
	mux.HandleFunc("GET /events", middleware.WithLogging(eventHandler.ListEvents))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}
