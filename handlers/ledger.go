// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

// Journal receives the events of every successful ledger call
type Journal interface {
	Record(ctx context.Context, events []models.Event) error
	List(ctx context.Context, after uint64, limit int) ([]models.JournalEntry, error)
}

// JournalObserver returns a ledger observer that records events in journal.
// It runs under the ledger lock, so the journal is written in seq order and
// independently of any request context. The ledger call has already taken
// effect, so a journal failure is logged and not reported to the client.
func JournalObserver(journal Journal) ledger.Observer {
	return func(events []models.Event) {
		if err := journal.Record(context.Background(), events); err != nil {
			slog.Error("failed to journal events", "error", err, "seq", events[0].Seq, "count", len(events))
		}
	}
}

type LedgerHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewLedgerHandler(l *ledger.Ledger, cfg cliparse.Config) *LedgerHandler {
	return &LedgerHandler{ledger: l, cfg: cfg}
}

// caller identifies the requesting address, writing a 401 on failure
func (h *LedgerHandler) caller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	addr, err := auth.CallerFromRequest(r, h.cfg.CallerKeySalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return common.Address{}, false
	}
	return addr, true
}

// AddVoter handles POST /voters
func (h *LedgerHandler) AddVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.AddVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	addr, err := auth.ParseAddress(req.Address)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address must be a 20-byte hex address")
		return
	}

	events, err := h.ledger.AddVoter(caller, addr)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	slog.Info("voter registered", "voter", addr.Hex())

	middleware.JSONResponse(w, http.StatusCreated, models.AddVoterResponse{
		Address:   addr,
		CallerKey: auth.GenerateCallerKey(addr, h.cfg.CallerKeySalt),
		Events:    events,
	})
}

// GetVoter handles GET /voters/{address}
func (h *LedgerHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	addr, err := auth.ParseAddress(r.PathValue("address"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address must be a 20-byte hex address")
		return
	}

	voter, err := h.ledger.GetVoter(caller, addr)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterResponse{
		Address: addr,
		Voter:   voter,
	})
}

// AddProposal handles POST /proposals
func (h *LedgerHandler) AddProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.AddProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	events, err := h.ledger.AddProposal(caller, req.Description)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	proposalID := *events[0].ProposalID
	slog.Info("proposal registered", "proposal_id", proposalID, "voter", caller.Hex())

	middleware.JSONResponse(w, http.StatusCreated, models.AddProposalResponse{
		ProposalID: proposalID,
		Events:     events,
	})
}

// GetProposal handles GET /proposals/{id}
func (h *LedgerHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id must be a non-negative integer")
		return
	}

	proposal, err := h.ledger.GetOneProposal(caller, id)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalResponse{
		ProposalID: id,
		Proposal:   proposal,
	})
}

// SetVote handles POST /votes
func (h *LedgerHandler) SetVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.SetVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	events, err := h.ledger.SetVote(caller, *req.ProposalID)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	slog.Info("vote cast", "voter", caller.Hex(), "proposal_id", *req.ProposalID)

	middleware.JSONResponse(w, http.StatusCreated, models.EventsResponse{Events: events})
}

// StartProposalsRegistering handles POST /workflow/proposals/start
func (h *LedgerHandler) StartProposalsRegistering(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ledger.StartProposalsRegistering)
}

// EndProposalsRegistering handles POST /workflow/proposals/end
func (h *LedgerHandler) EndProposalsRegistering(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ledger.EndProposalsRegistering)
}

// StartVotingSession handles POST /workflow/voting/start
func (h *LedgerHandler) StartVotingSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ledger.StartVotingSession)
}

// EndVotingSession handles POST /workflow/voting/end
func (h *LedgerHandler) EndVotingSession(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ledger.EndVotingSession)
}

// TallyVotes handles POST /workflow/tally
func (h *LedgerHandler) TallyVotes(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.ledger.TallyVotes)
}

func (h *LedgerHandler) transition(w http.ResponseWriter, r *http.Request, step func(common.Address) ([]models.Event, error)) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	events, err := step(caller)
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	slog.Info("workflow status changed",
		"previous_status", events[0].PreviousStatus.String(),
		"status", events[0].NewStatus.String(),
	)

	middleware.JSONResponse(w, http.StatusOK, models.EventsResponse{Events: events})
}

// GetStatus handles GET /workflow
func (h *LedgerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := h.ledger.Status()
	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:        status,
		StatusCode:    uint8(status),
		Owner:         h.ledger.Owner(),
		ProposalCount: h.ledger.ProposalCount(),
	})
}

// GetWinner handles GET /winner
// Returns 409 until votes are tallied
func (h *LedgerHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	id, proposal, err := h.ledger.WinningProposalID()
	if err != nil {
		middleware.LedgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		WinningProposalID: id,
		Proposal:          proposal,
	})
}
