// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// WorkflowStatus is the single phase gating which ledger operations are legal.
type WorkflowStatus uint8

const (
	RegisteringVoters WorkflowStatus = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	TallyDone
)

var statusNames = [...]string{
	RegisteringVoters:            "RegisteringVoters",
	ProposalsRegistrationStarted: "ProposalsRegistrationStarted",
	ProposalsRegistrationEnded:   "ProposalsRegistrationEnded",
	VotingSessionStarted:         "VotingSessionStarted",
	VotingSessionEnded:           "VotingSessionEnded",
	TallyDone:                    "TallyDone",
}

func (s WorkflowStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("WorkflowStatus(%d)", uint8(s))
}

func (s WorkflowStatus) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("unknown workflow status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *WorkflowStatus) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = WorkflowStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown workflow status %q", text)
}

// GenesisDescription labels the reserved proposal at id 0
const GenesisDescription = "GENESIS"

// Event kinds
const (
	EventVoterRegistered      = "VoterRegistered"
	EventWorkflowStatusChange = "WorkflowStatusChange"
	EventProposalRegistered   = "ProposalRegistered"
	EventVoted                = "Voted"
)

// Domain types

type Voter struct {
	IsRegistered    bool   `json:"is_registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID uint64 `json:"voted_proposal_id"`
}

type Proposal struct {
	Description string `json:"description"`
	VoteCount   uint64 `json:"vote_count"`
}

// Event is a notification emitted by a successful ledger operation.
// Only the fields relevant to Kind are set.
type Event struct {
	Seq            uint64          `json:"seq"`
	Kind           string          `json:"kind"`
	Voter          *common.Address `json:"voter,omitempty"`
	ProposalID     *uint64         `json:"proposal_id,omitempty"`
	PreviousStatus *WorkflowStatus `json:"previous_status,omitempty"`
	NewStatus      *WorkflowStatus `json:"new_status,omitempty"`
}

// JournalEntry is an event as stored by the journal
type JournalEntry struct {
	ID         string    `json:"id"`
	Event      Event     `json:"event"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Request types

type AddVoterRequest struct {
	Address string `json:"address"`
}

type AddProposalRequest struct {
	Description string `json:"description"`
}

type SetVoteRequest struct {
	ProposalID *uint64 `json:"proposal_id"`
}

// Response types

type AddVoterResponse struct {
	Address   common.Address `json:"address"`
	CallerKey string         `json:"caller_key"`
	Events    []Event        `json:"events"`
}

type AddProposalResponse struct {
	ProposalID uint64  `json:"proposal_id"`
	Events     []Event `json:"events"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type VoterResponse struct {
	Address common.Address `json:"address"`
	Voter
}

type ProposalResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	Proposal
}

type StatusResponse struct {
	Status        WorkflowStatus `json:"status"`
	StatusCode    uint8          `json:"status_code"`
	Owner         common.Address `json:"owner"`
	ProposalCount int            `json:"proposal_count"`
}

type WinnerResponse struct {
	WinningProposalID uint64   `json:"winning_proposal_id"`
	Proposal          Proposal `json:"proposal"`
}

type JournalResponse struct {
	Entries []JournalEntry `json:"entries"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
