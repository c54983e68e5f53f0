// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the API.

# Domain Types

  - WorkflowStatus: ledger phase, JSON encoded by name
  - Voter: is_registered, has_voted, voted_proposal_id
  - Proposal: description, vote_count
  - Event: a ledger notification, only the fields of its Kind are set
  - JournalEntry: an Event as stored by the journal

# Event Kinds

	VoterRegistered      voter
	WorkflowStatusChange previous_status, new_status
	ProposalRegistered   proposal_id
	Voted                voter, proposal_id

# Request Types

  - AddVoterRequest: address
  - AddProposalRequest: description
  - SetVoteRequest: proposal_id

# Response Types

  - AddVoterResponse: address, caller_key, events
  - AddProposalResponse: proposal_id, events
  - EventsResponse: events
  - VoterResponse, ProposalResponse, StatusResponse, WinnerResponse
  - JournalResponse: entries
  - ErrorResponse: error, message
*/
package models
