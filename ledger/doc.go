// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the voting state machine.

A Ledger holds the voter registry, the proposal sequence and the workflow
status. The owner address given to New whitelists voters and moves the
workflow forward one step at a time:

	RegisteringVoters → ProposalsRegistrationStarted → ProposalsRegistrationEnded
	  → VotingSessionStarted → VotingSessionEnded → TallyDone

Every mutator takes the caller address first and returns the events it
emitted:

	l := ledger.New(owner)
	events, err := l.AddVoter(owner, alice)

A failed call returns one of the package's sentinel errors (match with
errors.Is) and leaves the ledger untouched.

# Observing Events

An Observer passed with WithObserver sees the events of each successful
call before the call returns, while the ledger lock is still held. Events
therefore reach it in seq order. WithSeqStart continues numbering from an
earlier run:

	l := ledger.New(owner,
		ledger.WithSeqStart(last),
		ledger.WithObserver(record),
	)

# Proposals

StartProposalsRegistering seeds a reserved GENESIS proposal at id 0, so user
proposals are numbered from 1. GENESIS can be read but not voted for.

# Reads

GetVoter and GetOneProposal are restricted to whitelisted voters, the same
as proposal submission and voting. Status, Owner, ProposalCount and
WinningProposalID are public.

# Tally

TallyVotes picks the proposal with the highest vote count. Ties go to the
lowest proposal id.
*/
package ledger
