// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/quickly-vote/models"
)

// StartProposalsRegistering opens proposal registration and seeds GENESIS at id 0.
func (l *Ledger) StartProposalsRegistering(caller common.Address) ([]models.Event, error) {
	return l.transition(caller, "start proposals registering",
		models.RegisteringVoters, models.ProposalsRegistrationStarted, func() {
			l.proposals = append(l.proposals, models.Proposal{Description: models.GenesisDescription})
		})
}

func (l *Ledger) EndProposalsRegistering(caller common.Address) ([]models.Event, error) {
	return l.transition(caller, "end proposals registering",
		models.ProposalsRegistrationStarted, models.ProposalsRegistrationEnded, nil)
}

func (l *Ledger) StartVotingSession(caller common.Address) ([]models.Event, error) {
	return l.transition(caller, "start voting session",
		models.ProposalsRegistrationEnded, models.VotingSessionStarted, nil)
}

func (l *Ledger) EndVotingSession(caller common.Address) ([]models.Event, error) {
	return l.transition(caller, "end voting session",
		models.VotingSessionStarted, models.VotingSessionEnded, nil)
}

// TallyVotes records the winning proposal and closes the workflow.
// The winner is the user proposal with the highest vote count; on a tie the
// lowest id wins. With no user proposals the winner is GENESIS (0).
func (l *Ledger) TallyVotes(caller common.Address) ([]models.Event, error) {
	return l.transition(caller, "tally votes",
		models.VotingSessionEnded, models.TallyDone, func() {
			l.winner = winningProposal(l.proposals)
		})
}

// transition applies one owner-only phase step. apply runs after every
// guard has passed, so a rejected call changes nothing.
func (l *Ledger) transition(caller common.Address, action string, from, to models.WorkflowStatus, apply func()) ([]models.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.onlyOwner(caller); err != nil {
		return nil, err
	}
	if l.status != from {
		return nil, fmt.Errorf("%w: cannot %s while %s", ErrInvalidPhaseTransition, action, l.status)
	}

	if apply != nil {
		apply()
	}
	l.status = to

	prev, next := from, to
	return l.emit(models.Event{
		Kind:           models.EventWorkflowStatusChange,
		PreviousStatus: &prev,
		NewStatus:      &next,
	}), nil
}

func winningProposal(proposals []models.Proposal) uint64 {
	var winner uint64
	var best uint64
	for id := 1; id < len(proposals); id++ {
		// strictly greater keeps the lowest id among ties
		if winner == 0 || proposals[id].VoteCount > best {
			winner = uint64(id)
			best = proposals[id].VoteCount
		}
	}
	return winner
}
