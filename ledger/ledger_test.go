// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-vote/models"
)

var (
	owner      = common.HexToAddress("0x00000000000000000000000000000000000000a0")
	voterOne   = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	voterTwo   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	voterThree = common.HexToAddress("0x00000000000000000000000000000000000000b3")
	stranger   = common.HexToAddress("0x00000000000000000000000000000000000000c0")
)

// advance walks a fresh ledger to the requested status with the given voters
// whitelisted and proposals submitted by the first voter.
func advance(t *testing.T, to models.WorkflowStatus, voters []common.Address, proposals ...string) *Ledger {
	t.Helper()
	require := require.New(t)

	l := New(owner)
	for _, v := range voters {
		_, err := l.AddVoter(owner, v)
		require.NoError(err)
	}
	if to == models.RegisteringVoters {
		return l
	}

	_, err := l.StartProposalsRegistering(owner)
	require.NoError(err)
	for _, p := range proposals {
		_, err := l.AddProposal(voters[0], p)
		require.NoError(err)
	}

	steps := []func(common.Address) ([]models.Event, error){
		l.EndProposalsRegistering,
		l.StartVotingSession,
		l.EndVotingSession,
		l.TallyVotes,
	}
	for status := models.ProposalsRegistrationStarted; status < to; status++ {
		_, err := steps[status-models.ProposalsRegistrationStarted](owner)
		require.NoError(err)
	}
	require.Equal(to, l.Status())
	return l
}

func TestGetVoter(t *testing.T) {
	require := require.New(t)

	l := advance(t, models.RegisteringVoters, []common.Address{voterOne})

	other, err := l.GetVoter(voterOne, voterTwo)
	require.NoError(err)
	require.False(other.IsRegistered)

	self, err := l.GetVoter(voterOne, voterOne)
	require.NoError(err)
	require.True(self.IsRegistered)
	require.False(self.HasVoted)

	_, err = l.GetVoter(stranger, voterOne)
	require.ErrorIs(err, ErrNotAVoter)
}

func TestAddVoter(t *testing.T) {
	require := require.New(t)
	l := New(owner)

	events, err := l.AddVoter(owner, voterOne)
	require.NoError(err)
	require.Len(events, 1)
	require.Equal(models.EventVoterRegistered, events[0].Kind)
	require.Equal(voterOne, *events[0].Voter)
	require.Equal(uint64(1), events[0].Seq)

	// Second whitelist fails and leaves the first in place
	_, err = l.AddVoter(owner, voterOne)
	require.ErrorIs(err, ErrAlreadyRegistered)

	v, err := l.GetVoter(voterOne, voterOne)
	require.NoError(err)
	require.True(v.IsRegistered)

	_, err = l.AddVoter(voterOne, voterTwo)
	require.ErrorIs(err, ErrUnauthorized)

	_, err = l.GetVoter(voterOne, voterTwo)
	require.NoError(err)

	// Closed once proposals open
	_, err = l.StartProposalsRegistering(owner)
	require.NoError(err)
	_, err = l.AddVoter(owner, voterTwo)
	require.ErrorIs(err, ErrVoterRegistrationClosed)
}

func TestAddProposal(t *testing.T) {
	require := require.New(t)
	l := advance(t, models.ProposalsRegistrationStarted, []common.Address{voterOne})

	events, err := l.AddProposal(voterOne, "légaliser la weed")
	require.NoError(err)
	require.Len(events, 1)
	require.Equal(models.EventProposalRegistered, events[0].Kind)
	require.Equal(uint64(1), *events[0].ProposalID)

	events, err = l.AddProposal(voterOne, "second")
	require.NoError(err)
	require.Equal(uint64(2), *events[0].ProposalID)

	_, err = l.AddProposal(voterTwo, "aaaBBB")
	require.ErrorIs(err, ErrNotAVoter)

	_, err = l.AddProposal(voterOne, "")
	require.ErrorIs(err, ErrEmptyProposal)

	require.Equal(2, l.ProposalCount())

	genesis, err := l.GetOneProposal(voterOne, 0)
	require.NoError(err)
	require.Equal(models.GenesisDescription, genesis.Description)
}

func TestAddProposal_Guards(t *testing.T) {
	tests := []struct {
		name    string
		status  models.WorkflowStatus
		caller  common.Address
		desc    string
		wantErr error
	}{
		{"not open yet", models.RegisteringVoters, voterOne, "early", ErrProposalsNotOpen},
		{"closed", models.ProposalsRegistrationEnded, voterOne, "late", ErrProposalsNotOpen},
		{"empty before open", models.RegisteringVoters, voterOne, "", ErrEmptyProposal},
		{"empty during voting", models.VotingSessionStarted, voterOne, "", ErrEmptyProposal},
		{"stranger with empty", models.ProposalsRegistrationStarted, stranger, "", ErrNotAVoter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			l := advance(t, tt.status, []common.Address{voterOne})

			_, err := l.AddProposal(tt.caller, tt.desc)
			require.ErrorIs(err, tt.wantErr)
			require.Equal(0, l.ProposalCount())
			require.Equal(tt.status, l.Status())
		})
	}
}

func TestWorkflowTransitions(t *testing.T) {
	require := require.New(t)
	l := New(owner)

	events, err := l.StartProposalsRegistering(owner)
	require.NoError(err)
	require.Len(events, 1)
	require.Equal(models.EventWorkflowStatusChange, events[0].Kind)
	require.Equal(models.RegisteringVoters, *events[0].PreviousStatus)
	require.Equal(models.ProposalsRegistrationStarted, *events[0].NewStatus)

	_, err = l.StartProposalsRegistering(voterOne)
	require.ErrorIs(err, ErrUnauthorized)

	// Twice in a row
	_, err = l.StartProposalsRegistering(owner)
	require.ErrorIs(err, ErrInvalidPhaseTransition)

	// No skipping
	_, err = l.StartVotingSession(owner)
	require.ErrorIs(err, ErrInvalidPhaseTransition)
	_, err = l.TallyVotes(owner)
	require.ErrorIs(err, ErrInvalidPhaseTransition)
	require.Equal(models.ProposalsRegistrationStarted, l.Status())

	steps := []struct {
		fn   func(common.Address) ([]models.Event, error)
		want models.WorkflowStatus
	}{
		{l.EndProposalsRegistering, models.ProposalsRegistrationEnded},
		{l.StartVotingSession, models.VotingSessionStarted},
		{l.EndVotingSession, models.VotingSessionEnded},
		{l.TallyVotes, models.TallyDone},
	}
	for _, step := range steps {
		_, err := step.fn(stranger)
		require.ErrorIs(err, ErrUnauthorized)

		prev := l.Status()
		events, err := step.fn(owner)
		require.NoError(err)
		require.Equal(prev, *events[0].PreviousStatus)
		require.Equal(step.want, *events[0].NewStatus)
		require.Equal(step.want, l.Status())
	}

	// Terminal
	for _, step := range steps {
		_, err := step.fn(owner)
		require.ErrorIs(err, ErrInvalidPhaseTransition)
	}
}

func TestSetVote(t *testing.T) {
	require := require.New(t)
	l := advance(t, models.VotingSessionStarted, []common.Address{voterOne}, "légaliser la weed")

	_, err := l.SetVote(voterOne, 2)
	require.ErrorIs(err, ErrProposalNotFound)

	// GENESIS is not votable
	_, err = l.SetVote(voterOne, 0)
	require.ErrorIs(err, ErrProposalNotFound)

	v, err := l.GetVoter(voterOne, voterOne)
	require.NoError(err)
	require.False(v.HasVoted)

	events, err := l.SetVote(voterOne, 1)
	require.NoError(err)
	require.Len(events, 1)
	require.Equal(models.EventVoted, events[0].Kind)
	require.Equal(voterOne, *events[0].Voter)
	require.Equal(uint64(1), *events[0].ProposalID)

	_, err = l.SetVote(voterOne, 1)
	require.ErrorIs(err, ErrAlreadyVoted)

	p, err := l.GetOneProposal(voterOne, 1)
	require.NoError(err)
	require.Equal(uint64(1), p.VoteCount)

	v, err = l.GetVoter(voterOne, voterOne)
	require.NoError(err)
	require.True(v.HasVoted)
	require.Equal(uint64(1), v.VotedProposalID)

	_, err = l.SetVote(voterTwo, 1)
	require.ErrorIs(err, ErrNotAVoter)
}

func TestSetVote_NotOpen(t *testing.T) {
	for _, status := range []models.WorkflowStatus{
		models.ProposalsRegistrationStarted,
		models.ProposalsRegistrationEnded,
		models.VotingSessionEnded,
		models.TallyDone,
	} {
		t.Run(status.String(), func(t *testing.T) {
			require := require.New(t)
			l := advance(t, status, []common.Address{voterOne}, "only")

			_, err := l.SetVote(voterOne, 1)
			require.ErrorIs(err, ErrVotingNotOpen)

			p, err := l.GetOneProposal(voterOne, 1)
			require.NoError(err)
			require.Zero(p.VoteCount)
		})
	}
}

func TestGetOneProposal(t *testing.T) {
	require := require.New(t)
	l := advance(t, models.RegisteringVoters, []common.Address{voterOne})

	// Nothing seeded before proposals open
	_, err := l.GetOneProposal(voterOne, 0)
	require.ErrorIs(err, ErrProposalNotFound)

	_, err = l.StartProposalsRegistering(owner)
	require.NoError(err)
	_, err = l.AddProposal(voterOne, "X")
	require.NoError(err)

	p, err := l.GetOneProposal(voterOne, 1)
	require.NoError(err)
	require.Equal("X", p.Description)
	require.Zero(p.VoteCount)

	_, err = l.GetOneProposal(voterOne, 2)
	require.ErrorIs(err, ErrProposalNotFound)

	_, err = l.GetOneProposal(stranger, 1)
	require.ErrorIs(err, ErrNotAVoter)
}

func TestEndToEnd(t *testing.T) {
	require := require.New(t)
	l := New(owner)

	var seqs []uint64
	record := func(events []models.Event, err error) {
		t.Helper()
		require.NoError(err)
		for _, e := range events {
			seqs = append(seqs, e.Seq)
		}
	}

	record(l.AddVoter(owner, voterOne))
	record(l.StartProposalsRegistering(owner))

	events, err := l.AddProposal(voterOne, "X")
	record(events, err)
	require.Equal(uint64(1), *events[0].ProposalID)

	record(l.EndProposalsRegistering(owner))
	record(l.StartVotingSession(owner))
	record(l.SetVote(voterOne, 1))

	p, err := l.GetOneProposal(voterOne, 1)
	require.NoError(err)
	require.Equal(uint64(1), p.VoteCount)

	v, err := l.GetVoter(voterOne, voterOne)
	require.NoError(err)
	require.True(v.HasVoted)
	require.Equal(uint64(1), v.VotedProposalID)

	_, _, err = l.WinningProposalID()
	require.ErrorIs(err, ErrTallyNotDone)

	record(l.EndVotingSession(owner))
	record(l.TallyVotes(owner))

	winner, proposal, err := l.WinningProposalID()
	require.NoError(err)
	require.Equal(uint64(1), winner)
	require.Equal("X", proposal.Description)

	require.Equal([]uint64{1, 2, 3, 4, 5, 6, 7, 8}, seqs)
}

func TestTallyVotes(t *testing.T) {
	voters := []common.Address{voterOne, voterTwo, voterThree}

	tests := []struct {
		name       string
		proposals  []string
		votes      map[common.Address]uint64
		wantWinner uint64
	}{
		{
			name:       "clear majority",
			proposals:  []string{"A", "B", "C"},
			votes:      map[common.Address]uint64{voterOne: 2, voterTwo: 2, voterThree: 1},
			wantWinner: 2,
		},
		{
			name:       "tie goes to lowest id",
			proposals:  []string{"A", "B", "C"},
			votes:      map[common.Address]uint64{voterOne: 3, voterTwo: 2},
			wantWinner: 2,
		},
		{
			name:       "three-way tie",
			proposals:  []string{"A", "B", "C"},
			votes:      map[common.Address]uint64{voterOne: 3, voterTwo: 2, voterThree: 1},
			wantWinner: 1,
		},
		{
			name:       "no votes",
			proposals:  []string{"A", "B"},
			wantWinner: 1,
		},
		{
			name:       "no proposals",
			wantWinner: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			l := advance(t, models.VotingSessionStarted, voters, tt.proposals...)

			for voter, id := range tt.votes {
				_, err := l.SetVote(voter, id)
				require.NoError(err)
			}

			_, err := l.EndVotingSession(owner)
			require.NoError(err)
			_, err = l.TallyVotes(owner)
			require.NoError(err)

			winner, _, err := l.WinningProposalID()
			require.NoError(err)
			require.Equal(tt.wantWinner, winner)
		})
	}
}

func TestFailedCallsDoNotAdvanceSequence(t *testing.T) {
	require := require.New(t)
	l := New(owner)

	_, err := l.AddVoter(stranger, voterOne)
	require.Error(err)
	_, err = l.EndVotingSession(owner)
	require.Error(err)

	events, err := l.AddVoter(owner, voterOne)
	require.NoError(err)
	require.Equal(uint64(1), events[0].Seq)
}

func TestWithSeqStart(t *testing.T) {
	require := require.New(t)
	l := New(owner, WithSeqStart(41))

	events, err := l.AddVoter(owner, voterOne)
	require.NoError(err)
	require.Equal(uint64(42), events[0].Seq)

	events, err = l.StartProposalsRegistering(owner)
	require.NoError(err)
	require.Equal(uint64(43), events[0].Seq)
}

func TestObserver(t *testing.T) {
	require := require.New(t)

	var observed []models.Event
	l := New(owner, WithObserver(func(events []models.Event) {
		observed = append(observed, events...)
	}))

	returned, err := l.AddVoter(owner, voterOne)
	require.NoError(err)
	require.Equal(returned, observed)

	// Rejected calls are not observed
	_, err = l.AddVoter(owner, voterOne)
	require.ErrorIs(err, ErrAlreadyRegistered)
	_, err = l.AddProposal(voterOne, "too early")
	require.ErrorIs(err, ErrProposalsNotOpen)
	require.Len(observed, 1)

	_, err = l.StartProposalsRegistering(owner)
	require.NoError(err)
	require.Len(observed, 2)
	require.Equal(models.EventWorkflowStatusChange, observed[1].Kind)
	require.Equal(uint64(2), observed[1].Seq)
}
