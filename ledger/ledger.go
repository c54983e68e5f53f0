// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrUnauthorized            = errors.New("caller is not the owner")
	ErrNotAVoter               = errors.New("caller is not a voter")
	ErrAlreadyRegistered       = errors.New("already registered")
	ErrAlreadyVoted            = errors.New("already voted")
	ErrEmptyProposal           = errors.New("proposal description is empty")
	ErrProposalNotFound        = errors.New("proposal not found")
	ErrVoterRegistrationClosed = errors.New("voter registration is closed")
	ErrProposalsNotOpen        = errors.New("proposal registration is not open")
	ErrVotingNotOpen           = errors.New("voting session is not open")
	ErrInvalidPhaseTransition  = errors.New("invalid phase transition")
	ErrTallyNotDone            = errors.New("votes have not been tallied")
)

// Ledger is the voting aggregate. All methods are safe for concurrent use;
// operations are applied one at a time under a single lock.
type Ledger struct {
	mu sync.Mutex

	owner     common.Address
	status    models.WorkflowStatus
	voters    map[common.Address]*models.Voter
	proposals []models.Proposal
	winner    uint64
	seq       uint64

	observer Observer
}

// Observer receives the events of every successful operation. It is called
// with the ledger lock held, so calls never overlap and arrive in seq order.
type Observer func(events []models.Event)

type Option func(l *Ledger)

// WithObserver registers o to be called after each successful operation
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		l.observer = o
	}
}

// WithSeqStart continues numbering after n, so the first event gets seq n+1
func WithSeqStart(n uint64) Option {
	return func(l *Ledger) {
		l.seq = n
	}
}

func New(owner common.Address, opts ...Option) *Ledger {
	l := &Ledger{
		owner:  owner,
		status: models.RegisteringVoters,
		voters: make(map[common.Address]*models.Voter),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) Owner() common.Address {
	return l.owner
}

func (l *Ledger) Status() models.WorkflowStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// ProposalCount returns the number of user proposals, excluding GENESIS
func (l *Ledger) ProposalCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.proposals) == 0 {
		return 0
	}
	return len(l.proposals) - 1
}

// WinningProposalID returns the id recorded by TallyVotes
func (l *Ledger) WinningProposalID() (uint64, models.Proposal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.status != models.TallyDone {
		return 0, models.Proposal{}, ErrTallyNotDone
	}
	return l.winner, l.proposals[l.winner], nil
}

// AddVoter whitelists addr. Owner only, while voters are being registered.
func (l *Ledger) AddVoter(caller, addr common.Address) ([]models.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.onlyOwner(caller); err != nil {
		return nil, err
	}
	if l.status != models.RegisteringVoters {
		return nil, fmt.Errorf("%w: status is %s", ErrVoterRegistrationClosed, l.status)
	}
	if v, ok := l.voters[addr]; ok && v.IsRegistered {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, addr.Hex())
	}

	l.voters[addr] = &models.Voter{IsRegistered: true}

	return l.emit(models.Event{Kind: models.EventVoterRegistered, Voter: &addr}), nil
}

// GetVoter returns a copy of addr's record, zero-valued if addr was never
// whitelisted. The caller must itself be a voter.
func (l *Ledger) GetVoter(caller, addr common.Address) (models.Voter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.onlyVoter(caller); err != nil {
		return models.Voter{}, err
	}
	if v, ok := l.voters[addr]; ok {
		return *v, nil
	}
	return models.Voter{}, nil
}

// GetOneProposal returns proposal id. The caller must be a voter.
func (l *Ledger) GetOneProposal(caller common.Address, id uint64) (models.Proposal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.onlyVoter(caller); err != nil {
		return models.Proposal{}, err
	}
	if id >= uint64(len(l.proposals)) {
		return models.Proposal{}, fmt.Errorf("%w: id %d", ErrProposalNotFound, id)
	}
	return l.proposals[id], nil
}

// AddProposal appends a proposal and returns its ProposalRegistered event.
// An empty description is rejected before the phase is checked.
func (l *Ledger) AddProposal(caller common.Address, description string) ([]models.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.onlyVoter(caller); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, ErrEmptyProposal
	}
	if l.status != models.ProposalsRegistrationStarted {
		return nil, fmt.Errorf("%w: status is %s", ErrProposalsNotOpen, l.status)
	}

	l.proposals = append(l.proposals, models.Proposal{Description: description})
	id := uint64(len(l.proposals) - 1)

	return l.emit(models.Event{Kind: models.EventProposalRegistered, ProposalID: &id}), nil
}

// SetVote records caller's single vote for proposal id. GENESIS is not votable.
func (l *Ledger) SetVote(caller common.Address, id uint64) ([]models.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.onlyVoter(caller); err != nil {
		return nil, err
	}
	if l.status != models.VotingSessionStarted {
		return nil, fmt.Errorf("%w: status is %s", ErrVotingNotOpen, l.status)
	}
	if id == 0 || id >= uint64(len(l.proposals)) {
		return nil, fmt.Errorf("%w: id %d", ErrProposalNotFound, id)
	}
	voter := l.voters[caller]
	if voter.HasVoted {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyVoted, caller.Hex())
	}

	voter.HasVoted = true
	voter.VotedProposalID = id
	l.proposals[id].VoteCount++

	return l.emit(models.Event{Kind: models.EventVoted, Voter: &caller, ProposalID: &id}), nil
}

func (l *Ledger) onlyOwner(caller common.Address) error {
	if caller != l.owner {
		return fmt.Errorf("%w: %s", ErrUnauthorized, caller.Hex())
	}
	return nil
}

func (l *Ledger) onlyVoter(caller common.Address) error {
	if v, ok := l.voters[caller]; !ok || !v.IsRegistered {
		return fmt.Errorf("%w: %s", ErrNotAVoter, caller.Hex())
	}
	return nil
}

// emit stamps the next sequence number and notifies the observer. Called
// with mu held, after all guards have passed.
func (l *Ledger) emit(e models.Event) []models.Event {
	l.seq++
	e.Seq = l.seq
	events := []models.Event{e}
	if l.observer != nil {
		l.observer(events)
	}
	return events
}
