// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allocation

import (
	"github.com/hearthchain/hearth/director/reverts"
	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/slots"
)

// Service manages the queued -> active lifecycle of per-validator reward
// allocations and the global default allocation. Authorization and parameter
// reads live with the caller; the service only enforces lifecycle and
// validation rules.
type Service struct {
	repo *storage
}

func New(context *slots.Context) *Service {
	return &Service{repo: newStorage(context)}
}

// Queue stages a new allocation for the validator, to take effect at
// startBlock. At most one allocation may be queued per validator; there is no
// overwrite and no cancel.
func (s *Service) Queue(
	val hearth.PubKey,
	startBlock uint32,
	weights []Weight,
	currentBlock uint32,
	stagingDelay uint32,
	limits Limits,
	approved ApprovalFunc,
) error {
	if uint64(startBlock) <= uint64(currentBlock)+uint64(stagingDelay) {
		return reverts.ErrInvalidStartBlock
	}

	queued, err := s.repo.GetQueued(val)
	if err != nil {
		return err
	}
	if !queued.IsEmpty() {
		return reverts.ErrRewardAllocationAlreadyQueued
	}

	if err := ValidateWeights(weights, limits, approved); err != nil {
		return err
	}

	return s.repo.SetQueued(val, &RewardAllocation{
		StartBlock: startBlock,
		Weights:    weights,
	})
}

// Activate promotes the queued allocation to active once its start block is
// reached. Not-ready (or nothing queued) is a silent no-op: the trigger polls
// speculatively every cycle. The activated entry is returned, or nil when
// nothing happened.
func (s *Service) Activate(val hearth.PubKey, currentBlock uint32) (*RewardAllocation, error) {
	queued, err := s.repo.GetQueued(val)
	if err != nil {
		return nil, err
	}
	if queued.IsEmpty() || currentBlock < queued.StartBlock {
		return nil, nil
	}

	// full replacement of the active entry
	if err := s.repo.SetActive(val, queued); err != nil {
		return nil, err
	}
	if err := s.repo.ClearQueued(val); err != nil {
		return nil, err
	}
	return queued, nil
}

// Active returns the authoritative allocation for the validator: the active
// entry when it still satisfies the current limits and whitelist, otherwise
// the default allocation. The fallback is recomputed on every read and never
// persisted.
func (s *Service) Active(val hearth.PubKey, limits Limits, approved ApprovalFunc) (*RewardAllocation, error) {
	active, err := s.repo.GetActive(val)
	if err != nil {
		return nil, err
	}
	if !active.IsEmpty() {
		ok, err := IsStillValid(active.Weights, limits, approved)
		if err != nil {
			return nil, err
		}
		if ok {
			return active, nil
		}
	}
	return s.repo.GetDefault()
}

// RawActive returns the active entry without revalidation or fallback.
func (s *Service) RawActive(val hearth.PubKey) (*RewardAllocation, error) {
	return s.repo.GetActive(val)
}

// Queued returns the validator's queued allocation, empty when none.
func (s *Service) Queued(val hearth.PubKey) (*RewardAllocation, error) {
	return s.repo.GetQueued(val)
}

// IsQueuedReady reports whether the validator's queued allocation can be
// activated at the given block.
func (s *Service) IsQueuedReady(val hearth.PubKey, atBlock uint32) (bool, error) {
	queued, err := s.repo.GetQueued(val)
	if err != nil {
		return false, err
	}
	return !queued.IsEmpty() && atBlock >= queued.StartBlock, nil
}

// Default returns the global default allocation.
func (s *Service) Default() (*RewardAllocation, error) {
	return s.repo.GetDefault()
}

// SetDefault replaces the default allocation. It must validate against the
// current limits right now; there is no staging delay for the default.
func (s *Service) SetDefault(weights []Weight, limits Limits, approved ApprovalFunc) error {
	if err := ValidateWeights(weights, limits, approved); err != nil {
		return err
	}
	return s.repo.SetDefault(&RewardAllocation{Weights: weights})
}

// IsDefaultSet reports whether a default allocation has been configured.
// The subsystem is not ready to direct rewards until it is.
func (s *Service) IsDefaultSet() (bool, error) {
	def, err := s.repo.GetDefault()
	if err != nil {
		return false, err
	}
	return len(def.Weights) > 0, nil
}

// CheckDefault re-runs the revalidation checker on the default allocation
// under the given (prospective) limits. Administrative parameter changes use
// it to refuse any change that would leave the system-wide fallback invalid.
func (s *Service) CheckDefault(limits Limits, approved ApprovalFunc) error {
	def, err := s.repo.GetDefault()
	if err != nil {
		return err
	}
	if len(def.Weights) == 0 {
		// nothing configured yet, nothing to protect
		return nil
	}
	ok, err := IsStillValid(def.Weights, limits, approved)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrInvalidateDefaultRewardAllocation
	}
	return nil
}
