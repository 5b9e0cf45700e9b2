// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package commission

import (
	"math/big"

	"github.com/hearthchain/hearth/director/reverts"
	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/slots"
)

// Service manages the queued -> committed lifecycle of per-validator
// commission rates.
type Service struct {
	repo *storage
}

func New(context *slots.Context) *Service {
	return &Service{repo: newStorage(context)}
}

// Queue stages a commission rate change. The proposed rate is checked against
// the fixed protocol cap; at most one change may be queued per validator.
func (s *Service) Queue(val hearth.PubKey, rate uint32, currentBlock uint32) error {
	if rate > hearth.MaxCommissionRate {
		return reverts.ErrInvalidCommissionValue
	}

	has, err := s.repo.HasQueued(val)
	if err != nil {
		return err
	}
	if has {
		return reverts.ErrCommissionChangeAlreadyQueued
	}

	return s.repo.SetQueued(val, &QueuedChange{
		QueuedBlock: currentBlock,
		Value:       rate,
	})
}

// Activate commits the queued rate change once the staging delay has elapsed.
// Unlike allocation activation this is an explicit error when not ready: it
// is caller-invoked deliberately, not polled. Returns the old and new rates.
func (s *Service) Activate(
	val hearth.PubKey,
	currentBlock uint32,
	stagingDelay uint32,
	rateCap uint32,
) (oldRate, newRate uint32, err error) {
	has, err := s.repo.HasQueued(val)
	if err != nil {
		return 0, 0, err
	}
	if !has {
		return 0, 0, reverts.ErrCommissionNotQueuedOrDelayNotPassed
	}

	queued, err := s.repo.GetQueued(val)
	if err != nil {
		return 0, 0, err
	}

	activationBlock := queued.QueuedBlock + stagingDelay
	if currentBlock < activationBlock {
		return 0, 0, reverts.ErrCommissionNotQueuedOrDelayNotPassed
	}

	oldRate, err = s.Rate(val, rateCap)
	if err != nil {
		return 0, 0, err
	}

	if err := s.repo.SetCommitted(val, &Rate{
		ActivationBlock: activationBlock,
		Value:           queued.Value,
	}); err != nil {
		return 0, 0, err
	}
	if err := s.repo.ClearQueued(val); err != nil {
		return 0, 0, err
	}
	return oldRate, queued.Value, nil
}

// Rate returns the validator's effective commission rate. Without a committed
// rate the fixed default applies. A committed rate above the current cap is
// clamped on read; the stored value is left untouched, so a later cap raise
// restores it.
func (s *Service) Rate(val hearth.PubKey, rateCap uint32) (uint32, error) {
	committed, err := s.repo.GetCommitted(val)
	if err != nil {
		return 0, err
	}
	if committed.IsEmpty() {
		return hearth.DefaultCommissionRate, nil
	}
	if committed.Value > rateCap {
		return rateCap, nil
	}
	return committed.Value, nil
}

// Queued returns the pending change, or nil when none is queued.
func (s *Service) Queued(val hearth.PubKey) (*QueuedChange, error) {
	has, err := s.repo.HasQueued(val)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	return s.repo.GetQueued(val)
}

// OperatorShare computes the operator's cut of an incentive-token amount at
// the validator's effective rate: amount * rate / 100%, truncating toward
// zero.
func (s *Service) OperatorShare(val hearth.PubKey, amount *big.Int, rateCap uint32) (*big.Int, error) {
	rate, err := s.Rate(val, rateCap)
	if err != nil {
		return nil, err
	}
	share := new(big.Int).Mul(amount, new(big.Int).SetUint64(uint64(rate)))
	return share.Quo(share, new(big.Int).SetUint64(uint64(hearth.FullPercent))), nil
}
