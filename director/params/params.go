// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"github.com/hearthchain/hearth/director/reverts"
	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/slots"
)

var (
	keyMaxNumWeights         = hearth.BytesToBytes32([]byte("max-num-weights-per-allocation"))
	keyMaxWeightPerVault     = hearth.BytesToBytes32([]byte("max-weight-per-vault"))
	keyAllocationBlockDelay  = hearth.BytesToBytes32([]byte("allocation-block-delay"))
	keyCommissionChangeDelay = hearth.BytesToBytes32([]byte("commission-change-delay"))
	keyCommissionRateCap     = hearth.BytesToBytes32([]byte("commission-rate-cap"))
)

// Store holds the mutable global limits. Each setter enforces its own bound;
// protection of the default allocation against retroactive invalidation is
// the caller's concern, since it needs the allocation state.
// Unset slots read as the protocol's initial values.
type Store struct {
	maxNumWeights         *slots.Uint256
	maxWeightPerVault     *slots.Uint256
	allocationBlockDelay  *slots.Uint256
	commissionChangeDelay *slots.Uint256
	commissionRateCap     *slots.Uint256
}

func New(context *slots.Context) *Store {
	return &Store{
		maxNumWeights:         slots.NewUint256(context, keyMaxNumWeights),
		maxWeightPerVault:     slots.NewUint256(context, keyMaxWeightPerVault),
		allocationBlockDelay:  slots.NewUint256(context, keyAllocationBlockDelay),
		commissionChangeDelay: slots.NewUint256(context, keyCommissionChangeDelay),
		commissionRateCap:     slots.NewUint256(context, keyCommissionRateCap),
	}
}

func get(slot *slots.Uint256, initial uint32) (uint32, error) {
	written, err := slot.Has()
	if err != nil {
		return 0, err
	}
	if !written {
		return initial, nil
	}
	return slot.GetUint32()
}

// MaxNumWeights returns the maximum number of weights per allocation.
func (s *Store) MaxNumWeights() (uint32, error) {
	return get(s.maxNumWeights, hearth.InitialMaxNumWeightsPerAllocation)
}

// SetMaxNumWeights sets the maximum number of weights per allocation.
func (s *Store) SetMaxNumWeights(n uint32) error {
	if n == 0 {
		return reverts.ErrMaxNumWeightsIsZero
	}
	return s.maxNumWeights.SetUint32(n)
}

// MaxWeightPerVault returns the per-vault weight cap in basis points.
func (s *Store) MaxWeightPerVault() (uint32, error) {
	return get(s.maxWeightPerVault, hearth.InitialMaxWeightPerVault)
}

// SetMaxWeightPerVault sets the per-vault weight cap, in (0, 100%].
func (s *Store) SetMaxWeightPerVault(p uint32) error {
	if p == 0 || p > hearth.FullPercent {
		return reverts.ErrInvalidMaxWeightPerVault
	}
	return s.maxWeightPerVault.SetUint32(p)
}

// AllocationBlockDelay returns the allocation staging delay in blocks.
func (s *Store) AllocationBlockDelay() (uint32, error) {
	return get(s.allocationBlockDelay, hearth.InitialAllocationBlockDelay)
}

// SetAllocationBlockDelay sets the allocation staging delay. Zero is allowed;
// the start block check still requires strictly future activation.
func (s *Store) SetAllocationBlockDelay(d uint32) error {
	if d > hearth.MaxAllocationBlockDelay {
		return reverts.ErrAllocationBlockDelayTooLarge
	}
	return s.allocationBlockDelay.SetUint32(d)
}

// CommissionChangeDelay returns the commission staging delay in blocks.
func (s *Store) CommissionChangeDelay() (uint32, error) {
	return get(s.commissionChangeDelay, hearth.InitialCommissionChangeDelay)
}

// SetCommissionChangeDelay sets the commission staging delay, which must be
// positive and bounded.
func (s *Store) SetCommissionChangeDelay(d uint32) error {
	if d == 0 || d > hearth.MaxCommissionChangeDelay {
		return reverts.ErrInvalidCommissionChangeDelay
	}
	return s.commissionChangeDelay.SetUint32(d)
}

// CommissionRateCap returns the governable cap applied when reading committed
// rates. It can never exceed the fixed protocol cap.
func (s *Store) CommissionRateCap() (uint32, error) {
	return get(s.commissionRateCap, hearth.MaxCommissionRate)
}

// SetCommissionRateCap sets the governable commission cap, in
// (0, hearth.MaxCommissionRate].
func (s *Store) SetCommissionRateCap(c uint32) error {
	if c == 0 || c > hearth.MaxCommissionRate {
		return reverts.ErrInvalidCommissionRateCap
	}
	return s.commissionRateCap.SetUint32(c)
}
