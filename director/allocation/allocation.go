// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allocation

import (
	"github.com/hearthchain/hearth/hearth"
)

// Weight directs a share of block rewards to a receiving vault.
type Weight struct {
	Receiver hearth.Address // an approved vault
	Percent  uint32         // numerator out of hearth.FullPercent
}

// RewardAllocation is a validator's reward split across vaults.
// An accepted allocation's weights are unique per receiver, each in
// (0, maxWeightPerVault], and sum to hearth.FullPercent.
type RewardAllocation struct {
	StartBlock uint32 // the block at which the allocation can be activated; 0 means none exists
	Weights    []Weight
}

// IsEmpty returns whether the entry can be treated as empty.
// StartBlock 0 is the "nothing staged" sentinel; the default allocation has
// no activation-height semantics and is non-empty through its weights.
func (a *RewardAllocation) IsEmpty() bool {
	return a.StartBlock == 0 && len(a.Weights) == 0
}

// Limits are the global constraints a weight list is checked against.
// They are read from the parameter store at call time, so revalidation always
// sees current values.
type Limits struct {
	MaxNumWeights     uint32
	MaxWeightPerVault uint32
}

// ApprovalFunc reports whether a destination is currently an approved vault.
type ApprovalFunc func(vault hearth.Address) (bool, error)
