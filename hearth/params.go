// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hearth

// Constants of the reward-direction protocol.
const (
	// FullPercent is the percentage denominator, in basis points. Every
	// accepted reward allocation's weights sum to exactly this value.
	FullPercent uint32 = 10_000

	// DefaultCommissionRate applies to any validator without a committed
	// commission rate. 5%.
	DefaultCommissionRate uint32 = 500

	// MaxCommissionRate is the fixed cap on operator commission. 20%.
	// Unlike the other limits it is not governable.
	MaxCommissionRate uint32 = 2_000

	// MaxAllocationBlockDelay bounds the allocation staging delay,
	// roughly two months of blocks.
	MaxAllocationBlockDelay uint32 = 1_315_000

	// MaxCommissionChangeDelay bounds the commission staging delay.
	MaxCommissionChangeDelay uint32 = 2 * 8_191
)

// Initial values of governance params.
const (
	InitialMaxNumWeightsPerAllocation uint32 = 10
	InitialMaxWeightPerVault                 = FullPercent
	InitialAllocationBlockDelay       uint32 = 8_191
	InitialCommissionChangeDelay      uint32 = 16_382
)
