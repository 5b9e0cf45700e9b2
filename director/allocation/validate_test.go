// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hearthchain/hearth/director/reverts"
	"github.com/hearthchain/hearth/hearth"
)

var (
	vaultA = hearth.BytesToAddress([]byte("vault-a"))
	vaultB = hearth.BytesToAddress([]byte("vault-b"))
	vaultC = hearth.BytesToAddress([]byte("vault-c"))
)

func approveSet(vaults ...hearth.Address) ApprovalFunc {
	set := make(map[hearth.Address]bool, len(vaults))
	for _, v := range vaults {
		set[v] = true
	}
	return func(vault hearth.Address) (bool, error) {
		return set[vault], nil
	}
}

func TestValidateWeights(t *testing.T) {
	limits := Limits{MaxNumWeights: 2, MaxWeightPerVault: 7000}
	approved := approveSet(vaultA, vaultB, vaultC)

	tests := []struct {
		name    string
		weights []Weight
		err     error
	}{
		{
			"valid pair",
			[]Weight{{vaultA, 6000}, {vaultB, 4000}},
			nil,
		},
		{
			"single full weight within cap",
			[]Weight{{vaultA, 7000}, {vaultB, 3000}},
			nil,
		},
		{
			"too many weights",
			[]Weight{{vaultA, 4000}, {vaultB, 3000}, {vaultC, 3000}},
			reverts.ErrTooManyWeights,
		},
		{
			"duplicate receiver",
			[]Weight{{vaultA, 6000}, {vaultA, 4000}},
			reverts.ErrDuplicateReceiver,
		},
		{
			"zero weight",
			[]Weight{{vaultA, 0}, {vaultB, 10000}},
			reverts.ErrInvalidWeight,
		},
		{
			"weight above per-vault cap",
			[]Weight{{vaultA, 8000}, {vaultB, 2000}},
			reverts.ErrInvalidWeight,
		},
		{
			"receiver not whitelisted",
			[]Weight{{hearth.BytesToAddress([]byte("rogue")), 6000}, {vaultB, 4000}},
			reverts.ErrNotWhitelistedVault,
		},
		{
			"sum below full percent",
			[]Weight{{vaultA, 6000}, {vaultB, 3000}},
			reverts.ErrInvalidRewardAllocationWeights,
		},
		{
			"sum above full percent",
			[]Weight{{vaultA, 7000}, {vaultB, 4000}},
			reverts.ErrInvalidRewardAllocationWeights,
		},
		{
			"empty set",
			nil,
			reverts.ErrInvalidRewardAllocationWeights,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeights(tt.weights, limits, approved)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestIsStillValid(t *testing.T) {
	limits := Limits{MaxNumWeights: 2, MaxWeightPerVault: 7000}
	weights := []Weight{{vaultA, 6000}, {vaultB, 4000}}

	ok, err := IsStillValid(weights, limits, approveSet(vaultA, vaultB))
	assert.NoError(t, err)
	assert.True(t, ok)

	// shrunken count limit
	ok, err = IsStillValid(weights, Limits{MaxNumWeights: 1, MaxWeightPerVault: 7000}, approveSet(vaultA, vaultB))
	assert.NoError(t, err)
	assert.False(t, ok)

	// lowered per-vault cap
	ok, err = IsStillValid(weights, Limits{MaxNumWeights: 2, MaxWeightPerVault: 5000}, approveSet(vaultA, vaultB))
	assert.NoError(t, err)
	assert.False(t, ok)

	// revoked receiver
	ok, err = IsStillValid(weights, limits, approveSet(vaultB))
	assert.NoError(t, err)
	assert.False(t, ok)
}
