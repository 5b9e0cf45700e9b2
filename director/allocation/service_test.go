// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthchain/hearth/director/reverts"
	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/kv"
	"github.com/hearthchain/hearth/slots"
	"github.com/hearthchain/hearth/state"
)

func newTestService() *Service {
	st := state.New(kv.NewMemStore())
	return New(slots.NewContext(hearth.BytesToAddress([]byte("director")), st))
}

var testLimits = Limits{MaxNumWeights: 4, MaxWeightPerVault: hearth.FullPercent}

func TestQueue(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))
	approved := approveSet(vaultA, vaultB)
	weights := []Weight{{vaultA, 6000}, {vaultB, 4000}}

	// start block must be strictly beyond current + delay
	err := svc.Queue(val, 100, weights, 50, 50, testLimits, approved)
	assert.ErrorIs(t, err, reverts.ErrInvalidStartBlock)

	require.NoError(t, svc.Queue(val, 101, weights, 50, 50, testLimits, approved))

	queued, err := svc.Queued(val)
	require.NoError(t, err)
	assert.Equal(t, uint32(101), queued.StartBlock)
	assert.Equal(t, weights, queued.Weights)

	// one pending change per validator
	err = svc.Queue(val, 200, weights, 50, 50, testLimits, approved)
	assert.ErrorIs(t, err, reverts.ErrRewardAllocationAlreadyQueued)

	// invalid weight sets never land in the queue
	val2 := hearth.BytesToPubKey([]byte("val-2"))
	err = svc.Queue(val2, 101, []Weight{{vaultA, 9999}}, 50, 50, testLimits, approved)
	assert.ErrorIs(t, err, reverts.ErrInvalidRewardAllocationWeights)
	queued, err = svc.Queued(val2)
	require.NoError(t, err)
	assert.True(t, queued.IsEmpty())
}

func TestQueueStartBlockOverflow(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))
	weights := []Weight{{vaultA, 10000}}

	// current + delay exceeding uint32 range must not wrap and admit a low start block
	err := svc.Queue(val, 100, weights, ^uint32(0)-10, 8191, testLimits, approveSet(vaultA))
	assert.ErrorIs(t, err, reverts.ErrInvalidStartBlock)
}

func TestActivate(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))
	approved := approveSet(vaultA, vaultB)
	weights := []Weight{{vaultA, 6000}, {vaultB, 4000}}

	// nothing queued: silent no-op
	activated, err := svc.Activate(val, 500)
	require.NoError(t, err)
	assert.Nil(t, activated)

	require.NoError(t, svc.Queue(val, 101, weights, 50, 50, testLimits, approved))

	// queued but not reached: silent no-op, queue untouched
	activated, err = svc.Activate(val, 100)
	require.NoError(t, err)
	assert.Nil(t, activated)

	ready, err := svc.IsQueuedReady(val, 100)
	require.NoError(t, err)
	assert.False(t, ready)
	ready, err = svc.IsQueuedReady(val, 101)
	require.NoError(t, err)
	assert.True(t, ready)

	activated, err = svc.Activate(val, 101)
	require.NoError(t, err)
	require.NotNil(t, activated)
	assert.Equal(t, uint32(101), activated.StartBlock)
	assert.Equal(t, weights, activated.Weights)

	raw, err := svc.RawActive(val)
	require.NoError(t, err)
	assert.Equal(t, weights, raw.Weights)

	queued, err := svc.Queued(val)
	require.NoError(t, err)
	assert.True(t, queued.IsEmpty())

	// activation is full replacement
	next := []Weight{{vaultB, 10000}}
	require.NoError(t, svc.Queue(val, 300, next, 200, 50, testLimits, approved))
	activated, err = svc.Activate(val, 300)
	require.NoError(t, err)
	require.NotNil(t, activated)

	raw, err = svc.RawActive(val)
	require.NoError(t, err)
	assert.Equal(t, next, raw.Weights)
	assert.Equal(t, uint32(300), raw.StartBlock)
}

func TestActiveFallsBackToDefault(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))
	approved := approveSet(vaultA, vaultB)

	defaultWeights := []Weight{{vaultA, 10000}}
	require.NoError(t, svc.SetDefault(defaultWeights, testLimits, approved))

	// no active entry yet
	active, err := svc.Active(val, testLimits, approved)
	require.NoError(t, err)
	assert.Equal(t, defaultWeights, active.Weights)
	assert.Equal(t, uint32(0), active.StartBlock)

	weights := []Weight{{vaultA, 6000}, {vaultB, 4000}}
	require.NoError(t, svc.Queue(val, 101, weights, 50, 50, testLimits, approved))
	_, err = svc.Activate(val, 101)
	require.NoError(t, err)

	active, err = svc.Active(val, testLimits, approved)
	require.NoError(t, err)
	assert.Equal(t, weights, active.Weights)

	// vault B revoked: stored entry kept but reads fall back
	active, err = svc.Active(val, testLimits, approveSet(vaultA))
	require.NoError(t, err)
	assert.Equal(t, defaultWeights, active.Weights)

	raw, err := svc.RawActive(val)
	require.NoError(t, err)
	assert.Equal(t, weights, raw.Weights)

	// approval restored: same entry is authoritative again
	active, err = svc.Active(val, testLimits, approved)
	require.NoError(t, err)
	assert.Equal(t, weights, active.Weights)
}

func TestSetDefault(t *testing.T) {
	svc := newTestService()
	approved := approveSet(vaultA, vaultB)

	set, err := svc.IsDefaultSet()
	require.NoError(t, err)
	assert.False(t, set)

	err = svc.SetDefault([]Weight{{vaultA, 5000}}, testLimits, approved)
	assert.ErrorIs(t, err, reverts.ErrInvalidRewardAllocationWeights)

	require.NoError(t, svc.SetDefault([]Weight{{vaultA, 5000}, {vaultB, 5000}}, testLimits, approved))

	set, err = svc.IsDefaultSet()
	require.NoError(t, err)
	assert.True(t, set)

	def, err := svc.Default()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), def.StartBlock)
	assert.Len(t, def.Weights, 2)
}

func TestCheckDefault(t *testing.T) {
	svc := newTestService()
	approved := approveSet(vaultA, vaultB)

	// no default configured: nothing to protect
	require.NoError(t, svc.CheckDefault(testLimits, approved))

	require.NoError(t, svc.SetDefault([]Weight{{vaultA, 5000}, {vaultB, 5000}}, testLimits, approved))

	require.NoError(t, svc.CheckDefault(testLimits, approved))

	err := svc.CheckDefault(Limits{MaxNumWeights: 1, MaxWeightPerVault: hearth.FullPercent}, approved)
	assert.ErrorIs(t, err, reverts.ErrInvalidateDefaultRewardAllocation)

	err = svc.CheckDefault(testLimits, approveSet(vaultA))
	assert.ErrorIs(t, err, reverts.ErrInvalidateDefaultRewardAllocation)
}
