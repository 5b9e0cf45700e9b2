// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package commission

import (
	"math/big"
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

func TestDefaultRate(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))

	rate, err := svc.Rate(val, hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, hearth.DefaultCommissionRate, rate)

	// 5% of 1000 tokens
	share, err := svc.OperatorShare(val, big.NewInt(1000), hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, int64(50), share.Int64())
}

func TestQueue(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))

	err := svc.Queue(val, hearth.MaxCommissionRate+1, 100)
	assert.ErrorIs(t, err, reverts.ErrInvalidCommissionValue)

	require.NoError(t, svc.Queue(val, 1500, 100))

	pending, err := svc.Queued(val)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, uint32(100), pending.QueuedBlock)
	assert.Equal(t, uint32(1500), pending.Value)

	// one pending change per validator, even for the same value
	err = svc.Queue(val, 1500, 200)
	assert.ErrorIs(t, err, reverts.ErrCommissionChangeAlreadyQueued)

	// zero percent is an allowed target
	val2 := hearth.BytesToPubKey([]byte("val-2"))
	require.NoError(t, svc.Queue(val2, 0, 100))
}

func TestActivate(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))
	const delay = uint32(16382)

	_, _, err := svc.Activate(val, 100, delay, hearth.MaxCommissionRate)
	assert.ErrorIs(t, err, reverts.ErrCommissionNotQueuedOrDelayNotPassed)

	require.NoError(t, svc.Queue(val, 1500, 100))

	_, _, err = svc.Activate(val, 100+delay-1, delay, hearth.MaxCommissionRate)
	assert.ErrorIs(t, err, reverts.ErrCommissionNotQueuedOrDelayNotPassed)

	oldRate, newRate, err := svc.Activate(val, 100+delay, delay, hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, hearth.DefaultCommissionRate, oldRate)
	assert.Equal(t, uint32(1500), newRate)

	rate, err := svc.Rate(val, hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, uint32(1500), rate)

	pending, err := svc.Queued(val)
	require.NoError(t, err)
	assert.Nil(t, pending)

	// queue is free again after activation
	require.NoError(t, svc.Queue(val, 200, 100+delay))
}

func TestActivateZeroRate(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))

	require.NoError(t, svc.Queue(val, 0, 100))
	_, newRate, err := svc.Activate(val, 200, 50, hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), newRate)

	// a committed zero is zero, not the default
	rate, err := svc.Rate(val, hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), rate)

	share, err := svc.OperatorShare(val, big.NewInt(1000), hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, int64(0), share.Int64())
}

func TestRateClamp(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))

	require.NoError(t, svc.Queue(val, 1800, 100))
	_, _, err := svc.Activate(val, 200, 50, hearth.MaxCommissionRate)
	require.NoError(t, err)

	rate, err := svc.Rate(val, hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, uint32(1800), rate)

	// cap lowered below the committed rate: reads clamp
	rate, err = svc.Rate(val, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), rate)

	share, err := svc.OperatorShare(val, big.NewInt(1000), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(100), share.Int64())

	// cap raised again: the untouched stored rate is back in force
	rate, err = svc.Rate(val, hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, uint32(1800), rate)
}

func TestOperatorShareTruncates(t *testing.T) {
	svc := newTestService()
	val := hearth.BytesToPubKey([]byte("val-1"))

	// 5% of 99 is 4.95, trimmed to 4
	share, err := svc.OperatorShare(val, big.NewInt(99), hearth.MaxCommissionRate)
	require.NoError(t, err)
	assert.Equal(t, int64(4), share.Int64())
}
