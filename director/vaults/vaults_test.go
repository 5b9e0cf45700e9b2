// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/kv"
	"github.com/hearthchain/hearth/slots"
	"github.com/hearthchain/hearth/state"
)

func newTestRegistry() *Registry {
	st := state.New(kv.NewMemStore())
	return New(slots.NewContext(hearth.BytesToAddress([]byte("director")), st))
}

func TestRegistry(t *testing.T) {
	reg := newTestRegistry()

	v1 := hearth.BytesToAddress([]byte("v1"))
	v2 := hearth.BytesToAddress([]byte("v2"))
	v3 := hearth.BytesToAddress([]byte("v3"))
	a1 := hearth.BytesToAddress([]byte("a1"))
	a2 := hearth.BytesToAddress([]byte("a2"))
	a3 := hearth.BytesToAddress([]byte("a3"))

	ok, err := reg.IsApproved(v1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, known, err := reg.Get(v1)
	require.NoError(t, err)
	assert.False(t, known)

	changed, err := reg.Approve(v1, a1)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = reg.Approve(v2, a2)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = reg.Approve(v3, a3)
	require.NoError(t, err)
	assert.True(t, changed)

	// repeated approval is a silent no-change
	changed, err = reg.Approve(v1, a1)
	require.NoError(t, err)
	assert.False(t, changed)

	all, err := reg.All()
	require.NoError(t, err)
	assert.Equal(t, []Vault{
		{v1, a1, true},
		{v2, a2, true},
		{v3, a3, true},
	}, all)

	got, known, err := reg.Get(v2)
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, &Vault{v2, a2, true}, got)
}

func TestRevoke(t *testing.T) {
	reg := newTestRegistry()

	v1 := hearth.BytesToAddress([]byte("v1"))
	v2 := hearth.BytesToAddress([]byte("v2"))
	a1 := hearth.BytesToAddress([]byte("a1"))
	a2 := hearth.BytesToAddress([]byte("a2"))

	// revoking an unknown vault is a no-change
	changed, err := reg.Revoke(v1)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = reg.Approve(v1, a1)
	require.NoError(t, err)
	_, err = reg.Approve(v2, a2)
	require.NoError(t, err)

	changed, err = reg.Revoke(v1)
	require.NoError(t, err)
	assert.True(t, changed)

	ok, err := reg.IsApproved(v1)
	require.NoError(t, err)
	assert.False(t, ok)

	// revoked vaults stay enumerable
	all, err := reg.All()
	require.NoError(t, err)
	assert.Equal(t, []Vault{
		{v1, a1, false},
		{v2, a2, true},
	}, all)

	// re-approval flips the existing entry, no duplicate list node
	changed, err = reg.Approve(v1, a1)
	require.NoError(t, err)
	assert.True(t, changed)

	all, err = reg.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].Approved)
}

func TestIteration(t *testing.T) {
	reg := newTestRegistry()

	first, err := reg.First()
	require.NoError(t, err)
	assert.Nil(t, first)

	v1 := hearth.BytesToAddress([]byte("v1"))
	v2 := hearth.BytesToAddress([]byte("v2"))
	asset := hearth.BytesToAddress([]byte("asset"))

	_, err = reg.Approve(v1, asset)
	require.NoError(t, err)
	_, err = reg.Approve(v2, asset)
	require.NoError(t, err)

	first, err = reg.First()
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, v1, *first)

	next, err := reg.Next(*first)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, v2, *next)

	next, err = reg.Next(*next)
	require.NoError(t, err)
	assert.Nil(t, next)
}
