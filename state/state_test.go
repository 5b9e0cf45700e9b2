// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"

	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/kv"
)

func TestStorage(t *testing.T) {
	store := kv.NewMemStore()
	st := New(store)

	addr := hearth.BytesToAddress([]byte("addr"))
	key := hearth.BytesToBytes32([]byte("key"))

	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Zero(t, len(raw))

	data, _ := rlp.EncodeToBytes("hello")
	st.SetRawStorage(addr, key, data)

	raw, err = st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue(data), raw)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := New(kv.NewMemStore())

	addr := hearth.BytesToAddress([]byte("addr"))
	key := hearth.BytesToBytes32([]byte("key"))

	type entry struct {
		Name  string
		Value uint32
	}

	err := st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&entry{"abc", 42})
	})
	assert.NoError(t, err)

	var decoded entry
	err = st.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &decoded)
	})
	assert.NoError(t, err)
	assert.Equal(t, entry{"abc", 42}, decoded)
}

func TestCheckpointRevert(t *testing.T) {
	st := New(kv.NewMemStore())

	addr := hearth.BytesToAddress([]byte("addr"))
	key := hearth.BytesToBytes32([]byte("key"))

	v1, _ := rlp.EncodeToBytes("v1")
	v2, _ := rlp.EncodeToBytes("v2")

	st.SetRawStorage(addr, key, v1)

	cp := st.NewCheckpoint()
	st.SetRawStorage(addr, key, v2)

	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue(v2), raw)

	st.RevertTo(cp)

	raw, err = st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue(v1), raw)
}

func TestCommit(t *testing.T) {
	store := kv.NewMemStore()
	st := New(store)

	addr := hearth.BytesToAddress([]byte("addr"))
	k1 := hearth.BytesToBytes32([]byte("k1"))
	k2 := hearth.BytesToBytes32([]byte("k2"))

	v1, _ := rlp.EncodeToBytes("v1")
	v2, _ := rlp.EncodeToBytes("v2")

	st.SetRawStorage(addr, k1, v1)
	st.SetRawStorage(addr, k2, v2)
	assert.NoError(t, st.Commit(store))

	// deletion persists as key removal
	st.SetRawStorage(addr, k2, nil)
	assert.NoError(t, st.Commit(store))

	reopened := New(store)
	raw, err := reopened.GetRawStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, rlp.RawValue(v1), raw)

	raw, err = reopened.GetRawStorage(addr, k2)
	assert.NoError(t, err)
	assert.Zero(t, len(raw))
}
