// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/kv"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

type storageKey struct {
	addr hearth.Address
	key  hearth.Bytes32
}

func (k storageKey) storeKey() []byte {
	return append(k.addr.Bytes(), k.key.Bytes()...)
}

// State manages keyed storage with checkpoint/revert semantics.
// Reads fall through the write journal to the backing kv store; writes stay
// in the journal until Commit.
type State struct {
	store kv.Getter
	jn    *journal
}

// New creates a state object backed by the given store.
func New(store kv.Getter) *State {
	state := &State{store: store}
	state.jn = newJournal(state.storeGetter)
	state.jn.Push() // base level
	return state
}

func (s *State) storeGetter(key storageKey) (rlp.RawValue, error) {
	val, err := s.store.Get(key.storeKey())
	if err != nil {
		if s.store.IsNotFound(err) {
			return rlp.RawValue(nil), nil
		}
		return nil, err
	}
	return rlp.RawValue(val), nil
}

// GetRawStorage returns the storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr hearth.Address, key hearth.Bytes32) (rlp.RawValue, error) {
	data, err := s.jn.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage sets the storage value in rlp raw.
func (s *State) SetRawStorage(addr hearth.Address, key hearth.Bytes32, raw rlp.RawValue) {
	s.jn.Put(storageKey{addr, key}, raw)
}

// EncodeStorage sets the storage value encoded by the given enc method.
func (s *State) EncodeStorage(addr hearth.Address, key hearth.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage gets and decodes the storage value.
func (s *State) DecodeStorage(addr hearth.Address, key hearth.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns the revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.jn.Push()
}

// RevertTo reverts to the checkpoint specified by the revision.
func (s *State) RevertTo(revision int) {
	s.jn.PopTo(revision)
}

// Commit flushes all journaled writes to the given store in a single atomic
// batch. The journal is reset afterwards.
func (s *State) Commit(store kv.Store) error {
	batch := store.NewBatch()
	s.jn.Changes(func(k storageKey, raw rlp.RawValue) {
		if len(raw) == 0 {
			_ = batch.Delete(k.storeKey())
		} else {
			_ = batch.Put(k.storeKey(), raw)
		}
	})
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	s.jn.PopTo(0)
	s.jn.Push()
	return nil
}
