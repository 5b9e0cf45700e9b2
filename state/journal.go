// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/ethereum/go-ethereum/rlp"

// journal maintains storage writes in a stack of levels.
// Each level inherits key/value pairs of the level below it, so the whole
// stack acts as a single map with checkpoint/revert semantics.
type journal struct {
	src    func(storageKey) (rlp.RawValue, error)
	levels []*level
}

type level struct {
	kvs map[storageKey]rlp.RawValue
}

func newJournal(src func(storageKey) (rlp.RawValue, error)) *journal {
	return &journal{src: src}
}

// Push pushes a new level on the stack.
// It returns the stack depth before push.
func (j *journal) Push() int {
	j.levels = append(j.levels, &level{kvs: make(map[storageKey]rlp.RawValue)})
	return len(j.levels) - 1
}

// PopTo pops levels until the stack depth equals the given value.
func (j *journal) PopTo(depth int) {
	j.levels = j.levels[:depth]
}

// Depth returns the stack depth.
func (j *journal) Depth() int {
	return len(j.levels)
}

// Get gets the value for the given key. The uppermost write wins; keys never
// written fall through to the source.
func (j *journal) Get(key storageKey) (rlp.RawValue, error) {
	for i := len(j.levels) - 1; i >= 0; i-- {
		if v, ok := j.levels[i].kvs[key]; ok {
			return v, nil
		}
	}
	return j.src(key)
}

// Put puts a key/value pair into the top level.
// It panics when the stack is empty.
func (j *journal) Put(key storageKey, value rlp.RawValue) {
	j.levels[len(j.levels)-1].kvs[key] = value
}

// Changes iterates over the net effect of all levels, bottom up. Later writes
// to the same key override earlier ones.
func (j *journal) Changes(cb func(storageKey, rlp.RawValue)) {
	flattened := make(map[storageKey]rlp.RawValue)
	for _, lvl := range j.levels {
		for k, v := range lvl.kvs {
			flattened[k] = v
		}
	}
	for k, v := range flattened {
		cb(k, v)
	}
}
