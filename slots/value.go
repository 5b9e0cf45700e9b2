// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/hearthchain/hearth/hearth"
)

// Value is a single RLP-encoded storage slot.
type Value[V any] struct {
	context *Context
	pos     hearth.Bytes32
}

func NewValue[V any](context *Context, pos hearth.Bytes32) *Value[V] {
	return &Value[V]{context: context, pos: pos}
}

func (v *Value[V]) Get() (value V, err error) {
	err = v.context.state.DecodeStorage(v.context.address, v.pos, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (v *Value[V]) Set(value V) error {
	return v.context.state.EncodeStorage(v.context.address, v.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Clear empties the slot.
func (v *Value[V]) Clear() error {
	return v.context.state.EncodeStorage(v.context.address, v.pos, func() ([]byte, error) {
		return nil, nil
	})
}

// Has returns whether the slot holds a non-empty value.
func (v *Value[V]) Has() (bool, error) {
	raw, err := v.context.state.GetRawStorage(v.context.address, v.pos)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}
