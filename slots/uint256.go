// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/hearthchain/hearth/hearth"
)

// Uint256 is a storage slot holding an unsigned integer, similar to storing
// an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     hearth.Bytes32
}

func NewUint256(context *Context, pos hearth.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	value := new(big.Int)
	err := u.context.state.DecodeStorage(u.context.address, u.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, value)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (u *Uint256) Set(value *big.Int) error {
	return u.context.state.EncodeStorage(u.context.address, u.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// GetUint32 reads the slot as an uint32, the width of block heights and
// basis-point values.
func (u *Uint256) GetUint32() (uint32, error) {
	v, err := u.Get()
	if err != nil {
		return 0, err
	}
	return uint32(v.Uint64()), nil
}

// SetUint32 writes an uint32 into the slot.
func (u *Uint256) SetUint32(value uint32) error {
	return u.Set(new(big.Int).SetUint64(uint64(value)))
}

// Has returns whether the slot has ever been written. A stored zero still
// counts as written.
func (u *Uint256) Has() (bool, error) {
	raw, err := u.context.state.GetRawStorage(u.context.address, u.pos)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func (u *Uint256) Add(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(stored.Add(stored, value))
}

func (u *Uint256) Sub(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(stored.Sub(stored, value))
}
