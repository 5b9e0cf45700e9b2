// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaults

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/slots"
)

var (
	slotEntries = hearth.BytesToBytes32([]byte("vaults-entries"))
	headKey     = hearth.Blake2b([]byte("vaults-head"))
	tailKey     = hearth.Blake2b([]byte("vaults-tail"))
)

// Registry is the approved payout-destination set. Approval state is a
// membership flag checked on every weight validation; the linked list only
// serves enumeration.
type Registry struct {
	context *slots.Context
	entries *slots.Mapping[hearth.Address, *entry]
}

// New creates a new instance.
func New(context *slots.Context) *Registry {
	return &Registry{
		context: context,
		entries: slots.NewMapping[hearth.Address, *entry](context, slotEntries),
	}
}

func (r *Registry) getEntry(vault hearth.Address) (*entry, error) {
	e, err := r.entries.Get(vault)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vault entry")
	}
	return e, nil
}

func (r *Registry) setEntry(vault hearth.Address, e *entry) error {
	if err := r.entries.Set(vault, e); err != nil {
		return errors.Wrap(err, "failed to set vault entry")
	}
	return nil
}

func (r *Registry) getAddressPtr(key hearth.Bytes32) (addr *hearth.Address, err error) {
	err = r.context.State().DecodeStorage(r.context.Address(), key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &addr)
	})
	return
}

func (r *Registry) setAddressPtr(key hearth.Bytes32, addr *hearth.Address) error {
	return r.context.State().EncodeStorage(r.context.Address(), key, func() ([]byte, error) {
		if addr == nil {
			return nil, nil
		}
		return rlp.EncodeToBytes(addr)
	})
}

// Approve marks the vault as an approved destination for the given asset,
// appending it to the list on first sight. It reports whether the approval
// state changed.
func (r *Registry) Approve(vault, asset hearth.Address) (bool, error) {
	e, err := r.getEntry(vault)
	if err != nil {
		return false, err
	}
	if !e.IsEmpty() {
		changed := !e.Approved
		e.Approved = true
		e.Asset = asset
		if err := r.setEntry(vault, e); err != nil {
			return false, err
		}
		return changed, nil
	}

	e.Asset = asset
	e.Approved = true

	tailPtr, err := r.getAddressPtr(tailKey)
	if err != nil {
		return false, err
	}
	e.Prev = tailPtr

	if err := r.setAddressPtr(tailKey, &vault); err != nil {
		return false, err
	}
	if tailPtr == nil {
		if err := r.setAddressPtr(headKey, &vault); err != nil {
			return false, err
		}
	} else {
		tailEntry, err := r.getEntry(*tailPtr)
		if err != nil {
			return false, err
		}
		tailEntry.Next = &vault
		if err := r.setEntry(*tailPtr, tailEntry); err != nil {
			return false, err
		}
	}

	if err := r.setEntry(vault, e); err != nil {
		return false, err
	}
	return true, nil
}

// Revoke clears the vault's approval. The entry stays listed so the vault's
// history remains enumerable. It reports whether the approval state changed.
func (r *Registry) Revoke(vault hearth.Address) (bool, error) {
	e, err := r.getEntry(vault)
	if err != nil {
		return false, err
	}
	if e.IsEmpty() || !e.Approved {
		return false, nil
	}
	e.Approved = false
	if err := r.setEntry(vault, e); err != nil {
		return false, err
	}
	return true, nil
}

// IsApproved reports whether the vault is currently an approved destination.
func (r *Registry) IsApproved(vault hearth.Address) (bool, error) {
	e, err := r.getEntry(vault)
	if err != nil {
		return false, err
	}
	return e.Approved, nil
}

// Get returns the vault's record and whether it is known at all.
func (r *Registry) Get(vault hearth.Address) (*Vault, bool, error) {
	e, err := r.getEntry(vault)
	if err != nil {
		return nil, false, err
	}
	if e.IsEmpty() {
		return nil, false, nil
	}
	return &Vault{Address: vault, Asset: e.Asset, Approved: e.Approved}, true, nil
}

// First returns the address of the first known vault.
func (r *Registry) First() (*hearth.Address, error) {
	return r.getAddressPtr(headKey)
}

// Next returns the address of the vault after the given one.
func (r *Registry) Next(vault hearth.Address) (*hearth.Address, error) {
	e, err := r.getEntry(vault)
	if err != nil {
		return nil, err
	}
	return e.Next, nil
}

// All lists all known vaults in approval order.
func (r *Registry) All() ([]Vault, error) {
	ptr, err := r.getAddressPtr(headKey)
	if err != nil {
		return nil, err
	}
	var all []Vault
	for ptr != nil {
		e, err := r.getEntry(*ptr)
		if err != nil {
			return nil, err
		}
		all = append(all, Vault{Address: *ptr, Asset: e.Asset, Approved: e.Approved})
		ptr = e.Next
	}
	return all, nil
}
