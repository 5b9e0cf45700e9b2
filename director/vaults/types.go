// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaults

import (
	"github.com/hearthchain/hearth/hearth"
)

// entry is the stored record of a known vault. Entries are appended to a
// linked list on first approval and stay listed; revocation only clears the
// approval flag.
type entry struct {
	Asset    hearth.Address // the underlying asset the vault pays out for
	Approved bool
	Next     *hearth.Address `rlp:"nil"` // linked list
	Prev     *hearth.Address `rlp:"nil"` // linked list
}

// IsEmpty returns whether the entry can be treated as empty.
// A known vault always carries a non-zero asset.
func (e *entry) IsEmpty() bool {
	return e.Asset.IsZero() && !e.Approved && e.Next == nil && e.Prev == nil
}

// Vault is the external presentation of a known vault.
type Vault struct {
	Address  hearth.Address
	Asset    hearth.Address
	Approved bool
}
