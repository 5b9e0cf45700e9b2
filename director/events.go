// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package director

import (
	"github.com/hearthchain/hearth/director/allocation"
	"github.com/hearthchain/hearth/hearth"
)

// Listener receives notifications of applied state transitions. Events are
// delivered synchronously after the transition is journaled, within the same
// unit of work; a nil listener disables delivery.
type Listener interface {
	OnEvent(event any)
}

// AllocationQueued is emitted when a reward allocation is staged.
type AllocationQueued struct {
	Validator  hearth.PubKey
	StartBlock uint32
	Weights    []allocation.Weight
}

// AllocationActivated is emitted when a queued allocation becomes active.
type AllocationActivated struct {
	Validator  hearth.PubKey
	StartBlock uint32
	Weights    []allocation.Weight
}

// DefaultAllocationSet is emitted when the authority replaces the default
// allocation.
type DefaultAllocationSet struct {
	Weights []allocation.Weight
}

// CommissionQueued is emitted when a commission rate change is staged.
type CommissionQueued struct {
	Validator   hearth.PubKey
	Rate        uint32
	QueuedBlock uint32
}

// CommissionActivated is emitted when a queued commission change commits.
type CommissionActivated struct {
	Validator hearth.PubKey
	OldRate   uint32
	NewRate   uint32
}

// VaultApprovalSet is emitted when a vault's approval flag changes.
type VaultApprovalSet struct {
	Vault    hearth.Address
	Asset    hearth.Address
	Approved bool
}

// ParamSet is emitted when a global parameter changes.
type ParamSet struct {
	Name  string
	Value uint32
}

func (d *Director) emit(event any) {
	if d.listener != nil {
		d.listener.OnEvent(event)
	}
}
