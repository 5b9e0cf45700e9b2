// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package commission

// Rate is a validator operator's committed commission on incentive-token
// revenue, as a numerator out of hearth.FullPercent.
type Rate struct {
	ActivationBlock uint32 // the block at which the rate took effect; 0 means unset
	Value           uint32
}

// IsEmpty returns whether the entry can be treated as empty. A committed rate
// always has a non-zero activation block: it is queuedBlock plus a positive
// staging delay.
func (r *Rate) IsEmpty() bool {
	return r.ActivationBlock == 0
}

// QueuedChange is a proposed rate change waiting out the staging delay.
// The delay is applied from the block at which it was queued, read at
// activation time so later delay changes affect pending entries.
type QueuedChange struct {
	QueuedBlock uint32
	Value       uint32
}
