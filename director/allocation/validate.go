// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allocation

import (
	"github.com/pkg/errors"

	"github.com/hearthchain/hearth/director/reverts"
	"github.com/hearthchain/hearth/hearth"
)

// ValidateWeights decides acceptance of a proposed weight list against the
// current limits and whitelist. All checks must hold jointly; the order below
// only determines which violation is surfaced first.
func ValidateWeights(weights []Weight, limits Limits, approved ApprovalFunc) error {
	if uint32(len(weights)) > limits.MaxNumWeights {
		return reverts.ErrTooManyWeights
	}

	// duplicate tracking is scoped to this single call
	seen := make(map[hearth.Address]struct{}, len(weights))

	var sum uint64
	for _, w := range weights {
		if _, ok := seen[w.Receiver]; ok {
			return errors.Wrapf(reverts.ErrDuplicateReceiver, "vault %s", w.Receiver)
		}
		seen[w.Receiver] = struct{}{}

		if w.Percent == 0 || w.Percent > limits.MaxWeightPerVault {
			return errors.Wrapf(reverts.ErrInvalidWeight, "vault %s weight %d", w.Receiver, w.Percent)
		}

		ok, err := approved(w.Receiver)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(reverts.ErrNotWhitelistedVault, "vault %s", w.Receiver)
		}

		sum += uint64(w.Percent)
	}

	if sum != uint64(hearth.FullPercent) {
		return reverts.ErrInvalidRewardAllocationWeights
	}
	return nil
}

// IsStillValid re-checks an already-accepted weight list against the current
// limits and whitelist. Global parameters may have shrunk since acceptance,
// so an active allocation can turn invalid without any write to it.
// The check is side-effect free and O(len(weights)).
func IsStillValid(weights []Weight, limits Limits, approved ApprovalFunc) (bool, error) {
	if uint32(len(weights)) > limits.MaxNumWeights {
		return false, nil
	}
	for _, w := range weights {
		if w.Percent > limits.MaxWeightPerVault {
			return false, nil
		}
		ok, err := approved(w.Receiver)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
