// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a rule violation that rejects a command outright, as opposed
// to an internal storage failure.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// IsRevertErr reports whether err (or its cause chain) is a revert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Authorization.
var (
	ErrNotAuthority   = New("caller is not the authority")
	ErrNotOperator    = New("caller is not the validator operator")
	ErrNotDistributor = New("caller is not the distributor")
)

// Weight-set validation.
var (
	ErrTooManyWeights                    = New("too many weights")
	ErrDuplicateReceiver                 = New("duplicate receiving vault")
	ErrInvalidWeight                     = New("invalid weight")
	ErrNotWhitelistedVault               = New("vault is not whitelisted")
	ErrInvalidRewardAllocationWeights    = New("reward allocation weights do not sum to 100%")
	ErrInvalidateDefaultRewardAllocation = New("change would invalidate the default reward allocation")
)

// Staging conflicts and timing.
var (
	ErrRewardAllocationAlreadyQueued       = New("reward allocation already queued")
	ErrInvalidStartBlock                   = New("start block is not beyond the staging delay")
	ErrCommissionChangeAlreadyQueued       = New("commission change already queued")
	ErrCommissionNotQueuedOrDelayNotPassed = New("commission not queued or delay not passed")
	ErrInvalidCommissionValue              = New("commission rate exceeds the cap")
)

// Parameter bounds.
var (
	ErrMaxNumWeightsIsZero          = New("max number of weights is zero")
	ErrInvalidMaxWeightPerVault     = New("max weight per vault out of range")
	ErrAllocationBlockDelayTooLarge = New("allocation staging delay too large")
	ErrInvalidCommissionChangeDelay = New("commission staging delay out of range")
	ErrInvalidCommissionRateCap     = New("commission rate cap out of range")
	ErrNotRegistryVault             = New("destination is not the registered vault for its asset")
)
