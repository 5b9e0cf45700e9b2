// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package director

import (
	"gopkg.in/yaml.v3"

	"github.com/hearthchain/hearth/director/reverts"
	"github.com/hearthchain/hearth/hearth"
)

// Config carries the initial global parameters, typically loaded from the
// host's genesis or node configuration.
type Config struct {
	MaxNumWeightsPerAllocation uint32 `yaml:"maxNumWeightsPerAllocation"`
	MaxWeightPerVault          uint32 `yaml:"maxWeightPerVault"`
	AllocationBlockDelay       uint32 `yaml:"allocationBlockDelay"`
	CommissionChangeDelay      uint32 `yaml:"commissionChangeDelay"`
	CommissionRateCap          uint32 `yaml:"commissionRateCap"`
}

// DefaultConfig returns the protocol's initial parameter values.
func DefaultConfig() Config {
	return Config{
		MaxNumWeightsPerAllocation: hearth.InitialMaxNumWeightsPerAllocation,
		MaxWeightPerVault:          hearth.InitialMaxWeightPerVault,
		AllocationBlockDelay:       hearth.InitialAllocationBlockDelay,
		CommissionChangeDelay:      hearth.InitialCommissionChangeDelay,
		CommissionRateCap:          hearth.MaxCommissionRate,
	}
}

// ParseConfig decodes a yaml config.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every value against its parameter bound.
func (c *Config) Validate() error {
	if c.MaxNumWeightsPerAllocation == 0 {
		return reverts.ErrMaxNumWeightsIsZero
	}
	if c.MaxWeightPerVault == 0 || c.MaxWeightPerVault > hearth.FullPercent {
		return reverts.ErrInvalidMaxWeightPerVault
	}
	if c.AllocationBlockDelay > hearth.MaxAllocationBlockDelay {
		return reverts.ErrAllocationBlockDelayTooLarge
	}
	if c.CommissionChangeDelay == 0 || c.CommissionChangeDelay > hearth.MaxCommissionChangeDelay {
		return reverts.ErrInvalidCommissionChangeDelay
	}
	if c.CommissionRateCap == 0 || c.CommissionRateCap > hearth.MaxCommissionRate {
		return reverts.ErrInvalidCommissionRateCap
	}
	return nil
}
