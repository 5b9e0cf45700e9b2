// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package director

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/hearthchain/hearth/director/allocation"
	"github.com/hearthchain/hearth/director/commission"
	"github.com/hearthchain/hearth/director/params"
	"github.com/hearthchain/hearth/director/reverts"
	"github.com/hearthchain/hearth/director/vaults"
	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/log"
	"github.com/hearthchain/hearth/metrics"
	"github.com/hearthchain/hearth/slots"
	"github.com/hearthchain/hearth/state"
)

var logger = log.WithContext("pkg", "director")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	metricAllocationsQueued    = metrics.LazyLoadCounter("allocation_queued_count")
	metricAllocationsActivated = metrics.LazyLoadCounter("allocation_activated_count")
	metricCommissionsQueued    = metrics.LazyLoadCounter("commission_queued_count")
	metricCommissionsActivated = metrics.LazyLoadCounter("commission_activated_count")
	metricCommandRejects       = metrics.LazyLoadCounterVec("command_reject_count", []string{"command"})
	metricAllocationWeights    = metrics.LazyLoadHistogram("allocation_weight_count", metrics.BucketWeights)
)

// VaultResolver resolves the canonical registered vault for an asset.
// Backed by the external vault registry/factory collaborator.
type VaultResolver interface {
	ResolveVault(asset hearth.Address) (hearth.Address, error)
}

// OperatorResolver resolves the account controlling a validator public key.
// Backed by the external identity-lookup collaborator.
type OperatorResolver interface {
	ResolveOperator(val hearth.PubKey) (hearth.Address, error)
}

// HeightSource is the logical clock. Commands read the current block height
// from it at the point they apply.
type HeightSource interface {
	BlockNumber() uint32
}

// Options wires the external collaborators and roles.
type Options struct {
	Authority   hearth.Address // admin commands
	Distributor hearth.Address // allocation activation trigger
	Registry    VaultResolver
	Identity    OperatorResolver
	Heights     HeightSource
	Listener    Listener // optional
}

// Director is the authority instance of the reward-direction subsystem. It
// answers which reward split and commission rate is authoritative for each
// validator and enforces the rules for changing that answer.
//
// Commands are serialized by an internal mutex and apply all-or-nothing via
// state checkpoints; queries may run concurrently.
type Director struct {
	mu sync.RWMutex

	state *state.State

	params      *params.Store
	vaults      *vaults.Registry
	allocations *allocation.Service
	commissions *commission.Service

	authority   hearth.Address
	distributor hearth.Address
	registry    VaultResolver
	identity    OperatorResolver
	heights     HeightSource
	listener    Listener
}

// New creates a new instance rooted at the given storage address.
func New(addr hearth.Address, st *state.State, opts Options) *Director {
	sctx := slots.NewContext(addr, st)

	return &Director{
		state:       st,
		params:      params.New(sctx),
		vaults:      vaults.New(sctx),
		allocations: allocation.New(sctx),
		commissions: commission.New(sctx),
		authority:   opts.Authority,
		distributor: opts.Distributor,
		registry:    opts.Registry,
		identity:    opts.Identity,
		heights:     opts.Heights,
		listener:    opts.Listener,
	}
}

// runCommand serializes a state transition and discards every journaled
// write when it rejects.
func (d *Director) runCommand(name string, fn func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cp := d.state.NewCheckpoint()
	if err := fn(); err != nil {
		d.state.RevertTo(cp)
		metricCommandRejects().AddWithLabel(1, map[string]string{"command": name})
		return err
	}
	return nil
}

func (d *Director) checkAuthority(caller hearth.Address) error {
	if caller != d.authority {
		return reverts.ErrNotAuthority
	}
	return nil
}

func (d *Director) checkOperator(caller hearth.Address, val hearth.PubKey) error {
	operator, err := d.identity.ResolveOperator(val)
	if err != nil {
		return errors.Wrap(err, "failed to resolve operator")
	}
	if operator != caller {
		return reverts.ErrNotOperator
	}
	return nil
}

func (d *Director) limits() (allocation.Limits, error) {
	maxNum, err := d.params.MaxNumWeights()
	if err != nil {
		return allocation.Limits{}, err
	}
	maxWeight, err := d.params.MaxWeightPerVault()
	if err != nil {
		return allocation.Limits{}, err
	}
	return allocation.Limits{
		MaxNumWeights:     maxNum,
		MaxWeightPerVault: maxWeight,
	}, nil
}

//
// Administrative commands - authority only
//

// ApplyConfig writes the initial global parameters. Typically called once at
// bootstrap, before any allocation exists.
func (d *Director) ApplyConfig(cfg Config) error {
	return d.runCommand("apply_config", func() error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := d.params.SetMaxNumWeights(cfg.MaxNumWeightsPerAllocation); err != nil {
			return err
		}
		if err := d.params.SetMaxWeightPerVault(cfg.MaxWeightPerVault); err != nil {
			return err
		}
		if err := d.params.SetAllocationBlockDelay(cfg.AllocationBlockDelay); err != nil {
			return err
		}
		if err := d.params.SetCommissionChangeDelay(cfg.CommissionChangeDelay); err != nil {
			return err
		}
		if err := d.params.SetCommissionRateCap(cfg.CommissionRateCap); err != nil {
			return err
		}
		return d.checkDefaultStillValid()
	})
}

// checkDefaultStillValid re-validates the default allocation under the
// current (possibly just written) limits.
func (d *Director) checkDefaultStillValid() error {
	limits, err := d.limits()
	if err != nil {
		return err
	}
	return d.allocations.CheckDefault(limits, d.vaults.IsApproved)
}

// SetMaxNumWeights sets the maximum number of weights per allocation.
// Shrinking it below the default allocation's length is rejected.
func (d *Director) SetMaxNumWeights(caller hearth.Address, n uint32) error {
	return d.runCommand("set_max_num_weights", func() error {
		if err := d.checkAuthority(caller); err != nil {
			return err
		}
		if err := d.params.SetMaxNumWeights(n); err != nil {
			return err
		}
		if err := d.checkDefaultStillValid(); err != nil {
			return err
		}
		logger.Info("set max num weights", "value", n)
		d.emit(ParamSet{Name: "maxNumWeightsPerAllocation", Value: n})
		return nil
	})
}

// SetMaxWeightPerVault sets the per-vault weight cap. Lowering it below the
// default allocation's largest weight is rejected.
func (d *Director) SetMaxWeightPerVault(caller hearth.Address, p uint32) error {
	return d.runCommand("set_max_weight_per_vault", func() error {
		if err := d.checkAuthority(caller); err != nil {
			return err
		}
		if err := d.params.SetMaxWeightPerVault(p); err != nil {
			return err
		}
		if err := d.checkDefaultStillValid(); err != nil {
			return err
		}
		logger.Info("set max weight per vault", "value", p)
		d.emit(ParamSet{Name: "maxWeightPerVault", Value: p})
		return nil
	})
}

// SetAllocationStagingDelay sets the allocation staging delay.
func (d *Director) SetAllocationStagingDelay(caller hearth.Address, blocks uint32) error {
	return d.runCommand("set_allocation_staging_delay", func() error {
		if err := d.checkAuthority(caller); err != nil {
			return err
		}
		if err := d.params.SetAllocationBlockDelay(blocks); err != nil {
			return err
		}
		logger.Info("set allocation staging delay", "blocks", blocks)
		d.emit(ParamSet{Name: "allocationBlockDelay", Value: blocks})
		return nil
	})
}

// SetCommissionStagingDelay sets the commission staging delay.
func (d *Director) SetCommissionStagingDelay(caller hearth.Address, blocks uint32) error {
	return d.runCommand("set_commission_staging_delay", func() error {
		if err := d.checkAuthority(caller); err != nil {
			return err
		}
		if err := d.params.SetCommissionChangeDelay(blocks); err != nil {
			return err
		}
		logger.Info("set commission staging delay", "blocks", blocks)
		d.emit(ParamSet{Name: "commissionChangeDelay", Value: blocks})
		return nil
	})
}

// SetCommissionRateCap sets the governable commission cap. Committed rates
// above it are clamped on read, not rewritten.
func (d *Director) SetCommissionRateCap(caller hearth.Address, rateCap uint32) error {
	return d.runCommand("set_commission_rate_cap", func() error {
		if err := d.checkAuthority(caller); err != nil {
			return err
		}
		if err := d.params.SetCommissionRateCap(rateCap); err != nil {
			return err
		}
		logger.Info("set commission rate cap", "value", rateCap)
		d.emit(ParamSet{Name: "commissionRateCap", Value: rateCap})
		return nil
	})
}

// SetVaultApproval flips a destination's approval. Approval requires the
// registry to confirm the destination is the canonical vault for its asset.
// Revocation that would invalidate the default allocation is rejected.
func (d *Director) SetVaultApproval(caller hearth.Address, vault, asset hearth.Address, approved bool) error {
	return d.runCommand("set_vault_approval", func() error {
		if err := d.checkAuthority(caller); err != nil {
			return err
		}
		if approved {
			canonical, err := d.registry.ResolveVault(asset)
			if err != nil {
				return errors.Wrap(err, "failed to resolve vault")
			}
			if canonical != vault {
				return reverts.ErrNotRegistryVault
			}
			if _, err := d.vaults.Approve(vault, asset); err != nil {
				return err
			}
		} else {
			if _, err := d.vaults.Revoke(vault); err != nil {
				return err
			}
			if err := d.checkDefaultStillValid(); err != nil {
				return err
			}
		}
		logger.Info("set vault approval", "vault", vault, "approved", approved)
		d.emit(VaultApprovalSet{Vault: vault, Asset: asset, Approved: approved})
		return nil
	})
}

// SetDefaultAllocation replaces the system-wide fallback allocation. It takes
// effect immediately; there is no staging delay for the default.
func (d *Director) SetDefaultAllocation(caller hearth.Address, weights []allocation.Weight) error {
	return d.runCommand("set_default_allocation", func() error {
		if err := d.checkAuthority(caller); err != nil {
			return err
		}
		limits, err := d.limits()
		if err != nil {
			return err
		}
		if err := d.allocations.SetDefault(weights, limits, d.vaults.IsApproved); err != nil {
			return err
		}
		logger.Info("set default allocation", "weights", len(weights))
		d.emit(DefaultAllocationSet{Weights: weights})
		return nil
	})
}

//
// Validator commands
//

// QueueAllocation stages a reward allocation for the validator. Only the
// controlling operator may queue.
func (d *Director) QueueAllocation(
	caller hearth.Address,
	val hearth.PubKey,
	startBlock uint32,
	weights []allocation.Weight,
) error {
	logger.Debug("queueing allocation", "validator", val.AbbrevString(), "startBlock", startBlock)

	return d.runCommand("queue_allocation", func() error {
		if err := d.checkOperator(caller, val); err != nil {
			return err
		}
		limits, err := d.limits()
		if err != nil {
			return err
		}
		delay, err := d.params.AllocationBlockDelay()
		if err != nil {
			return err
		}
		if err := d.allocations.Queue(val, startBlock, weights, d.heights.BlockNumber(), delay, limits, d.vaults.IsApproved); err != nil {
			logger.Info("queue allocation failed", "validator", val.AbbrevString(), "error", err)
			return err
		}

		metricAllocationsQueued().Add(1)
		metricAllocationWeights().Observe(int64(len(weights)))
		logger.Info("queued allocation", "validator", val.AbbrevString(), "startBlock", startBlock)
		d.emit(AllocationQueued{Validator: val, StartBlock: startBlock, Weights: weights})
		return nil
	})
}

// ActivateQueuedAllocation promotes the validator's queued allocation when
// its start block is reached. Only the distributor may trigger it. When
// nothing is ready the call is a silent no-op; the distributor polls once per
// cycle it manages.
func (d *Director) ActivateQueuedAllocation(caller hearth.Address, val hearth.PubKey) error {
	return d.runCommand("activate_queued_allocation", func() error {
		if caller != d.distributor {
			return reverts.ErrNotDistributor
		}
		activated, err := d.allocations.Activate(val, d.heights.BlockNumber())
		if err != nil {
			return err
		}
		if activated == nil {
			return nil
		}

		metricAllocationsActivated().Add(1)
		logger.Info("activated allocation", "validator", val.AbbrevString(), "startBlock", activated.StartBlock)
		d.emit(AllocationActivated{Validator: val, StartBlock: activated.StartBlock, Weights: activated.Weights})
		return nil
	})
}

// ActivateReadyAllocations runs the activation trigger for a batch of
// validators, one distributor cycle's worth.
func (d *Director) ActivateReadyAllocations(caller hearth.Address, vals []hearth.PubKey) error {
	for _, val := range vals {
		if err := d.ActivateQueuedAllocation(caller, val); err != nil {
			return err
		}
	}
	return nil
}

// QueueCommission stages a commission rate change for the validator. Only
// the controlling operator may queue.
func (d *Director) QueueCommission(caller hearth.Address, val hearth.PubKey, rate uint32) error {
	logger.Debug("queueing commission change", "validator", val.AbbrevString(), "rate", rate)

	return d.runCommand("queue_commission", func() error {
		if err := d.checkOperator(caller, val); err != nil {
			return err
		}
		queuedBlock := d.heights.BlockNumber()
		if err := d.commissions.Queue(val, rate, queuedBlock); err != nil {
			logger.Info("queue commission failed", "validator", val.AbbrevString(), "error", err)
			return err
		}

		metricCommissionsQueued().Add(1)
		logger.Info("queued commission change", "validator", val.AbbrevString(), "rate", rate)
		d.emit(CommissionQueued{Validator: val, Rate: rate, QueuedBlock: queuedBlock})
		return nil
	})
}

// ActivateQueuedCommission commits the validator's queued commission change
// once the staging delay has elapsed. Any caller may invoke it; unlike
// allocation activation, not-ready is an explicit error.
func (d *Director) ActivateQueuedCommission(val hearth.PubKey) error {
	return d.runCommand("activate_queued_commission", func() error {
		delay, err := d.params.CommissionChangeDelay()
		if err != nil {
			return err
		}
		rateCap, err := d.params.CommissionRateCap()
		if err != nil {
			return err
		}
		oldRate, newRate, err := d.commissions.Activate(val, d.heights.BlockNumber(), delay, rateCap)
		if err != nil {
			logger.Info("activate commission failed", "validator", val.AbbrevString(), "error", err)
			return err
		}

		metricCommissionsActivated().Add(1)
		logger.Info("activated commission change", "validator", val.AbbrevString(), "oldRate", oldRate, "newRate", newRate)
		d.emit(CommissionActivated{Validator: val, OldRate: oldRate, NewRate: newRate})
		return nil
	})
}

//
// Queries - no state change
//

// GetActiveAllocation returns the authoritative allocation for the
// validator: its active entry when still valid under current limits and
// whitelist, otherwise the default allocation.
func (d *Director) GetActiveAllocation(val hearth.PubKey) (*allocation.RewardAllocation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	limits, err := d.limits()
	if err != nil {
		return nil, err
	}
	return d.allocations.Active(val, limits, d.vaults.IsApproved)
}

// GetRawActiveAllocation returns the stored active entry without
// revalidation or fallback.
func (d *Director) GetRawActiveAllocation(val hearth.PubKey) (*allocation.RewardAllocation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.allocations.RawActive(val)
}

// GetQueuedAllocation returns the validator's queued allocation, empty when
// none.
func (d *Director) GetQueuedAllocation(val hearth.PubKey) (*allocation.RewardAllocation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.allocations.Queued(val)
}

// GetDefaultAllocation returns the global default allocation.
func (d *Director) GetDefaultAllocation() (*allocation.RewardAllocation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.allocations.Default()
}

// IsQueuedAllocationReady reports whether the validator's queued allocation
// can activate at the given block.
func (d *Director) IsQueuedAllocationReady(val hearth.PubKey, atBlock uint32) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.allocations.IsQueuedReady(val, atBlock)
}

// IsSystemReady reports whether the subsystem can direct rewards, i.e. a
// default allocation has been configured.
func (d *Director) IsSystemReady() (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.allocations.IsDefaultSet()
}

// GetCommission returns the validator's effective commission rate, clamped
// to the current cap.
func (d *Director) GetCommission(val hearth.PubKey) (uint32, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rateCap, err := d.params.CommissionRateCap()
	if err != nil {
		return 0, err
	}
	return d.commissions.Rate(val, rateCap)
}

// GetQueuedCommission returns the validator's pending commission change, or
// nil when none is queued.
func (d *Director) GetQueuedCommission(val hearth.PubKey) (*commission.QueuedChange, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.commissions.Queued(val)
}

// ComputeIncentiveShare computes the operator's cut of an incentive-token
// amount at the validator's effective commission rate, truncating toward
// zero.
func (d *Director) ComputeIncentiveShare(val hearth.PubKey, amount *big.Int) (*big.Int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rateCap, err := d.params.CommissionRateCap()
	if err != nil {
		return nil, err
	}
	return d.commissions.OperatorShare(val, amount, rateCap)
}

// IsVaultApproved reports whether the destination is currently approved.
func (d *Director) IsVaultApproved(vault hearth.Address) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.vaults.IsApproved(vault)
}

// Vaults lists all known vaults in approval order, including revoked ones.
func (d *Director) Vaults() ([]vaults.Vault, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.vaults.All()
}

// MaxNumWeights returns the current maximum number of weights per allocation.
func (d *Director) MaxNumWeights() (uint32, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.params.MaxNumWeights()
}

// MaxWeightPerVault returns the current per-vault weight cap.
func (d *Director) MaxWeightPerVault() (uint32, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.params.MaxWeightPerVault()
}

// AllocationStagingDelay returns the current allocation staging delay.
func (d *Director) AllocationStagingDelay() (uint32, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.params.AllocationBlockDelay()
}

// CommissionStagingDelay returns the current commission staging delay.
func (d *Director) CommissionStagingDelay() (uint32, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.params.CommissionChangeDelay()
}

// CommissionRateCap returns the current governable commission cap.
func (d *Director) CommissionRateCap() (uint32, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.params.CommissionRateCap()
}
