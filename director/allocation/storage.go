// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package allocation

import (
	"github.com/pkg/errors"

	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/slots"
)

var (
	slotActive  = nameToSlot("allocations-active")
	slotQueued  = nameToSlot("allocations-queued")
	slotDefault = nameToSlot("allocations-default")
)

func nameToSlot(name string) hearth.Bytes32 {
	return hearth.BytesToBytes32([]byte(name))
}

// storage is the root storage of per-validator allocation state plus the
// single global default allocation.
type storage struct {
	active       *slots.Mapping[hearth.PubKey, *RewardAllocation]
	queued       *slots.Mapping[hearth.PubKey, *RewardAllocation]
	defaultAlloc *slots.Value[*RewardAllocation]
}

func newStorage(context *slots.Context) *storage {
	return &storage{
		active:       slots.NewMapping[hearth.PubKey, *RewardAllocation](context, slotActive),
		queued:       slots.NewMapping[hearth.PubKey, *RewardAllocation](context, slotQueued),
		defaultAlloc: slots.NewValue[*RewardAllocation](context, slotDefault),
	}
}

func (s *storage) GetActive(val hearth.PubKey) (*RewardAllocation, error) {
	a, err := s.active.Get(val)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active allocation")
	}
	return a, nil
}

func (s *storage) SetActive(val hearth.PubKey, entry *RewardAllocation) error {
	if err := s.active.Set(val, entry); err != nil {
		return errors.Wrap(err, "failed to set active allocation")
	}
	return nil
}

func (s *storage) GetQueued(val hearth.PubKey) (*RewardAllocation, error) {
	a, err := s.queued.Get(val)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get queued allocation")
	}
	return a, nil
}

func (s *storage) SetQueued(val hearth.PubKey, entry *RewardAllocation) error {
	if err := s.queued.Set(val, entry); err != nil {
		return errors.Wrap(err, "failed to set queued allocation")
	}
	return nil
}

func (s *storage) ClearQueued(val hearth.PubKey) error {
	if err := s.queued.Clear(val); err != nil {
		return errors.Wrap(err, "failed to clear queued allocation")
	}
	return nil
}

func (s *storage) GetDefault() (*RewardAllocation, error) {
	a, err := s.defaultAlloc.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default allocation")
	}
	return a, nil
}

func (s *storage) SetDefault(entry *RewardAllocation) error {
	if err := s.defaultAlloc.Set(entry); err != nil {
		return errors.Wrap(err, "failed to set default allocation")
	}
	return nil
}
