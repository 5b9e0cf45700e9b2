// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package commission

import (
	"github.com/pkg/errors"

	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/slots"
)

var (
	slotCommitted = hearth.BytesToBytes32([]byte("commissions-committed"))
	slotQueued    = hearth.BytesToBytes32([]byte("commissions-queued"))
)

type storage struct {
	committed *slots.Mapping[hearth.PubKey, *Rate]
	queued    *slots.Mapping[hearth.PubKey, *QueuedChange]
}

func newStorage(context *slots.Context) *storage {
	return &storage{
		committed: slots.NewMapping[hearth.PubKey, *Rate](context, slotCommitted),
		queued:    slots.NewMapping[hearth.PubKey, *QueuedChange](context, slotQueued),
	}
}

func (s *storage) GetCommitted(val hearth.PubKey) (*Rate, error) {
	r, err := s.committed.Get(val)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get committed commission")
	}
	return r, nil
}

func (s *storage) SetCommitted(val hearth.PubKey, entry *Rate) error {
	if err := s.committed.Set(val, entry); err != nil {
		return errors.Wrap(err, "failed to set committed commission")
	}
	return nil
}

func (s *storage) GetQueued(val hearth.PubKey) (*QueuedChange, error) {
	q, err := s.queued.Get(val)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get queued commission change")
	}
	return q, nil
}

func (s *storage) HasQueued(val hearth.PubKey) (bool, error) {
	ok, err := s.queued.Has(val)
	if err != nil {
		return false, errors.Wrap(err, "failed to check queued commission change")
	}
	return ok, nil
}

func (s *storage) SetQueued(val hearth.PubKey, entry *QueuedChange) error {
	if err := s.queued.Set(val, entry); err != nil {
		return errors.Wrap(err, "failed to set queued commission change")
	}
	return nil
}

func (s *storage) ClearQueued(val hearth.PubKey) error {
	if err := s.queued.Clear(val); err != nil {
		return errors.Wrap(err, "failed to clear queued commission change")
	}
	return nil
}
