// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"github.com/hearthchain/hearth/hearth"
	"github.com/hearthchain/hearth/state"
)

// Context binds a storage namespace (an address) to a state instance.
// All slot helpers of one subsystem share a single context.
type Context struct {
	address hearth.Address
	state   *state.State
}

func NewContext(address hearth.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() hearth.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
