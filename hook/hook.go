// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package hook describes post-hooks on native engine functions.
//
// How a function is found and detoured is up to the host; the plugin only
// sees positional raw arguments after the original function has returned.
package hook

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// FunctionID names a hookable native function, as in the gamedata file.
type FunctionID string

const (
	// CheckTransmit(server, infoList, infoCount, ...) computes the per-client
	// transmit sets for one network tick.
	CheckTransmit FunctionID = "CheckTransmit"
	// StateTransition(pawn, newState) moves a player pawn between states.
	StateTransition FunctionID = "StateTransition"
)

// Known reports whether id is a function the host can hook.
func Known(id FunctionID) bool {
	return id == CheckTransmit || id == StateTransition
}

var ErrUnknownFunction = errors.New("unknown hook function")

// Args are the raw positional arguments of a native call.
type Args []uintptr

// Arg decodes argument i as an integer of type T.
// A missing argument decodes as zero.
func Arg[T constraints.Integer](args Args, i int) T {
	if i < 0 || i >= len(args) {
		return 0
	}
	return T(args[i])
}

// Callback runs after the hooked function returns.
type Callback func(args Args)

// Handle identifies one registration.
type Handle struct {
	Function FunctionID
	ID       uuid.UUID
}

func (h Handle) String() string {
	return fmt.Sprintf("%s/%s", h.Function, h.ID)
}

// Registry installs and removes post-hooks.
type Registry interface {
	RegisterPost(id FunctionID, cb Callback) (Handle, error)
	UnregisterPost(h Handle)
}
