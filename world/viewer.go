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

package world

// Roster is the read-only view of connected players.
type Roster interface {
	// PlayerBySlot returns the player occupying slot, if any.
	PlayerBySlot(slot Slot) (*Player, bool)
	// Players lists every player currently in the roster, in slot order.
	Players() []*Player
}

// NetClient is the engine's per-client network connection.
type NetClient interface {
	// ForceFullUpdate marks all networked state for a full (non-delta) resend.
	ForceFullUpdate()
	PrintToChat(msg string)
}

// CommandCallback is invoked for a chat command. player is nil when the
// command came from the server console.
type CommandCallback func(player *Player, args []string)

// Commands registers chat/console commands.
type Commands interface {
	AddCommand(name, description string, cb CommandCallback)
	RemoveCommand(name string)
}

// Events delivers per-slot lifecycle notifications.
type Events interface {
	HandleConnect(fn func(slot Slot))
	HandleDisconnect(fn func(slot Slot))
}

// Engine is everything the plugin consumes from the host game server.
type Engine interface {
	Roster
	Commands
	Events
	// PawnFromHandle resolves the raw pawn argument of a native call.
	PawnFromHandle(handle uintptr) (Pawn, bool)
	ClientBySlot(slot Slot) (NetClient, bool)
}
