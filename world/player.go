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

// Йоу, чат! Сьогодні ми розберемо як движок бачить гравця!
// Гравець складається з двох частин: контролера (слот, команда, стан з'єднання)
// і пішака (pawn) - тіла у світі, яке рендериться і має свій life state.
// Ми нічим з цього не володіємо, тільки читаємо те, що дав движок.

package world

import (
	"strconv"

	"github.com/leighmacdonald/steamid/v4/steamid"
)

// MaxPlayers - кількість слотів для з'єднань, слоти нумеруються з нуля
const MaxPlayers = 65

// Slot - стабільний номер з'єднання на весь час його життя
type Slot uint8

// Valid перевіряє чи слот в межах [0, MaxPlayers)
func (s Slot) Valid() bool { return s < MaxPlayers }

// Team - номер команди, як його віддає движок
type Team uint8

const (
	TeamNone Team = iota
	TeamSpectator
	TeamTerrorist
	TeamCounterTerrorist
)

// LifeState пішака
type LifeState uint8

const (
	LifeAlive LifeState = iota
	LifeDying
	LifeDead
	LifeRespawnable
	LifeRespawning
)

func (s LifeState) String() string {
	switch s {
	case LifeAlive:
		return "alive"
	case LifeDying:
		return "dying"
	case LifeDead:
		return "dead"
	case LifeRespawnable:
		return "respawnable"
	case LifeRespawning:
		return "respawning"
	}
	return "LifeState(" + strconv.Itoa(int(s)) + ")"
}

// PlayerState - стан машини станів гравця
// Нас цікавить тільки StateObserverMode, решта - просто "щось інше"
type PlayerState uint32

const (
	StateActive PlayerState = iota
	StateWelcome
	StatePickingTeam
	StatePickingClass
	StateDeathAnim
	StateDeathWaitForKey
	StateObserverMode
	StateGunGameRespawn
	StateDormant
)

var playerStateNames = [...]string{
	StateActive:          "active",
	StateWelcome:         "welcome",
	StatePickingTeam:     "picking_team",
	StatePickingClass:    "picking_class",
	StateDeathAnim:       "death_anim",
	StateDeathWaitForKey: "death_wait_for_key",
	StateObserverMode:    "observer_mode",
	StateGunGameRespawn:  "gungame_respawn",
	StateDormant:         "dormant",
}

func (s PlayerState) String() string {
	if int(s) < len(playerStateNames) {
		return playerStateNames[s]
	}
	return "PlayerState(" + strconv.FormatUint(uint64(s), 10) + ")"
}

// ConnectionState - стан з'єднання контролера
type ConnectionState uint32

const (
	PlayerConnected ConnectionState = iota
	PlayerConnecting
	PlayerReconnecting
	PlayerDisconnecting
	PlayerDisconnected
	PlayerReserved
	PlayerNeverConnected ConnectionState = 0xFFFFFFFF
)

// Player - контролер гравця в ростері
type Player struct {
	Slot      Slot
	Name      string
	SteamID   steamid.SteamID
	Team      Team
	Connected ConnectionState
	// IsHLTV - псевдо-гравець для трансляції (SourceTV), він нічого не рендерить
	IsHLTV bool
	// Pawn може бути nil, наприклад до першого спавну
	Pawn Pawn
}

// FullyConnected повертає true, якщо гравець повністю в грі
func (p *Player) FullyConnected() bool {
	return p != nil && p.Connected == PlayerConnected
}

// Participant - справжній підключений гравець, не SourceTV
func (p *Player) Participant() bool {
	return p.FullyConnected() && !p.IsHLTV
}

// Spectating перевіряє чи камера гравця зараз у режимі спостерігача
func (p *Player) Spectating() bool {
	return p != nil && p.Pawn != nil && p.Pawn.PlayerState() == StateObserverMode
}
