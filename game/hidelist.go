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

package game

import (
	"golang.org/x/time/rate"

	"HidePlayers/world"
)

// hideList keeps, per slot, whether the player hides other players' models.
// Only the chat command and the lifecycle handlers write it.
type hideList struct {
	hide     [world.MaxPlayers]bool
	limiters [world.MaxPlayers]*rate.Limiter
}

// Toggle flips the slot's flag and returns the new value.
func (l *hideList) Toggle(slot world.Slot) bool {
	if !slot.Valid() {
		return false
	}
	l.hide[slot] = !l.hide[slot]
	return l.hide[slot]
}

func (l *hideList) Enabled(slot world.Slot) bool {
	return slot.Valid() && l.hide[slot]
}

// Reset clears the flag and the command limiter for a new connection.
func (l *hideList) Reset(slot world.Slot) {
	if !slot.Valid() {
		return
	}
	l.hide[slot] = false
	l.limiters[slot] = nil
}

// limiter returns the slot's command limiter, creating it from cfg.
func (l *hideList) limiter(slot world.Slot, cfg *Limiter) *rate.Limiter {
	if l.limiters[slot] == nil {
		l.limiters[slot] = cfg.Limiter()
	}
	return l.limiters[slot]
}
