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

// Йоу, чат! Коли гравець заходить у режим спостерігача або виходить з нього,
// клієнт може залишити собі старий кут камери. Тут ми ловимо саме цей
// перехід, щоб потім змусити движок переслати гравцю все з нуля.

package game

import "HidePlayers/world"

// stateWatcher запам'ятовує останній стан кожного слоту
type stateWatcher struct {
	last [world.MaxPlayers]world.PlayerState
}

func newStateWatcher() *stateWatcher {
	w := new(stateWatcher)
	for i := range w.last {
		w.last[i] = world.StateWelcome
	}
	return w
}

// Observe записує новий стан і повертає true, якщо це вхід
// у режим спостерігача або вихід з нього
func (w *stateWatcher) Observe(slot world.Slot, state world.PlayerState) (resync bool) {
	if !slot.Valid() {
		return false
	}
	last := w.last[slot]
	resync = last != state && (last == world.StateObserverMode) != (state == world.StateObserverMode)
	w.last[slot] = state
	return
}

func (w *stateWatcher) Last(slot world.Slot) world.PlayerState {
	if !slot.Valid() {
		return world.StateWelcome
	}
	return w.last[slot]
}

func (w *stateWatcher) Reset(slot world.Slot) {
	if slot.Valid() {
		w.last[slot] = world.StateWelcome
	}
}
