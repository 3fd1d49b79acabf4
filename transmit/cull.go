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

// Йоу, чат! А тепер головне - як ми ховаємо моделі гравців!
// Движок вже порахував, що кожному клієнту відправити в цьому тіку.
// Ми проходимо по кожному спостерігачу і гасимо біти пішаків,
// яких він бачити не повинен. Встановлювати біти ми не вміємо взагалі,
// тому після нас набір може тільки зменшитись.

package transmit

import (
	"go.uber.org/zap"

	"HidePlayers/world"
)

// Info - типізований вигляд одного CCheckTransmitInfo на цей тік
// Живе тільки під час виклику хука, зберігати його не можна
type Info struct {
	Slot     world.Slot
	Entities *BitVec
}

// Toggles повертає чи гравець увімкнув приховування моделей
type Toggles interface {
	Enabled(slot world.Slot) bool
}

// Result - скільки бітів погашено за один виклик
type Result struct {
	Observers int // скільки спостерігачів реально оброблено
	Dead      int // біти мертвих пішаків
	Policy    int // біти, погашені політикою приховування
}

// Culler застосовує політику приховування до набору передачі
type Culler struct {
	log     *zap.Logger
	roster  world.Roster
	toggles Toggles
}

func NewCuller(log *zap.Logger, roster world.Roster, toggles Toggles) *Culler {
	return &Culler{log: log, roster: roster, toggles: toggles}
}

// Apply обробляє всі блоки тіку і повертає статистику
// Будь-яка нерозв'язна пара просто пропускається, тік ніколи не переривається
func (c *Culler) Apply(infos []Info, mode world.PolicyMode) (res Result) {
	if len(infos) == 0 {
		return
	}
	players := c.roster.Players()
	for _, info := range infos {
		if info.Entities == nil {
			continue
		}
		observer, ok := c.roster.PlayerBySlot(info.Slot)
		if !ok || !observer.Participant() || observer.Pawn == nil {
			continue
		}
		res.Observers++
		// спостерігачі завжди бачать весь ростер
		if observer.Spectating() {
			continue
		}
		hide := c.toggles.Enabled(observer.Slot)
		for _, candidate := range players {
			if candidate == nil || candidate.Slot == observer.Slot || !candidate.Participant() {
				continue
			}
			pawn := candidate.Pawn
			if pawn == nil {
				continue
			}
			index := int(pawn.Index())
			// трупи і регдоли не передаємо ніколи
			if pawn.LifeState() != world.LifeAlive {
				if exclude(info.Entities, index) {
					res.Dead++
				}
				continue
			}
			if world.ShouldHide(observer, candidate, hide, mode) && exclude(info.Entities, index) {
				res.Policy++
			}
		}
	}
	if res.Dead+res.Policy > 0 {
		c.log.Debug("Culled transmit set",
			zap.Int("observers", res.Observers),
			zap.Int("dead", res.Dead),
			zap.Int("policy", res.Policy),
			zap.Stringer("mode", mode),
		)
	}
	return
}

// exclude гасить біт і повідомляє, чи він був встановлений до цього
func exclude(v *BitVec, index int) bool {
	if !v.IsSet(index) {
		return false
	}
	v.Clear(index)
	return true
}
