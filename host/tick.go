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

// Йоу, чат! Сьогодні ми розберемо як працює тік нашого движка!
// На кожному тіку движок для кожного клієнта вирішує, які сутності
// йому передати, і кладе це в бітсет. Потім викликає CheckTransmit
// з масивом всіх блоків, а наш плагін вже після цього гасить зайві біти.

package host

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"HidePlayers/bridge"
	"HidePlayers/hook"
	"HidePlayers/transmit"
	"HidePlayers/world"
)

// Snapshot - результат одного тіку: що реально поїхало кожному клієнту
type Snapshot struct {
	Tick uint64
	sets map[world.Slot]*[transmit.Words]uint32
	full map[world.Slot]bool
}

// Sees повертає true, якщо сутність index поїхала клієнту observer
func (s *Snapshot) Sees(observer world.Slot, index uint32) bool {
	words, ok := s.sets[observer]
	if !ok {
		return false
	}
	return transmit.View(words[:]).IsSet(int(index))
}

// Count повертає кількість сутностей, переданих клієнту
func (s *Snapshot) Count(observer world.Slot) int {
	words, ok := s.sets[observer]
	if !ok {
		return 0
	}
	return transmit.View(words[:]).Count()
}

// FullUpdate повертає true, якщо клієнт отримав повне оновлення
func (s *Snapshot) FullUpdate(slot world.Slot) bool { return s.full[slot] }

// SeesPlayer - зручна перевірка "observer бачить модель target"
func (h *Host) SeesPlayer(s *Snapshot, observer, target world.Slot) bool {
	pawn := h.Pawn(target)
	return pawn != nil && s.Sees(observer, pawn.index)
}

// Tick рахує набори передачі для всіх клієнтів і викликає post-хуки CheckTransmit
func (h *Host) Tick() *Snapshot {
	h.tick++
	players := h.Players()
	snap := &Snapshot{
		Tick: h.tick,
		sets: make(map[world.Slot]*[transmit.Words]uint32, len(players)),
		full: make(map[world.Slot]bool),
	}

	frame := bridge.NewFrame(len(players))
	for i, observer := range players {
		words := new([transmit.Words]uint32)
		h.natural(observer, words)
		block := frame.Block(i)
		block.Entities = words
		block.Slot = uint8(observer.Slot)
		snap.sets[observer.Slot] = words
	}

	list, count := frame.Args()
	// сигнатура: CheckTransmit(server, infoList, infoCount, ...)
	h.hooks.Invoke(hook.CheckTransmit, hook.Args{0, list, uintptr(count), 0, 0, 0, 0, 0})
	frame.KeepAlive()

	for _, p := range players {
		if c := h.clients[p.Slot]; c != nil && c.TakeFullUpdate() {
			snap.full[p.Slot] = true
			h.log.Debug("Send full snapshot", zap.Uint8("slot", uint8(p.Slot)), zap.Uint64("tick", h.tick))
		}
	}
	return snap
}

// natural - правила видимості самого движка: свій пішак завжди,
// чужі пішаки в межах ViewDistance
func (h *Host) natural(observer *world.Player, words *[transmit.Words]uint32) {
	var eye world.Position
	if observer.Pawn != nil {
		eye = observer.Pawn.Origin()
	}
	for _, p := range h.players {
		if p == nil || p.Pawn == nil {
			continue
		}
		index := p.Pawn.Index()
		if index >= transmit.MaxEdicts {
			continue
		}
		if p.Slot != observer.Slot && !observer.IsHLTV && h.opts.ViewDistance > 0 &&
			p.Pawn.Origin().Distance(eye) > h.opts.ViewDistance {
			continue
		}
		words[index>>5] |= 1 << (index & 31)
	}
}

// Run крутить тіки з частотою tickRate, поки не скасують ctx
// onTick викликається після кожного тіку в тій самій горутині
func (h *Host) Run(ctx context.Context, tickRate float64, onTick func(*Snapshot)) error {
	limiter := rate.NewLimiter(rate.Limit(tickRate), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		snap := h.Tick()
		if onTick != nil {
			onTick(snap)
		}
	}
}
