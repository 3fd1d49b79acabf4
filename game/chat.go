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

// Йоу, чат! Тут живе наша єдина команда - перемикач приховування моделей.
// Гравець пише її в чат, ми перевертаємо його прапорець і відповідаємо
// повідомленням на його мові.

package game

import (
	"go.uber.org/zap"

	"HidePlayers/world"
)

// handleHideCommand перемикає приховування для гравця, що викликав команду
// З консолі сервера (player == nil) команда нічого не робить
func (g *Game) handleHideCommand(player *world.Player, _ []string) {
	if player == nil || !player.Slot.Valid() {
		return
	}
	logger := g.chatLog.With(
		zap.Uint8("slot", uint8(player.Slot)),
		zap.String("steamid", player.SteamID.String()),
	)
	tag := g.lang.Get("Plugin.Tag")

	// захист від спаму командою
	if !g.hide.limiter(player.Slot, &g.config.CommandLimiter).Allow() {
		logger.Debug("Hide command rate limited")
		g.printToChat(player, g.lang.Get("Player.Wait", tag))
		return
	}

	enabled := g.hide.Toggle(player.Slot)
	g.metrics.Toggle(enabled)
	logger.Info("Toggle hide models", zap.Bool("enabled", enabled))

	state := g.lang.Get("Plugin.Disable")
	if enabled {
		state = g.lang.Get("Plugin.Enable")
	}
	g.printToChat(player, g.lang.Get("Player.Hide", tag, state))
}

func (g *Game) printToChat(player *world.Player, msg string) {
	if c, ok := g.engine.ClientBySlot(player.Slot); ok {
		c.PrintToChat(msg)
	}
}
