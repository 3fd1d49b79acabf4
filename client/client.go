// Йоу, чат! Зараз розберемо як працює клієнт в нашому тестовому сервері!
// Це мережеве з'єднання одного гравця з боку движка: воно вміє
// відправити повне оновлення замість дельти і показати рядок в чаті.

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

package client

import (
	// zap - крутий логер для Go
	"go.uber.org/zap"

	"HidePlayers/world"
)

// Client представляє з'єднання підключеного гравця
type Client struct {
	// Логер для цього клієнта
	log *zap.Logger
	// Слот гравця
	slot world.Slot
	// Чи треба в наступному снапшоті відправити все, а не дельту
	fullUpdate bool
	// Скільки разів просили повне оновлення
	fullUpdates int
	// Повідомлення, які гравець побачив у чаті
	chat []string
}

// New створює нове з'єднання для слоту
func New(log *zap.Logger, slot world.Slot) *Client {
	return &Client{
		log:  log.With(zap.Uint8("slot", uint8(slot))),
		slot: slot,
	}
}

// Slot повертає слот гравця
func (c *Client) Slot() world.Slot { return c.slot }

// ForceFullUpdate позначає, що весь мережевий стан треба відправити заново
func (c *Client) ForceFullUpdate() {
	c.fullUpdate = true
	c.fullUpdates++
	c.log.Debug("Force full update")
}

// TakeFullUpdate повертає і скидає прапорець повного оновлення
// Викликається при формуванні снапшоту
func (c *Client) TakeFullUpdate() bool {
	full := c.fullUpdate
	c.fullUpdate = false
	return full
}

// FullUpdates повертає скільки разів просили повне оновлення
func (c *Client) FullUpdates() int { return c.fullUpdates }

// PrintToChat показує повідомлення гравцю
func (c *Client) PrintToChat(msg string) {
	c.chat = append(c.chat, msg)
	c.log.Debug("Chat message", zap.String("msg", msg))
}

// Messages повертає всі повідомлення чату
func (c *Client) Messages() []string { return c.chat }

// LastMessage повертає останнє повідомлення або пустий рядок
func (c *Client) LastMessage() string {
	if len(c.chat) == 0 {
		return ""
	}
	return c.chat[len(c.chat)-1]
}
