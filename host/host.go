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

// Йоу, чат! Сьогодні ми розберемо наш маленький "движок"!
// Справжній сервер гри живе в C++, а нам треба десь запускати плагін
// і тестувати його. Host тримає ростер, пішаків і з'єднання,
// рахує набір передачі на кожен тік і викликає post-хуки так само,
// як це робив би справжній детур: з сирими аргументами.

package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leighmacdonald/steamid/v4/steamid"
	"go.uber.org/zap"

	"HidePlayers/client"
	"HidePlayers/hook"
	"HidePlayers/world"
)

var (
	ErrInvalidSlot  = errors.New("invalid slot")
	ErrSlotOccupied = errors.New("slot occupied")
	ErrNoPlayer     = errors.New("no player in slot")
)

const (
	// індекси сутностей пішаків, контролери займають 1..64
	pawnIndexBase = 128
	// фейкові "адреси" пішаків, які движок передає у StateTransition
	pawnHandleBase   = 0x10000000
	pawnHandleStride = 0x1000
)

// Options - налаштування симуляції
type Options struct {
	// На якій відстані движок взагалі передає чужих пішаків, 0 - без обмежень
	ViewDistance float64
}

// Host - однопотоковий симулятор движка. Усі методи треба викликати
// з однієї горутини, так само як движок викликає хуки з головного потоку.
type Host struct {
	log   *zap.Logger
	hooks *hook.Table
	opts  Options

	players  [world.MaxPlayers]*world.Player
	clients  [world.MaxPlayers]*client.Client
	pawns    map[uintptr]*Pawn
	commands map[string]world.CommandCallback

	onConnect    []func(world.Slot)
	onDisconnect []func(world.Slot)

	tick uint64
}

func New(log *zap.Logger, hooks *hook.Table, opts Options) *Host {
	return &Host{
		log:      log,
		hooks:    hooks,
		opts:     opts,
		pawns:    make(map[uintptr]*Pawn),
		commands: make(map[string]world.CommandCallback),
	}
}

// Connect додає гравця в слот і спавнить йому живого пішака в стані welcome
func (h *Host) Connect(slot world.Slot, name string, sid steamid.SteamID, team world.Team) (*world.Player, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if h.players[slot] != nil {
		return nil, fmt.Errorf("%w: %d", ErrSlotOccupied, slot)
	}
	pawn := &Pawn{
		index:  pawnIndexBase + uint32(slot),
		handle: pawnHandleBase + uintptr(slot)*pawnHandleStride,
		slot:   slot,
		life:   world.LifeAlive,
		state:  world.StateWelcome,
		origin: world.Position{float64(slot) * 64, 0, 0},
	}
	p := &world.Player{
		Slot:      slot,
		Name:      name,
		SteamID:   sid,
		Team:      team,
		Connected: world.PlayerConnected,
		Pawn:      pawn,
	}
	h.pawns[pawn.handle] = pawn
	h.join(p)
	return p, nil
}

// ConnectHLTV додає псевдо-гравця SourceTV без пішака
func (h *Host) ConnectHLTV(slot world.Slot) (*world.Player, error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if h.players[slot] != nil {
		return nil, fmt.Errorf("%w: %d", ErrSlotOccupied, slot)
	}
	p := &world.Player{
		Slot:      slot,
		Name:      "SourceTV",
		Team:      world.TeamSpectator,
		Connected: world.PlayerConnected,
		IsHLTV:    true,
	}
	h.join(p)
	return p, nil
}

func (h *Host) join(p *world.Player) {
	h.players[p.Slot] = p
	h.clients[p.Slot] = client.New(h.log.Named("client"), p.Slot)
	h.log.Info("Player join",
		zap.Uint8("slot", uint8(p.Slot)),
		zap.String("name", p.Name),
		zap.String("steamid", p.SteamID.String()),
	)
	for _, fn := range h.onConnect {
		fn(p.Slot)
	}
}

// Disconnect прибирає гравця, його пішака і з'єднання
func (h *Host) Disconnect(slot world.Slot) error {
	p, ok := h.PlayerBySlot(slot)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoPlayer, slot)
	}
	for _, fn := range h.onDisconnect {
		fn(slot)
	}
	if pawn, ok := p.Pawn.(*Pawn); ok {
		delete(h.pawns, pawn.handle)
	}
	h.players[slot] = nil
	h.clients[slot] = nil
	h.log.Info("Player left", zap.Uint8("slot", uint8(slot)))
	return nil
}

// Pawn повертає пішака слоту або nil
func (h *Host) Pawn(slot world.Slot) *Pawn {
	p, ok := h.PlayerBySlot(slot)
	if !ok {
		return nil
	}
	pawn, _ := p.Pawn.(*Pawn)
	return pawn
}

// Client повертає з'єднання слоту або nil
func (h *Host) Client(slot world.Slot) *client.Client {
	if !slot.Valid() {
		return nil
	}
	return h.clients[slot]
}

// SetState переводить пішака в новий стан і викликає post-хуки StateTransition
func (h *Host) SetState(slot world.Slot, state world.PlayerState) error {
	pawn := h.Pawn(slot)
	if pawn == nil {
		return fmt.Errorf("%w: %d", ErrNoPlayer, slot)
	}
	pawn.state = state
	h.hooks.Invoke(hook.StateTransition, hook.Args{pawn.handle, uintptr(state)})
	return nil
}

// SetLife змінює life state пішака (смерть, респавн)
func (h *Host) SetLife(slot world.Slot, life world.LifeState) error {
	pawn := h.Pawn(slot)
	if pawn == nil {
		return fmt.Errorf("%w: %d", ErrNoPlayer, slot)
	}
	pawn.life = life
	return nil
}

func (h *Host) SetTeam(slot world.Slot, team world.Team) error {
	p, ok := h.PlayerBySlot(slot)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoPlayer, slot)
	}
	p.Team = team
	return nil
}

// Say обробляє рядок з чату гравця. "!hidemodels" і "/hidemodels"
// мапляться на команду "css_hidemodels", як у CounterStrikeSharp.
// Повертає true, якщо команду знайдено.
func (h *Host) Say(slot world.Slot, text string) bool {
	p, ok := h.PlayerBySlot(slot)
	if !ok {
		return false
	}
	return h.dispatch(p, text)
}

// Console виконує команду з консолі сервера (без гравця)
func (h *Host) Console(text string) bool {
	return h.dispatch(nil, text)
}

func (h *Host) dispatch(p *world.Player, text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	name := fields[0]
	if strings.HasPrefix(name, "!") || strings.HasPrefix(name, "/") {
		name = "css_" + name[1:]
	}
	cb, ok := h.commands[name]
	if !ok {
		return false
	}
	cb(p, fields[1:])
	return true
}

// world.Engine

func (h *Host) PlayerBySlot(slot world.Slot) (*world.Player, bool) {
	if !slot.Valid() || h.players[slot] == nil {
		return nil, false
	}
	return h.players[slot], true
}

func (h *Host) Players() []*world.Player {
	players := make([]*world.Player, 0, world.MaxPlayers)
	for _, p := range h.players {
		if p != nil {
			players = append(players, p)
		}
	}
	return players
}

func (h *Host) AddCommand(name, description string, cb world.CommandCallback) {
	h.commands[name] = cb
	h.log.Debug("Add command", zap.String("name", name), zap.String("description", description))
}

func (h *Host) RemoveCommand(name string) {
	delete(h.commands, name)
}

func (h *Host) HandleConnect(fn func(slot world.Slot)) {
	h.onConnect = append(h.onConnect, fn)
}

func (h *Host) HandleDisconnect(fn func(slot world.Slot)) {
	h.onDisconnect = append(h.onDisconnect, fn)
}

func (h *Host) PawnFromHandle(handle uintptr) (world.Pawn, bool) {
	pawn, ok := h.pawns[handle]
	if !ok {
		return nil, false
	}
	return pawn, true
}

func (h *Host) ClientBySlot(slot world.Slot) (world.NetClient, bool) {
	c := h.Client(slot)
	if c == nil {
		return nil, false
	}
	return c, true
}
