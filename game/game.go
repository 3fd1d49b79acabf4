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
	"fmt"
	"time"

	"go.uber.org/zap"

	"HidePlayers/bridge"
	"HidePlayers/hook"
	"HidePlayers/metrics"
	"HidePlayers/transmit"
	"HidePlayers/world"
)

const (
	ModuleName         = "HidePlayers"
	ModuleVersion      = "1.0.0"
	commandDescription = "Hide players models"
)

// Game is the plugin instance. All callbacks run on the engine's main thread.
type Game struct {
	log     *zap.Logger
	chatLog *zap.Logger

	config  Config
	engine  world.Engine
	hooks   hook.Registry
	metrics *metrics.Metrics
	lang    *Localizer

	hide   hideList
	states *stateWatcher
	culler *transmit.Culler

	handles     []hook.Handle
	command     string
	eventsBound bool
}

func NewGame(log *zap.Logger, config Config, engine world.Engine, hooks hook.Registry, m *metrics.Metrics) *Game {
	g := &Game{
		log:     log.Named("game"),
		chatLog: log.Named("chat"),

		config:  config,
		engine:  engine,
		hooks:   hooks,
		metrics: m,

		states: newStateWatcher(),
	}
	g.lang = g.loadLanguage(config.Language)
	g.culler = transmit.NewCuller(log.Named("transmit"), engine, &g.hide)
	return g
}

// loadLanguage falls back to English when the configured language is missing.
func (g *Game) loadLanguage(language string) *Localizer {
	l, err := NewLocalizer(language)
	if err == nil {
		return l
	}
	g.log.Warn("Load language fail, using en", zap.String("language", language), zap.Error(err))
	l, err = NewLocalizer("en")
	if err != nil {
		g.log.Panic("embedded en language is broken", zap.Error(err))
	}
	return l
}

// Load installs both post-hooks, the lifecycle handlers and the chat command.
func (g *Game) Load() error {
	if g.handles != nil {
		return nil
	}
	for _, h := range []struct {
		id hook.FunctionID
		cb hook.Callback
	}{
		{hook.StateTransition, g.stateTransition},
		{hook.CheckTransmit, g.checkTransmit},
	} {
		handle, err := g.hooks.RegisterPost(h.id, h.cb)
		if err != nil {
			g.unhook()
			return fmt.Errorf("hook %s: %w", h.id, err)
		}
		g.handles = append(g.handles, handle)
	}

	if !g.eventsBound {
		g.engine.HandleConnect(g.OnPlayerConnect)
		g.engine.HandleDisconnect(g.OnPlayerDisconnect)
		g.eventsBound = true
	}

	g.command = g.config.Command
	g.engine.AddCommand(g.command, commandDescription, g.handleHideCommand)

	g.log.Info("Plugin loaded",
		zap.String("version", ModuleVersion),
		zap.String("command", g.command),
		zap.Stringer("hidden", g.config.Hidden),
	)
	return nil
}

// Unload removes everything Load installed.
func (g *Game) Unload() {
	if g.handles == nil {
		return
	}
	g.unhook()
	g.engine.RemoveCommand(g.command)
	g.command = ""
	g.log.Info("Plugin unloaded")
}

func (g *Game) unhook() {
	for _, h := range g.handles {
		g.hooks.UnregisterPost(h)
	}
	g.handles = nil
}

// OnConfigParsed applies a freshly loaded config. An outdated version is
// only reported, the new config is used regardless.
func (g *Game) OnConfigParsed(config Config) {
	if config.Version < CurrentConfigVersion {
		g.log.Warn("Update plugin config", zap.Int("version", CurrentConfigVersion), zap.Int("current", config.Version))
	}
	if config.Language != g.config.Language {
		g.lang = g.loadLanguage(config.Language)
	}
	if g.handles != nil && config.Command != g.command {
		g.engine.RemoveCommand(g.command)
		g.command = config.Command
		g.engine.AddCommand(g.command, commandDescription, g.handleHideCommand)
	}
	g.config = config
}

// Config returns the config in use.
func (g *Game) Config() Config { return g.config }

// HideEnabled reports the slot's hide toggle.
func (g *Game) HideEnabled(slot world.Slot) bool { return g.hide.Enabled(slot) }

func (g *Game) OnPlayerConnect(slot world.Slot) { g.resetSlot(slot) }

func (g *Game) OnPlayerDisconnect(slot world.Slot) { g.resetSlot(slot) }

func (g *Game) resetSlot(slot world.Slot) {
	g.hide.Reset(slot)
	g.states.Reset(slot)
}

// checkTransmit runs after CheckTransmit(server, infoList, infoCount, ...).
func (g *Game) checkTransmit(args hook.Args) {
	start := time.Now()
	infos := bridge.TransmitInfos(
		hook.Arg[uintptr](args, 1),
		hook.Arg[int](args, 2),
		uintptr(g.config.GameData.CheckTransmitPlayerSlot),
	)
	res := g.culler.Apply(infos, g.config.Hidden)
	g.metrics.Culled(res.Dead, res.Policy, time.Since(start))
}

// stateTransition runs after StateTransition(pawn, newState).
func (g *Game) stateTransition(args hook.Args) {
	pawn, ok := g.engine.PawnFromHandle(hook.Arg[uintptr](args, 0))
	if !ok {
		return
	}
	slot, ok := pawn.Controller()
	if !ok {
		return
	}
	player, ok := g.engine.PlayerBySlot(slot)
	if !ok {
		return
	}
	state := world.PlayerState(hook.Arg[uint32](args, 1))
	last := g.states.Last(slot)
	if g.states.Observe(slot, state) {
		g.log.Debug("Observer mode transition",
			zap.Uint8("slot", uint8(slot)),
			zap.Stringer("from", last),
			zap.Stringer("to", state),
		)
		g.forceFullUpdate(player)
	}
}

// forceFullUpdate makes the engine resend everything to the player and
// teleports the pawn onto its own eye angles so the client camera resyncs.
func (g *Game) forceFullUpdate(p *world.Player) {
	if p == nil || p.Pawn == nil {
		return
	}
	if c, ok := g.engine.ClientBySlot(p.Slot); ok {
		c.ForceFullUpdate()
	}
	angles := p.Pawn.EyeAngles()
	p.Pawn.Teleport(nil, &angles, nil)
	g.metrics.FullUpdate()
}
