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
	"strings"
	"testing"

	"github.com/leighmacdonald/steamid/v4/steamid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"HidePlayers/hook"
	"HidePlayers/host"
	"HidePlayers/metrics"
	"HidePlayers/world"
)

type harness struct {
	host  *host.Host
	hooks *hook.Table
	game  *Game
	m     *metrics.Metrics
	logs  *observer.ObservedLogs
}

func newHarness(t *testing.T, config Config) *harness {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	hooks := hook.NewTable()
	h := host.New(zap.NewNop(), hooks, host.Options{})
	m := metrics.New()
	g := NewGame(log, config, h, hooks, m)
	if err := g.Load(); err != nil {
		t.Fatal(err)
	}
	return &harness{host: h, hooks: hooks, game: g, m: m, logs: logs}
}

// two terrorists in 0,1 and two counter-terrorists in 2,3
func (s *harness) teams(t *testing.T) {
	t.Helper()
	teams := []world.Team{world.TeamTerrorist, world.TeamTerrorist, world.TeamCounterTerrorist, world.TeamCounterTerrorist}
	for i, team := range teams {
		if _, err := s.host.Connect(world.Slot(i), "bot", steamid.New(int64(76561197960265728)+int64(i)), team); err != nil {
			t.Fatal(err)
		}
	}
}

func (s *harness) expectMetric(t *testing.T, name, expected string) {
	t.Helper()
	if err := testutil.GatherAndCompare(s.m.Registry(), strings.NewReader(expected), name); err != nil {
		t.Error(err)
	}
}

func (s *harness) hide(t *testing.T, slot world.Slot) {
	t.Helper()
	if !s.host.Say(slot, "!hidemodels") {
		t.Fatal("hide command not registered")
	}
}

func TestGame_Load(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	if s.hooks.Len(hook.CheckTransmit) != 1 || s.hooks.Len(hook.StateTransition) != 1 {
		t.Fatal("Load must install both post-hooks")
	}
	// повторний Load нічого не дублює
	if err := s.game.Load(); err != nil {
		t.Fatal(err)
	}
	if s.hooks.Len(hook.CheckTransmit) != 1 {
		t.Error("second Load duplicated hooks")
	}
	if s.logs.FilterMessage("Plugin loaded").Len() != 1 {
		t.Error("expected one load log line")
	}

	s.game.Unload()
	if s.hooks.Len(hook.CheckTransmit) != 0 || s.hooks.Len(hook.StateTransition) != 0 {
		t.Error("Unload must remove both post-hooks")
	}
	if s.host.Console("css_hidemodels") {
		t.Error("Unload must remove the command")
	}

	if err := s.game.Load(); err != nil {
		t.Fatal(err)
	}
	if s.hooks.Len(hook.CheckTransmit) != 1 || !s.host.Console("css_hidemodels") {
		t.Error("reload should install everything again")
	}
}

func TestGame_PolicyModes(t *testing.T) {
	for _, tt := range []struct {
		mode  world.PolicyMode
		sees1 bool // тіммейт
		sees2 bool // ворог
	}{
		{world.HideAll, false, false},
		{world.HideTeam, false, true},
		{world.HideEnemy, true, false},
	} {
		t.Run(tt.mode.String(), func(t *testing.T) {
			config := DefaultConfig()
			config.Hidden = tt.mode
			s := newHarness(t, config)
			s.teams(t)
			s.hide(t, 0)

			snap := s.host.Tick()
			if !s.host.SeesPlayer(snap, 0, 0) {
				t.Error("observer must keep its own pawn")
			}
			if got := s.host.SeesPlayer(snap, 0, 1); got != tt.sees1 {
				t.Errorf("sees teammate = %v, want %v", got, tt.sees1)
			}
			if got := s.host.SeesPlayer(snap, 0, 2); got != tt.sees2 {
				t.Errorf("sees enemy = %v, want %v", got, tt.sees2)
			}
			// інші гравці приховування не вмикали
			for _, target := range []world.Slot{0, 1, 2, 3} {
				if !s.host.SeesPlayer(snap, 3, target) {
					t.Errorf("slot 3 lost pawn %d", target)
				}
			}
		})
	}
}

func TestGame_ToggleTwice(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)
	s.hide(t, 0)
	s.hide(t, 0)
	if s.game.HideEnabled(0) {
		t.Fatal("second toggle must restore the original value")
	}
	snap := s.host.Tick()
	if snap.Count(0) != 4 {
		t.Errorf("observer sees %d pawns, want 4", snap.Count(0))
	}
	s.expectMetric(t, "hideplayers_toggles_total", `
		# HELP hideplayers_toggles_total Hide command toggles by resulting state
		# TYPE hideplayers_toggles_total counter
		hideplayers_toggles_total{state="off"} 1
		hideplayers_toggles_total{state="on"} 1
	`)
}

func TestGame_DeadAlwaysHidden(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)
	if err := s.host.SetLife(2, world.LifeDead); err != nil {
		t.Fatal(err)
	}

	snap := s.host.Tick()
	for _, viewer := range []world.Slot{0, 1, 3} {
		if s.host.SeesPlayer(snap, viewer, 2) {
			t.Errorf("slot %d sees a dead pawn", viewer)
		}
	}
	if !s.host.SeesPlayer(snap, 2, 2) {
		t.Error("a dead player still receives its own pawn")
	}
	if !s.host.SeesPlayer(snap, 0, 1) {
		t.Error("alive pawns stay when the toggle is off")
	}
}

func TestGame_SpectatorSeesEveryone(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)
	s.hide(t, 0)
	if err := s.host.SetLife(2, world.LifeDead); err != nil {
		t.Fatal(err)
	}
	if err := s.host.SetState(0, world.StateObserverMode); err != nil {
		t.Fatal(err)
	}

	snap := s.host.Tick()
	if snap.Count(0) != 4 {
		t.Errorf("spectating observer sees %d pawns, want 4", snap.Count(0))
	}
}

func TestGame_SourceTVUntouched(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)
	if _, err := s.host.ConnectHLTV(10); err != nil {
		t.Fatal(err)
	}
	if err := s.host.SetLife(1, world.LifeDead); err != nil {
		t.Fatal(err)
	}
	snap := s.host.Tick()
	if snap.Count(10) != 4 {
		t.Errorf("SourceTV sees %d pawns, want 4", snap.Count(10))
	}
}

func TestGame_ObserverTransitions(t *testing.T) {
	for _, tt := range []struct {
		name   string
		states []world.PlayerState
		want   int
	}{
		{"enter and leave", []world.PlayerState{world.StateWelcome, world.StateObserverMode, world.StateWelcome}, 2},
		{"no observer", []world.PlayerState{world.StateWelcome, world.StateActive, world.StateDeathAnim}, 0},
		{"repeat observer", []world.PlayerState{world.StateObserverMode, world.StateObserverMode}, 1},
		{"death to observer", []world.PlayerState{world.StateActive, world.StateDeathAnim, world.StateObserverMode, world.StateActive}, 2},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := newHarness(t, DefaultConfig())
			s.teams(t)
			pawn := s.host.Pawn(1)
			pawn.Look(world.Rotation{12, 34, 0})
			origin := pawn.Origin()

			for _, state := range tt.states {
				if err := s.host.SetState(1, state); err != nil {
					t.Fatal(err)
				}
			}

			if got := s.host.Client(1).FullUpdates(); got != tt.want {
				t.Errorf("full updates = %d, want %d", got, tt.want)
			}
			if got := pawn.Teleports(); got != tt.want {
				t.Errorf("teleports = %d, want %d", got, tt.want)
			}
			if pawn.Origin() != origin || pawn.EyeAngles() != (world.Rotation{12, 34, 0}) {
				t.Error("resync teleport must not move the pawn")
			}
			s.expectMetric(t, "hideplayers_full_updates_total", fmt.Sprintf(`
				# HELP hideplayers_full_updates_total Forced full updates after observer mode transitions
				# TYPE hideplayers_full_updates_total counter
				hideplayers_full_updates_total %d
			`, tt.want))
			for _, other := range []world.Slot{0, 2, 3} {
				if s.host.Client(other).FullUpdates() != 0 {
					t.Errorf("slot %d got a full update", other)
				}
			}
		})
	}
}

func TestGame_FullUpdateReachesSnapshot(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)
	_ = s.host.SetState(3, world.StateObserverMode)
	snap := s.host.Tick()
	if !snap.FullUpdate(3) || snap.FullUpdate(2) {
		t.Error("only slot 3 should get a full snapshot")
	}
	if s.host.Tick().FullUpdate(3) {
		t.Error("full update is sent once")
	}
}

func TestGame_ReconnectResets(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)
	s.hide(t, 1)
	_ = s.host.SetState(1, world.StateObserverMode)

	if err := s.host.Disconnect(1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.host.Connect(1, "new", steamid.SteamID{}, world.TeamTerrorist); err != nil {
		t.Fatal(err)
	}
	if s.game.HideEnabled(1) {
		t.Error("new occupant must start with hiding off")
	}
	if s.game.states.Last(1) != world.StateWelcome {
		t.Error("new occupant must start in welcome state")
	}
	// вихід з welcome в active не є переходом спостерігача
	_ = s.host.SetState(1, world.StateActive)
	if s.host.Client(1).FullUpdates() != 0 {
		t.Error("stale observer state leaked into the new connection")
	}
}

func TestGame_UnresolvedPawn(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)
	s.hooks.Invoke(hook.StateTransition, hook.Args{0xdead, uintptr(world.StateObserverMode)})
	s.hooks.Invoke(hook.StateTransition, hook.Args{})
	s.hooks.Invoke(hook.CheckTransmit, hook.Args{})
	for slot := world.Slot(0); slot < 4; slot++ {
		if s.host.Client(slot).FullUpdates() != 0 {
			t.Errorf("slot %d got a full update", slot)
		}
	}
}

func TestGame_OnConfigParsed(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)

	config := DefaultConfig()
	config.Version = 0
	config.Command = "css_hide"
	config.Hidden = world.HideEnemy
	config.Language = "uk"
	s.game.OnConfigParsed(config)

	warn := s.logs.FilterMessage("Update plugin config")
	if warn.Len() != 1 {
		t.Fatalf("expected one outdated config warning, got %d", warn.Len())
	}
	fields := warn.All()[0].ContextMap()
	if fields["version"] != int64(CurrentConfigVersion) || fields["current"] != int64(0) {
		t.Errorf("warning fields = %v", fields)
	}
	if s.game.Config().Hidden != world.HideEnemy {
		t.Error("outdated config is still applied")
	}
	if s.host.Say(0, "!hidemodels") {
		t.Error("old command must be removed")
	}
	if !s.host.Say(0, "!hide") {
		t.Fatal("new command must be registered")
	}
	if msg := s.host.Client(0).LastMessage(); msg != "[HidePlayers] Приховування моделей гравців увімкнено" {
		t.Errorf("chat = %q", msg)
	}

	s.game.OnConfigParsed(DefaultConfig())
	if s.logs.FilterMessage("Update plugin config").Len() != 1 {
		t.Error("current version must not warn")
	}
}

func TestGame_UnknownLanguageFallsBack(t *testing.T) {
	config := DefaultConfig()
	config.Language = "xx"
	s := newHarness(t, config)
	if s.logs.FilterMessage("Load language fail, using en").Len() != 1 {
		t.Error("expected a fallback warning")
	}
	if s.game.lang.Get("Plugin.Enable") != "enabled" {
		t.Error("fallback language must be en")
	}
}
