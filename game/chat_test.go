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
	"testing"
	"time"

	"github.com/leighmacdonald/steamid/v4/steamid"

	"HidePlayers/world"
)

func TestHideCommand_Messages(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)

	s.hide(t, 2)
	if msg := s.host.Client(2).LastMessage(); msg != "[HidePlayers] Hiding player models enabled" {
		t.Errorf("chat = %q", msg)
	}
	s.hide(t, 2)
	if msg := s.host.Client(2).LastMessage(); msg != "[HidePlayers] Hiding player models disabled" {
		t.Errorf("chat = %q", msg)
	}
	if len(s.host.Client(1).Messages()) != 0 {
		t.Error("reply must go only to the invoker")
	}
	if s.logs.FilterMessage("Toggle hide models").Len() != 2 {
		t.Error("expected a log line per toggle")
	}
}

func TestHideCommand_Console(t *testing.T) {
	s := newHarness(t, DefaultConfig())
	s.teams(t)
	if !s.host.Console("css_hidemodels") {
		t.Fatal("command not registered")
	}
	for slot := world.Slot(0); slot < 4; slot++ {
		if s.game.HideEnabled(slot) {
			t.Errorf("console toggled slot %d", slot)
		}
	}
	s.game.handleHideCommand(&world.Player{Slot: world.MaxPlayers}, nil)
}

func TestHideCommand_RateLimit(t *testing.T) {
	config := DefaultConfig()
	config.CommandLimiter = Limiter{Every: duration{time.Hour}, N: 2}
	s := newHarness(t, config)
	s.teams(t)

	s.hide(t, 0)
	s.hide(t, 0)
	s.hide(t, 0)
	if s.game.HideEnabled(0) {
		t.Error("third toggle must be rejected")
	}
	if msg := s.host.Client(0).LastMessage(); msg != "[HidePlayers] Slow down, try again in a moment" {
		t.Errorf("chat = %q", msg)
	}

	// інші слоти мають свій ліміт
	s.hide(t, 1)
	if !s.game.HideEnabled(1) {
		t.Error("slot 1 has its own limiter")
	}

	// перепідключення дає новий ліміт
	if err := s.host.Disconnect(0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.host.Connect(0, "again", steamid.SteamID{}, world.TeamTerrorist); err != nil {
		t.Fatal(err)
	}
	s.hide(t, 0)
	if !s.game.HideEnabled(0) {
		t.Error("reconnect must reset the limiter")
	}
}

func TestHideCommand_Unlimited(t *testing.T) {
	config := DefaultConfig()
	config.CommandLimiter = Limiter{N: 1}
	s := newHarness(t, config)
	s.teams(t)
	for i := 0; i < 11; i++ {
		s.hide(t, 3)
	}
	if !s.game.HideEnabled(3) {
		t.Error("a zero period means no limit")
	}
}
