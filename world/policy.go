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

package world

import (
	"errors"
	"fmt"
)

// PolicyMode selects whose models a player hides once they turn hiding on.
type PolicyMode uint8

const (
	// HideAll hides every other player.
	HideAll PolicyMode = iota
	// HideTeam hides teammates only.
	HideTeam
	// HideEnemy hides enemies only.
	HideEnemy
)

var ErrUnknownPolicy = errors.New("unknown hide policy")

// ParsePolicyMode accepts the config spelling: @all, @team or @enemy.
func ParsePolicyMode(s string) (PolicyMode, error) {
	switch s {
	case "@all":
		return HideAll, nil
	case "@team":
		return HideTeam, nil
	case "@enemy":
		return HideEnemy, nil
	}
	return HideAll, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (m PolicyMode) String() string {
	switch m {
	case HideAll:
		return "@all"
	case HideTeam:
		return "@team"
	case HideEnemy:
		return "@enemy"
	}
	return fmt.Sprintf("PolicyMode(%d)", uint8(m))
}

func (m PolicyMode) MarshalText() ([]byte, error) {
	if m > HideEnemy {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *PolicyMode) UnmarshalText(text []byte) (err error) {
	*m, err = ParsePolicyMode(string(text))
	return
}

// ShouldHide reports whether observer must not receive candidate's model.
// The caller has already excluded the observer itself, SourceTV and
// candidates without a pawn.
func ShouldHide(observer, candidate *Player, hideEnabled bool, mode PolicyMode) bool {
	if !hideEnabled {
		return false
	}
	switch mode {
	case HideEnemy:
		return observer.Team != candidate.Team
	case HideTeam:
		return observer.Team == candidate.Team
	case HideAll:
		return true
	}
	return false
}
