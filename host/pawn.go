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

package host

import (
	"github.com/go-gl/mathgl/mgl64"

	"HidePlayers/world"
)

// Pawn is the simulated player body.
type Pawn struct {
	index  uint32
	handle uintptr
	slot   world.Slot

	life  world.LifeState
	state world.PlayerState

	origin   world.Position
	angles   world.Rotation
	velocity mgl64.Vec3

	teleports int
}

func (p *Pawn) Index() uint32 { return p.index }
func (p *Pawn) Handle() uintptr { return p.handle }
func (p *Pawn) LifeState() world.LifeState { return p.life }
func (p *Pawn) PlayerState() world.PlayerState { return p.state }
func (p *Pawn) Controller() (world.Slot, bool) { return p.slot, true }
func (p *Pawn) Origin() world.Position { return p.origin }
func (p *Pawn) EyeAngles() world.Rotation { return p.angles }
func (p *Pawn) Velocity() mgl64.Vec3 { return p.velocity }

// Teleports counts Teleport calls.
func (p *Pawn) Teleports() int { return p.teleports }

// Teleport moves the pawn. nil arguments keep the current value and an
// invalid origin is ignored.
func (p *Pawn) Teleport(origin *world.Position, angles *world.Rotation, velocity *mgl64.Vec3) {
	if origin != nil && origin.IsValid() {
		p.origin = *origin
	}
	if angles != nil {
		p.angles = *angles
	}
	if velocity != nil {
		p.velocity = *velocity
	}
	p.teleports++
}

// Look sets the eye angles without counting a teleport.
func (p *Pawn) Look(angles world.Rotation) { p.angles = angles }

// MoveTo sets the origin without counting a teleport.
func (p *Pawn) MoveTo(origin world.Position) { p.origin = origin }
