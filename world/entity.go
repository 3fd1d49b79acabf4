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

// Йоу, чат! Тут у нас пішак (pawn) - тіло гравця у світі.
// Кожен пішак має індекс сутності: саме цей індекс ми гасимо
// в бітсеті передачі, щоб модель не пішла конкретному клієнту.

package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pawn - сутність движка, якою керує гравець
type Pawn interface {
	// Index - індекс сутності, він же номер біта в бітсеті передачі
	Index() uint32
	LifeState() LifeState
	PlayerState() PlayerState
	// Controller - зворотне посилання на слот власника
	Controller() (Slot, bool)
	Origin() Position
	EyeAngles() Rotation
	// Teleport переносить пішака, nil аргументи залишають значення як є
	Teleport(origin *Position, angles *Rotation, velocity *mgl64.Vec3)
}

// Position - позиція у 3D просторі (x, y, z)
type Position mgl64.Vec3

// Rotation - кути повороту (pitch, yaw, roll), QAngle в термінах движка
type Rotation mgl64.Vec3

// Vec3 повертає позицію як вектор mathgl
func (p Position) Vec3() mgl64.Vec3 { return mgl64.Vec3(p) }

// Distance між двома позиціями
func (p Position) Distance(other Position) float64 {
	return p.Vec3().Sub(other.Vec3()).Len()
}

// IsValid перевіряє чи координати позиції є допустимими числами
// Повертає true якщо жодна координата не NaN і не Inf
func (p *Position) IsValid() bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsNaN(p[2]) &&
		!math.IsInf(p[0], 0) && !math.IsInf(p[1], 0) && !math.IsInf(p[2], 0)
}
