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

// Йоу, чат! Це бітсет передачі - 16384 біти, по одному на кожну сутність.
// Біт 1 означає "ця сутність поїде цьому клієнту в цьому тіку".
// Пам'ять належить движку, тому layout має співпадати біт-в-біт:
// масив 32-бітних слів, індекс слова = i >> 5, біт у слові = 1 << (i & 31).

package transmit

import "math/bits"

const (
	log2BitsPerInt = 5
	bitsPerInt     = 1 << log2BitsPerInt

	// MaxEdictBits - скільки біт потрібно на індекс сутності
	MaxEdictBits = 14
	// MaxEdicts - ємність бітсету
	MaxEdicts = 1 << MaxEdictBits
	// Words - кількість 32-бітних слів у бітсеті
	Words = MaxEdicts / bitsPerInt
)

// BitVec - вікно на чужий масив слів
// Вміє тільки гасити біти і читати їх, встановлювати - ніколи
type BitVec struct {
	ints []uint32
}

// View загортає слова движка у BitVec, нічого не копіюючи
// Якщо слів менше ніж Words, індекси за межами масиву просто ігноруються
func View(words []uint32) *BitVec {
	return &BitVec{ints: words}
}

func (v *BitVec) inRange(bitNum int) bool {
	return v != nil && bitNum >= 0 && bitNum < MaxEdicts && bitNum>>log2BitsPerInt < len(v.ints)
}

// Clear гасить біт bitNum, за межами діапазону нічого не робить
func (v *BitVec) Clear(bitNum int) {
	if !v.inRange(bitNum) {
		return
	}
	v.ints[bitNum>>log2BitsPerInt] &^= 1 << (bitNum & (bitsPerInt - 1))
}

// IsSet читає біт bitNum, за межами діапазону повертає false
func (v *BitVec) IsSet(bitNum int) bool {
	if !v.inRange(bitNum) {
		return false
	}
	return v.ints[bitNum>>log2BitsPerInt]&(1<<(bitNum&(bitsPerInt-1))) != 0
}

// Count повертає кількість встановлених бітів
func (v *BitVec) Count() (n int) {
	if v == nil {
		return 0
	}
	for _, w := range v.ints {
		n += bits.OnesCount32(w)
	}
	return
}
