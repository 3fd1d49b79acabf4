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

package transmit

import (
	"math/rand"
	"testing"
)

func fullWords() []uint32 {
	words := make([]uint32, Words)
	for i := range words {
		words[i] = ^uint32(0)
	}
	return words
}

func TestBitVec_ClearOnlyTouchesOneBit(t *testing.T) {
	for _, i := range []int{0, 1, 31, 32, 33, 1000, MaxEdicts - 32, MaxEdicts - 1} {
		words := fullWords()
		v := View(words)
		v.Clear(i)

		if v.IsSet(i) {
			t.Errorf("bit %d is still set after Clear", i)
		}
		if n := v.Count(); n != MaxEdicts-1 {
			t.Errorf("Clear(%d) left %d bits set, want %d", i, n, MaxEdicts-1)
		}
		if got, want := words[i>>5], ^uint32(1<<(i&31)); got != want {
			t.Errorf("word %d = %#x, want %#x", i>>5, got, want)
		}
	}
}

func TestBitVec_Random(t *testing.T) {
	words := fullWords()
	v := View(words)
	cleared := make(map[int]bool)
	for range 500 {
		i := rand.Intn(MaxEdicts)
		v.Clear(i)
		cleared[i] = true
	}
	for i := 0; i < MaxEdicts; i++ {
		if v.IsSet(i) == cleared[i] {
			t.Fatalf("bit %d: IsSet = %v, cleared = %v", i, v.IsSet(i), cleared[i])
		}
	}
}

func TestBitVec_OutOfRange(t *testing.T) {
	words := fullWords()
	v := View(words)
	for _, i := range []int{-1, -32, MaxEdicts, MaxEdicts + 1, 1 << 20} {
		v.Clear(i)
		if v.IsSet(i) {
			t.Errorf("IsSet(%d) should be false", i)
		}
	}
	for i, w := range words {
		if w != ^uint32(0) {
			t.Fatalf("word %d changed to %#x", i, w)
		}
	}

	// short backing array: indexes past it behave as out of range
	short := View([]uint32{^uint32(0)})
	short.Clear(40)
	if short.IsSet(40) || !short.IsSet(31) {
		t.Error("short view misbehaves")
	}

	var nilVec *BitVec
	nilVec.Clear(3)
	if nilVec.IsSet(3) || nilVec.Count() != 0 {
		t.Error("nil BitVec must be inert")
	}
}
