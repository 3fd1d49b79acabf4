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

// Package bridge is the only place that reads engine memory directly.
//
// It decodes the raw CheckTransmit arguments into transmit.Info values once
// per call. Nothing decoded here may outlive the hook invocation.
package bridge

import (
	"runtime"
	"unsafe"

	"HidePlayers/transmit"
	"HidePlayers/world"
)

// DefaultSlotOffset is the byte offset of the player slot inside a
// CCheckTransmitInfo for the current engine build ("CheckTransmitPlayerSlot"
// in gamedata).
const DefaultSlotOffset = 576

// NativeInfo has the layout of the head of a CCheckTransmitInfo:
// a CFixedBitVecBase (pointer to the word array) at offset 0 and the
// player slot byte at DefaultSlotOffset.
type NativeInfo struct {
	Entities *[transmit.Words]uint32
	_        [DefaultSlotOffset - unsafe.Sizeof(uintptr(0))]byte
	Slot     uint8
}

// ValidSlotOffset reports whether off can address the slot byte: it must lie
// past the bitset pointer and within a sane block size.
func ValidSlotOffset(off int) bool {
	return off >= int(unsafe.Sizeof(uintptr(0))) && off < 1<<16
}

// TransmitInfos decodes count info block pointers starting at list.
// Null entries and blocks without a bitset are dropped.
func TransmitInfos(list uintptr, count int, slotOffset uintptr) []transmit.Info {
	if list == 0 || count <= 0 {
		return nil
	}
	blocks := unsafe.Slice((*uintptr)(unsafe.Pointer(list)), count)
	infos := make([]transmit.Info, 0, count)
	for _, block := range blocks {
		if block == 0 {
			continue
		}
		words := *(*uintptr)(unsafe.Pointer(block))
		if words == 0 {
			continue
		}
		slot := *(*uint8)(unsafe.Pointer(block + slotOffset))
		infos = append(infos, transmit.Info{
			Slot:     world.Slot(slot),
			Entities: transmit.View(unsafe.Slice((*uint32)(unsafe.Pointer(words)), transmit.Words)),
		})
	}
	return infos
}

// Frame is a batch of NativeInfo blocks laid out the way the engine passes
// them to CheckTransmit: an array of block pointers plus a count.
type Frame struct {
	blocks []*NativeInfo
	list   []uintptr
}

// NewFrame allocates n zeroed blocks.
func NewFrame(n int) *Frame {
	f := &Frame{
		blocks: make([]*NativeInfo, n),
		list:   make([]uintptr, n),
	}
	for i := range f.blocks {
		f.blocks[i] = new(NativeInfo)
		f.list[i] = uintptr(unsafe.Pointer(f.blocks[i]))
	}
	return f
}

func (f *Frame) Len() int { return len(f.blocks) }

func (f *Frame) Block(i int) *NativeInfo { return f.blocks[i] }

// Args returns the info list pointer and count. The frame must be kept
// alive with KeepAlive until the call that receives them returns.
func (f *Frame) Args() (list uintptr, count int) {
	if len(f.list) == 0 {
		return 0, 0
	}
	return uintptr(unsafe.Pointer(&f.list[0])), len(f.list)
}

func (f *Frame) KeepAlive() {
	runtime.KeepAlive(f.blocks)
	runtime.KeepAlive(f.list)
}
