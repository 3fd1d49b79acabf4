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

package hook

import (
	"fmt"

	"github.com/google/uuid"
)

// Table is an in-process Registry. The simulated host calls Invoke where a
// native detour would call back into the plugin.
// All methods must be called from the engine's main thread.
type Table struct {
	hooks map[FunctionID][]entry
}

type entry struct {
	id uuid.UUID
	cb Callback
}

func NewTable() *Table {
	return &Table{hooks: make(map[FunctionID][]entry)}
}

func (t *Table) RegisterPost(id FunctionID, cb Callback) (Handle, error) {
	if !Known(id) {
		return Handle{}, fmt.Errorf("%w: %s", ErrUnknownFunction, id)
	}
	if cb == nil {
		return Handle{}, fmt.Errorf("nil callback for %s", id)
	}
	h := Handle{Function: id, ID: uuid.New()}
	t.hooks[id] = append(t.hooks[id], entry{id: h.ID, cb: cb})
	return h, nil
}

// UnregisterPost removes h. Unknown handles are ignored.
func (t *Table) UnregisterPost(h Handle) {
	entries := t.hooks[h.Function]
	for i := range entries {
		if entries[i].id == h.ID {
			t.hooks[h.Function] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of post-hooks on id.
func (t *Table) Len(id FunctionID) int { return len(t.hooks[id]) }

// Invoke runs every post-hook on id in registration order.
func (t *Table) Invoke(id FunctionID, args Args) {
	for _, e := range t.hooks[id] {
		e.cb(args)
	}
}
