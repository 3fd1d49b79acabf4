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
	"embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lang/*.yaml
var langFiles embed.FS

// Localizer holds the chat messages of one language.
type Localizer struct {
	messages map[string]string
}

// NewLocalizer loads lang/<language>.yaml.
func NewLocalizer(language string) (*Localizer, error) {
	data, err := langFiles.ReadFile("lang/" + language + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", language, err)
	}
	l := &Localizer{}
	if err := yaml.Unmarshal(data, &l.messages); err != nil {
		return nil, fmt.Errorf("language %q: %w", language, err)
	}
	return l, nil
}

// Get returns the message for key with {0}, {1}, ... replaced by args.
// An unknown key is returned as is.
func (l *Localizer) Get(key string, args ...string) string {
	msg, ok := l.messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
