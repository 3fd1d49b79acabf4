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

// Йоу, чат! Зараз розберемо конфігурацію нашого плагіна!
// Тут зберігаються всі налаштування які можна змінити в config.toml

package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/time/rate"

	"HidePlayers/bridge"
	"HidePlayers/world"
)

// CurrentConfigVersion - версія схеми конфігу, яку знає цей білд
const CurrentConfigVersion = 1

// Config - головна структура з налаштуваннями плагіна
// Поля з тегом `toml` читаються з конфіг файлу
type Config struct {
	// Назва чат-команди, наприклад "css_hidemodels"
	Command string `toml:"command"`

	// Кого ховати: @all, @team або @enemy
	Hidden world.PolicyMode `toml:"hidden"`

	// Версія конфігу, старіша версія дає тільки попередження в лог
	Version int `toml:"version"`

	// Мова повідомлень в чаті (файл game/lang/<language>.yaml)
	Language string `toml:"language"`

	// Скільки разів гравець може перемкнути приховування за період
	CommandLimiter Limiter `toml:"command-limiter"`

	GameData GameData `toml:"gamedata"`
}

// GameData - зміщення в структурах движка для поточного білда гри
type GameData struct {
	CheckTransmitPlayerSlot int `toml:"check-transmit-player-slot"`
}

// DefaultConfig повертає конфіг, який пишеться при першому запуску
func DefaultConfig() Config {
	return Config{
		Command:        "css_hidemodels",
		Hidden:         world.HideAll,
		Version:        CurrentConfigVersion,
		Language:       "en",
		CommandLimiter: Limiter{Every: duration{time.Second}, N: 3},
		GameData:       GameData{CheckTransmitPlayerSlot: bridge.DefaultSlotOffset},
	}
}

// ReadConfig читає конфіг з файлу поверх значень за замовчуванням
// Якщо знайдемо невідомі налаштування - повернемо помилку
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err errUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Command) == "" {
		return errors.New("command must not be empty")
	}
	if c.CommandLimiter.N < 1 {
		return fmt.Errorf("command-limiter n must be positive: %d", c.CommandLimiter.N)
	}
	if !bridge.ValidSlotOffset(c.GameData.CheckTransmitPlayerSlot) {
		return fmt.Errorf("invalid gamedata check-transmit-player-slot: %d", c.GameData.CheckTransmitPlayerSlot)
	}
	return nil
}

// errUnknownConfig - це список невідомих налаштувань
type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// Limiter - структура для обмеження частоти дій
// Наприклад: не більше 3 перемикань кожну секунду
type Limiter struct {
	// Як часто відновлюється одна спроба, наприклад "1s"
	Every duration `toml:"every"`

	// Скільки спроб можна накопичити
	N int `toml:"n"`
}

// Limiter перетворює наші налаштування в готовий rate.Limiter
// Нульовий період означає "без обмежень"
func (l *Limiter) Limiter() *rate.Limiter {
	if l.Every.Duration <= 0 {
		return rate.NewLimiter(rate.Inf, max(l.N, 1))
	}
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

// duration - обгортка навколо time.Duration
// Потрібна щоб читати і писати тривалість у конфіг файлі
type duration struct {
	time.Duration
}

// UnmarshalText перетворює текст з конфігу в time.Duration
// Наприклад "5s" -> 5 секунд
func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
