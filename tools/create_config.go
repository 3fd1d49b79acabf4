package main

import (
	"flag"
	"os"

	"github.com/BurntSushi/toml"

	"HidePlayers/game"
)

var out = flag.String("o", "config.toml", "Where to write the default config")

func main() {
	flag.Parse()

	// Не перезаписуємо вже існуючий конфіг
	f, err := os.OpenFile(*out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(game.DefaultConfig()); err != nil {
		panic(err)
	}
}
