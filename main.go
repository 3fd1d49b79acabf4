// Йоу, чат! Сьогодні ми будемо розбирати як ховати моделі гравців в CS2!
// Це ліцензія AGPL - означає що наш код має бути відкритим, і всі модифікації теж.
// Справжній плагін вантажить движок гри, а ця програма запускає його
// в нашому маленькому симуляторі сервера з ботами, щоб подивитись як воно працює.

// Пакет main - це точка входу нашої програми, звідси все починається!
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	// steamid - ідентифікатори гравців Steam
	"github.com/leighmacdonald/steamid/v4/steamid"
	// zap - мегашвидкий логер, набагато швидший за fmt.Printf
	"go.uber.org/zap"

	"HidePlayers/game"
	"HidePlayers/hook"
	"HidePlayers/host"
	"HidePlayers/metrics"
	"HidePlayers/world"
)

var (
	isDebug     = flag.Bool("debug", false, "Enable debug log output")
	configPath  = flag.String("config", "config.toml", "Path to the plugin config")
	metricsAddr = flag.String("metrics", ":9150", "Address for the /metrics endpoint, empty to disable")
	tickRate    = flag.Float64("tickrate", 64, "Simulated server tick rate")
	bots        = flag.Int("bots", 4, "Number of simulated players")
	viewDist    = flag.Float64("view-distance", 0, "Engine transmit distance for other pawns, 0 for unlimited")
)

// перший SteamID64 індивідуального акаунту
const baseSteamID = 76561197960265728

func main() {
	flag.Parse()

	var logger *zap.Logger
	if *isDebug {
		logger = unwrap(zap.NewDevelopment())
	} else {
		logger = unwrap(zap.NewProduction())
	}
	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			panic(err)
		}
	}(logger)

	logger.Info("Server start")
	printBuildInfo(logger)
	defer logger.Info("Server exit")

	// Без файлу конфігу працюємо з налаштуваннями за замовчуванням
	config, err := game.ReadConfig(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("Config not found, using defaults", zap.String("path", *configPath))
		config = game.DefaultConfig()
	} else if err != nil {
		logger.Error("Read config fail", zap.Error(err))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hooks := hook.NewTable()
	h := host.New(logger.Named("host"), hooks, host.Options{ViewDistance: *viewDist})
	m := metrics.New()

	plugin := game.NewGame(logger, config, h, hooks, m)
	plugin.OnConfigParsed(config)
	if err := plugin.Load(); err != nil {
		logger.Error("Load plugin fail", zap.Error(err))
		return
	}
	defer plugin.Unload()

	if *metricsAddr != "" {
		srv := &http.Server{Addr: *metricsAddr, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("Start metrics listening", zap.String("address", *metricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics listening error", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	for i := 0; i < *bots && i < world.MaxPlayers; i++ {
		team := world.TeamTerrorist
		if i%2 == 1 {
			team = world.TeamCounterTerrorist
		}
		slot := world.Slot(i)
		if _, err := h.Connect(slot, "bot", steamid.New(int64(baseSteamID)+int64(i)), team); err != nil {
			logger.Error("Connect bot fail", zap.Uint8("slot", uint8(slot)), zap.Error(err))
			return
		}
	}

	err = h.Run(ctx, *tickRate, func(snap *host.Snapshot) {
		script(logger, h, snap, uint64(*tickRate))
	})
	if err != nil {
		logger.Error("Server tick error", zap.Error(err))
	}
}

// script - маленький сценарій: бот 0 ховає моделі, бот 1 помирає
// і йде в спостерігачі, потім респавниться
func script(logger *zap.Logger, h *host.Host, snap *host.Snapshot, second uint64) {
	if second == 0 {
		second = 1
	}
	switch snap.Tick {
	case 1:
		h.Say(0, "!hidemodels")
	case 2 * second:
		_ = h.SetLife(1, world.LifeDead)
		_ = h.SetState(1, world.StateDeathAnim)
	case 3 * second:
		_ = h.SetState(1, world.StateObserverMode)
	case 5 * second:
		_ = h.SetLife(1, world.LifeAlive)
		_ = h.SetState(1, world.StateActive)
	}
	if snap.Tick%second != 0 {
		return
	}
	for _, p := range h.Players() {
		logger.Debug("Transmit",
			zap.Uint64("tick", snap.Tick),
			zap.Uint8("slot", uint8(p.Slot)),
			zap.Int("entities", snap.Count(p.Slot)),
			zap.Bool("full", snap.FullUpdate(p.Slot)),
		)
	}
}

// printBuildInfo виводить інформацію про збірку
// Це допомагає знайти проблеми з версіями бібліотек
func printBuildInfo(logger *zap.Logger) {
	binaryInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	settings := make(map[string]string)
	for _, v := range binaryInfo.Settings {
		settings[v.Key] = v.Value
	}
	logger.Debug("Build info", zap.Any("settings", settings), zap.String("version", game.ModuleVersion))
}

// unwrap - хелпер функція яка спрощує обробку помилок
// Якщо є помилка - відразу панікуємо
func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
