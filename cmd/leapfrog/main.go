// Command leapfrog runs the game in a window.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/leapfrog/assets"
	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs/debugui"
	debugui_ebiten "github.com/plus3/leapfrog/ecs/debugui/ebiten"
	"github.com/plus3/leapfrog/game"
	"github.com/plus3/leapfrog/gfx"
	ebitensys "github.com/plus3/leapfrog/systems/ebiten"
)

const (
	windowTitle = "Leapfrog"
	scoreLimit  = 10
)

func main() {
	settingsPath := flag.String("settings", config.SettingsFilename, "Settings file. Written with the defaults if missing.")
	developerPath := flag.String("developer", config.DeveloperFilename, "Optional developer overrides.")
	scoresPath := flag.String("scores", config.ScoresFilename, "High score table.")
	assetDir := flag.String("assets", "assets", "Directory holding textures and sounds.")
	debug := flag.Bool("debug", false, "Show the debug overlay (F1 toggles it) and log at debug level.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	logger, session := newLogger(*debug)
	defer logger.Sync()

	if err := run(logger, session, *settingsPath, *developerPath, *scoresPath, *assetDir, *debug); err != nil {
		logger.Error("leapfrog exited with an error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger, session, settingsPath, developerPath, scoresPath, assetDir string, debug bool) error {
	cfg := config.New()
	if _, err := os.Stat(settingsPath); errors.Is(err, fs.ErrNotExist) {
		logger.Info("writing default settings", zap.String("path", settingsPath))
		if err := cfg.Save(settingsPath); err != nil {
			return err
		}
	}
	if err := cfg.LoadFiles(settingsPath, developerPath); err != nil {
		return err
	}
	if err := cfg.LoadScores(scoresPath); err != nil {
		logger.Warn("ignoring unreadable score table", zap.Error(err))
	}

	keys, err := cfg.Keys()
	if err != nil {
		return err
	}
	if err := ebitensys.ValidateKeys(keys); err != nil {
		return err
	}

	manifest, err := cfg.Assets()
	if err != nil {
		return err
	}
	rate := manifest.SampleRate
	if rate <= 0 {
		rate = assets.DefaultSampleRate
	}
	cache := assets.NewCache(os.DirFS(assetDir), assets.WithSampleRate(rate))
	sound := ebitensys.NewAudioPlayer(audio.NewContext(rate), cache)
	defer sound.Close()

	graphics := cfg.Graphics()
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(graphics.Resolution.Width, graphics.Resolution.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	h := &host{
		cfg:    cfg,
		logger: logger,
		screen: ebitensys.NewScreenTarget(cache),
		last:   time.Now(),
	}

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithCache(cache),
		game.WithSoundPlayer(sound),
	}
	if debug {
		h.imgui = debugui_ebiten.NewImguiBackend(windowTitle, graphics.Resolution.Width, graphics.Resolution.Height)
	}

	model := game.New(cfg, nil, opts...)
	if debug {
		h.overlay = debugui.New(model.Scheduler())
		if err := model.AddSystems(h.overlay); err != nil {
			return err
		}
	}
	h.model = model

	viewSize := gfx.Size{W: float64(graphics.Resolution.Width), H: float64(graphics.Resolution.Height)}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := model.Initialize(ctx, viewSize); err != nil {
		return err
	}

	runErr := ebiten.RunGame(h)

	score := config.Score{Distance: model.Score(), Session: session}
	if ok, err := cfg.RecordScore(score, scoreLimit); err != nil {
		logger.Warn("could not record score", zap.Error(err))
	} else if ok {
		if err := cfg.SaveScores(scoresPath); err != nil {
			logger.Warn("could not save score table", zap.Error(err))
		}
	}
	logger.Info("game over", zap.Float64("distance", score.Distance), zap.Int("sounds", model.SoundsPlayed()))

	if errors.Is(runErr, ebiten.Termination) {
		return nil
	}
	return runErr
}
