package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/game"
	"github.com/plus3/leapfrog/gfx"
	"github.com/plus3/leapfrog/systems"
)

// step is the simulated frame time. Runs are deterministic for a seed.
const step = time.Second / 60

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	runs := flag.Int("runs", 1, "Number of games to run side by side, each with its own seed.")
	seed := flag.Uint64("seed", 1, "Seed of the first game; later games use the following seeds.")
	assetDir := flag.String("assets", "", "Asset directory. Placeholder textures are generated when empty.")
	settingsPath := flag.String("settings", "", "Optional settings file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log.Println("Starting leapfrog stress test...")

	cfg := config.New()
	if *settingsPath != "" {
		if err := cfg.LoadFiles(*settingsPath, ""); err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}

	report := &Report{
		Duration:       *duration,
		Runs:           make([]RunResult, *runs),
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d game(s) for %s...\n", *runs, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i := range report.Runs {
		g.Go(func() error {
			result, err := runGame(ctx, cfg, *assetDir, *seed+uint64(i))
			report.Runs[i] = result
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// runGame plays one game until ctx is done, holding right and jumping at a
// fixed rhythm. Extra systems run after the game's own. A failed frame is
// counted and play continues.
func runGame(ctx context.Context, cfg *config.Configuration, assetDir string, seed uint64, extra ...ecs.System) (RunResult, error) {
	result := RunResult{Seed: seed}

	fsys, err := placeholderAssets(assetDir)
	if err != nil {
		return result, err
	}

	model := game.New(cfg, fsys, game.WithSeed(seed), game.WithLogger(zap.NewNop()), game.WithSystems(extra...))
	target := &gfx.Recorder{Size: gfx.Size{W: 640, H: 480}}
	if err := model.Initialize(ctx, target.Size); err != nil {
		return result, err
	}

	right := systems.ParseKey("ArrowRight")
	jump := systems.ParseKey("Space")
	model.SignalKeyPressed(right)

	for ctx.Err() == nil {
		switch result.Frames % 45 {
		case 0:
			model.SignalKeyPressed(jump)
		case 5:
			model.SignalKeyReleased(jump)
		}

		target.Reset()
		start := time.Now()
		if err := model.Update(step, target); err != nil {
			result.Failures++
		}
		result.UpdateTime.Samples = append(result.UpdateTime.Samples, time.Since(start))

		result.Frames++
		result.Draws += int64(len(target.Commands))
		result.PeakEntities = max(result.PeakEntities, model.Registry().Len())
	}

	if player, ok := model.Registry().First(ecs.KindPlayer); ok {
		if p, ok := player.Behavior.(*systems.Player); ok {
			result.Hits, result.Falls = p.Hits, p.Falls
		}
	}
	result.Entities = model.Registry().Len()
	result.Distance = model.Score()
	result.UpdateTime.Finalize()
	return result, nil
}
