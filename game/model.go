// Package game wires the registry, the asset cache and the ordered system
// list together behind the small surface the host loop drives: Initialize
// once, forward key transitions, and call Update every frame.
package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/leapfrog/assets"
	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
	"github.com/plus3/leapfrog/systems"
)

var (
	// ErrStartup wraps every error returned by Initialize. The host must
	// treat it as fatal.
	ErrStartup = errors.New("startup failed")
	// ErrNotInitialized is returned by Update before a successful Initialize.
	ErrNotInitialized = errors.New("game model not initialized")
)

// Asset roles looked up in the "assets" section of the configuration.
const (
	TexturePlayer   = "player"
	TexturePlatform = "platform"
	TextureHazard   = "hazard"

	SoundJump = "jump"
	SoundLand = "land"
	SoundHit  = "hit"
	SoundFall = "fall"
)

var requiredTextures = []string{TexturePlayer, TexturePlatform, TextureHazard}

var optionalSounds = []struct {
	role  string
	event ecs.Event
}{
	{SoundJump, ecs.EventJumped},
	{SoundLand, ecs.EventLanded},
	{SoundHit, ecs.EventHit},
	{SoundFall, ecs.EventFell},
}

// Model owns all game state for the life of the process.
type Model struct {
	cfg    *config.Configuration
	logger *zap.Logger
	sound  systems.SoundPlayer
	extra  []ecs.System
	seed   *uint64

	cache     *assets.Cache
	registry  *ecs.Registry
	scheduler *ecs.Scheduler
	input     *systems.KeyboardInput
	camera    *systems.Camera
	audio     *systems.Audio
	renderer  *systems.Renderer

	viewSize    gfx.Size
	initialized bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithSoundPlayer sets where sounds are played. Without one the game is
// silent.
func WithSoundPlayer(p systems.SoundPlayer) Option {
	return func(m *Model) {
		m.sound = p
	}
}

// WithSystems appends systems after the renderer, for overlays and
// diagnostics.
func WithSystems(extra ...ecs.System) Option {
	return func(m *Model) {
		m.extra = append(m.extra, extra...)
	}
}

// WithSeed overrides the level seed from the configuration.
func WithSeed(seed uint64) Option {
	return func(m *Model) {
		m.seed = &seed
	}
}

// WithCache replaces the cache New would build over the asset file system.
func WithCache(cache *assets.Cache) Option {
	return func(m *Model) {
		m.cache = cache
	}
}

// New creates a model reading its settings from cfg and its assets from
// assetFS. Nothing is loaded until Initialize.
func New(cfg *config.Configuration, assetFS fs.FS, opts ...Option) *Model {
	m := &Model{
		cfg:      cfg,
		logger:   zap.NewNop(),
		registry: ecs.NewRegistry(),
		input:    systems.NewKeyboardInput(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.cache == nil {
		rate := assets.DefaultSampleRate
		if a, err := cfg.Assets(); err == nil && a.SampleRate > 0 {
			rate = a.SampleRate
		}
		m.cache = assets.NewCache(assetFS, assets.WithSampleRate(rate))
	}
	m.scheduler = ecs.NewScheduler(m.registry)
	return m
}

// Initialize loads the assets, builds the systems and seeds the starting
// level. viewSize is the drawable size used when the render target does not
// report one. On error the model stays uninitialized with an empty registry.
func (m *Model) Initialize(ctx context.Context, viewSize gfx.Size) (err error) {
	defer func() {
		if err != nil {
			m.logger.Error("game model failed to initialize", zap.Error(err))
			err = fmt.Errorf("%w: %w", ErrStartup, err)
		}
	}()

	if m.initialized {
		return errors.New("already initialized")
	}
	if viewSize.Empty() {
		return fmt.Errorf("invalid view size %vx%v", viewSize.W, viewSize.H)
	}

	gameplay, err := m.cfg.Gameplay()
	if err != nil {
		return err
	}
	keys, err := m.cfg.Keys()
	if err != nil {
		return err
	}
	manifest, err := m.cfg.Assets()
	if err != nil {
		return err
	}

	sprites, err := m.loadTextures(ctx, manifest)
	if err != nil {
		return err
	}
	sounds := m.loadSounds(manifest)

	graphics := m.cfg.Graphics()
	view := gfx.Size{W: graphics.ViewCoordinates.Width, H: graphics.ViewCoordinates.Height}
	if view.Empty() {
		return fmt.Errorf("invalid view coordinates %vx%v", view.W, view.H)
	}

	seed := m.cfg.Seed()
	if m.seed != nil {
		seed = *m.seed
	}

	camera := systems.NewCamera(view)
	lifecycle := systems.NewLifecycle(camera, gameplay, sprites, seed)
	if err := lifecycle.Seed(m.registry); err != nil {
		m.registry.Clear()
		return err
	}
	m.registry.Commit()

	m.camera = camera
	m.audio = &systems.Audio{Player: m.sound, Sounds: sounds}
	m.renderer = &systems.Renderer{Camera: camera, ViewSize: viewSize}
	m.viewSize = viewSize

	// Order matters: input before anything reacting to it, gameplay before
	// audio reads the events it raised, and the renderer last so it draws
	// the final state of the frame.
	m.scheduler.Register(m.input)
	m.scheduler.Register(&systems.Control{
		Input:     m.input,
		Bindings:  systems.NewBindings(keys),
		RunSpeed:  gameplay.RunSpeed,
		JumpSpeed: gameplay.JumpSpeed,
	})
	m.scheduler.Register(systems.Behavior{})
	m.scheduler.Register(&systems.Physics{Gravity: gameplay.Gravity})
	m.scheduler.Register(camera)
	m.scheduler.Register(lifecycle)
	m.scheduler.Register(m.audio)
	m.scheduler.Register(m.renderer)
	for _, sys := range m.extra {
		m.scheduler.Register(sys)
	}

	m.initialized = true
	m.logger.Info("game model initialized",
		zap.Uint64("seed", seed),
		zap.Int("entities", m.registry.Len()),
		zap.Int("systems", m.scheduler.GetStats().SystemCount),
		zap.Int("sounds", len(sounds)),
	)
	return nil
}

func (m *Model) loadTextures(ctx context.Context, manifest config.Assets) (systems.Sprites, error) {
	paths := make([]string, 0, len(requiredTextures))
	for _, role := range requiredTextures {
		path, ok := manifest.Textures[role]
		if !ok || path == "" {
			return systems.Sprites{}, fmt.Errorf("texture %q: %w: not configured", role, assets.ErrAssetMissing)
		}
		paths = append(paths, path)
	}

	if err := m.cache.Preload(ctx, assets.Manifest{Textures: paths}); err != nil {
		return systems.Sprites{}, err
	}

	handles := make([]assets.TextureHandle, len(paths))
	for i, path := range paths {
		h, err := m.cache.LoadTexture(path)
		if err != nil {
			return systems.Sprites{}, err
		}
		handles[i] = h
	}
	return systems.Sprites{Player: handles[0], Platform: handles[1], Hazard: handles[2]}, nil
}

// loadSounds loads whatever sounds it can. A sound that is missing or broken
// only costs that sound.
func (m *Model) loadSounds(manifest config.Assets) map[ecs.Event]assets.SoundHandle {
	sounds := make(map[ecs.Event]assets.SoundHandle, len(optionalSounds))
	for _, s := range optionalSounds {
		path, ok := manifest.Sounds[s.role]
		if !ok || path == "" {
			continue
		}
		h, err := m.cache.LoadSound(path)
		if err != nil {
			m.logger.Warn("optional sound unavailable",
				zap.String("sound", s.role),
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}
		sounds[s.event] = h
	}
	return sounds
}

// AddSystems appends systems after the renderer, like WithSystems, for
// systems that need the model's scheduler to be built. It fails once the
// model is initialized.
func (m *Model) AddSystems(extra ...ecs.System) error {
	if m.initialized {
		return errors.New("systems must be added before Initialize")
	}
	m.extra = append(m.extra, extra...)
	return nil
}

// SignalKeyPressed records a key going down. It takes effect at the next
// Update.
func (m *Model) SignalKeyPressed(key systems.Key) {
	m.input.SignalPressed(key)
}

// SignalKeyReleased records a key going up. It takes effect at the next
// Update.
func (m *Model) SignalKeyReleased(key systems.Key) {
	m.input.SignalReleased(key)
}

// Update advances the game by one frame and draws it to target, which may be
// nil. A failing system ends the frame early; its error is returned and the
// host decides whether to carry on.
func (m *Model) Update(elapsed time.Duration, target gfx.Target) error {
	if !m.initialized {
		return ErrNotInitialized
	}

	if err := m.scheduler.Once(elapsed, target); err != nil {
		m.logger.Error("frame failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}
	return nil
}

// Registry returns the entities of the running game.
func (m *Model) Registry() *ecs.Registry {
	return m.registry
}

// Scheduler returns the scheduler running the game systems. Its stats cover
// every Update so far.
func (m *Model) Scheduler() *ecs.Scheduler {
	return m.scheduler
}

// Assets returns the cache holding the loaded textures and sounds.
func (m *Model) Assets() *assets.Cache {
	return m.cache
}

// Config returns the configuration the model was created with.
func (m *Model) Config() *config.Configuration {
	return m.cfg
}

// ViewSize returns the size passed to Initialize.
func (m *Model) ViewSize() gfx.Size {
	return m.viewSize
}

// Score returns the furthest distance the player has reached.
func (m *Model) Score() float64 {
	if m.camera == nil {
		return 0
	}
	return m.camera.Distance
}

// SoundsPlayed returns how many sounds have been triggered.
func (m *Model) SoundsPlayed() int {
	if m.audio == nil {
		return 0
	}
	return m.audio.Played()
}
