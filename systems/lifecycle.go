package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/plus3/leapfrog/assets"
	"github.com/plus3/leapfrog/config"
	"github.com/plus3/leapfrog/ecs"
	"github.com/plus3/leapfrog/gfx"
)

// ErrLevelStalled is returned when spawning a platform does not move the
// level frontier forward.
var ErrLevelStalled = errors.New("level generation stalled")

// Sprites are the textures given to spawned entities. Zero handles are fine,
// the entity is then simply not drawn.
type Sprites struct {
	Player   assets.TextureHandle
	Platform assets.TextureHandle
	Hazard   assets.TextureHandle
}

// Lifecycle spawns the level ahead of the camera, removes whatever scrolled
// out behind it and respawns the player after a fall.
//
// All randomness comes from a PCG generator seeded at construction, so the
// level only depends on the seed and the sequence of frames.
type Lifecycle struct {
	Camera   *Camera
	Gameplay config.Gameplay
	Sprites  Sprites

	rng      *rand.Rand
	frontier float64
}

func NewLifecycle(camera *Camera, gameplay config.Gameplay, sprites Sprites, seed uint64) *Lifecycle {
	return &Lifecycle{
		Camera:   camera,
		Gameplay: gameplay,
		Sprites:  sprites,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed adds the player, a wide starting platform under it and enough level to
// fill the first view. The entities become live at the next commit.
func (l *Lifecycle) Seed(r *ecs.Registry) error {
	g := l.Gameplay

	player := ecs.NewEntity(ecs.KindPlayer)
	player.Position = gfx.Vec2{X: g.PlayerStart.X, Y: g.PlayerStart.Y}
	player.Size = gfx.Size{W: g.PlayerSize.Width, H: g.PlayerSize.Height}
	player.Sprite = l.Sprites.Player
	player.Behavior = &Player{}
	if _, err := r.Add(player); err != nil {
		return err
	}

	start := ecs.NewEntity(ecs.KindPlatform)
	start.Position = gfx.Vec2{X: 0, Y: g.PlayerStart.Y + g.PlayerSize.Height}
	start.Size = gfx.Size{W: max(g.PlatformSize.Width*2, g.PlayerStart.X+g.PlayerSize.Width), H: g.PlatformSize.Height}
	start.Sprite = l.Sprites.Platform
	start.Behavior = &Platform{Origin: start.Position}
	if _, err := r.Add(start); err != nil {
		return err
	}
	l.frontier = start.Bounds().Max().X

	return l.fill(r)
}

func (l *Lifecycle) Execute(frame *ecs.UpdateFrame) error {
	r := frame.Registry
	g := l.Gameplay

	if err := l.fill(r); err != nil {
		return err
	}

	behind := l.Camera.Origin.X - g.DespawnBehind
	for e := range r.All() {
		if e.Kind() == ecs.KindPlayer {
			continue
		}
		if e.Bounds().Max().X < behind {
			r.Remove(e.ID())
		}
	}

	if player, ok := r.First(ecs.KindPlayer); ok && player.Position.Y > g.FallLimit {
		l.respawn(r, player)
	}
	return nil
}

// fill spawns platforms until the level reaches past the right edge of the
// view plus the look-ahead margin.
func (l *Lifecycle) fill(r *ecs.Registry) error {
	horizon := l.Camera.Origin.X + l.Camera.View.W + l.Gameplay.SpawnAhead
	for l.frontier < horizon {
		before := l.frontier
		if err := l.spawnPlatform(r); err != nil {
			return err
		}
		if l.frontier <= before {
			return fmt.Errorf("%w: frontier at %v after a spawn at %v", ErrLevelStalled, l.frontier, before)
		}
	}
	return nil
}

func (l *Lifecycle) spawnPlatform(r *ecs.Registry) error {
	g := l.Gameplay

	behavior := &Platform{}
	if l.rng.Float64() < g.MovingChance {
		behavior.Amplitude = g.MovingAmplitude
		behavior.Period = g.MovingPeriod
	}

	x := l.frontier + l.between(g.PlatformGap) + behavior.Amplitude
	y := l.between(g.PlatformHeight)

	platform := ecs.NewEntity(ecs.KindPlatform)
	platform.Position = gfx.Vec2{X: x, Y: y}
	platform.Size = gfx.Size{W: g.PlatformSize.Width, H: g.PlatformSize.Height}
	platform.Sprite = l.Sprites.Platform
	behavior.Origin = platform.Position
	platform.Behavior = behavior
	if _, err := r.Add(platform); err != nil {
		return err
	}
	l.frontier = x + g.PlatformSize.Width + behavior.Amplitude

	// Hazards only go on platforms that stay put.
	if !behavior.Moving() && l.rng.Float64() < g.HazardChance {
		hazard := ecs.NewEntity(ecs.KindHazard)
		hazard.Position = gfx.Vec2{
			X: x + l.rng.Float64()*math.Max(0, g.PlatformSize.Width-g.HazardSize.Width),
			Y: y - g.HazardSize.Height,
		}
		hazard.Size = gfx.Size{W: g.HazardSize.Width, H: g.HazardSize.Height}
		hazard.Sprite = l.Sprites.Hazard
		hazard.Behavior = Hazard{}
		if _, err := r.Add(hazard); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lifecycle) between(rg config.Range) float64 {
	return rg.Min + l.rng.Float64()*(rg.Max-rg.Min)
}

// respawn drops the player onto the first live platform that starts inside
// the view.
func (l *Lifecycle) respawn(r *ecs.Registry, player *ecs.Entity) {
	var target *ecs.Entity
	for p := range r.OfKind(ecs.KindPlatform) {
		if p.Position.X < l.Camera.Origin.X {
			continue
		}
		if target == nil || p.Position.X < target.Position.X {
			target = p
		}
	}

	player.Velocity = gfx.Vec2{}
	player.Grounded = false
	if target != nil {
		player.Position = gfx.Vec2{
			X: target.Position.X + (target.Size.W-player.Size.W)/2,
			Y: target.Position.Y - player.Size.H,
		}
	} else {
		player.Position = gfx.Vec2{X: l.Camera.Origin.X + l.Camera.View.W*l.Camera.Lead, Y: 0}
	}

	if pl, ok := player.Behavior.(*Player); ok {
		pl.Falls++
	}
	player.Raise(ecs.EventFell)
}
