package systems

import (
	"github.com/plus3/leapfrog/ecs"
)

// Control turns input into player movement. Horizontal speed follows the held
// direction keys; a jump edge while standing on something launches the
// player and raises EventJumped.
type Control struct {
	Input     *KeyboardInput
	Bindings  Bindings
	RunSpeed  float64
	JumpSpeed float64
}

func (c *Control) Execute(frame *ecs.UpdateFrame) error {
	player, ok := frame.Registry.First(ecs.KindPlayer)
	if !ok {
		return nil
	}

	dir := 0.0
	if c.Bindings.Held(c.Input, ActionLeft) {
		dir--
	}
	if c.Bindings.Held(c.Input, ActionRight) {
		dir++
	}
	player.Velocity.X = dir * c.RunSpeed

	if player.Grounded && c.Bindings.JustPressed(c.Input, ActionJump) {
		player.Velocity.Y = -c.JumpSpeed
		player.Grounded = false
		player.Raise(ecs.EventJumped)
	}
	return nil
}
