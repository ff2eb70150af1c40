package systems

import (
	"github.com/plus3/leapfrog/assets"
	"github.com/plus3/leapfrog/ecs"
)

// SoundPlayer starts playback of a cached sound and returns immediately.
// Several plays of the same sound may overlap.
type SoundPlayer interface {
	Play(h assets.SoundHandle)
}

// eventOrder fixes the order sounds are triggered in when an entity raised
// several events in the same frame.
var eventOrder = [...]ecs.Event{ecs.EventJumped, ecs.EventLanded, ecs.EventHit, ecs.EventFell}

// Audio plays the sound mapped to each event raised during the frame and then
// clears the events. Events without a sound, or with the zero handle, are
// dropped silently.
type Audio struct {
	Player SoundPlayer
	Sounds map[ecs.Event]assets.SoundHandle

	played int
}

func (a *Audio) Execute(frame *ecs.UpdateFrame) error {
	for e := range frame.Registry.All() {
		if e.Events == 0 {
			continue
		}
		for _, ev := range eventOrder {
			if !e.Events.Has(ev) {
				continue
			}
			h := a.Sounds[ev]
			if !h.Valid() || a.Player == nil {
				continue
			}
			a.Player.Play(h)
			a.played++
		}
		e.Events = 0
	}
	return nil
}

// Played returns how many sounds were triggered so far.
func (a *Audio) Played() int {
	return a.played
}
