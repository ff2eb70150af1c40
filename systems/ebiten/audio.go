package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/leapfrog/assets"
)

// AudioPlayer plays cached sounds on an audio.Context. Every Play starts a
// new audio.Player so the same sound can overlap itself; finished players are
// released on the next Play.
type AudioPlayer struct {
	context *audio.Context
	cache   *assets.Cache
	volume  float64
	active  []*audio.Player
}

// NewAudioPlayer creates a player. The context must run at the cache's sample
// rate.
func NewAudioPlayer(context *audio.Context, cache *assets.Cache) *AudioPlayer {
	return &AudioPlayer{
		context: context,
		cache:   cache,
		volume:  1,
	}
}

func (a *AudioPlayer) SetVolume(volume float64) {
	a.volume = volume
}

func (a *AudioPlayer) Play(h assets.SoundHandle) {
	pcm := a.cache.Sound(h)
	if pcm == nil {
		return
	}

	a.prune()
	p := a.context.NewPlayerFromBytes(pcm)
	p.SetVolume(a.volume)
	p.Play()
	a.active = append(a.active, p)
}

func (a *AudioPlayer) prune() {
	kept := a.active[:0]
	for _, p := range a.active {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	clear(a.active[len(kept):])
	a.active = kept
}

// Active returns the number of players that have not been released yet.
func (a *AudioPlayer) Active() int {
	return len(a.active)
}

// Close stops and releases every player.
func (a *AudioPlayer) Close() {
	for _, p := range a.active {
		_ = p.Close()
	}
	a.active = nil
}
