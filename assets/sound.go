package assets

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate matches the audio context the game creates.
const DefaultSampleRate = 44100

// SoundDecoder turns an encoded sound file into a stream of 16-bit stereo PCM
// at sampleRate.
type SoundDecoder func(sampleRate int, src *bytes.Reader) (io.Reader, error)

func defaultDecoders() map[string]SoundDecoder {
	return map[string]SoundDecoder{
		".ogg": func(sampleRate int, src *bytes.Reader) (io.Reader, error) {
			return vorbis.DecodeWithSampleRate(sampleRate, src)
		},
		".mp3": func(sampleRate int, src *bytes.Reader) (io.Reader, error) {
			return mp3.DecodeWithSampleRate(sampleRate, src)
		},
		".wav": func(sampleRate int, src *bytes.Reader) (io.Reader, error) {
			return wav.DecodeWithSampleRate(sampleRate, src)
		},
	}
}

func (c *Cache) decoderFor(key string) (SoundDecoder, error) {
	ext := strings.ToLower(path.Ext(key))
	dec, ok := c.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("sound %q: %w: unsupported format %q", key, ErrAssetCorrupt, ext)
	}
	return dec, nil
}

// decodePCM fully decodes data so playback never touches the decoder again.
func decodePCM(dec SoundDecoder, sampleRate int, data []byte) ([]byte, error) {
	stream, err := dec(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}
