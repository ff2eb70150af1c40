// Package assets keeps shared, immutable textures and sounds alive for the
// lifetime of the process. Callers receive small handles instead of the
// assets themselves; a handle stays valid until the process exits.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrAssetMissing is returned when the asset file does not exist.
	ErrAssetMissing = errors.New("asset missing")
	// ErrAssetCorrupt is returned when the asset exists but cannot be decoded.
	ErrAssetCorrupt = errors.New("asset corrupt")
)

// TextureHandle refers to a texture held by a Cache. The zero handle means
// "no texture".
type TextureHandle uint32

// Valid reports whether the handle refers to a loaded texture.
func (h TextureHandle) Valid() bool { return h != 0 }

// SoundHandle refers to a decoded sound held by a Cache. The zero handle means
// "no sound".
type SoundHandle uint32

// Valid reports whether the handle refers to a loaded sound.
func (h SoundHandle) Valid() bool { return h != 0 }

type texture struct {
	key   string
	image image.Image
}

type sound struct {
	key string
	pcm []byte
}

// Stats describes the contents of a Cache.
type Stats struct {
	Textures int
	Sounds   int
	// Loads counts reads from the underlying file system.
	Loads int
}

// Manifest lists assets to load up front.
type Manifest struct {
	Textures []string
	Sounds   []string
}

// Cache loads assets from a file system once and pins them. Requests for a
// key that was already loaded, or for a different key whose bytes are
// identical to an already loaded asset, return the existing handle.
//
// Cache is safe for concurrent use so that Preload can fan out, but the
// returned handles and assets are immutable and need no locking.
type Cache struct {
	fsys       fs.FS
	sampleRate int
	decoders   map[string]SoundDecoder
	flights    singleflight.Group

	mu             sync.Mutex
	textures       []texture
	sounds         []sound
	textureKeys    map[string]TextureHandle
	soundKeys      map[string]SoundHandle
	textureContent *intmap.Map[uint64, TextureHandle]
	soundContent   *intmap.Map[uint64, SoundHandle]
	loads          int
}

// Option configures a Cache.
type Option func(*Cache)

// WithSampleRate sets the sample rate sounds are decoded to.
func WithSampleRate(rate int) Option {
	return func(c *Cache) {
		c.sampleRate = rate
	}
}

// WithSoundDecoder registers (or replaces) the decoder used for files with
// the given extension, including the leading dot.
func WithSoundDecoder(ext string, dec SoundDecoder) Option {
	return func(c *Cache) {
		c.decoders[ext] = dec
	}
}

// NewCache creates a cache reading from fsys.
func NewCache(fsys fs.FS, opts ...Option) *Cache {
	c := &Cache{
		fsys:           fsys,
		sampleRate:     DefaultSampleRate,
		decoders:       defaultDecoders(),
		textureKeys:    make(map[string]TextureHandle),
		soundKeys:      make(map[string]SoundHandle),
		textureContent: intmap.New[uint64, TextureHandle](32),
		soundContent:   intmap.New[uint64, SoundHandle](32),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SampleRate returns the rate decoded sounds are stored at.
func (c *Cache) SampleRate() int {
	return c.sampleRate
}

// LoadTexture returns the handle for the texture stored at key, loading it on
// first use.
func (c *Cache) LoadTexture(key string) (TextureHandle, error) {
	c.mu.Lock()
	h, ok := c.textureKeys[key]
	c.mu.Unlock()
	if ok {
		return h, nil
	}

	v, err, _ := c.flights.Do("texture:"+key, func() (any, error) {
		return c.loadTexture(key)
	})
	if err != nil {
		return 0, err
	}
	return v.(TextureHandle), nil
}

func (c *Cache) loadTexture(key string) (TextureHandle, error) {
	c.mu.Lock()
	if h, ok := c.textureKeys[key]; ok {
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	data, err := c.read(key)
	if err != nil {
		return 0, err
	}
	sum := xxhash.Sum64(data)

	c.mu.Lock()
	if h, ok := c.textureContent.Get(sum); ok {
		c.textureKeys[key] = h
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("texture %q: %w: %v", key, ErrAssetCorrupt, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.textureContent.Get(sum); ok {
		c.textureKeys[key] = h
		return h, nil
	}
	c.textures = append(c.textures, texture{key: key, image: img})
	h := TextureHandle(len(c.textures))
	c.textureKeys[key] = h
	c.textureContent.Put(sum, h)
	return h, nil
}

// LoadSound returns the handle for the sound stored at key, decoding it to
// PCM on first use.
func (c *Cache) LoadSound(key string) (SoundHandle, error) {
	c.mu.Lock()
	h, ok := c.soundKeys[key]
	c.mu.Unlock()
	if ok {
		return h, nil
	}

	v, err, _ := c.flights.Do("sound:"+key, func() (any, error) {
		return c.loadSound(key)
	})
	if err != nil {
		return 0, err
	}
	return v.(SoundHandle), nil
}

func (c *Cache) loadSound(key string) (SoundHandle, error) {
	c.mu.Lock()
	if h, ok := c.soundKeys[key]; ok {
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	dec, err := c.decoderFor(key)
	if err != nil {
		return 0, err
	}

	data, err := c.read(key)
	if err != nil {
		return 0, err
	}
	sum := xxhash.Sum64(data)

	c.mu.Lock()
	if h, ok := c.soundContent.Get(sum); ok {
		c.soundKeys[key] = h
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	pcm, err := decodePCM(dec, c.sampleRate, data)
	if err != nil {
		return 0, fmt.Errorf("sound %q: %w: %v", key, ErrAssetCorrupt, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.soundContent.Get(sum); ok {
		c.soundKeys[key] = h
		return h, nil
	}
	c.sounds = append(c.sounds, sound{key: key, pcm: pcm})
	h := SoundHandle(len(c.sounds))
	c.soundKeys[key] = h
	c.soundContent.Put(sum, h)
	return h, nil
}

func (c *Cache) read(key string) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%q: %w", key, ErrAssetMissing)
		}
		return nil, fmt.Errorf("read %q: %w", key, err)
	}

	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
	return data, nil
}

// Preload loads every asset in the manifest, several at a time. It returns
// the first error encountered; assets loaded before the failure stay cached.
func (c *Cache) Preload(ctx context.Context, m Manifest) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, key := range m.Textures {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.LoadTexture(key)
			return err
		})
	}
	for _, key := range m.Sounds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.LoadSound(key)
			return err
		})
	}

	return g.Wait()
}

// Texture returns the decoded image for h, or nil for the zero handle.
func (c *Cache) Texture(h TextureHandle) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h == 0 || int(h) > len(c.textures) {
		return nil
	}
	return c.textures[h-1].image
}

// Sound returns the decoded PCM bytes for h, or nil for the zero handle.
func (c *Cache) Sound(h SoundHandle) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h == 0 || int(h) > len(c.sounds) {
		return nil
	}
	return c.sounds[h-1].pcm
}

// TextureKey returns the key h was first loaded under.
func (c *Cache) TextureKey(h TextureHandle) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h == 0 || int(h) > len(c.textures) {
		return ""
	}
	return c.textures[h-1].key
}

// Stats reports what the cache currently holds.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Textures: len(c.textures),
		Sounds:   len(c.sounds),
		Loads:    c.loads,
	}
}
