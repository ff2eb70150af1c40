package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Assets lists the files the game loads at startup, keyed by role.
type Assets struct {
	Textures   map[string]string `json:"textures"`
	Sounds     map[string]string `json:"sounds"`
	SampleRate int               `json:"sampleRate"`
}

// Keys maps actions to the keys that trigger them. Key names are ebiten key
// names such as "ArrowLeft" or "Space", matched case-insensitively.
type Keys struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
	Jump  []string `json:"jump"`
}

// Range is an inclusive interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Gameplay holds the constants of the built-in level generator and physics.
// Distances are in world units, times in seconds.
type Gameplay struct {
	Gravity         float64   `json:"gravity"`
	RunSpeed        float64   `json:"runSpeed"`
	JumpSpeed       float64   `json:"jumpSpeed"`
	PlayerSize      Dimension `json:"playerSize"`
	PlayerStart     Vector2   `json:"playerStart"`
	PlatformSize    Dimension `json:"platformSize"`
	HazardSize      Dimension `json:"hazardSize"`
	PlatformGap     Range     `json:"platformGap"`
	PlatformHeight  Range     `json:"platformHeight"`
	HazardChance    float64   `json:"hazardChance"`
	MovingChance    float64   `json:"movingChance"`
	MovingAmplitude float64   `json:"movingAmplitude"`
	MovingPeriod    float64   `json:"movingPeriod"`
	SpawnAhead      float64   `json:"spawnAhead"`
	DespawnBehind   float64   `json:"despawnBehind"`
	FallLimit       float64   `json:"fallLimit"`
}

func (c *Configuration) Assets() (Assets, error) {
	return Get[Assets](c, "assets")
}

func (c *Configuration) Keys() (Keys, error) {
	return Get[Keys](c, "keys")
}

func (c *Configuration) Gameplay() (Gameplay, error) {
	g, err := Get[Gameplay](c, "gameplay")
	if err != nil {
		return g, err
	}
	if g.PlatformGap.Min > g.PlatformGap.Max || g.PlatformHeight.Min > g.PlatformHeight.Max {
		return g, fmt.Errorf("%w: gameplay ranges must have min <= max", ErrInvalid)
	}
	if g.PlatformSize.Width <= 0 || g.PlayerSize.Width <= 0 {
		return g, fmt.Errorf("%w: gameplay sizes must be positive", ErrInvalid)
	}
	if g.PlatformGap.Min < 0 {
		return g, fmt.Errorf("%w: gameplay platformGap must not be negative", ErrInvalid)
	}
	return g, nil
}

// Seed returns the level generator seed.
func (c *Configuration) Seed() uint64 {
	return GetOr[uint64](c, 1, "seed")
}

// Score is one entry of the high score table.
type Score struct {
	Distance float64 `json:"distance"`
	Session  string  `json:"session,omitempty"`
}

// Scores returns the stored high scores, best first.
func (c *Configuration) Scores() []Score {
	return GetOr[[]Score](c, nil, "scores")
}

// RecordScore inserts s into the high score table keeping at most limit
// entries. It reports whether the score made it into the table.
func (c *Configuration) RecordScore(s Score, limit int) (bool, error) {
	scores := c.Scores()

	pos := len(scores)
	for i, existing := range scores {
		if s.Distance > existing.Distance {
			pos = i
			break
		}
	}
	if pos >= limit {
		return false, nil
	}

	scores = append(scores, Score{})
	copy(scores[pos+1:], scores[pos:])
	scores[pos] = s
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return true, Set(c, scores, "scores")
}

type scoreFile struct {
	Scores []Score `json:"scores"`
}

// LoadScores reads the high score table kept next to the settings. A missing
// file leaves the table empty.
func (c *Configuration) LoadScores(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read scores: %w", err)
	}

	var f scoreFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return Set(c, f.Scores, "scores")
}

// SaveScores writes only the high score table to path.
func (c *Configuration) SaveScores(path string) error {
	data, err := json.MarshalIndent(scoreFile{Scores: c.Scores()}, "", "  ")
	if err != nil {
		return fmt.Errorf("config: serialize scores: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
