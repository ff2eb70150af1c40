package config

import "fmt"

// Vector2 is a pair of floats such as a scale factor.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimension is a width/height pair in world units.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Resolution is a window size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Graphics is the display section of the configuration.
type Graphics struct {
	Scale           Vector2    `json:"scale"`
	ScaleUI         Vector2    `json:"scaleUI"`
	ViewCoordinates Dimension  `json:"viewCoordinates"`
	Resolution      Resolution `json:"resolution"`
	Bpp             int        `json:"bpp"`

	// Restart is set when the window has to be recreated to pick up new
	// display settings. It is never written out.
	Restart bool `json:"-"`
}

// Graphics returns the current display settings.
func (c *Configuration) Graphics() Graphics {
	g, err := Get[Graphics](c, "graphics")
	if err != nil {
		// The defaults always carry a graphics section, only a broken
		// developer override can get here.
		g = Graphics{}
	}

	c.mu.RLock()
	g.Restart = c.restart
	c.mu.RUnlock()
	return g
}

// SetViewCoordinates changes the size of the visible world and recomputes the
// scale factors that go with it.
func (c *Configuration) SetViewCoordinates(coordinates Dimension) error {
	if coordinates.Width <= 0 || coordinates.Height <= 0 {
		return fmt.Errorf("%w: view coordinates %vx%v", ErrInvalid, coordinates.Width, coordinates.Height)
	}

	scale := Vector2{X: 10 / coordinates.Width, Y: 10 / coordinates.Height}
	if err := Set(c, coordinates, "graphics", "viewCoordinates"); err != nil {
		return err
	}
	if err := Set(c, scale, "graphics", "scale"); err != nil {
		return err
	}
	return Set(c, scale, "graphics", "scaleUI")
}

// SetResolution changes the window size. It does not request a restart on its
// own.
func (c *Configuration) SetResolution(resolution Resolution) error {
	if resolution.Width <= 0 || resolution.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalid, resolution.Width, resolution.Height)
	}
	return Set(c, resolution, "graphics", "resolution")
}

func (c *Configuration) SetBpp(bpp int) error {
	return Set(c, bpp, "graphics", "bpp")
}

// SetRestart raises or clears the window restart request.
func (c *Configuration) SetRestart(state bool) {
	c.mu.Lock()
	c.restart = state
	c.mu.Unlock()
}
