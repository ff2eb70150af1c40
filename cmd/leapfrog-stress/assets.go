package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"testing/fstest"
)

// placeholderAssets returns a file system with a flat colored texture for
// every role in the default configuration. There are no sounds; the model
// runs silent without them.
func placeholderAssets(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}

	fsys := fstest.MapFS{}
	for path, c := range map[string]color.RGBA{
		"textures/player.png":   {R: 0x40, G: 0xc0, B: 0x40, A: 0xff},
		"textures/platform.png": {R: 0x80, G: 0x60, B: 0x40, A: 0xff},
		"textures/hazard.png":   {R: 0xe0, G: 0x20, B: 0x20, A: 0xff},
	} {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
		fsys[path] = &fstest.MapFile{Data: buf.Bytes()}
	}
	return fsys, nil
}
