package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/Theoffs06/godot-planets/internal/planet/terrain"
)

// WriteHeightfieldPNG writes the raw heightfield samples as an 8-bit
// grayscale image. Samples are expected in [0,1]; values outside clip.
func WriteHeightfieldPNG(w io.Writer, hf *terrain.Heightfield) error {
	img := image.NewGray(image.Rect(0, 0, hf.Width(), hf.Height()))
	for y := 0; y < hf.Height(); y++ {
		for x := 0; x < hf.Width(); x++ {
			s := hf.At(x, y)
			if s < 0 {
				s = 0
			} else if s > 1 {
				s = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(s*255 + 0.5)})
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SaveHeightfieldPNG writes the heightfield image to a file at path.
func SaveHeightfieldPNG(path string, hf *terrain.Heightfield) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteHeightfieldPNG(f, hf); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
