package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Snapshot renders frames to raster images with a fixed-width bitmap font.
type Snapshot struct {
	Foreground color.Color
	Background color.Color
	Scale      int // Integer pixel scale (nearest neighbor), 1 for none
}

// NewSnapshot returns a light-on-dark snapshot at scale 1.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Foreground: color.RGBA{220, 220, 220, 255},
		Background: color.RGBA{30, 30, 40, 255},
		Scale:      1,
	}
}

// CellSize returns the pixel size of one glyph cell before scaling.
func CellSize() (w, h int) {
	face := basicfont.Face7x13
	return face.Advance, face.Height
}

// Image draws the frame into a new RGBA image. Glyphs the bitmap font
// lacks are drawn as its replacement box.
func (s *Snapshot) Image(f *Frame) *image.RGBA {
	face := basicfont.Face7x13
	cw, ch := CellSize()
	img := image.NewRGBA(image.Rect(0, 0, f.Width()*cw, f.Height()*ch))
	draw.Draw(img, img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(s.Foreground),
		Face: face,
	}
	for y := range f.Height() {
		d.Dot = fixed.P(0, y*ch+face.Ascent)
		d.DrawString(f.Row(y))
	}

	if s.Scale <= 1 {
		return img
	}
	b := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*s.Scale, b.Dy()*s.Scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	return scaled
}

// SavePNG saves the frame as a PNG file.
func (s *Snapshot) SavePNG(path string, f *Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, s.Image(f)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return file.Close()
}
