package render

import (
	"errors"
	"fmt"
	"slices"
	"unicode"
)

// DefaultRamp is the glyph ramp listed densest glyph first. It is normally
// used reversed, so index 0 is the faintest glyph.
const DefaultRamp = "@#%MW&8$B0QOZmwqpdbkhao*+xjt/|()1{}[]?-_=~<>!Il;:^\",.`"

// ErrEmptyRamp is returned when a ramp has no glyphs.
var ErrEmptyRamp = errors.New("luminance ramp is empty")

// Ramp maps luminance indices to glyphs. It is immutable once built.
type Ramp struct {
	glyphs []rune
}

// NewRamp builds a ramp from chars, in order or reversed. Every glyph must
// be a printable, non-space rune; the blank cell glyph is reserved for
// cells no sample reached.
func NewRamp(chars string, reverse bool) (Ramp, error) {
	glyphs := []rune(chars)
	if len(glyphs) == 0 {
		return Ramp{}, ErrEmptyRamp
	}
	for i, g := range glyphs {
		if !unicode.IsPrint(g) || unicode.IsSpace(g) {
			return Ramp{}, fmt.Errorf("luminance ramp glyph %d (%q) is not printable", i, g)
		}
	}
	if reverse {
		slices.Reverse(glyphs)
	}
	return Ramp{glyphs: glyphs}, nil
}

// MustRamp is NewRamp for compile-time constant ramps. It panics on error.
func MustRamp(chars string, reverse bool) Ramp {
	r, err := NewRamp(chars, reverse)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of glyphs.
func (r Ramp) Len() int {
	return len(r.glyphs)
}

// Glyph returns the glyph at index i, clamped to the ramp.
func (r Ramp) Glyph(i int) rune {
	if len(r.glyphs) == 0 {
		return ' '
	}
	return r.glyphs[max(0, min(i, len(r.glyphs)-1))]
}

// String returns the glyphs in lookup order.
func (r Ramp) String() string {
	return string(r.glyphs)
}
