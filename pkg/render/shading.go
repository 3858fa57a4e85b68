package render

import (
	"fmt"
	"math"
)

// Lighting holds the parameters of the rim-light shading model.
type Lighting struct {
	Brightness  float64 // Overall multiplier applied to Base and RimStrength
	Contrast    float64 // Contrast curve exponent is 1/Contrast
	Base        float64 // Minimum brightness of the darkest parts
	RimStrength float64 // Strength of the highlight toward the silhouette
}

// Shader turns a sample's orientation into a luminance index for a ramp of
// a fixed number of levels.
type Shader struct {
	levels      int
	invContrast float64
	base        float64 // Base * Brightness
	rim         float64 // RimStrength * Brightness
}

// NewShader precomputes a shader for the lighting and ramp length.
func NewShader(l Lighting, levels int) (Shader, error) {
	if levels <= 0 {
		return Shader{}, fmt.Errorf("shader: %w", ErrEmptyRamp)
	}
	if !(l.Contrast > 0) || math.IsInf(l.Contrast, 0) {
		return Shader{}, fmt.Errorf("shader: contrast must be positive and finite, got %g", l.Contrast)
	}
	return Shader{
		levels:      levels,
		invContrast: 1 / l.Contrast,
		base:        l.Base * l.Brightness,
		rim:         l.RimStrength * l.Brightness,
	}, nil
}

// Levels returns the ramp length the shader indexes into.
func (s Shader) Levels() int {
	return s.levels
}

// Luminance returns the contrast-adjusted brightness N for a wall sample at
// parameter angle t under rotation A, given sin(t) and sin(A). The rim term
// is strongest where the rotated normal is perpendicular to the view axis.
func (s Shader) Luminance(sinT, sinA float64) float64 {
	normalZRot := sinT * sinA
	rim := s.rim * (1 - math.Abs(normalZRot))
	return s.contrast(rim + s.base)
}

// contrast applies N^(1/c) to the magnitude and keeps the sign, so negative
// brightness never produces a complex power.
func (s Shader) contrast(n float64) float64 {
	if n > 0 {
		return math.Pow(n, s.invContrast)
	}
	return -math.Pow(-n, s.invContrast)
}

// Index maps a luminance N to a ramp index: clamped to [0, levels-1],
// truncated, then inverted so larger N selects lower indices.
func (s Shader) Index(n float64) int {
	top := float64(s.levels - 1)
	var idx int
	switch {
	case !(n > 0): // also catches NaN
		idx = 0
	case n >= top:
		idx = s.levels - 1
	default:
		idx = int(n)
	}
	return (s.levels - 1) - idx
}

// Shade is Index(Luminance(sinT, sinA)).
func (s Shader) Shade(sinT, sinA float64) int {
	return s.Index(s.Luminance(sinT, sinA))
}
