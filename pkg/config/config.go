// Package config holds every tunable of the cylinder renderer together with
// its default, its valid range and its command-line flag.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spf13/pflag"

	"github.com/taigrr/cylinder/pkg/anim"
	"github.com/taigrr/cylinder/pkg/models"
	"github.com/taigrr/cylinder/pkg/render"
)

// Fallback grid size when the terminal cannot be measured.
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// Smallest grid the renderer draws into.
const (
	MinWidth  = 10
	MinHeight = 5
)

// StatusRows is the number of terminal rows reserved below the frame.
const StatusRows = 2

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full renderer configuration.
type Config struct {
	// Lighting
	Brightness float64 // Scales the overall brightness, 1 to 20
	Contrast   float64 // Contrast between light and dark areas, 0.5 to 2
	TopBoost   float64 // Reported only, 1 to 3
	SideBoost  float64 // Reported only, 1 to 3
	Base       float64 // Brightness of the darkest parts, 0 to 1
	Rim        float64 // Strength of the rim highlight, 0 to 10

	// Geometry and projection
	Radius         float64
	Height         float64
	ViewerDistance float64 // K2
	ScaleX         float64
	ScaleY         float64

	// Sampling
	AngleStep  float64
	HeightStep float64

	// Animation
	StepA float64
	StepB float64
	Delay time.Duration
	Chaos float64
	Seed  uint64

	// Output
	Ramp        string
	ReverseRamp bool
	Width       int // Grid columns, 0 to measure the terminal
	Rows        int // Grid rows, 0 to measure the terminal
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Brightness: 16,
		Contrast:   1.2,
		TopBoost:   1,
		SideBoost:  1.2,
		Base:       1,
		Rim:        5,

		Radius:         3,
		Height:         9,
		ViewerDistance: 7,
		ScaleX:         30,
		ScaleY:         15,

		AngleStep:  0.07,
		HeightStep: 0.02,

		StepA: 0.04,
		StepB: 0.02,
		Delay: 50 * time.Millisecond,
		Chaos: 0,
		Seed:  1,

		Ramp:        render.DefaultRamp,
		ReverseRamp: true,
	}
}

// FieldError describes one invalid field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return "config." + e.Field + ": " + e.Reason
}

// Unwrap lets callers test with errors.Is(err, ErrInvalidConfig).
func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

func inRange(field string, v, lo, hi float64) error {
	if !(v >= lo && v <= hi) {
		return &FieldError{Field: field, Reason: fmt.Sprintf("%g is outside [%g, %g]", v, lo, hi)}
	}
	return nil
}

func positive(field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return &FieldError{Field: field, Reason: fmt.Sprintf("must be positive and finite, got %g", v)}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &FieldError{Field: field, Reason: fmt.Sprintf("must be finite, got %g", v)}
	}
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	checks := []error{
		inRange("Brightness", c.Brightness, 1, 20),
		inRange("Contrast", c.Contrast, 0.5, 2),
		inRange("TopBoost", c.TopBoost, 1, 3),
		inRange("SideBoost", c.SideBoost, 1, 3),
		inRange("Base", c.Base, 0, 1),
		inRange("Rim", c.Rim, 0, 10),
		inRange("Radius", c.Radius, 0, math.MaxFloat64),
		inRange("Height", c.Height, 0, math.MaxFloat64),
		positive("ViewerDistance", c.ViewerDistance),
		positive("ScaleX", c.ScaleX),
		positive("ScaleY", c.ScaleY),
		positive("AngleStep", c.AngleStep),
		positive("HeightStep", c.HeightStep),
		finite("StepA", c.StepA),
		finite("StepB", c.StepB),
		inRange("Chaos", c.Chaos, 0, 10),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	if bound := c.Cylinder().BoundingRadius(); !(c.ViewerDistance > bound) {
		return &FieldError{
			Field:  "ViewerDistance",
			Reason: fmt.Sprintf("%g must exceed the cylinder's bounding radius %g", c.ViewerDistance, bound),
		}
	}
	if c.Delay <= 0 {
		return &FieldError{Field: "Delay", Reason: fmt.Sprintf("must be positive, got %s", c.Delay)}
	}
	if c.Width < 0 || c.Rows < 0 {
		return &FieldError{Field: "Width", Reason: fmt.Sprintf("grid %dx%d must not be negative", c.Width, c.Rows)}
	}
	if _, err := render.NewRamp(c.Ramp, c.ReverseRamp); err != nil {
		return &FieldError{Field: "Ramp", Reason: err.Error()}
	}
	return nil
}

// BindFlags registers a flag for every field of c on fs. Parsing fs writes
// straight into c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&c.Brightness, "brightness", c.Brightness, "overall brightness multiplier (1-20)")
	fs.Float64Var(&c.Contrast, "contrast", c.Contrast, "contrast between light and dark areas (0.5-2)")
	fs.Float64Var(&c.TopBoost, "top-boost", c.TopBoost, "top surface brightness boost (1-3)")
	fs.Float64Var(&c.SideBoost, "side-boost", c.SideBoost, "side brightness boost (1-3)")
	fs.Float64Var(&c.Base, "base", c.Base, "minimum brightness of the darkest parts (0-1)")
	fs.Float64Var(&c.Rim, "rim", c.Rim, "rim highlight strength (0-10)")

	fs.Float64Var(&c.Radius, "radius", c.Radius, "cylinder radius")
	fs.Float64Var(&c.Height, "cylinder-height", c.Height, "cylinder height along its axis")
	fs.Float64Var(&c.ViewerDistance, "distance", c.ViewerDistance, "viewer distance from the cylinder centre")
	fs.Float64Var(&c.ScaleX, "scale-x", c.ScaleX, "horizontal projection scale")
	fs.Float64Var(&c.ScaleY, "scale-y", c.ScaleY, "vertical projection scale")

	fs.Float64Var(&c.AngleStep, "angle-step", c.AngleStep, "sampling step around the axis (radians)")
	fs.Float64Var(&c.HeightStep, "height-step", c.HeightStep, "sampling step along the axis")

	fs.Float64Var(&c.StepA, "step-a", c.StepA, "rotation of A per frame (radians)")
	fs.Float64Var(&c.StepB, "step-b", c.StepB, "rotation of B per frame (radians)")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "delay between frames")
	fs.Float64Var(&c.Chaos, "chaos", c.Chaos, "random rotation jitter (0 disables)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "seed for the rotation jitter")

	fs.StringVar(&c.Ramp, "ramp", c.Ramp, "luminance glyphs, densest first")
	fs.BoolVar(&c.ReverseRamp, "reverse-ramp", c.ReverseRamp, "reverse the ramp before use")
	fs.IntVarP(&c.Width, "width", "W", c.Width, "grid columns (0 measures the terminal)")
	fs.IntVarP(&c.Rows, "rows", "H", c.Rows, "grid rows (0 measures the terminal)")
}

// Lighting returns the shading parameters.
func (c *Config) Lighting() render.Lighting {
	return render.Lighting{
		Brightness:  c.Brightness,
		Contrast:    c.Contrast,
		Base:        c.Base,
		RimStrength: c.Rim,
	}
}

// Cylinder returns the surface being drawn.
func (c *Config) Cylinder() models.Cylinder {
	return models.Cylinder{Radius: c.Radius, Height: c.Height}
}

// Animation returns the options for anim.NewRotation.
func (c *Config) Animation() anim.Options {
	return anim.Options{
		StepA: c.StepA,
		StepB: c.StepB,
		Chaos: c.Chaos,
		Seed:  c.Seed,
		Frame: c.Delay,
	}
}

// Build validates c and assembles the ramp and rasterizer it describes.
func (c *Config) Build() (render.Ramp, *render.Rasterizer, error) {
	if err := c.Validate(); err != nil {
		return render.Ramp{}, nil, err
	}
	ramp, err := render.NewRamp(c.Ramp, c.ReverseRamp)
	if err != nil {
		return render.Ramp{}, nil, fmt.Errorf("build ramp: %w", err)
	}
	shader, err := render.NewShader(c.Lighting(), ramp.Len())
	if err != nil {
		return render.Ramp{}, nil, fmt.Errorf("build shader: %w", err)
	}
	r, err := render.NewRasterizer(
		c.Cylinder(),
		render.Projection{ViewerDistance: c.ViewerDistance, ScaleX: c.ScaleX, ScaleY: c.ScaleY},
		render.Sampling{AngleStep: c.AngleStep, HeightStep: c.HeightStep},
		shader,
	)
	if err != nil {
		return render.Ramp{}, nil, fmt.Errorf("build rasterizer: %w", err)
	}
	return ramp, r, nil
}

// GridSize resolves the drawable grid for a terminal of cols × lines. The
// configured Width and Rows take precedence; measured terminals lose
// StatusRows rows to the status line. Non-positive measurements fall back
// to FallbackWidth × FallbackHeight, and the result is never smaller than
// MinWidth × MinHeight.
func (c *Config) GridSize(cols, lines int) (width, height int) {
	if cols <= 0 || lines <= 0 {
		cols, lines = FallbackWidth, FallbackHeight
	}
	width, height = cols, lines-StatusRows
	if c.Width > 0 {
		width = c.Width
	}
	if c.Rows > 0 {
		height = c.Rows
	}
	return max(width, MinWidth), max(height, MinHeight)
}
