// Package render rasterizes a rotating cylinder into a character grid.
//
// A frame is produced in four steps: the DepthBuffer is reset, the
// cylinder wall is sampled on a parametric (angle × height) grid and every
// sample is rotated, projected and shaded, each sample is depth-tested
// against the nearest and farthest sample already in its cell, and finally
// the Frame composites the surviving front/back luminance indices into
// glyphs.
package render

import (
	"fmt"
	"math"

	"github.com/taigrr/cylinder/pkg/math3d"
	"github.com/taigrr/cylinder/pkg/models"
)

// minDenominator is the smallest |z + K2| a sample may project with.
const minDenominator = 1e-9

// Projection places the viewer and scales projected coordinates to cells.
type Projection struct {
	ViewerDistance float64 // K2: distance from the viewer to the cylinder centre
	ScaleX         float64 // Horizontal cells per unit of x/z
	ScaleY         float64 // Vertical cells per unit of y/z
}

// Sampling sets the parametric grid spacing over the cylinder wall.
type Sampling struct {
	AngleStep  float64 // Radians between samples around the axis
	HeightStep float64 // Units between samples along the axis
}

// Sample is one surface point carried through the pipeline.
type Sample struct {
	T, Z     float64     // Parametric coordinates
	Position math3d.Vec3 // Position after both rotations
	InvDepth float64     // D = 1 / (z + K2)
	ScreenX  float64     // Projected column before truncation
	ScreenY  float64     // Projected row before truncation
	X, Y     int         // Cell coordinates, valid when Visible
	Index    int         // Luminance index
	Visible  bool        // Projects inside the grid
	Skipped  bool        // Denominator too close to zero to project
}

// Stats counts what happened to the samples of one frame.
type Stats struct {
	Samples   int // Samples generated
	Skipped   int // Dropped by the near-zero denominator guard
	Offscreen int // Projected outside the grid
	Front     int // Times a sample replaced a cell's front surface
	Back      int // Times a sample replaced a cell's back surface
}

// Rasterizer samples, transforms and depth-resolves the cylinder wall. It
// holds no per-frame state besides Stats; rotation angles are passed in.
type Rasterizer struct {
	Cylinder   models.Cylinder
	Projection Projection
	Sampling   Sampling
	Shader     Shader
	Stats      Stats // Statistics of the most recent Draw
}

// NewRasterizer validates the parameters and returns a rasterizer.
func NewRasterizer(cyl models.Cylinder, proj Projection, samp Sampling, shader Shader) (*Rasterizer, error) {
	if !(samp.AngleStep > 0) || !(samp.HeightStep > 0) {
		return nil, fmt.Errorf("rasterizer: sampling steps must be positive, got %g and %g", samp.AngleStep, samp.HeightStep)
	}
	if cyl.Radius < 0 || cyl.Height < 0 {
		return nil, fmt.Errorf("rasterizer: cylinder dimensions must not be negative, got r=%g h=%g", cyl.Radius, cyl.Height)
	}
	for _, v := range []float64{cyl.Radius, cyl.Height, proj.ViewerDistance, proj.ScaleX, proj.ScaleY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("rasterizer: non-finite parameter %g", v)
		}
	}
	if shader.Levels() <= 0 {
		return nil, fmt.Errorf("rasterizer: %w", ErrEmptyRamp)
	}
	return &Rasterizer{
		Cylinder:   cyl,
		Projection: proj,
		Sampling:   samp,
		Shader:     shader,
	}, nil
}

// view is the per-frame state shared by every sample.
type view struct {
	rot          math3d.Mat4
	sinA         float64
	width        int
	height       int
	halfW, halfH float64
}

func (r *Rasterizer) view(width, height int, a, b float64) view {
	sinA, cosA := math.Sincos(a)
	sinB, cosB := math.Sincos(b)
	return view{
		// X rotation (angle A) first, then Z rotation (angle B)
		rot:    math3d.RotateZSinCos(sinB, cosB).Mul(math3d.RotateXSinCos(sinA, cosA)),
		sinA:   sinA,
		width:  width,
		height: height,
		halfW:  float64(width) / 2,
		halfH:  float64(height) / 2,
	}
}

// project rotates, projects and shades the wall point at (t, z).
func (r *Rasterizer) project(v *view, t, sinT, cosT, z float64, idx int) Sample {
	s := Sample{T: t, Z: z, Index: idx}
	s.Position = v.rot.MulVec3Dir(r.Cylinder.PointSinCos(sinT, cosT, z))

	denom := s.Position.Z + r.Projection.ViewerDistance
	if math.Abs(denom) < minDenominator {
		s.Skipped = true
		return s
	}
	s.InvDepth = 1 / denom
	s.ScreenX = v.halfW + r.Projection.ScaleX*s.InvDepth*s.Position.X
	s.ScreenY = v.halfH + r.Projection.ScaleY*s.InvDepth*s.Position.Y

	// Range-check before truncating toward zero; NaN fails both tests.
	if s.ScreenX > -1 && s.ScreenX < float64(v.width) && s.ScreenY > -1 && s.ScreenY < float64(v.height) {
		s.X = int(s.ScreenX)
		s.Y = int(s.ScreenY)
		s.Visible = true
	}
	return s
}

// Sample computes a single surface sample for a width × height grid under
// rotation (a, b) without touching any buffer.
func (r *Rasterizer) Sample(t, z, a, b float64, width, height int) Sample {
	v := r.view(width, height, a, b)
	sinT, cosT := math.Sincos(t)
	return r.project(&v, t, sinT, cosT, z, r.Shader.Shade(sinT, v.sinA))
}

// Draw samples the whole cylinder wall under rotation (a, b) and resolves
// every visible sample into buf. The buffer is not reset; call Reset first
// or use RenderFrame.
//
// Angles run t = i·AngleStep for t < 2π and heights z = −h/2 + j·HeightStep
// for z < h/2, t in the outer loop. The order is fixed, so equal inputs
// always produce equal buffers.
func (r *Rasterizer) Draw(buf *DepthBuffer, a, b float64) Stats {
	v := r.view(buf.Width(), buf.Height(), a, b)
	half := r.Cylinder.HalfHeight()
	var stats Stats

	for i := 0; ; i++ {
		t := float64(i) * r.Sampling.AngleStep
		if t >= 2*math.Pi {
			break
		}
		sinT, cosT := math.Sincos(t)
		// Shading depends only on t and A, so it is shared by the whole column.
		idx := r.Shader.Shade(sinT, v.sinA)

		for j := 0; ; j++ {
			z := -half + float64(j)*r.Sampling.HeightStep
			if z >= half {
				break
			}
			stats.Samples++

			s := r.project(&v, t, sinT, cosT, z, idx)
			switch {
			case s.Skipped:
				stats.Skipped++
				continue
			case !s.Visible:
				stats.Offscreen++
				continue
			}

			front, back := buf.Plot(s.X, s.Y, s.InvDepth, s.Index)
			if front {
				stats.Front++
			}
			if back {
				stats.Back++
			}
		}
	}

	r.Stats = stats
	return stats
}

// RenderFrame runs the full pipeline for one frame: reset buf, draw the
// cylinder under rotation (a, b) and composite the result into frame.
func (r *Rasterizer) RenderFrame(buf *DepthBuffer, frame *Frame, ramp Ramp, a, b float64) Stats {
	buf.Reset()
	stats := r.Draw(buf, a, b)
	frame.Composite(buf, ramp)

	Logger().Debug("frame rendered",
		"a", a, "b", b,
		"samples", stats.Samples,
		"skipped", stats.Skipped,
		"offscreen", stats.Offscreen,
		"front", stats.Front,
		"back", stats.Back,
	)
	return stats
}
