package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/cylinder/pkg/math3d"
)

// ErrDegenerate is returned when a cylinder has no area to tessellate.
var ErrDegenerate = errors.New("degenerate cylinder")

// Cylinder is a finite, open-ended cylinder wall centred on the origin with
// its axis along Z. Its surface is parameterised by an angle t in [0, 2π)
// and a height z in [-Height/2, Height/2).
type Cylinder struct {
	Radius float64
	Height float64
}

// Point returns the surface position at parameters (t, z).
func (c Cylinder) Point(t, z float64) math3d.Vec3 {
	return c.PointSinCos(math.Sin(t), math.Cos(t), z)
}

// PointSinCos is Point for a precomputed sin(t) and cos(t).
func (c Cylinder) PointSinCos(sinT, cosT, z float64) math3d.Vec3 {
	return math3d.V3(c.Radius*cosT, c.Radius*sinT, z)
}

// Normal returns the outward wall normal at angle t.
func (c Cylinder) Normal(t float64) math3d.Vec3 {
	return math3d.V3(math.Cos(t), math.Sin(t), 0)
}

// HalfHeight returns Height/2.
func (c Cylinder) HalfHeight() float64 {
	return c.Height / 2
}

// BoundingRadius is the radius of the smallest origin-centred sphere that
// contains the whole cylinder. Any rotation keeps every surface point
// within this distance of the origin.
func (c Cylinder) BoundingRadius() float64 {
	return math.Hypot(c.Radius, c.HalfHeight())
}

// Tessellate converts the cylinder into a triangle mesh with the given
// number of segments around the axis and rings along it. When caps is
// true the two ends are closed with triangle fans.
func (c Cylinder) Tessellate(segments, rings int, caps bool) (*Mesh, error) {
	if c.Radius <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("tessellate r=%g h=%g: %w", c.Radius, c.Height, ErrDegenerate)
	}
	if segments < 3 || rings < 1 {
		return nil, fmt.Errorf("tessellate: need at least 3 segments and 1 ring, got %d and %d", segments, rings)
	}

	mesh := NewMesh("cylinder")
	half := c.HalfHeight()
	step := 2 * math.Pi / float64(segments)

	// Wall: (rings+1) rows of segments vertices, wrapping around in t.
	for j := 0; j <= rings; j++ {
		z := -half + c.Height*float64(j)/float64(rings)
		for i := range segments {
			t := float64(i) * step
			mesh.addVertex(c.Point(t, z), c.Normal(t))
		}
	}
	at := func(i, j int) int { return j*segments + i%segments }
	for j := range rings {
		for i := range segments {
			mesh.addFace(at(i, j), at(i+1, j), at(i+1, j+1))
			mesh.addFace(at(i, j), at(i+1, j+1), at(i, j+1))
		}
	}

	if caps {
		c.addCap(mesh, segments, step, half, 1)
		c.addCap(mesh, segments, step, -half, -1)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// addCap adds a triangle fan at height z facing dir (+1 top, -1 bottom).
// Cap vertices are separate from the wall so each keeps a flat normal.
func (c Cylinder) addCap(mesh *Mesh, segments int, step, z, dir float64) {
	normal := math3d.V3(0, 0, dir)
	center := mesh.addVertex(math3d.V3(0, 0, z), normal)
	first := len(mesh.Vertices)
	for i := range segments {
		mesh.addVertex(c.Point(float64(i)*step, z), normal)
	}
	for i := range segments {
		a := first + i
		b := first + (i+1)%segments
		if dir > 0 {
			mesh.addFace(center, a, b)
		} else {
			mesh.addFace(center, b, a)
		}
	}
}
