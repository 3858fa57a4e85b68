package render

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for non-positive grid dimensions.
var ErrInvalidSize = errors.New("invalid grid size")

// Surface is the winning sample for one side of a cell.
type Surface struct {
	Present bool    // Whether any sample reached the cell this frame
	Depth   float64 // Inverse depth of the winning sample (larger is nearer)
	Index   int     // Luminance index of the winning sample
}

// Cell holds the nearest (Front) and farthest (Back) samples that
// projected onto one screen cell.
type Cell struct {
	Front Surface
	Back  Surface
}

// Empty reports whether no sample reached the cell.
func (c Cell) Empty() bool {
	return !c.Front.Present && !c.Back.Present
}

// Index returns the composited luminance index of the cell: the floor
// average of front and back when both exist, otherwise whichever exists.
// ok is false for an empty cell.
func (c Cell) Index() (idx int, ok bool) {
	switch {
	case c.Front.Present && c.Back.Present:
		return (c.Front.Index + c.Back.Index) / 2, true
	case c.Front.Present:
		return c.Front.Index, true
	case c.Back.Present:
		return c.Back.Index, true
	}
	return 0, false
}

// DepthBuffer is the per-frame double-sided depth buffer, one Cell per
// screen position addressed by x + width*y. It is owned by a single
// render loop and is not safe for concurrent use.
type DepthBuffer struct {
	width  int
	height int
	cells  []Cell
}

// NewDepthBuffer allocates a cleared buffer of width × height cells.
func NewDepthBuffer(width, height int) (*DepthBuffer, error) {
	b := &DepthBuffer{}
	if err := b.Resize(width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize changes the grid dimensions and clears every cell. The backing
// storage is reused when it is large enough.
func (b *DepthBuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("depth buffer %dx%d: %w", width, height, ErrInvalidSize)
	}
	if b.width != 0 && (b.width != width || b.height != height) {
		Logger().Info("depth buffer resized",
			"from", fmt.Sprintf("%dx%d", b.width, b.height),
			"to", fmt.Sprintf("%dx%d", width, height),
		)
	}
	n := width * height
	if cap(b.cells) < n {
		b.cells = make([]Cell, n)
	}
	b.cells = b.cells[:n]
	b.width, b.height = width, height
	b.Reset()
	return nil
}

// Width returns the grid width in cells.
func (b *DepthBuffer) Width() int {
	return b.width
}

// Height returns the grid height in cells.
func (b *DepthBuffer) Height() int {
	return b.height
}

// Reset clears every cell to the no-sample state (call before each frame).
func (b *DepthBuffer) Reset() {
	// Use copy-doubling for faster clearing
	n := len(b.cells)
	if n == 0 {
		return
	}
	b.cells[0] = Cell{}
	for i := 1; i < n; i *= 2 {
		copy(b.cells[i:], b.cells[:i])
	}
}

// Plot offers a sample with inverse depth d and luminance index idx to the
// cell at (x, y). The sample becomes the front surface if it is strictly
// nearer than the current front, and the back surface if it is strictly
// farther than the current back; a cell's first sample becomes both. Ties
// keep the earlier sample. Out-of-range coordinates are ignored.
func (b *DepthBuffer) Plot(x, y int, d float64, idx int) (front, back bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false, false
	}
	c := &b.cells[x+b.width*y]
	if !c.Front.Present || d > c.Front.Depth {
		c.Front = Surface{Present: true, Depth: d, Index: idx}
		front = true
	}
	if !c.Back.Present || d < c.Back.Depth {
		c.Back = Surface{Present: true, Depth: d, Index: idx}
		back = true
	}
	return front, back
}

// Cell returns the cell at (x, y). Returns an empty cell if out of bounds.
func (b *DepthBuffer) Cell(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}
	}
	return b.cells[x+b.width*y]
}

// Covered returns the number of cells that received at least one sample.
func (b *DepthBuffer) Covered() int {
	n := 0
	for i := range b.cells {
		if !b.cells[i].Empty() {
			n++
		}
	}
	return n
}
