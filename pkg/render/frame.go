package render

import "strings"

// blank is the glyph of a cell no sample reached.
const blank = ' '

// Frame is one composited frame: height rows of width glyphs, each row
// followed by a newline, so it always holds exactly width*height + height
// runes. The backing slice is allocated once and reused across frames.
type Frame struct {
	width  int
	height int
	runes  []rune
}

// NewFrame allocates a blank frame.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.ensure(width, height)
	return f
}

// ensure sizes the frame for a width × height grid and blanks it when the
// dimensions change.
func (f *Frame) ensure(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if f.width == width && f.height == height && f.runes != nil {
		return
	}
	n := width*height + height
	if cap(f.runes) < n {
		f.runes = make([]rune, n)
	}
	f.runes = f.runes[:n]
	f.width, f.height = width, height
	f.Clear()
}

// Clear blanks every cell, keeping the row terminators.
func (f *Frame) Clear() {
	k := 0
	for range f.height {
		for range f.width {
			f.runes[k] = blank
			k++
		}
		f.runes[k] = '\n'
		k++
	}
}

// Composite converts the resolved cells of buf into glyphs, row by row.
// Cells with both surfaces use the floor average of the two indices, cells
// with one surface use it directly and empty cells stay blank. The frame
// takes the dimensions of buf.
func (f *Frame) Composite(buf *DepthBuffer, ramp Ramp) {
	f.ensure(buf.Width(), buf.Height())

	k := 0
	for y := range f.height {
		row := buf.cells[y*buf.width : (y+1)*buf.width]
		for _, c := range row {
			if idx, ok := c.Index(); ok {
				f.runes[k] = ramp.Glyph(idx)
			} else {
				f.runes[k] = blank
			}
			k++
		}
		f.runes[k] = '\n'
		k++
	}
}

// Width returns the number of glyph columns.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the number of rows.
func (f *Frame) Height() int {
	return f.height
}

// Len returns the frame length in runes, terminators included.
func (f *Frame) Len() int {
	return len(f.runes)
}

// At returns the glyph at (x, y), or a blank if out of bounds.
func (f *Frame) At(x, y int) rune {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return blank
	}
	return f.runes[y*(f.width+1)+x]
}

// Row returns row y without its terminator.
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.height {
		return ""
	}
	start := y * (f.width + 1)
	return string(f.runes[start : start+f.width])
}

// Runes returns the frame contents. The slice is reused by the next
// Composite; copy it to keep it.
func (f *Frame) Runes() []rune {
	return f.runes
}

// String returns the frame as text, ready to be written verbatim.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(len(f.runes))
	for _, r := range f.runes {
		sb.WriteRune(r)
	}
	return sb.String()
}

// Bytes returns the UTF-8 encoding of the frame.
func (f *Frame) Bytes() []byte {
	return []byte(f.String())
}
