package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// ANSI control sequences used by Display.
const (
	cursorHome = "\x1b[H"
	clearLine  = "\x1b[2K"
)

// Draw copies the frame onto the screen area, one glyph per cell. Cells of
// the area outside the frame are left untouched.
func (f *Frame) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y && row-area.Min.Y < f.height; row++ {
		y := row - area.Min.Y
		for col := area.Min.X; col < area.Max.X && col-area.Min.X < f.width; col++ {
			g := f.At(col-area.Min.X, y)
			if g == blank {
				scr.SetCell(col, row, nil)
				continue
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: string(g),
				Width:   1,
			})
		}
	}
}

// Display writes frames to a terminal so that each frame overwrites the
// previous one in place instead of scrolling.
type Display struct {
	w *bufio.Writer
}

// NewDisplay wraps w, typically os.Stdout.
func NewDisplay(w io.Writer) *Display {
	return &Display{w: bufio.NewWriterSize(w, 64*1024)}
}

// Show moves the cursor to the top-left corner and writes the frame.
// Frame rows end in a bare newline; in raw terminal mode that does not
// return the carriage, so each row is re-anchored to column 1.
func (d *Display) Show(f *Frame) error {
	d.w.WriteString(cursorHome)
	for y := range f.Height() {
		if y > 0 {
			fmt.Fprintf(d.w, "\x1b[%d;1H", y+1)
		}
		d.w.WriteString(f.Row(y))
	}
	return d.Flush()
}

// ShowRaw writes the frame verbatim after a cursor-home sequence. Use it
// when the terminal translates newlines (cooked mode or a plain pipe).
func (d *Display) ShowRaw(f *Frame) error {
	d.w.WriteString(cursorHome)
	d.w.WriteString(f.String())
	return d.Flush()
}

// Line clears 1-based terminal row and writes text at its start.
func (d *Display) Line(row int, text string) error {
	fmt.Fprintf(d.w, "\x1b[%d;1H%s%s", row, clearLine, text)
	return d.Flush()
}

// Flush writes any buffered output.
func (d *Display) Flush() error {
	if err := d.w.Flush(); err != nil {
		return fmt.Errorf("flush display: %w", err)
	}
	return nil
}

// Status is the information shown on the status line.
type Status struct {
	FPS    float64
	Speed  float64
	A, B   float64
	Paused bool
	Turbo  bool
	Chaos  float64
	Width  int
	Height int
}

var (
	statusKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statusFlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	statusHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// StatusLine formats s as a single styled line no wider than width cells.
func StatusLine(s Status, width int) string {
	field := func(k, v string) string {
		return statusKeyStyle.Render(k) + " " + statusValueStyle.Render(v)
	}

	parts := []string{
		field("fps", fmt.Sprintf("%.0f", s.FPS)),
		field("speed", fmt.Sprintf("%.1fx", s.Speed)),
		field("A", fmt.Sprintf("%.2f", s.A)),
		field("B", fmt.Sprintf("%.2f", s.B)),
		field("grid", fmt.Sprintf("%dx%d", s.Width, s.Height)),
	}
	if s.Chaos > 0 {
		parts = append(parts, field("chaos", fmt.Sprintf("%.1f", s.Chaos)))
	}
	if s.Turbo {
		parts = append(parts, statusFlagStyle.Render("TURBO"))
	}
	if s.Paused {
		parts = append(parts, statusFlagStyle.Render("PAUSED"))
	}
	parts = append(parts, statusHelpStyle.Render("q quit · space pause · +/- speed · t turbo · c chaos · r reset"))

	line := strings.Join(parts, "  ")
	if width > 0 {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}
