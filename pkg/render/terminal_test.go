package render

import (
	"bytes"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

func TestFrameDraw(t *testing.T) {
	buf, _ := NewDepthBuffer(3, 2)
	buf.Plot(0, 0, 1, 0)
	buf.Plot(2, 1, 1, 1)
	f := NewFrame(3, 2)
	f.Composite(buf, MustRamp("*#", false))

	scr := uv.NewScreenBuffer(6, 4)
	f.Draw(scr, uv.Rect(1, 1, 5, 3))

	tests := []struct {
		x, y int
		want string
	}{
		{1, 1, "*"},
		{3, 2, "#"},
		{2, 1, " "},
		{0, 0, " "},
		{4, 1, " "},
	}
	for _, tc := range tests {
		if got := scr.CellAt(tc.x, tc.y).Content; got != tc.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDisplayShow(t *testing.T) {
	buf, _ := NewDepthBuffer(2, 2)
	buf.Plot(0, 0, 1, 0)
	f := NewFrame(2, 2)
	f.Composite(buf, MustRamp("#", false))

	var out bytes.Buffer
	d := NewDisplay(&out)
	if err := d.Show(f); err != nil {
		t.Fatalf("Show: %v", err)
	}

	if want := "\x1b[H# \x1b[2;1H  "; out.String() != want {
		t.Errorf("Show wrote %q, want %q", out.String(), want)
	}
}

func TestDisplayShowRaw(t *testing.T) {
	f := NewFrame(2, 1)

	var out bytes.Buffer
	d := NewDisplay(&out)
	if err := d.ShowRaw(f); err != nil {
		t.Fatalf("ShowRaw: %v", err)
	}
	if want := "\x1b[H  \n"; out.String() != want {
		t.Errorf("ShowRaw wrote %q, want %q", out.String(), want)
	}
}

func TestDisplayLine(t *testing.T) {
	var out bytes.Buffer
	d := NewDisplay(&out)
	if err := d.Line(24, "status"); err != nil {
		t.Fatalf("Line: %v", err)
	}
	if want := "\x1b[24;1H\x1b[2Kstatus"; out.String() != want {
		t.Errorf("Line wrote %q, want %q", out.String(), want)
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name    string
		status  Status
		want    []string
		notWant []string
	}{
		{
			name:    "running",
			status:  Status{FPS: 20, Speed: 1, A: 1.5, B: 0.75, Width: 80, Height: 22},
			want:    []string{"fps 20", "speed 1.0x", "A 1.50", "B 0.75", "grid 80x22"},
			notWant: []string{"PAUSED", "TURBO", "chaos"},
		},
		{
			name:   "paused turbo chaos",
			status: Status{Speed: 2.3, Paused: true, Turbo: true, Chaos: 1.5},
			want:   []string{"PAUSED", "TURBO", "chaos 1.5", "speed 2.3x"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			line := ansi.Strip(StatusLine(tc.status, 0))
			for _, w := range tc.want {
				if !strings.Contains(line, w) {
					t.Errorf("status line %q missing %q", line, w)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(line, w) {
					t.Errorf("status line %q should not contain %q", line, w)
				}
			}
		})
	}
}

func TestStatusLineWidth(t *testing.T) {
	s := Status{FPS: 20, Speed: 1, Paused: true, Turbo: true, Chaos: 2, Width: 200, Height: 60}

	for _, w := range []int{10, 40, 80} {
		if got := lipgloss.Width(StatusLine(s, w)); got > w {
			t.Errorf("width %d: rendered %d cells", w, got)
		}
	}
}
