package main

import (
	"bytes"
	"errors"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/cylinder/pkg/config"
	"github.com/taigrr/cylinder/pkg/models"
	"github.com/taigrr/cylinder/pkg/render"
)

// resetLoggers restores the silent renderer logger and the stock default.
func resetLoggers() {
	render.SetLogger(nil)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestFrameCommand(t *testing.T) {
	out, err := execute(t, "frame", "-W", "40", "-H", "12", "-a", "1.3", "-b", "0.7")
	if err != nil {
		t.Fatalf("frame: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d rows, want 12", len(lines))
	}
	for i, l := range lines {
		if len([]rune(l)) != 40 {
			t.Errorf("row %d has %d glyphs, want 40", i, len([]rune(l)))
		}
	}
	if strings.TrimSpace(out) == "" {
		t.Error("frame is blank")
	}

	again, err := execute(t, "frame", "-W", "40", "-H", "12", "-a", "1.3", "-b", "0.7")
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if again != out {
		t.Error("identical invocations should print identical frames")
	}
}

func TestFrameCommandFallbackSize(t *testing.T) {
	out, err := execute(t, "frame")
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	// Not a terminal: 80x24 minus the status rows.
	if got := strings.Count(out, "\n"); got != config.FallbackHeight-config.StatusRows {
		t.Errorf("got %d rows, want %d", got, config.FallbackHeight-config.StatusRows)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	_, err := execute(t, "frame", "--contrast", "5")
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}

	_, err = execute(t, "frame", "--ramp", "")
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("empty ramp error = %v, want ErrInvalidConfig", err)
	}
}

func TestSnapshotCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if _, err := execute(t, "snapshot", "-W", "20", "-H", "6", "-o", path, "--scale", "2"); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 20*7*2 || cfg.Height != 6*13*2 {
		t.Errorf("PNG = %dx%d, want %dx%d", cfg.Width, cfg.Height, 20*7*2, 6*13*2)
	}
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cyl.glb")
	out, err := execute(t, "export", "-o", path, "--segments", "12", "--rings", "3", "-a", "0.5")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "72 triangles") {
		t.Errorf("output = %q", out)
	}

	mesh, err := models.LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	if mesh.TriangleCount() != 12*3*2 || mesh.VertexCount() != 12*4 {
		t.Errorf("mesh = %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cylinder.log")
	if _, err := execute(t, "frame", "-W", "20", "-H", "6", "--log-file", path, "--log-level", "debug"); err != nil {
		t.Fatalf("frame: %v", err)
	}
	t.Cleanup(resetLoggers)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "frame rendered") {
		t.Errorf("log = %q, want a frame record", data)
	}

	if _, err := execute(t, "frame", "--log-file", path, "--log-level", "loud"); err == nil {
		t.Error("unknown log level should fail")
	}
}

func TestHandleKey(t *testing.T) {
	cfg := config.Default()
	s, err := newSession(&cfg, 20, 8, time.Now())
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	rot := s.rot

	press := func(code rune, mod uv.KeyMod) bool {
		return handleKey(rot, uv.KeyPressEvent{Code: code, Mod: mod})
	}

	if press(' ', 0); !rot.Paused() {
		t.Error("space should pause")
	}
	press(' ', 0)
	if rot.Paused() {
		t.Error("space should resume")
	}
	press('+', 0)
	if rot.TargetSpeed() <= 1 {
		t.Errorf("+ should speed up, target %v", rot.TargetSpeed())
	}
	press('-', 0)
	press('-', 0)
	if rot.TargetSpeed() >= 1 {
		t.Errorf("- should slow down, target %v", rot.TargetSpeed())
	}
	if press('t', 0); !rot.Turbo() {
		t.Error("t should toggle turbo")
	}
	if press('c', 0); rot.Chaos() == 0 {
		t.Error("c should raise chaos")
	}
	rot.Step()
	press('r', 0)
	if rot.A != 0 || rot.Turbo() || rot.Chaos() != 0 {
		t.Errorf("r should reset: A=%v turbo=%v chaos=%v", rot.A, rot.Turbo(), rot.Chaos())
	}

	for _, k := range []struct {
		code rune
		mod  uv.KeyMod
	}{{'q', 0}, {uv.KeyEscape, 0}, {'c', uv.ModCtrl}} {
		if !press(k.code, k.mod) {
			t.Errorf("key %q mod %v should quit", k.code, k.mod)
		}
	}
	if press('x', 0) {
		t.Error("unbound key should not quit")
	}
}

func TestSessionRenderAndResize(t *testing.T) {
	cfg := config.Default()
	s, err := newSession(&cfg, 40, 12, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}

	if stats := s.render(); stats.Samples != 40500 {
		t.Errorf("Samples = %d", stats.Samples)
	}
	s.advance(time.Unix(0, int64(50*time.Millisecond)))
	if s.rot.A == 0 {
		t.Error("advance should rotate")
	}

	if err := s.resize(30, 9); err != nil {
		t.Fatalf("resize: %v", err)
	}
	s.render()
	if s.frame.Width() != 30 || s.frame.Height() != 9 {
		t.Errorf("frame = %dx%d after resize", s.frame.Width(), s.frame.Height())
	}

	st := s.status()
	if st.Width != 30 || st.Height != 9 || st.Speed != 1 {
		t.Errorf("status = %+v", st)
	}
}

func TestWriteBanner(t *testing.T) {
	cfg := config.Default()
	var out bytes.Buffer
	if err := writeBanner(&out, &cfg, 80, 22); err != nil {
		t.Fatalf("writeBanner: %v", err)
	}
	for _, want := range []string{"Terminal size: 80x22", "Press 'q'", "Brightness: 16", "Contrast: 1.2", "Top Boost: 1"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("banner missing %q:\n%s", want, out.String())
		}
	}
}
