package main

import (
	"fmt"
	"io"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/cylinder/pkg/anim"
	"github.com/taigrr/cylinder/pkg/config"
	"github.com/taigrr/cylinder/pkg/render"
)

// session is the render state of one animation run.
type session struct {
	cfg   *config.Config
	ramp  render.Ramp
	rast  *render.Rasterizer
	buf   *render.DepthBuffer
	frame *render.Frame
	rot   *anim.Rotation
	fps   *anim.FPSMeter
}

func newSession(cfg *config.Config, width, height int, now time.Time) (*session, error) {
	ramp, rast, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	buf, err := render.NewDepthBuffer(width, height)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:   cfg,
		ramp:  ramp,
		rast:  rast,
		buf:   buf,
		frame: render.NewFrame(width, height),
		rot:   anim.NewRotation(cfg.Animation()),
		fps:   anim.NewFPSMeter(now),
	}, nil
}

// resize takes effect from the next rendered frame.
func (s *session) resize(width, height int) error {
	if width == s.buf.Width() && height == s.buf.Height() {
		return nil
	}
	return s.buf.Resize(width, height)
}

// render draws the current rotation into s.frame.
func (s *session) render() render.Stats {
	return s.rast.RenderFrame(s.buf, s.frame, s.ramp, s.rot.A, s.rot.B)
}

// advance moves the animation to the next frame.
func (s *session) advance(now time.Time) {
	s.rot.Step()
	s.fps.Tick(now)
}

func (s *session) status() render.Status {
	return render.Status{
		FPS:    s.fps.FPS(),
		Speed:  s.rot.Speed(),
		A:      s.rot.A,
		B:      s.rot.B,
		Paused: s.rot.Paused(),
		Turbo:  s.rot.Turbo(),
		Chaos:  s.rot.Chaos(),
		Width:  s.buf.Width(),
		Height: s.buf.Height(),
	}
}

// handleKey applies a key press to the rotation and reports whether it asks
// to quit.
func handleKey(rot *anim.Rotation, ev uv.KeyPressEvent) (quit bool) {
	switch {
	case ev.MatchString("q", "esc", "ctrl+c"):
		return true
	case ev.MatchString("space"):
		rot.TogglePause()
	case ev.Code == '+' || ev.MatchString("="):
		rot.Faster()
	case ev.MatchString("-", "_"):
		rot.Slower()
	case ev.MatchString("t"):
		rot.ToggleTurbo()
	case ev.MatchString("c"):
		rot.CycleChaos()
	case ev.MatchString("r"):
		rot.Reset()
	}
	return false
}

// writeBanner prints the startup summary shown before the animation.
func writeBanner(w io.Writer, cfg *config.Config, width, height int) error {
	_, err := fmt.Fprintf(w,
		"Terminal size: %dx%d\n"+
			"Press 'q' to quit the animation...\n"+
			"Brightness: %g, Contrast: %g, Top Boost: %g, Side Boost: %g\n"+
			"Base: %g, Rim: %g, Radius: %g, Height: %g\n",
		width, height,
		cfg.Brightness, cfg.Contrast, cfg.TopBoost, cfg.SideBoost,
		cfg.Base, cfg.Rim, cfg.Radius, cfg.Height,
	)
	return err
}
