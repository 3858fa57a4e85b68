package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/cylinder/pkg/render"
)

// bannerDelay is how long the startup banner stays up.
const bannerDelay = 500 * time.Millisecond

type runOptions struct {
	quiet  bool
	plain  bool
	frames int
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func runInteractive(ctx context.Context, o *options, ro runOptions) error {
	if ro.plain {
		return runPlain(ctx, o, ro)
	}

	term := uv.DefaultTerminal()
	cols, lines, err := term.GetSize()
	if err != nil {
		slog.Warn("terminal size unavailable, using fallback", "err", err)
	}
	width, height := o.cfg.GridSize(cols, lines)
	if cols <= 0 || lines <= 0 {
		cols, lines = width, height+2
	}

	s, err := newSession(&o.cfg, width, height, time.Now())
	if err != nil {
		return err
	}

	if !ro.quiet {
		if err := writeBanner(os.Stdout, &o.cfg, width, height); err != nil {
			return err
		}
		if err := sleepCtx(ctx, bannerDelay); err != nil {
			return nil
		}
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, lines)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			slog.Error("shutdown terminal", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Events are handed to the render loop, which applies them between frames.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	slog.Info("animation started", "width", width, "height", height, "delay", o.cfg.Delay)

	ticker := time.NewTicker(o.cfg.Delay)
	defer ticker.Stop()

	for n := 0; ro.frames == 0 || n < ro.frames; n++ {
	drain:
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					cols, lines = ev.Width, ev.Height
					term.Erase()
					term.Resize(cols, lines)
					if err := s.resize(o.cfg.GridSize(cols, lines)); err != nil {
						return err
					}
				case uv.KeyPressEvent:
					if handleKey(s.rot, ev) {
						slog.Info("quit requested", "frames", s.rot.Frames())
						return nil
					}
				}
			default:
				break drain
			}
		}

		s.render()
		line := render.StatusLine(s.status(), cols)
		frame := s.frame
		term.Draw(uv.DrawableFunc(func(scr uv.Screen, area uv.Rectangle) {
			frame.Draw(scr, area)
			uv.NewStyledString(line).Draw(scr, uv.Rect(area.Min.X, area.Min.Y+frame.Height(), area.Dx(), 1))
		}))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		s.advance(time.Now())

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// runPlain animates on stdout with cursor-home escapes only. It needs no
// raw mode, so it also works when stdout is not a terminal; quit with
// Ctrl+C.
func runPlain(ctx context.Context, o *options, ro runOptions) error {
	cols, lines := terminalSize(os.Stdout)
	width, height := o.cfg.GridSize(cols, lines)

	s, err := newSession(&o.cfg, width, height, time.Now())
	if err != nil {
		return err
	}

	if !ro.quiet {
		if err := writeBanner(os.Stdout, &o.cfg, width, height); err != nil {
			return err
		}
		if err := sleepCtx(ctx, bannerDelay); err != nil {
			return nil
		}
	}

	display := render.NewDisplay(os.Stdout)
	fmt.Fprint(os.Stdout, "\x1b[2J")

	ticker := time.NewTicker(o.cfg.Delay)
	defer ticker.Stop()

	for n := 0; ro.frames == 0 || n < ro.frames; n++ {
		s.render()
		if err := display.ShowRaw(s.frame); err != nil {
			return err
		}
		if err := display.Line(height+1, render.StatusLine(s.status(), width)); err != nil {
			return err
		}
		s.advance(time.Now())

		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stdout)
			return nil
		case <-ticker.C:
		}
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
