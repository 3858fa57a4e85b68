package anim

import "time"

// FPSMeter measures the frame rate over one-second windows.
type FPSMeter struct {
	fps    float64
	frames int
	start  time.Time
}

// NewFPSMeter starts a meter at now.
func NewFPSMeter(now time.Time) *FPSMeter {
	return &FPSMeter{start: now}
}

// Tick records a frame at now (call once per frame).
func (m *FPSMeter) Tick(now time.Time) {
	m.frames++
	elapsed := now.Sub(m.start)
	if elapsed >= time.Second {
		m.fps = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.start = now
	}
}

// FPS returns the rate measured over the last completed window.
func (m *FPSMeter) FPS() float64 {
	return m.fps
}
