// Package anim advances the cylinder's rotation angles from frame to frame.
//
// The render core is stateless; everything that carries over between frames
// (the angles A and B, the speed multiplier, turbo and chaos jitter) lives
// in a Rotation owned by the render loop.
package anim

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Chaos jitter is re-rolled every ChaosInterval frames.
const ChaosInterval = 30

// Turbo adds TurboAcceleration to the speed multiplier every frame.
const TurboAcceleration = 0.01

// Speed multiplier bounds for manual adjustment.
const (
	MinSpeed  = 0.0
	MaxSpeed  = 10.0
	SpeedStep = 0.1
)

// Options configure a Rotation.
type Options struct {
	StepA float64       // Radians added to A per frame at speed 1
	StepB float64       // Radians added to B per frame at speed 1
	Chaos float64       // Jitter amplitude, 0 disables it
	Seed  uint64        // Seed for the jitter generator
	Frame time.Duration // Frame period, used to tune the speed spring
}

// Rotation is the mutable animation state. It is not safe for concurrent
// use; the render loop applies input between frames.
type Rotation struct {
	A, B float64 // Current angles in radians

	opts Options

	speed       float64 // Applied multiplier, eased toward target
	speedVel    float64 // Spring velocity of speed
	target      float64
	speedSpring harmonica.Spring

	paused   bool
	turbo    bool
	turboAcc float64

	chaos            float64
	jitterA, jitterB float64
	jitterTimer      int
	rng              *rand.Rand

	frames int
}

// NewRotation returns a rotation at A = B = 0 and speed 1.
func NewRotation(opts Options) *Rotation {
	fps := 20
	if opts.Frame > 0 {
		fps = max(1, int(time.Second/opts.Frame))
	}
	r := &Rotation{
		opts: opts,
		// Critically damped: speed changes settle without overshoot.
		speedSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
	r.Reset()
	return r
}

// Reset restores the angles, speed, turbo and jitter to their initial state.
// The jitter generator is reseeded, so a reset run repeats itself. Pause is
// left as it is.
func (r *Rotation) Reset() {
	r.A, r.B = 0, 0
	r.speed, r.speedVel, r.target = 1, 0, 1
	r.turbo, r.turboAcc = false, 0
	r.chaos = r.opts.Chaos
	r.jitterA, r.jitterB, r.jitterTimer = 0, 0, 0
	r.rng = rand.New(rand.NewPCG(r.opts.Seed, r.opts.Seed^0x9e3779b97f4a7c15))
	r.frames = 0
}

// Step advances the rotation by one frame. It does nothing while paused.
func (r *Rotation) Step() {
	if r.paused {
		return
	}
	r.frames++

	if r.turbo {
		r.turboAcc += TurboAcceleration
		r.target = 1 + r.turboAcc
	}
	r.speed, r.speedVel = r.speedSpring.Update(r.speed, r.speedVel, r.target)

	r.jitterTimer++
	if r.jitterTimer >= ChaosInterval {
		r.jitterTimer = 0
		r.rollJitter()
	}

	r.A += r.opts.StepA*r.speed + r.jitterA
	r.B += r.opts.StepB*r.speed + r.jitterB
}

// rollJitter draws new per-frame angle offsets. B jitters at three quarters
// of A's amplitude.
func (r *Rotation) rollJitter() {
	amp := r.chaos * 0.2
	r.jitterA = (r.rng.Float64() - 0.5) * amp
	r.jitterB = (r.rng.Float64() - 0.5) * amp * 0.75
}

// Speed returns the applied speed multiplier.
func (r *Rotation) Speed() float64 {
	return r.speed
}

// TargetSpeed returns the multiplier the speed is easing toward.
func (r *Rotation) TargetSpeed() float64 {
	return r.target
}

// SetSpeed sets the target multiplier, clamped to [MinSpeed, MaxSpeed].
// Manual changes are ignored while turbo is on.
func (r *Rotation) SetSpeed(s float64) {
	if r.turbo {
		return
	}
	r.target = max(MinSpeed, min(MaxSpeed, s))
}

// Faster raises the target speed by SpeedStep.
func (r *Rotation) Faster() {
	r.SetSpeed(r.target + SpeedStep)
}

// Slower lowers the target speed by SpeedStep.
func (r *Rotation) Slower() {
	r.SetSpeed(r.target - SpeedStep)
}

// Turbo reports whether turbo mode is on.
func (r *Rotation) Turbo() bool {
	return r.turbo
}

// SetTurbo switches turbo mode. Turning it off drops the accumulated
// acceleration and returns the target speed to 1.
func (r *Rotation) SetTurbo(on bool) {
	r.turbo = on
	if !on {
		r.turboAcc = 0
		r.target = 1
	}
}

// ToggleTurbo flips turbo mode.
func (r *Rotation) ToggleTurbo() {
	r.SetTurbo(!r.turbo)
}

// Paused reports whether the rotation is frozen.
func (r *Rotation) Paused() bool {
	return r.paused
}

// SetPaused freezes or resumes the rotation.
func (r *Rotation) SetPaused(p bool) {
	r.paused = p
}

// TogglePause flips the paused state.
func (r *Rotation) TogglePause() {
	r.paused = !r.paused
}

// Chaos returns the current jitter amplitude.
func (r *Rotation) Chaos() float64 {
	return r.chaos
}

// SetChaos changes the jitter amplitude. Negative values disable jitter.
// Offsets already rolled stay in effect until the next re-roll, except that
// disabling jitter clears them.
func (r *Rotation) SetChaos(c float64) {
	r.chaos = max(0, c)
	if r.chaos == 0 {
		r.jitterA, r.jitterB = 0, 0
	}
}

// chaosLevels are the amplitudes CycleChaos steps through.
var chaosLevels = []float64{0, 0.3, 1, 2}

// CycleChaos moves to the next preset jitter amplitude.
func (r *Rotation) CycleChaos() {
	next := chaosLevels[0]
	for _, c := range chaosLevels {
		if c > r.chaos {
			next = c
			break
		}
	}
	r.SetChaos(next)
}

// Jitter returns the per-frame offsets currently added to A and B.
func (r *Rotation) Jitter() (a, b float64) {
	return r.jitterA, r.jitterB
}

// Frames returns the number of frames advanced since the last reset.
func (r *Rotation) Frames() int {
	return r.frames
}
