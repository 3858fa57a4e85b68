package anim

import (
	"math"
	"testing"
	"time"
)

func newTestRotation(chaos float64, seed uint64) *Rotation {
	return NewRotation(Options{
		StepA: 0.04,
		StepB: 0.02,
		Chaos: chaos,
		Seed:  seed,
		Frame: 50 * time.Millisecond,
	})
}

func TestStepDefaultIncrements(t *testing.T) {
	r := newTestRotation(0, 1)

	for i := 1; i <= 100; i++ {
		prevA, prevB := r.A, r.B
		r.Step()
		if da := r.A - prevA; math.Abs(da-0.04) > 1e-12 {
			t.Fatalf("frame %d: dA = %v, want 0.04", i, da)
		}
		if db := r.B - prevB; math.Abs(db-0.02) > 1e-12 {
			t.Fatalf("frame %d: dB = %v, want 0.02", i, db)
		}
	}
	if math.Abs(r.A-4) > 1e-9 || math.Abs(r.B-2) > 1e-9 {
		t.Errorf("after 100 frames A=%v B=%v, want 4 and 2", r.A, r.B)
	}
	if r.Frames() != 100 {
		t.Errorf("Frames() = %d, want 100", r.Frames())
	}
}

func TestPauseFreezesAngles(t *testing.T) {
	r := newTestRotation(1, 1)
	r.Step()
	r.SetPaused(true)
	a, b := r.A, r.B

	for range 50 {
		r.Step()
	}
	if r.A != a || r.B != b {
		t.Errorf("paused rotation moved: %v,%v -> %v,%v", a, b, r.A, r.B)
	}
	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", r.Frames())
	}

	r.TogglePause()
	if r.Paused() {
		t.Fatal("TogglePause should resume")
	}
	r.Step()
	if r.A == a {
		t.Error("resumed rotation should move")
	}
}

func TestSpeedEasesTowardTarget(t *testing.T) {
	r := newTestRotation(0, 1)
	r.SetSpeed(3)

	if r.TargetSpeed() != 3 {
		t.Fatalf("TargetSpeed() = %v, want 3", r.TargetSpeed())
	}

	prev := r.Speed()
	for range 200 {
		r.Step()
		s := r.Speed()
		if s < prev-1e-12 {
			t.Fatalf("speed decreased from %v to %v while easing up", prev, s)
		}
		if s > 3+1e-9 {
			t.Fatalf("speed %v overshot the target", s)
		}
		prev = s
	}
	if math.Abs(r.Speed()-3) > 1e-3 {
		t.Errorf("Speed() = %v, want about 3", r.Speed())
	}
}

func TestSpeedClamp(t *testing.T) {
	r := newTestRotation(0, 1)

	r.SetSpeed(-4)
	if r.TargetSpeed() != MinSpeed {
		t.Errorf("TargetSpeed() = %v, want %v", r.TargetSpeed(), MinSpeed)
	}
	r.SetSpeed(1e6)
	if r.TargetSpeed() != MaxSpeed {
		t.Errorf("TargetSpeed() = %v, want %v", r.TargetSpeed(), MaxSpeed)
	}

	r.SetSpeed(1)
	r.Faster()
	r.Faster()
	if math.Abs(r.TargetSpeed()-1.2) > 1e-12 {
		t.Errorf("after Faster x2: %v, want 1.2", r.TargetSpeed())
	}
	r.Slower()
	if math.Abs(r.TargetSpeed()-1.1) > 1e-12 {
		t.Errorf("after Slower: %v, want 1.1", r.TargetSpeed())
	}
}

func TestTurbo(t *testing.T) {
	r := newTestRotation(0, 1)
	r.SetTurbo(true)

	for range 10 {
		r.Step()
	}
	if math.Abs(r.TargetSpeed()-1.1) > 1e-12 {
		t.Errorf("TargetSpeed() after 10 turbo frames = %v, want 1.1", r.TargetSpeed())
	}
	if r.Speed() <= 1 {
		t.Errorf("Speed() = %v, should be rising", r.Speed())
	}

	r.SetSpeed(5)
	if math.Abs(r.TargetSpeed()-1.1) > 1e-12 {
		t.Error("manual speed changes should be ignored in turbo")
	}

	r.ToggleTurbo()
	if r.Turbo() {
		t.Fatal("ToggleTurbo should turn turbo off")
	}
	if r.TargetSpeed() != 1 {
		t.Errorf("TargetSpeed() after turbo off = %v, want 1", r.TargetSpeed())
	}
}

func TestChaosDisabledByDefault(t *testing.T) {
	r := newTestRotation(0, 42)
	for range 3 * ChaosInterval {
		r.Step()
	}
	if a, b := r.Jitter(); a != 0 || b != 0 {
		t.Errorf("Jitter() = %v, %v, want 0, 0", a, b)
	}
}

func TestChaosJitter(t *testing.T) {
	r := newTestRotation(1, 42)

	for range ChaosInterval - 1 {
		r.Step()
	}
	if a, b := r.Jitter(); a != 0 || b != 0 {
		t.Fatalf("jitter rolled before %d frames", ChaosInterval)
	}

	r.Step()
	a, b := r.Jitter()
	if a == 0 && b == 0 {
		t.Fatal("jitter should roll on frame ChaosInterval")
	}
	// Amplitudes are chaos*0.2 for A and three quarters of that for B.
	if math.Abs(a) > 0.1 || math.Abs(b) > 0.075 {
		t.Errorf("Jitter() = %v, %v exceeds amplitude", a, b)
	}
}

func TestChaosReproducible(t *testing.T) {
	run := func(seed uint64) (float64, float64) {
		r := newTestRotation(2, seed)
		for range 10 * ChaosInterval {
			r.Step()
		}
		return r.A, r.B
	}

	a1, b1 := run(7)
	a2, b2 := run(7)
	if a1 != a2 || b1 != b2 {
		t.Errorf("same seed diverged: %v,%v vs %v,%v", a1, b1, a2, b2)
	}
	a3, b3 := run(8)
	if a1 == a3 && b1 == b3 {
		t.Error("different seeds should give different paths")
	}
}

func TestResetRepeatsRun(t *testing.T) {
	r := newTestRotation(1, 3)
	r.SetTurbo(true)
	for range 2 * ChaosInterval {
		r.Step()
	}
	a, b := r.A, r.B

	r.Reset()
	if r.A != 0 || r.B != 0 || r.Speed() != 1 || r.Turbo() || r.Frames() != 0 {
		t.Fatalf("Reset left state: A=%v B=%v speed=%v turbo=%v frames=%d", r.A, r.B, r.Speed(), r.Turbo(), r.Frames())
	}
	if ja, jb := r.Jitter(); ja != 0 || jb != 0 {
		t.Fatalf("Reset left jitter %v, %v", ja, jb)
	}

	r.SetTurbo(true)
	for range 2 * ChaosInterval {
		r.Step()
	}
	if r.A != a || r.B != b {
		t.Errorf("run after Reset = %v,%v, want %v,%v", r.A, r.B, a, b)
	}
}

func TestCycleChaos(t *testing.T) {
	r := newTestRotation(0, 1)

	want := []float64{0.3, 1, 2, 0, 0.3}
	for _, w := range want {
		r.CycleChaos()
		if r.Chaos() != w {
			t.Errorf("Chaos() = %v, want %v", r.Chaos(), w)
		}
	}

	r.SetChaos(-5)
	if r.Chaos() != 0 {
		t.Errorf("negative chaos should clamp to 0, got %v", r.Chaos())
	}
}

func TestFPSMeter(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewFPSMeter(start)

	for i := 1; i <= 20; i++ {
		m.Tick(start.Add(time.Duration(i) * 50 * time.Millisecond))
	}
	if m.FPS() != 20 {
		t.Errorf("FPS() = %v, want 20", m.FPS())
	}

	// A partial window keeps the last measurement.
	m.Tick(start.Add(1100 * time.Millisecond))
	if m.FPS() != 20 {
		t.Errorf("FPS() mid-window = %v, want 20", m.FPS())
	}
}

func BenchmarkStep(b *testing.B) {
	r := newTestRotation(1, 1)

	for b.Loop() {
		r.Step()
	}
}
