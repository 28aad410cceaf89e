package main

import (
	"math"
	"testing"
	"time"

	"slideview/carousel"
)

func TestTrackAnimator(t *testing.T) {
	base := time.Unix(1000, 0)
	a := newTrackAnimator(carousel.Linear)

	// First update jumps to the target
	if pos, finished := a.Update(-400, 500*time.Millisecond, false, base); pos != -400 || finished {
		t.Errorf("first update = %v, %v; want -400, false", pos, finished)
	}
	if !a.Idle() {
		t.Error("animator should be idle after the first update")
	}

	// A new target starts a tween
	if pos, _ := a.Update(-800, 500*time.Millisecond, false, base); pos != -400 {
		t.Errorf("tween start = %v, want -400", pos)
	}
	if a.Idle() {
		t.Error("animator should be active during a tween")
	}
	if pos, _ := a.Update(-800, 500*time.Millisecond, false, base.Add(250*time.Millisecond)); math.Abs(pos+600) > 1e-9 {
		t.Errorf("halfway = %v, want -600", pos)
	}
	pos, finished := a.Update(-800, 500*time.Millisecond, false, base.Add(600*time.Millisecond))
	if pos != -800 || !finished {
		t.Errorf("end = %v, %v; want -800, true", pos, finished)
	}
	if !a.Idle() {
		t.Error("animator should be idle after the tween")
	}

	// Finishing is reported once
	if _, finished := a.Update(-800, 500*time.Millisecond, false, base.Add(700*time.Millisecond)); finished {
		t.Error("finished reported twice")
	}
}

func TestTrackAnimatorJumps(t *testing.T) {
	base := time.Unix(1000, 0)
	tests := []struct {
		name     string
		duration time.Duration
		dragging bool
	}{
		{"zero duration", 0, false},
		{"dragging", 500 * time.Millisecond, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTrackAnimator(carousel.EaseInOut)
			a.Update(0, 0, false, base)
			pos, finished := a.Update(-123, tt.duration, tt.dragging, base.Add(time.Millisecond))
			if pos != -123 || finished {
				t.Errorf("Update = %v, %v; want -123, false", pos, finished)
			}
			if !a.Idle() {
				t.Error("a jump should leave the animator idle")
			}
		})
	}
}

func TestTrackAnimatorRetarget(t *testing.T) {
	base := time.Unix(1000, 0)
	a := newTrackAnimator(carousel.Linear)
	a.Update(0, 100*time.Millisecond, false, base)
	a.Update(-100, 100*time.Millisecond, false, base)
	a.Update(-100, 100*time.Millisecond, false, base.Add(50*time.Millisecond))

	// Retargeting mid-tween starts from the drawn position
	pos, _ := a.Update(-200, 100*time.Millisecond, false, base.Add(50*time.Millisecond))
	if math.Abs(pos+50) > 1e-9 {
		t.Errorf("retarget start = %v, want -50", pos)
	}
	pos, _ = a.Update(-200, 100*time.Millisecond, false, base.Add(100*time.Millisecond))
	if math.Abs(pos+125) > 1e-9 {
		t.Errorf("retarget halfway = %v, want -125", pos)
	}
}

func TestCrossFade(t *testing.T) {
	base := time.Unix(1000, 0)
	f := newCrossFade(carousel.Linear, 400*time.Millisecond)
	f.Update(0, base)

	if got := f.Alpha(0, base); got != 1 {
		t.Errorf("initial alpha = %v, want 1", got)
	}
	if got := f.Alpha(1, base); got != 0 {
		t.Errorf("hidden slide alpha = %v, want 0", got)
	}

	f.Update(2, base)
	mid := base.Add(100 * time.Millisecond)
	if got := f.Alpha(2, mid); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("incoming alpha = %v, want 0.25", got)
	}
	if got := f.Alpha(0, mid); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("outgoing alpha = %v, want 0.75", got)
	}

	done := base.Add(time.Second)
	if f.Alpha(2, done) != 1 || f.Alpha(0, done) != 0 {
		t.Errorf("after fade: incoming %v outgoing %v", f.Alpha(2, done), f.Alpha(0, done))
	}
}

func TestCrossFadeZeroDuration(t *testing.T) {
	base := time.Unix(1000, 0)
	f := newCrossFade(carousel.EaseInOut, 0)
	f.Update(0, base)
	f.Update(1, base)
	if f.Alpha(1, base) != 1 || f.Alpha(0, base) != 0 {
		t.Errorf("zero duration should cut: incoming %v outgoing %v", f.Alpha(1, base), f.Alpha(0, base))
	}
}
