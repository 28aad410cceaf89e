package main

import (
	"time"

	"slideview/carousel"
)

// trackAnimator moves the drawn track position toward the carousel's target
// position, tweening when the carousel asks for a timed movement
type trackAnimator struct {
	easing carousel.Easing

	pos      float64
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	active   bool
	started  bool
}

func newTrackAnimator(easing carousel.Easing) *trackAnimator {
	return &trackAnimator{easing: easing}
}

// Update advances the animation to now and returns the position to draw.
// finished is true on the frame a tween completes.
func (a *trackAnimator) Update(target float64, duration time.Duration, dragging bool, now time.Time) (pos float64, finished bool) {
	if !a.started || dragging || duration <= 0 {
		a.started = true
		a.pos, a.to = target, target
		a.active = false
		return a.pos, false
	}

	if target != a.to {
		a.from = a.pos
		a.to = target
		a.start = now
		a.duration = duration
		a.active = true
	}
	if !a.active {
		return a.pos, false
	}

	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		a.pos = a.to
		a.active = false
		return a.pos, true
	}
	a.pos = a.from + (a.to-a.from)*a.easing.At(t)
	return a.pos, false
}

// Idle reports whether no tween is in progress
func (a *trackAnimator) Idle() bool {
	return !a.active
}

// crossFade tracks the opacity of the incoming and outgoing slide in fade mode
type crossFade struct {
	easing   carousel.Easing
	duration time.Duration

	current  int
	previous int
	start    time.Time
	started  bool
}

func newCrossFade(easing carousel.Easing, duration time.Duration) *crossFade {
	return &crossFade{easing: easing, duration: duration, previous: carousel.NoIndex}
}

// Update notes the current index, starting a fade when it changed
func (f *crossFade) Update(current int, now time.Time) {
	if !f.started {
		f.started = true
		f.current = current
		return
	}
	if current == f.current {
		return
	}
	f.previous = f.current
	f.current = current
	f.start = now
}

// Alpha returns the opacity of the slide at index
func (f *crossFade) Alpha(index int, now time.Time) float64 {
	progress := 1.0
	if f.duration > 0 && f.previous != carousel.NoIndex {
		progress = min(float64(now.Sub(f.start))/float64(f.duration), 1)
	}
	switch index {
	case f.current:
		return f.easing.At(progress)
	case f.previous:
		if progress >= 1 {
			return 0
		}
		return 1 - f.easing.At(progress)
	}
	return 0
}
