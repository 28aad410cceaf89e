package carousel

import (
	"math"
	"time"
)

// Quick swipe thresholds: a short flick commits even below the drag threshold.
const (
	quickSwipeMinPercent = 0.05
	quickSwipeMaxElapsed = 250 * time.Millisecond
)

// Touch moves steeper than this (degrees from horizontal) are left to the page.
const swipeMaxAngle = 20.0

// Release describes a finished drag.
type Release struct {
	DragOffset    float64
	ViewportWidth float64
	Elapsed       time.Duration
	Threshold     float64
	// Duration is the configured transition duration.
	Duration time.Duration
}

// Resolution is the decision for a finished drag.
type Resolution struct {
	Commit    bool
	Direction Direction
	// Duration is the synthesized animation length for the commit or the
	// snap back.
	Duration time.Duration
	Percent  float64
}

// ResolveRelease decides whether a drag commits to the adjacent slide or snaps
// back. Dragging right (positive offset) moves backward.
func ResolveRelease(r Release) Resolution {
	viewport := r.ViewportWidth
	if viewport <= 0 {
		viewport = 1
	}
	elapsed := r.Elapsed
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	percent := math.Abs(r.DragOffset) / viewport
	elapsedMs := float64(elapsed) / float64(time.Millisecond)
	configuredMs := float64(r.Duration) / float64(time.Millisecond)

	quick := percent > quickSwipeMinPercent && elapsed < quickSwipeMaxElapsed
	if !quick && percent <= r.Threshold {
		return Resolution{
			Percent:  percent,
			Duration: msToDuration(configuredMs * percent),
		}
	}

	remaining := 1 - percent
	if remaining < 0 {
		remaining = 0
	}
	speed := elapsedMs / (percent * viewport)
	ms := math.Min(speed*remaining*viewport, configuredMs*remaining)

	dir := DirectionForward
	if r.DragOffset > 0 {
		dir = DirectionBackward
	}
	return Resolution{
		Commit:    true,
		Direction: dir,
		Duration:  msToDuration(ms),
		Percent:   percent,
	}
}

// IsHorizontalSwipe reports whether a touch move from (x0, y0) to (x1, y1) is
// close enough to horizontal to be treated as a swipe.
func IsHorizontalSwipe(x0, y0, x1, y1 float64) bool {
	angle := math.Abs(math.Atan2(y1-y0, x1-x0)) * 180 / math.Pi
	return angle < swipeMaxAngle || angle > 180-swipeMaxAngle
}

func msToDuration(ms float64) time.Duration {
	if ms <= 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}
