package carousel

import "time"

// Change describes an accepted navigation.
type Change struct {
	Next      int
	Prev      int
	Direction Direction
}

// BeginTransition applies a navigation request to s. index may be outside the
// panel set; it is reduced with Wrap. When dir is DirectionNone it is inferred
// from the raw index: forward iff index > s.Current. The request is rejected
// when the set is empty, a transition is already animating, or the reduced
// target is the current index.
func BeginTransition(s State, index int, dir Direction, count int, duration time.Duration) (State, Change, bool) {
	if count <= 0 || s.Animating {
		return s, Change{}, false
	}
	target := Wrap(index, count)
	if target == s.Current {
		return s, Change{}, false
	}
	if dir == DirectionNone {
		if index > s.Current {
			dir = DirectionForward
		} else {
			dir = DirectionBackward
		}
	}

	change := Change{Next: target, Prev: s.Current, Direction: dir}
	s.Animating = true
	s.TransitioningFrom = s.Current
	s.Current = target
	s.Direction = dir
	s.Duration = duration
	return s, change, true
}

// FinishTransition completes the in-flight transition. It reports false when
// nothing was animating; the pending duration is reset either way so a
// finished snap-back leaves the track idle.
func FinishTransition(s State) (State, bool) {
	s.Duration = 0
	if !s.Animating {
		return s, false
	}
	s.Animating = false
	s.TransitioningFrom = NoIndex
	s.Direction = DirectionNone
	return s, true
}

// StepTarget returns the index step slides away from current. Without
// infinite mode the ends are hard stops and ok is false there.
func StepTarget(current, count, step int, infinite bool) (target int, ok bool) {
	if count <= 0 {
		return current, false
	}
	target = current + step
	if target < 0 || target >= count {
		if !infinite {
			return current, false
		}
		target = Wrap(target, count)
	}
	return target, target != current
}

// ClampToCount corrects s after the panel set shrank below the current index.
// No transition is involved.
func ClampToCount(s State, count int) State {
	last := max(count-1, 0)
	if s.Current > last {
		s.Current = last
	}
	if s.TransitioningFrom > last {
		s.TransitioningFrom = last
	}
	return s
}

// effectiveIndex remaps the boundary-crossing infinite transitions onto the
// clone positions so the track keeps moving in the same direction.
func effectiveIndex(s State, count int, clones bool) int {
	if !clones || count == 0 {
		return s.Current
	}
	switch {
	case s.Current == 0 && s.Direction == DirectionForward:
		return count
	case s.Current == count-1 && s.Direction == DirectionBackward:
		return -1
	}
	return s.Current
}
