package carousel

import "time"

// NoIndex marks the absence of a transitioning-from index.
const NoIndex = -1

// Direction is the way the track moves during a transition.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// State is the carousel's only mutable data. Renderers receive copies.
type State struct {
	// Current is a valid logical index whenever TransitioningFrom is NoIndex.
	Current int
	// TransitioningFrom is the outgoing index while a transition is in flight.
	TransitioningFrom int
	Direction         Direction
	// Duration is the animation length the renderer should use for the next
	// track movement; zero means jump.
	Duration   time.Duration
	DragOffset float64
	Animating  bool

	// Loading is true until the first stable measurement after mount.
	Loading bool
	// LeftOffset is derived from the last measurement.
	LeftOffset float64
	// SlideSize is the best-known slide size used for placeholders.
	SlideWidth  float64
	SlideHeight float64
}

// NewState returns the idle state for a carousel mounted at initial.
func NewState(initial, count int, loading bool) State {
	s := State{
		Current:           0,
		TransitioningFrom: NoIndex,
		Loading:           loading,
	}
	if count > 0 {
		s.Current = clamp(initial, 0, count-1)
	}
	return s
}

// Transitioning reports whether an index change is in flight.
func (s State) Transitioning() bool {
	return s.TransitioningFrom != NoIndex
}

// TrackPosition is where the renderer should place the track.
func (s State) TrackPosition() float64 {
	return s.LeftOffset + s.DragOffset
}
