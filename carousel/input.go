package carousel

import "math"

// clickSlop is how far the pointer may travel between press and click before
// the click is treated as the end of a drag.
const clickSlop = 0.01

// PointerDown starts a mouse drag at (x, y). onImage reports that the press
// landed on image content; the returned suppress flag tells the host to
// swallow the native image drag. started is false when dragging is disabled,
// the transition style is fade, or a transition is animating.
func (c *Carousel) PointerDown(x, y float64, onImage bool) (started, suppress bool) {
	return c.beginDrag(x, y, false), onImage
}

// TouchStart starts a single-finger swipe at (x, y).
func (c *Carousel) TouchStart(x, y float64) bool {
	return c.beginDrag(x, y, true)
}

func (c *Carousel) beginDrag(x, y float64, touch bool) bool {
	if c.closed {
		return false
	}
	c.pressX = x
	if !c.opts.Draggable || !c.opts.translates() || c.state.Animating {
		return false
	}
	// User intent pre-empts autoplay.
	c.timers.cancel(timerAutoplay)
	c.drag = dragState{
		active: true,
		touch:  touch,
		startX: x,
		startY: y,
		prevX:  x,
		prevY:  y,
		start:  c.clock.Now(),
	}
	c.state.Duration = 0
	return true
}

// PointerMove follows the mouse. Outside a drag it counts as hover activity.
func (c *Carousel) PointerMove(x, y float64) {
	if c.closed {
		return
	}
	c.setHover(true)
	if !c.drag.active || c.drag.touch || c.state.Animating {
		return
	}
	c.state.DragOffset = x - c.drag.startX
}

// TouchMove follows a swipe. Moves steeper than the swipe angle are ignored so
// vertical scrolling is not hijacked; the return value reports whether the
// move was consumed.
func (c *Carousel) TouchMove(x, y float64) bool {
	if c.closed || !c.drag.active || !c.drag.touch || c.state.Animating {
		return false
	}
	horizontal := IsHorizontalSwipe(c.drag.prevX, c.drag.prevY, x, y)
	c.drag.prevX, c.drag.prevY = x, y
	if !horizontal {
		return false
	}
	c.state.DragOffset = x - c.drag.startX
	return true
}

// PointerUp ends a drag (mouse or touch), committing to the adjacent slide or
// snapping back.
func (c *Carousel) PointerUp() {
	if c.closed || !c.drag.active {
		return
	}
	viewport := 0.0
	if c.layout != nil {
		viewport = c.layout.ViewportWidth()
	}
	res := ResolveRelease(Release{
		DragOffset:    c.state.DragOffset,
		ViewportWidth: viewport,
		Elapsed:       c.clock.Now().Sub(c.drag.start),
		Threshold:     c.opts.DragThreshold,
		Duration:      c.opts.TransitionDuration,
	})
	c.drag = dragState{}
	Logger().Debug("drag released",
		"offset", c.state.DragOffset, "percent", res.Percent, "commit", res.Commit, "duration", res.Duration)

	c.state.DragOffset = 0
	c.state.Duration = res.Duration

	if res.Commit {
		delta := 1
		if res.Direction == DirectionBackward {
			delta = -1
		}
		if _, ok := StepTarget(c.state.Current, len(c.panels), delta, c.opts.Infinite); ok {
			c.navigate(c.state.Current+delta, res.Direction, false, res.Duration)
		}
	}

	c.resumeAutoplay()
}

// Click handles a click on the slot tagged tag at x. Clicking the current
// slide, or a click that ends a drag, does nothing.
func (c *Carousel) Click(tag int, x float64) bool {
	if c.closed || !c.opts.ClickToNavigate || tag == c.state.Current {
		return false
	}
	if math.Abs(c.pressX-x) > clickSlop {
		return false
	}
	return c.GoToSlide(tag)
}

// PointerEnter marks the pointer as over the track.
func (c *Carousel) PointerEnter() {
	if c.closed {
		return
	}
	c.setHover(true)
}

// PointerLeave resumes autoplay and ends a mouse drag that left the track.
func (c *Carousel) PointerLeave() {
	if c.closed {
		return
	}
	c.setHover(false)
	if !c.state.Animating && c.drag.active {
		c.PointerUp()
	}
}

// setHover pauses autoplay while the pointer is active over the track. After
// HoverGrace without movement autoplay resumes.
func (c *Carousel) setHover(hovering bool) {
	if !c.opts.PauseOnHover || !c.opts.Autoplay {
		return
	}
	c.timers.cancel(timerHover)
	c.hovering = hovering
	if hovering {
		c.timers.cancel(timerAutoplay)
		c.timers.schedule(timerHover, c.clock.Now().Add(c.opts.HoverGrace), func() {
			c.setHover(false)
		})
		return
	}
	c.startAutoplay()
}
