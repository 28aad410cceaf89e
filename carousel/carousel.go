package carousel

import (
	"math"
	"time"
)

// SlideTransition is reported for every accepted navigation.
type SlideTransition struct {
	AutoPlay  bool
	Index     int
	Direction Direction
}

// Callbacks are lifecycle notifications. Any of them may be nil.
type Callbacks struct {
	BeforeChange        func(next, prev int, dir Direction)
	AfterChange         func(index int)
	OnSlideTransitioned func(SlideTransition)
	// OnReady fires once, when the initial loading state ends.
	OnReady func()
}

// Navigator is the capability handed to controls such as dots and arrows.
type Navigator interface {
	CurrentIndex() int
	PanelCount() int
	Infinite() bool
	NextSlide() bool
	PrevSlide() bool
	GoToSlide(index int) bool
}

// Config wires a Carousel to its environment.
type Config struct {
	Options   Options
	Layout    Layout
	Loader    Loader
	Clock     Clock
	Callbacks Callbacks
}

// dragState is carried between pointer down and release.
type dragState struct {
	active bool
	touch  bool
	startX float64
	startY float64
	prevX  float64
	prevY  float64
	start  time.Time
}

// Carousel sequences navigation, gestures, measurement and prefetching for
// one panel set. It is not safe for concurrent use; drive it from one
// goroutine (a render loop) and call Tick every frame.
type Carousel struct {
	opts    Options
	layout  Layout
	clock   Clock
	cb      Callbacks
	panels  []Panel
	state   State
	tracker *Tracker
	timers  timers

	drag      dragState
	pressX    float64
	hovering  bool // pointer active over the track within HoverGrace
	closed    bool
	readySent bool

	measureAttempts int
}

var _ Navigator = (*Carousel)(nil)

// New mounts a carousel over panels. Lazy loading starts the prefetch cycle
// immediately; otherwise every source is requested and the carousel is
// visible from the start.
func New(panels []Panel, cfg Config) *Carousel {
	opts := cfg.Options
	for _, w := range opts.Normalize() {
		Logger().Warn("carousel option corrected", "detail", w)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}

	c := &Carousel{
		opts:    opts,
		layout:  cfg.Layout,
		clock:   clock,
		cb:      cfg.Callbacks,
		panels:  append([]Panel(nil), panels...),
		tracker: NewTracker(cfg.Loader),
		timers:  newTimers(),
	}
	c.state = NewState(opts.InitialSlide, len(panels), opts.LazyLoad)

	c.fetchImages()
	if !opts.LazyLoad {
		if opts.Autoplay {
			c.startAutoplay()
		}
		c.calcOffset(0)
	}
	return c
}

// State returns a copy of the current state.
func (c *Carousel) State() State { return c.state }

// Options returns the normalized options.
func (c *Carousel) Options() Options { return c.opts }

// Panels returns the current panel set. Callers must not modify it.
func (c *Carousel) Panels() []Panel { return c.panels }

func (c *Carousel) CurrentIndex() int { return c.state.Current }

func (c *Carousel) PanelCount() int { return len(c.panels) }

func (c *Carousel) Infinite() bool { return c.opts.Infinite }

// Dragging reports whether a pointer drag is in progress.
func (c *Carousel) Dragging() bool { return c.drag.active }

// Loaded returns the recorded dimensions of src.
func (c *Carousel) Loaded(src string) (Dimensions, bool) {
	return c.tracker.Dimensions(src)
}

// Stats returns prefetch counters.
func (c *Carousel) Stats() TrackerStats { return c.tracker.Stats() }

// Track describes the slots to draw this frame.
func (c *Carousel) Track() []Slot {
	slots, _ := c.buildTrack()
	return slots
}

func (c *Carousel) buildTrack() ([]Slot, bool) {
	return BuildTrack(TrackInput{
		Panels:  c.panels,
		State:   c.state,
		Options: c.opts,
		Loaded:  c.tracker.Loaded(),
	})
}

// Tick applies completed loads and runs due timers. Call it once per frame.
func (c *Carousel) Tick() {
	if c.closed {
		return
	}
	for _, r := range c.tracker.Drain() {
		c.onLoaded(r)
	}
	c.timers.fire(c.clock.Now())
}

// Close releases timers and abandons in-flight loads. The carousel ignores
// every call afterwards.
func (c *Carousel) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.timers.cancelAll()
	c.tracker.Close()
}

// GoToSlide navigates to index, inferring the direction.
func (c *Carousel) GoToSlide(index int) bool {
	return c.navigate(index, DirectionNone, false, c.opts.TransitionDuration)
}

// GoToSlideDirection navigates to index moving in dir.
func (c *Carousel) GoToSlideDirection(index int, dir Direction) bool {
	return c.navigate(index, dir, false, c.opts.TransitionDuration)
}

// NextSlide moves forward one slide. Without infinite mode it is a no-op on
// the last slide.
func (c *Carousel) NextSlide() bool { return c.step(1, false) }

// PrevSlide moves backward one slide. Without infinite mode it is a no-op on
// the first slide.
func (c *Carousel) PrevSlide() bool { return c.step(-1, false) }

func (c *Carousel) step(delta int, auto bool) bool {
	if c.closed {
		return false
	}
	if _, ok := StepTarget(c.state.Current, len(c.panels), delta, c.opts.Infinite); !ok {
		return false
	}
	dir := DirectionForward
	if delta < 0 {
		dir = DirectionBackward
	}
	return c.navigate(c.state.Current+delta, dir, auto, c.opts.TransitionDuration)
}

// autoAdvance is the autoplay tick. A bounded carousel rewinds to the first
// slide after the last one.
func (c *Carousel) autoAdvance() {
	if c.step(1, true) {
		return
	}
	if !c.opts.Infinite && len(c.panels) > 1 {
		c.navigate(0, DirectionBackward, true, c.opts.TransitionDuration)
	}
}

func (c *Carousel) navigate(index int, dir Direction, auto bool, duration time.Duration) bool {
	if c.closed {
		return false
	}
	next, change, ok := BeginTransition(c.state, index, dir, len(c.panels), duration)
	if !ok {
		Logger().Debug("navigation ignored",
			"index", index, "current", c.state.Current, "animating", c.state.Animating)
		return false
	}
	Logger().Debug("navigation",
		"from", change.Prev, "to", change.Next, "direction", change.Direction.String(),
		"duration", duration, "auto", auto)

	if c.cb.OnSlideTransitioned != nil {
		c.cb.OnSlideTransitioned(SlideTransition{AutoPlay: auto, Index: change.Next, Direction: change.Direction})
	}
	if c.cb.BeforeChange != nil {
		c.cb.BeforeChange(change.Next, change.Prev, change.Direction)
	}

	c.state = next
	c.calcOffset(0)
	if duration <= 0 || !c.opts.translates() {
		// Nothing animates; complete synchronously.
		c.TransitionFinished()
	}
	return true
}

// TransitionFinished is the renderer's animation-finished signal. Outside a
// transition it only clears the pending duration of a snap back.
func (c *Carousel) TransitionFinished() {
	if c.closed {
		return
	}
	next, ok := FinishTransition(c.state)
	c.state = next
	if !ok {
		return
	}
	index := c.state.Current

	// The direction cleared, so a clone position snaps back onto its panel.
	c.calcOffset(0)
	if _, allLoaded := c.buildTrack(); !allLoaded {
		c.fetchImages()
	}
	c.resumeAutoplay()
	if c.cb.AfterChange != nil {
		c.cb.AfterChange(index)
	}
}

// SetPanels replaces the panel set. A current index past the new end is
// clamped without a transition. A set with different sources releases any
// in-flight transition and starts a new prefetch cycle.
func (c *Carousel) SetPanels(panels []Panel) {
	if c.closed {
		return
	}
	prev := c.panels
	c.panels = append([]Panel(nil), panels...)
	c.state = ClampToCount(c.state, len(c.panels))

	if !Unchanged(prev, c.panels) {
		Logger().Debug("panel set replaced", "old", len(prev), "new", len(c.panels))
		c.state.Animating = false
		c.state.TransitioningFrom = NoIndex
		c.state.Direction = DirectionNone
		c.state.Duration = 0
		c.tracker.Prune(c.panels)
		c.fetchImages()
	}
	c.calcOffset(0)
}

// SetAutoplay turns autoplay on or off at runtime.
func (c *Carousel) SetAutoplay(on bool) {
	if c.closed || c.opts.Autoplay == on {
		return
	}
	c.opts.Autoplay = on
	// An explicit toggle overrides any hover pause.
	c.hovering = false
	c.timers.cancel(timerHover)
	if on {
		c.startAutoplay()
	} else {
		c.timers.cancel(timerAutoplay)
	}
}

// SetVisible pauses autoplay while the carousel is out of view.
func (c *Carousel) SetVisible(visible bool) {
	if c.closed || !c.opts.Autoplay {
		return
	}
	if visible {
		c.resumeAutoplay()
	} else {
		c.timers.cancel(timerAutoplay)
	}
}

// Resize re-measures after the viewport changed size.
func (c *Carousel) Resize() {
	if c.closed {
		return
	}
	c.calcOffset(0)
}

// AutoplayPending reports whether the autoplay timer is armed.
func (c *Carousel) AutoplayPending() bool {
	return c.timers.active(timerAutoplay)
}

// resumeAutoplay re-arms autoplay unless it is off or paused by hover.
func (c *Carousel) resumeAutoplay() {
	if c.opts.Autoplay && !(c.opts.PauseOnHover && c.hovering) {
		c.startAutoplay()
	}
}

func (c *Carousel) startAutoplay() {
	c.timers.schedule(timerAutoplay, c.clock.Now().Add(c.opts.AutoplaySpeed), func() {
		if c.opts.Autoplay {
			c.autoAdvance()
		}
	})
}

// fetchImages asks the tracker for the prefetch window around the current
// index. With nothing to fetch it goes straight to measurement.
func (c *Carousel) fetchImages() {
	count := len(c.panels)
	if count == 0 {
		return
	}
	k := c.opts.ImagesToPrefetch
	if !c.opts.LazyLoad {
		k = count
	}
	issued := c.tracker.Fetch(c.panels, c.state.Current, k)
	if len(issued) == 0 {
		c.calcOffset(0)
		return
	}
	Logger().Debug("prefetch", "current", c.state.Current, "sources", len(issued))
}

func (c *Carousel) onLoaded(r LoadResult) {
	if r.Err != nil {
		Logger().Warn("panel source failed to load", "source", r.Source, "error", r.Err)
	} else {
		Logger().Debug("panel source loaded", "source", r.Source,
			"width", r.Dimensions.Width, "height", r.Dimensions.Height)
	}
	if c.state.Current < len(c.panels) && c.panels[c.state.Current].Source == r.Source {
		c.measureAttempts = 0
		c.handleInitialLoad()
	}
	c.calcOffset(0)
}

// handleInitialLoad records the current slide's rendered size as the
// placeholder size, retrying while the slide has not been laid out.
func (c *Carousel) handleInitialLoad() {
	c.timers.cancel(timerInitialLoad)
	if c.opts.hasExplicitSlideSize() || c.layout == nil {
		return
	}
	slots, _ := c.buildTrack()
	for _, m := range c.layout.MeasureTrack(slots) {
		if m.Tag != c.state.Current {
			continue
		}
		if m.Width == 0 || m.Height == 0 {
			if c.measureAttempts >= c.opts.MaxMeasureRetries {
				return
			}
			c.measureAttempts++
			c.timers.schedule(timerInitialLoad, c.clock.Now().Add(c.opts.MeasureRetryInterval), c.handleInitialLoad)
			return
		}
		c.state.SlideWidth = m.Width
		c.state.SlideHeight = m.Height
		return
	}
}

// calcOffset measures the track and updates LeftOffset. Unattached layout or
// zero-width mounted slides are retried on a fixed delay up to the retry
// ceiling, after which the result is accepted as is.
func (c *Carousel) calcOffset(retry int) {
	c.timers.cancel(timerMeasure)
	if c.closed {
		return
	}

	count := len(c.panels)
	if c.layout == nil || count == 0 {
		c.state.LeftOffset = 0
		c.markReady()
		return
	}

	retryLater := func() bool {
		if retry >= c.opts.MaxMeasureRetries {
			return false
		}
		c.timers.schedule(timerMeasure, c.clock.Now().Add(c.opts.MeasureRetryInterval), func() {
			c.calcOffset(retry + 1)
		})
		return true
	}

	viewport := c.layout.ViewportWidth()
	var metrics []SlotMetrics
	if viewport > 0 {
		slots, _ := c.buildTrack()
		metrics = c.layout.MeasureTrack(slots)
	}
	if viewport <= 0 || metrics == nil {
		if !retryLater() {
			Logger().Warn("layout never attached; giving up measurement", "attempts", retry)
		}
		return
	}

	clones := c.opts.Infinite && c.opts.translates()
	target := effectiveIndex(c.state, count, clones)
	res := ComputeOffset(metrics, viewport, target, c.opts.CellPadding, c.opts.SlideAlignment)
	if !math.IsNaN(res.Offset) {
		c.state.LeftOffset = res.Offset
	}

	if res.ZeroWidth {
		if retryLater() {
			Logger().Debug("zero-width slide, retrying measurement", "attempt", retry+1)
			return
		}
		Logger().Warn("layout did not settle; accepting offset", "attempts", retry)
	}
	c.markReady()
}

// markReady ends the initial loading state exactly once.
func (c *Carousel) markReady() {
	if !c.state.Loading {
		return
	}
	c.state.Loading = false
	if !c.readySent {
		c.readySent = true
		if c.cb.OnReady != nil {
			c.cb.OnReady()
		}
	}
	c.resumeAutoplay()
}
