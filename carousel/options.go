package carousel

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TransitionStyle selects how the carousel moves between slides.
type TransitionStyle string

const (
	TransitionSlide TransitionStyle = "slide"
	TransitionFade  TransitionStyle = "fade"
)

// Alignment positions the current slide within the viewport.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Measurement retry defaults. Layout may not have settled right after mount or
// an image load, so measurement is retried on a short fixed delay.
const (
	defaultMeasureRetryInterval = 10 * time.Millisecond
	defaultMaxMeasureRetries    = 500
	defaultHoverGrace           = 2 * time.Second
)

// Options configures a Carousel. Use DefaultOptions and override fields.
type Options struct {
	InitialSlide       int
	Infinite           bool
	Transition         TransitionStyle
	TransitionDuration time.Duration
	Easing             Easing
	Autoplay           bool
	AutoplaySpeed      time.Duration
	Draggable          bool
	DragThreshold      float64
	ClickToNavigate    bool
	PauseOnHover       bool
	HoverGrace         time.Duration
	LazyLoad           bool
	ImagesToPrefetch   int
	MaxRenderedSlides  int
	SlideAlignment     Alignment
	CellPadding        float64

	// Explicit slide size in pixels; zero means "measure it".
	SlideWidth  float64
	SlideHeight float64

	MeasureRetryInterval time.Duration
	MaxMeasureRetries    int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		InitialSlide:         0,
		Infinite:             true,
		Transition:           TransitionSlide,
		TransitionDuration:   500 * time.Millisecond,
		Easing:               EaseInOut,
		Autoplay:             false,
		AutoplaySpeed:        4 * time.Second,
		Draggable:            true,
		DragThreshold:        0.2,
		ClickToNavigate:      true,
		PauseOnHover:         true,
		HoverGrace:           defaultHoverGrace,
		LazyLoad:             true,
		ImagesToPrefetch:     5,
		MaxRenderedSlides:    5,
		SlideAlignment:       AlignCenter,
		MeasureRetryInterval: defaultMeasureRetryInterval,
		MaxMeasureRetries:    defaultMaxMeasureRetries,
	}
}

// Normalize clamps out-of-range values and fills unknown enumerations with
// defaults. It returns one warning per corrected field.
func (o *Options) Normalize() []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if o.InitialSlide < 0 {
		warn("initial slide %d < 0, using 0", o.InitialSlide)
		o.InitialSlide = 0
	}
	if o.Transition != TransitionSlide && o.Transition != TransitionFade {
		warn("unknown transition %q, using %q", o.Transition, TransitionSlide)
		o.Transition = TransitionSlide
	}
	if o.TransitionDuration < 0 {
		warn("negative transition duration, using 0")
		o.TransitionDuration = 0
	}
	if !o.Easing.Valid() {
		warn("unknown easing %q, using %q", o.Easing, EaseInOut)
		o.Easing = EaseInOut
	}
	if o.AutoplaySpeed <= 0 {
		warn("autoplay speed must be positive, using 4s")
		o.AutoplaySpeed = 4 * time.Second
	}
	if o.DragThreshold < 0 || o.DragThreshold > 1 {
		warn("drag threshold %.2f outside 0..1, using 0.2", o.DragThreshold)
		o.DragThreshold = 0.2
	}
	if o.HoverGrace <= 0 {
		o.HoverGrace = defaultHoverGrace
	}
	if o.ImagesToPrefetch < 1 {
		warn("images to prefetch %d < 1, using 1", o.ImagesToPrefetch)
		o.ImagesToPrefetch = 1
	}
	if o.MaxRenderedSlides < 1 {
		warn("max rendered slides %d < 1, using 1", o.MaxRenderedSlides)
		o.MaxRenderedSlides = 1
	}
	switch o.SlideAlignment {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		warn("unknown slide alignment %q, using %q", o.SlideAlignment, AlignCenter)
		o.SlideAlignment = AlignCenter
	}
	if o.CellPadding < 0 {
		warn("negative cell padding, using 0")
		o.CellPadding = 0
	}
	if o.SlideWidth < 0 {
		o.SlideWidth = 0
	}
	if o.SlideHeight < 0 {
		o.SlideHeight = 0
	}
	if o.MeasureRetryInterval <= 0 {
		o.MeasureRetryInterval = defaultMeasureRetryInterval
	}
	if o.MaxMeasureRetries < 0 {
		o.MaxMeasureRetries = 0
	}
	return warnings
}

// translates reports whether the track moves horizontally between slides.
func (o Options) translates() bool {
	return o.Transition != TransitionFade
}

// hasExplicitSlideSize reports whether both slide dimensions are configured.
func (o Options) hasExplicitSlideSize() bool {
	return o.SlideWidth > 0 && o.SlideHeight > 0
}

// Duration is a time.Duration that decodes from either a number of
// milliseconds or a Go duration string such as "500ms" or "2s".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// ParseDuration parses "1500", "1500ms", "1.5s" and friends.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return Duration(time.Duration(ms * float64(time.Millisecond))), nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return Duration(v), nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v * float64(time.Millisecond)))
		return nil
	case string:
		parsed, err := ParseDuration(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("duration must be a number of milliseconds or a string, got %s", string(data))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalText lets text-based formats (TOML strings) use the same syntax.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
