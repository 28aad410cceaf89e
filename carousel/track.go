package carousel

// Slot is one element of the rendered track, in track order.
type Slot struct {
	// Tag is the positional index used by offset measurement: the logical
	// index for real panels, -2, -1, count and count+1 for clones.
	Tag int
	// Index is the logical panel this slot shows.
	Index       int
	Clone       bool
	Selected    bool
	Placeholder bool
	// Width and Height are the best-known size; zero means auto.
	Width  float64
	Height float64
}

// TrackInput is what BuildTrack needs to know about the carousel.
type TrackInput struct {
	Panels  []Panel
	State   State
	Options Options
	Loaded  map[string]Dimensions
}

// BuildTrack lays out the slots the renderer should draw. Panels outside the
// render window, or whose source has not loaded yet under lazy loading, become
// placeholders. In infinite slide mode two clones are added at each end.
// The second result is false while any image panel is still waiting to load.
func BuildTrack(in TrackInput) ([]Slot, bool) {
	count := len(in.Panels)
	if count == 0 {
		return nil, true
	}
	opts := in.Options
	s := in.State

	window := IndicesToRender(s.Current, s.TransitioningFrom, count, opts.Infinite, opts.MaxRenderedSlides)
	inWindow := make(map[int]bool, len(window))
	for _, idx := range window {
		inWindow[idx] = true
	}

	allLoaded := true
	slots := make([]Slot, 0, count+4)
	for i, p := range in.Panels {
		slot := Slot{
			Tag:      i,
			Index:    i,
			Selected: i == s.Current,
		}
		dims, loaded := in.Loaded[p.Source]
		mounted := inWindow[i]
		if opts.LazyLoad && p.Source != "" && !loaded {
			mounted = false
		}

		if mounted {
			slot.Width, slot.Height = opts.SlideWidth, opts.SlideHeight
			if loaded && !dims.Auto {
				if slot.Width == 0 {
					slot.Width = float64(dims.Width)
				}
				if slot.Height == 0 {
					slot.Height = float64(dims.Height)
				}
			}
		} else {
			if p.Source != "" && !loaded {
				allLoaded = false
			}
			slot.Placeholder = true
			slot.Width = firstNonZero(opts.SlideWidth, s.SlideWidth)
			slot.Height = firstNonZero(opts.SlideHeight, s.SlideHeight)
		}
		slots = append(slots, slot)
	}

	if opts.Infinite && opts.translates() {
		slots = addClones(slots)
	}
	return slots, allLoaded
}

// addClones prepends copies of the last two slots and appends copies of the
// first two, tagged -2, -1, count, count+1. Sets smaller than two wrap.
func addClones(originals []Slot) []Slot {
	count := len(originals)
	if count == 0 {
		return originals
	}
	clone := func(index, tag int) Slot {
		c := originals[Wrap(index, count)]
		c.Tag = tag
		c.Clone = true
		c.Selected = false
		return c
	}

	out := make([]Slot, 0, count+4)
	out = append(out, clone(count-2, -2), clone(count-1, -1))
	out = append(out, originals...)
	out = append(out, clone(0, count), clone(1, count+1))
	return out
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
