package carousel

// SlotMetrics is the measured size of one rendered slot.
type SlotMetrics struct {
	Tag         int
	Width       float64
	Height      float64
	Placeholder bool
}

// Layout is the renderer's measurement surface.
type Layout interface {
	// ViewportWidth returns the viewport width, or 0 when it is not attached
	// or has not been laid out yet.
	ViewportWidth() float64
	// MeasureTrack returns the rendered size of each slot in track order, or
	// nil when the track is not attached yet.
	MeasureTrack(slots []Slot) []SlotMetrics
}

// OffsetResult is the outcome of one measurement pass.
type OffsetResult struct {
	Offset       float64
	CurrentWidth float64
	// ZeroWidth is set when a mounted slot measured zero width before or at
	// the target, which means layout has not settled.
	ZeroWidth bool
	Found     bool
}

// ComputeOffset walks the slots in track order, accumulating widths and
// padding until it reaches the slot tagged target, then aligns that slot
// within the viewport.
func ComputeOffset(metrics []SlotMetrics, viewport float64, target int, padding float64, align Alignment) OffsetResult {
	var res OffsetResult
	for _, m := range metrics {
		res.Offset -= padding
		res.CurrentWidth = m.Width
		if m.Width == 0 && !m.Placeholder {
			res.ZeroWidth = true
		}
		if m.Tag == target {
			res.Found = true
			break
		}
		res.Offset -= m.Width
	}

	switch align {
	case AlignCenter:
		res.Offset += (viewport - res.CurrentWidth) / 2
	case AlignRight:
		res.Offset += viewport - res.CurrentWidth
	}
	return res
}
