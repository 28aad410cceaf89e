package main

import (
	"slideview/carousel"
)

// Height reserved for a band of controls above or below the viewport
const controlBandHeight = 36.0

// Rect is an axis-aligned rectangle in screen pixels
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// geometry is where the carousel and its viewport sit on screen
type geometry struct {
	Carousel Rect
	Viewport Rect
	Top      Rect // control band above the viewport, zero height when unused
	Bottom   Rect // control band below the viewport, zero height when unused
}

// computeGeometry resolves the configured sizes against the screen. The
// carousel box is centered on screen and the viewport is centered inside what
// the control bands leave of it.
func computeGeometry(cfg CarouselConfig, controls []Control, screenW, screenH int) geometry {
	sw, sh := float64(screenW), float64(screenH)
	w := mustSize(cfg.Width).ResolveOr(sw, sw)
	h := mustSize(cfg.Height).ResolveOr(sh, sh)
	box := Rect{X: (sw - w) / 2, Y: (sh - h) / 2, W: w, H: h}

	var top, bottom float64
	for _, c := range controls {
		switch c.Position() {
		case positionTop:
			top = controlBandHeight
		case positionBottom:
			bottom = controlBandHeight
		}
	}

	inner := Rect{X: box.X, Y: box.Y + top, W: box.W, H: max(box.H-top-bottom, 0)}
	vw := min(mustSize(cfg.ViewportWidth).ResolveOr(inner.W, inner.W), inner.W)
	vh := min(mustSize(cfg.ViewportHeight).ResolveOr(inner.H, inner.H), inner.H)
	viewport := Rect{X: inner.X + (inner.W-vw)/2, Y: inner.Y + (inner.H-vh)/2, W: vw, H: vh}

	return geometry{
		Carousel: box,
		Viewport: viewport,
		Top:      Rect{X: box.X, Y: box.Y, W: box.W, H: top},
		Bottom:   Rect{X: box.X, Y: inner.Y + inner.H, W: box.W, H: bottom},
	}
}

// dimensionSource reports the natural size of loaded panel sources
type dimensionSource interface {
	Panels() []carousel.Panel
	Loaded(src string) (carousel.Dimensions, bool)
}

// trackLayout sizes the slots of the track inside the viewport. It is the
// carousel's measurement surface.
type trackLayout struct {
	viewport    Rect
	slideWidth  Size
	slideHeight Size
	padding     float64
	source      dimensionSource
}

var _ carousel.Layout = (*trackLayout)(nil)

func newTrackLayout(cfg CarouselConfig) *trackLayout {
	return &trackLayout{
		slideWidth:  mustSize(cfg.SlideWidth),
		slideHeight: mustSize(cfg.SlideHeight),
		padding:     cfg.CellPadding,
	}
}

func (l *trackLayout) ViewportWidth() float64 {
	return l.viewport.W
}

// natural returns the natural size of the panel shown by slot
func (l *trackLayout) natural(slot carousel.Slot) (w, h float64, ok bool) {
	if l.source == nil {
		return 0, 0, false
	}
	panels := l.source.Panels()
	if slot.Index < 0 || slot.Index >= len(panels) {
		return 0, 0, false
	}
	dims, loaded := l.source.Loaded(panels[slot.Index].Source)
	if !loaded || dims.Auto || dims.Width == 0 || dims.Height == 0 {
		return 0, 0, false
	}
	return float64(dims.Width), float64(dims.Height), true
}

// slotSize returns the rendered size of one slot
func (l *trackLayout) slotSize(slot carousel.Slot) (w, h float64) {
	if slot.Placeholder {
		w = l.slideWidth.ResolveOr(l.viewport.W, slot.Width)
		h = l.slideHeight.ResolveOr(l.viewport.H, slot.Height)
		return w, h
	}

	h = l.slideHeight.ResolveOr(l.viewport.H, l.viewport.H)
	if px, ok := l.slideWidth.Resolve(l.viewport.W); ok {
		return px, h
	}
	if nw, nh, ok := l.natural(slot); ok {
		return nw * h / nh, h
	}
	if slot.Width > 0 && slot.Height > 0 {
		return slot.Width * h / slot.Height, h
	}
	// Unknown aspect (failed or auto-sized source): fill the viewport
	return l.viewport.W, h
}

func (l *trackLayout) MeasureTrack(slots []carousel.Slot) []carousel.SlotMetrics {
	if l.viewport.W <= 0 || l.viewport.H <= 0 {
		return nil
	}
	metrics := make([]carousel.SlotMetrics, len(slots))
	for i, s := range slots {
		w, h := l.slotSize(s)
		metrics[i] = carousel.SlotMetrics{Tag: s.Tag, Width: w, Height: h, Placeholder: s.Placeholder}
	}
	return metrics
}

// slotOffsets returns the x position of each slot relative to the start of
// the track. Padding precedes every slot.
func slotOffsets(metrics []carousel.SlotMetrics, padding float64) []float64 {
	xs := make([]float64, len(metrics))
	x := 0.0
	for i, m := range metrics {
		x += padding
		xs[i] = x
		x += m.Width
	}
	return xs
}

// hitSlot returns the index into metrics of the slot under localX, a
// position relative to the viewport's left edge, with the track at pos
func hitSlot(metrics []carousel.SlotMetrics, xs []float64, pos, localX float64) (int, bool) {
	for i, m := range metrics {
		left := pos + xs[i]
		if localX >= left && localX < left+m.Width {
			return i, true
		}
	}
	return -1, false
}
