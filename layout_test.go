package main

import (
	"reflect"
	"testing"

	"slideview/carousel"
)

type fakeDimensions struct {
	panels []carousel.Panel
	loaded map[string]carousel.Dimensions
}

func (f *fakeDimensions) Panels() []carousel.Panel { return f.panels }

func (f *fakeDimensions) Loaded(src string) (carousel.Dimensions, bool) {
	d, ok := f.loaded[src]
	return d, ok
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{39.9, 59.9, true},
		{40, 30, false},
		{20, 60, false},
		{9.9, 30, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestComputeGeometry(t *testing.T) {
	t.Run("full screen with bottom band", func(t *testing.T) {
		cfg := defaultCarouselConfig()
		g := computeGeometry(cfg, newControls(cfg.ControlNames()), 800, 600)
		want := geometry{
			Carousel: Rect{W: 800, H: 600},
			Viewport: Rect{W: 800, H: 564},
			Top:      Rect{W: 800, H: 0},
			Bottom:   Rect{Y: 564, W: 800, H: 36},
		}
		if !reflect.DeepEqual(g, want) {
			t.Errorf("geometry = %+v\nwant %+v", g, want)
		}
	})

	t.Run("sized box and clamped viewport", func(t *testing.T) {
		cfg := defaultCarouselConfig()
		cfg.Width = "50%"
		cfg.ViewportWidth = "200"
		cfg.ViewportHeight = "1000px"
		g := computeGeometry(cfg, nil, 800, 600)
		if g.Carousel != (Rect{X: 200, W: 400, H: 600}) {
			t.Errorf("carousel = %+v", g.Carousel)
		}
		if g.Viewport != (Rect{X: 300, W: 200, H: 600}) {
			t.Errorf("viewport = %+v", g.Viewport)
		}
		if g.Bottom.H != 0 || g.Top.H != 0 {
			t.Errorf("bands should be empty without controls: %+v %+v", g.Top, g.Bottom)
		}
	})

	t.Run("overlay controls take no band", func(t *testing.T) {
		cfg := defaultCarouselConfig()
		g := computeGeometry(cfg, newControls([]string{controlArrows}), 800, 600)
		if g.Viewport.H != 600 {
			t.Errorf("viewport height = %v, want 600", g.Viewport.H)
		}
	})
}

func TestMeasureTrack(t *testing.T) {
	source := &fakeDimensions{
		panels: []carousel.Panel{{Source: "a"}, {Source: "b"}},
		loaded: map[string]carousel.Dimensions{
			"a": {Width: 800, Height: 400},
		},
	}
	slots := []carousel.Slot{
		{Tag: 0, Index: 0},
		{Tag: 1, Index: 1, Width: 300, Height: 200},
		{Tag: 2, Index: 1, Placeholder: true, Width: 50, Height: 60},
		{Tag: 3, Index: 5},
	}

	t.Run("auto sizes", func(t *testing.T) {
		l := newTrackLayout(defaultCarouselConfig())
		l.viewport = Rect{W: 600, H: 400}
		l.source = source

		got := l.MeasureTrack(slots)
		want := []carousel.SlotMetrics{
			{Tag: 0, Width: 800, Height: 400},
			{Tag: 1, Width: 600, Height: 400},
			{Tag: 2, Width: 50, Height: 60, Placeholder: true},
			{Tag: 3, Width: 600, Height: 400},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MeasureTrack = %+v\nwant %+v", got, want)
		}
	})

	t.Run("configured sizes", func(t *testing.T) {
		cfg := defaultCarouselConfig()
		cfg.SlideWidth = "50%"
		cfg.SlideHeight = "200"
		l := newTrackLayout(cfg)
		l.viewport = Rect{W: 600, H: 400}
		l.source = source

		for _, m := range l.MeasureTrack(slots) {
			if m.Width != 300 || m.Height != 200 {
				t.Errorf("slot %d = %vx%v, want 300x200", m.Tag, m.Width, m.Height)
			}
		}
	})

	t.Run("no viewport yet", func(t *testing.T) {
		l := newTrackLayout(defaultCarouselConfig())
		if got := l.MeasureTrack(slots); got != nil {
			t.Errorf("Expected nil before layout, got %v", got)
		}
	})
}

func TestSlotOffsetsAndHit(t *testing.T) {
	metrics := []carousel.SlotMetrics{{Width: 100}, {Width: 200}, {Width: 50}}
	xs := slotOffsets(metrics, 10)
	if !reflect.DeepEqual(xs, []float64{10, 120, 330}) {
		t.Fatalf("slotOffsets = %v", xs)
	}

	tests := []struct {
		name   string
		pos    float64
		localX float64
		want   int
		ok     bool
	}{
		{"first slot", 0, 50, 0, true},
		{"padding gap", 0, 115, -1, false},
		{"shifted track", -100, 30, 1, true},
		{"past the end", -100, 500, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := hitSlot(metrics, xs, tt.pos, tt.localX)
			if got != tt.want || ok != tt.ok {
				t.Errorf("hitSlot = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
