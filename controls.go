package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"slideview/carousel"
)

// ControlPosition is where a control is laid out relative to the viewport
type ControlPosition int

const (
	positionBottom ControlPosition = iota
	positionTop
	positionOverlay // drawn over the viewport, takes no band
)

// Control is a navigation widget drawn around the track. Controls only see
// the carousel through carousel.Navigator.
type Control interface {
	// Layout is called whenever the area available to the control changes
	Layout(area Rect, nav carousel.Navigator)
	Draw(screen *ebiten.Image, nav carousel.Navigator)
	// HandleClick reports whether the click at (x, y) was consumed
	HandleClick(x, y float64, nav carousel.Navigator) bool
	Position() ControlPosition
}

// newControls builds the controls named in the configuration, in order
func newControls(names []string) []Control {
	controls := make([]Control, 0, len(names))
	for _, name := range names {
		switch name {
		case controlDots:
			controls = append(controls, &Dots{})
		case controlArrows:
			controls = append(controls, &Arrows{})
		}
	}
	return controls
}

// controlArea returns the area a control is laid out in
func controlArea(g geometry, pos ControlPosition) Rect {
	switch pos {
	case positionTop:
		return g.Top
	case positionOverlay:
		return g.Viewport
	default:
		return g.Bottom
	}
}

// hasNext reports whether forward navigation is possible
func hasNext(nav carousel.Navigator) bool {
	count := nav.PanelCount()
	if count <= 1 {
		return false
	}
	return nav.Infinite() || nav.CurrentIndex() < count-1
}

// hasPrev reports whether backward navigation is possible
func hasPrev(nav carousel.Navigator) bool {
	count := nav.PanelCount()
	if count <= 1 {
		return false
	}
	return nav.Infinite() || nav.CurrentIndex() > 0
}

var (
	colorControl         = color.RGBA{255, 255, 255, 200}
	colorControlDim      = color.RGBA{255, 255, 255, 70}
	colorControlSelected = color.RGBA{255, 200, 100, 255}
)

// Dot sizes in pixels
const (
	dotRadius     = 5.0
	dotMaxSpacing = 20.0
	dotMinSpacing = 3.0
)

// Dots shows one dot per panel and jumps to the clicked one
type Dots struct {
	area    Rect
	centers []float64
	radius  float64
	y       float64
}

func (d *Dots) Position() ControlPosition { return positionBottom }

func (d *Dots) Layout(area Rect, nav carousel.Navigator) {
	d.area = area
	count := nav.PanelCount()
	d.centers = d.centers[:0]
	if count == 0 || area.W <= 0 {
		return
	}
	spacing := min(dotMaxSpacing, area.W/float64(count))
	if spacing < dotMinSpacing {
		// Too many panels to give each a dot
		return
	}
	d.radius = min(dotRadius, spacing/3)
	total := spacing * float64(count)
	left := area.X + (area.W-total)/2 + spacing/2
	for i := 0; i < count; i++ {
		d.centers = append(d.centers, left+spacing*float64(i))
	}
	d.y = area.Y + area.H/2
}

func (d *Dots) Draw(screen *ebiten.Image, nav carousel.Navigator) {
	current := nav.CurrentIndex()
	for i, cx := range d.centers {
		c := colorControlDim
		if i == current {
			c = colorControlSelected
		}
		DrawFilledCircle(screen, cx, d.y, d.radius, c)
	}
}

func (d *Dots) HandleClick(x, y float64, nav carousel.Navigator) bool {
	if !d.area.Contains(x, y) || len(d.centers) == 0 {
		return false
	}
	spacing := dotMaxSpacing
	if len(d.centers) > 1 {
		spacing = d.centers[1] - d.centers[0]
	}
	for i, cx := range d.centers {
		if x >= cx-spacing/2 && x < cx+spacing/2 {
			nav.GoToSlide(i)
			return true
		}
	}
	return false
}

// Arrow button size in pixels
const (
	arrowWidth  = 40.0
	arrowHeight = 64.0
	arrowMargin = 8.0
)

// Arrows are previous and next buttons at the sides of the viewport
type Arrows struct {
	prev Rect
	next Rect
}

func (a *Arrows) Position() ControlPosition { return positionOverlay }

func (a *Arrows) Layout(area Rect, _ carousel.Navigator) {
	y := area.Y + (area.H-arrowHeight)/2
	a.prev = Rect{X: area.X + arrowMargin, Y: y, W: arrowWidth, H: arrowHeight}
	a.next = Rect{X: area.X + area.W - arrowMargin - arrowWidth, Y: y, W: arrowWidth, H: arrowHeight}
}

func (a *Arrows) Draw(screen *ebiten.Image, nav carousel.Navigator) {
	drawArrow := func(r Rect, enabled bool, left bool) {
		c := colorControl
		if !enabled {
			c = colorControlDim
		}
		DrawFilledRect(screen, r.X, r.Y, r.W, r.H, bgColorLight)
		DrawChevron(screen, r, left, c)
	}
	drawArrow(a.prev, hasPrev(nav), true)
	drawArrow(a.next, hasNext(nav), false)
}

func (a *Arrows) HandleClick(x, y float64, nav carousel.Navigator) bool {
	switch {
	case a.prev.Contains(x, y):
		if hasPrev(nav) {
			nav.PrevSlide()
		}
		return true
	case a.next.Contains(x, y):
		if hasNext(nav) {
			nav.NextSlide()
		}
		return true
	}
	return false
}
