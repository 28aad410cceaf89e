package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"slideview/carousel"
)

// How long a transient overlay message stays on screen
const overlayMessageDuration = 2 * time.Second

// RenderState is everything the renderer reads in a frame
type RenderState interface {
	// Track
	CarouselState() carousel.State
	CarouselOptions() carousel.Options
	Track() []carousel.Slot
	Panels() []carousel.Panel
	TrackLayout() *trackLayout
	TrackPosition() float64
	FadeAlpha(index int) float64
	Image(source string) *ebiten.Image

	// Controls and overlays
	Navigator() carousel.Navigator
	Controls() []Control
	AutoplayEnabled() bool
	SortMethod() int
	ShowingHelp() bool
	ShowingInfo() bool
	OverlayMessage() (message string, shown time.Time)
	HelpFontSize() float64
	ConfigStatus() ConfigLoadResult
	Bindings() (keys, mouse map[string][]string)
}

// InputActions are the commands bound actions can run
type InputActions interface {
	Exit()
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	NavigateNext()
	NavigatePrevious()
	JumpToSlide(index int)
	ToggleAutoplay()
	CycleSortMethod()

	SlideCount() int
}

// InputState lets actions check what the pointer is doing
type InputState interface {
	IsDragging() bool
}
