package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"slideview/carousel"
)

// Game is the ebiten application hosting one carousel
type Game struct {
	carousel *carousel.Carousel
	images   *ImageManager
	// entryPaths is the collection order; paths is the current sorted order
	entryPaths []ImagePath
	paths      []ImagePath

	layout   *trackLayout
	geometry geometry
	controls []Control
	animator *trackAnimator
	fade     *crossFade
	trackPos float64

	config       Config
	configPath   string
	configStatus ConfigLoadResult

	fullscreen         bool
	showHelp           bool
	showInfo           bool
	focused            bool
	exiting            bool
	savedWinW          int
	savedWinH          int
	screenW            int
	screenH            int
	overlayMessage     string
	overlayMessageTime time.Time

	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	inputHandler        *InputHandler
	renderer            *Renderer
}

// NewGame mounts a carousel over paths, which must be in collection order
func NewGame(paths []ImagePath, status ConfigLoadResult) *Game {
	config := status.Config
	g := &Game{
		entryPaths:   paths,
		paths:        GetSortStrategy(config.SortMethod).Sort(paths),
		config:       config,
		configPath:   status.Path,
		configStatus: status,
		fullscreen:   config.Fullscreen,
		showInfo:     config.ShowInfo,
		focused:      true,
	}

	g.images = NewImageManager(config.CacheSize, config.MaxParallelLoads)
	g.images.SetPaths(g.paths)
	g.controls = newControls(config.Carousel.ControlNames())
	g.layout = newTrackLayout(config.Carousel)

	opts := config.Carousel.Options()
	g.carousel = carousel.New(Panels(g.paths), carousel.Config{
		Options: opts,
		Layout:  g.layout,
		Loader:  g.images,
		Callbacks: carousel.Callbacks{
			OnSlideTransitioned: func(t carousel.SlideTransition) {
				debugLog("Slide transition to [%d] %s (autoplay: %v)", t.Index+1, t.Direction, t.AutoPlay)
			},
			AfterChange: func(index int) {
				stats := g.images.Stats()
				debugLog("Showing [%d/%d] (cache: %d items, hits: %d, decoded: %d, failed: %d)",
					index+1, len(g.paths), g.images.CacheLen(), stats.CacheHits, stats.Decoded, stats.Failed)
			},
			OnReady: func() {
				debugLog("Carousel ready with %d slides", len(g.paths))
			},
		},
	})
	g.layout.source = g.carousel

	g.animator = newTrackAnimator(opts.Easing)
	g.fade = newCrossFade(opts.Easing, opts.TransitionDuration)

	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.mousebindingManager = NewMousebindingManager(config.Mousebindings, config.MouseSettings)
	g.inputHandler = NewInputHandler(g, g, g.keybindingManager, g.mousebindingManager, g)
	g.renderer = NewRenderer(g)

	if status.Status == "Warning" || status.Status == "Error" {
		g.showOverlay(fmt.Sprintf("Config: %s (see help)", status.Status))
	}
	return g
}

func (g *Game) Update() error {
	if g.exiting {
		return ebiten.Termination
	}

	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		g.carousel.SetVisible(focused)
	}

	g.inputHandler.HandleInput()
	if g.exiting {
		return ebiten.Termination
	}

	g.carousel.Tick()
	g.advanceAnimation(time.Now())
	return nil
}

// advanceAnimation moves the drawn track toward the carousel's position and
// reports finished movements back to it
func (g *Game) advanceAnimation(now time.Time) {
	st := g.carousel.State()
	if g.carousel.Options().Transition == carousel.TransitionFade {
		g.fade.Update(st.Current, now)
		return
	}

	dragging := g.carousel.Dragging()
	g.trackPos, _ = g.animator.Update(st.TrackPosition(), st.Duration, dragging, now)
	if g.animator.Idle() && !dragging && (st.Animating || st.Duration > 0) {
		g.carousel.TransitionFinished()
		// A clone position snaps onto its panel without animation
		st = g.carousel.State()
		g.trackPos, _ = g.animator.Update(st.TrackPosition(), st.Duration, false, now)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.relayout()
	}
	return outsideWidth, outsideHeight
}

// relayout recomputes geometry for the current screen and panel count
func (g *Game) relayout() {
	g.geometry = computeGeometry(g.config.Carousel, g.controls, g.screenW, g.screenH)
	g.layout.viewport = g.geometry.Viewport
	for _, c := range g.controls {
		c.Layout(controlArea(g.geometry, c.Position()), g.carousel)
	}
	g.carousel.Resize()
}

func (g *Game) saveCurrentWindowSize() {
	if g.fullscreen {
		// Save the size from before fullscreen
		if g.savedWinW > 0 && g.savedWinH > 0 {
			g.config.WindowWidth = g.savedWinW
			g.config.WindowHeight = g.savedWinH
		}
	} else {
		w, h := ebiten.WindowSize()
		g.config.WindowWidth = w
		g.config.WindowHeight = h
	}
	g.config.Fullscreen = g.fullscreen
	if err := saveConfigToPath(g.config, g.configPath); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// InputActions implementation

func (g *Game) Exit() {
	// A broken config file is not overwritten with defaults
	if !g.configStatus.HasError {
		g.saveCurrentWindowSize()
	}
	g.carousel.Close()
	g.exiting = true
}

// Close releases decoded images once the game loop has stopped
func (g *Game) Close() {
	g.carousel.Close()
	g.images.Close()
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
}

func (g *Game) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if g.savedWinW > 0 && g.savedWinH > 0 {
		ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
	}
}

func (g *Game) NavigateNext() {
	g.carousel.NextSlide()
}

func (g *Game) NavigatePrevious() {
	g.carousel.PrevSlide()
}

func (g *Game) JumpToSlide(index int) {
	if index < 0 || index >= len(g.paths) {
		return
	}
	g.carousel.GoToSlide(index)
}

func (g *Game) ToggleAutoplay() {
	on := !g.carousel.Options().Autoplay
	g.carousel.SetAutoplay(on)
	if on {
		g.showOverlay(fmt.Sprintf("Autoplay: on (%s)", g.carousel.Options().AutoplaySpeed))
	} else {
		g.showOverlay("Autoplay: off")
	}
}

// CycleSortMethod reorders the panels with the next sort strategy
func (g *Game) CycleSortMethod() {
	strategies := GetAllSortStrategies()
	g.config.SortMethod = (g.config.SortMethod + 1) % len(strategies)
	strategy := GetSortStrategy(g.config.SortMethod)

	g.paths = strategy.Sort(g.entryPaths)
	g.images.SetPaths(g.paths)
	g.carousel.SetPanels(Panels(g.paths))
	for _, c := range g.controls {
		c.Layout(controlArea(g.geometry, c.Position()), g.carousel)
	}
	g.showOverlay("Sort: " + strategy.Name())
}

func (g *Game) SlideCount() int {
	return len(g.paths)
}

// showOverlay flashes a message in the middle of the screen
func (g *Game) showOverlay(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

// InputState implementation

func (g *Game) IsDragging() bool {
	return g.carousel.Dragging()
}

// trackSurface implementation

func (g *Game) Carousel() *carousel.Carousel { return g.carousel }

func (g *Game) Viewport() Rect { return g.geometry.Viewport }

func (g *Game) Controls() []Control { return g.controls }

func (g *Game) SlotAt(x, y float64) (int, bool, bool) {
	vp := g.geometry.Viewport
	if !vp.Contains(x, y) {
		return 0, false, false
	}
	slots := g.carousel.Track()
	if g.carousel.Options().Transition == carousel.TransitionFade {
		for _, s := range slots {
			if s.Selected {
				return s.Tag, !s.Placeholder, true
			}
		}
		return 0, false, false
	}

	metrics := g.layout.MeasureTrack(slots)
	if metrics == nil {
		return 0, false, false
	}
	i, ok := hitSlot(metrics, slotOffsets(metrics, g.layout.padding), g.trackPos, x-vp.X)
	if !ok {
		return 0, false, false
	}
	return slots[i].Tag, !slots[i].Placeholder, true
}

// RenderState implementation

func (g *Game) CarouselState() carousel.State { return g.carousel.State() }

func (g *Game) CarouselOptions() carousel.Options { return g.carousel.Options() }

func (g *Game) Track() []carousel.Slot { return g.carousel.Track() }

func (g *Game) Panels() []carousel.Panel { return g.carousel.Panels() }

func (g *Game) Navigator() carousel.Navigator { return g.carousel }

func (g *Game) TrackLayout() *trackLayout { return g.layout }

func (g *Game) TrackPosition() float64 { return g.trackPos }

func (g *Game) FadeAlpha(index int) float64 { return g.fade.Alpha(index, time.Now()) }

func (g *Game) AutoplayEnabled() bool { return g.carousel.Options().Autoplay }

func (g *Game) ShowingHelp() bool { return g.showHelp }

func (g *Game) ShowingInfo() bool { return g.showInfo }

func (g *Game) OverlayMessage() (string, time.Time) { return g.overlayMessage, g.overlayMessageTime }

func (g *Game) Image(source string) *ebiten.Image { return g.images.GetImage(source) }

func (g *Game) HelpFontSize() float64 { return g.config.HelpFontSize }

func (g *Game) ConfigStatus() ConfigLoadResult { return g.configStatus }

func (g *Game) Bindings() (keys, mouse map[string][]string) {
	return g.keybindingManager.Bindings(), g.mousebindingManager.Bindings()
}

func (g *Game) SortMethod() int { return g.config.SortMethod }
