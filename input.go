package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"slideview/carousel"
)

// trackSurface is what pointer and touch input act on
type trackSurface interface {
	Carousel() *carousel.Carousel
	Viewport() Rect
	Controls() []Control
	// SlotAt returns the tag of the slot under (x, y) and whether it shows
	// image content rather than a placeholder
	SlotAt(x, y float64) (tag int, onImage bool, ok bool)
}

// InputHandler handles keyboard, mouse and touch input processing
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	surface             trackSurface

	// Pointer state carried between frames
	cursorX, cursorY float64
	hovering         bool
	mouseDown        bool
	pressTag         int
	pressOK          bool

	touching   bool
	touchID    ebiten.TouchID
	touchX     float64
	touchY     float64
	touchTag   int
	touchTagOK bool
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, keybindingManager *KeybindingManager,
	mousebindingManager *MousebindingManager, surface trackSurface) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
		surface:             surface,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	if h.inputActions.SlideCount() == 0 {
		return h.handleBindings("exit")
	}

	inputProcessed := false
	for _, a := range actions {
		inputProcessed = h.handleBindings(a.name) || inputProcessed
	}
	inputProcessed = h.handleMouse() || inputProcessed
	inputProcessed = h.handleTouch() || inputProcessed
	return inputProcessed
}

func (h *InputHandler) handleBindings(action string) bool {
	if h.keybindingManager.ExecuteAction(action, h.inputActions, h.inputState) {
		return true
	}
	return h.mousebindingManager.ExecuteAction(action, h.inputActions, h.inputState)
}

// clickControls offers a click to every control and reports whether one took it
func (h *InputHandler) clickControls(x, y float64) bool {
	nav := h.surface.Carousel()
	for _, c := range h.surface.Controls() {
		if c.HandleClick(x, y, nav) {
			return true
		}
	}
	return false
}

// handleMouse feeds the left button and cursor into the carousel's drag,
// hover and click handling
func (h *InputHandler) handleMouse() bool {
	if !h.mousebindingManager.Settings().EnableMouse {
		return false
	}
	c := h.surface.Carousel()
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	inside := h.surface.Viewport().Contains(x, y)
	processed := false

	if inside != h.hovering {
		h.hovering = inside
		if inside {
			c.PointerEnter()
		} else {
			// Leaving ends any drag, so the release below has nothing to do
			c.PointerLeave()
			h.mouseDown = false
		}
		processed = true
	}
	if inside && (x != h.cursorX || y != h.cursorY) {
		c.PointerMove(x, y)
		processed = true
	}
	h.cursorX, h.cursorY = x, y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if h.clickControls(x, y) {
			return true
		}
		if inside {
			tag, onImage, ok := h.surface.SlotAt(x, y)
			h.mouseDown = true
			h.pressTag, h.pressOK = tag, ok
			if started, _ := c.PointerDown(x, y, onImage); started {
				debugLog("drag started at %.0f,%.0f (slot %d)", x, y, tag)
			}
			processed = true
		}
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && h.mouseDown {
		h.mouseDown = false
		c.PointerUp()
		if inside && h.pressOK {
			c.Click(h.pressTag, x)
		}
		processed = true
	}
	return processed
}

// handleTouch follows the first finger only
func (h *InputHandler) handleTouch() bool {
	c := h.surface.Carousel()

	if !h.touching {
		ids := inpututil.AppendJustPressedTouchIDs(nil)
		if len(ids) == 0 {
			return false
		}
		id := ids[0]
		tx, ty := ebiten.TouchPosition(id)
		x, y := float64(tx), float64(ty)
		if h.clickControls(x, y) {
			return true
		}
		if !h.surface.Viewport().Contains(x, y) {
			return false
		}
		h.touching = true
		h.touchID = id
		h.touchX, h.touchY = x, y
		h.touchTag, _, h.touchTagOK = h.surface.SlotAt(x, y)
		c.TouchStart(x, y)
		return true
	}

	if inpututil.IsTouchJustReleased(h.touchID) {
		h.touching = false
		c.PointerUp()
		if h.touchTagOK {
			c.Click(h.touchTag, h.touchX)
		}
		return true
	}

	tx, ty := ebiten.TouchPosition(h.touchID)
	x, y := float64(tx), float64(ty)
	if x == h.touchX && y == h.touchY {
		return false
	}
	h.touchX, h.touchY = x, y
	return c.TouchMove(x, y)
}
