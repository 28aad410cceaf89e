package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings tunes wheel and double click handling
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity" toml:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time" toml:"double_click_time"` // milliseconds
	EnableMouse      bool    `json:"enable_mouse" toml:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted" toml:"wheel_inverted"`
}

func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300,
		EnableMouse:      true,
	}
}

func (s MouseSettings) doubleClickWindow() time.Duration {
	return time.Duration(s.DoubleClickTime) * time.Millisecond
}

// wheel returns this frame's wheel movement with sensitivity and inversion
// applied
func (s MouseSettings) wheel() (x, y float64) {
	x, y = ebiten.Wheel()
	if s.WheelInverted {
		y = -y
	}
	return x * s.WheelSensitivity, y * s.WheelSensitivity
}

// mouseButtons maps binding names to buttons. LeftClick is absent: it is
// reserved for dragging and click navigation.
var mouseButtons = map[string]ebiten.MouseButton{
	"RightClick":  ebiten.MouseButtonRight,
	"MiddleClick": ebiten.MouseButtonMiddle,
	"Back":        ebiten.MouseButton3,
	"Forward":     ebiten.MouseButton4,
}

// wheelDirection is the scroll direction a wheel binding reacts to
type wheelDirection struct {
	dx, dy float64
}

var wheelDirections = map[string]wheelDirection{
	"WheelUp":    {dy: 1},
	"WheelDown":  {dy: -1},
	"WheelLeft":  {dx: -1},
	"WheelRight": {dx: 1},
}

// matches reports whether a wheel movement goes in direction w
func (w wheelDirection) matches(x, y float64) bool {
	if w.dx != 0 {
		return w.dx*x > 0
	}
	return w.dy*y > 0
}

// MouseCombination is a button press, a double press or a wheel direction,
// with modifiers
type MouseCombination struct {
	Button ebiten.MouseButton
	Wheel  wheelDirection // zero for button bindings
	Double bool
	modifiers
}

func (c MouseCombination) isWheel() bool {
	return c.Wheel != wheelDirection{}
}

// parseMouseString parses bindings like "Alt+RightClick", "DoubleRightClick"
// or "WheelUp"
func parseMouseString(s string) (MouseCombination, error) {
	parts := strings.Split(s, "+")
	name := parts[len(parts)-1]
	mods, err := parseModifiers(parts[:len(parts)-1])
	if err != nil {
		return MouseCombination{}, err
	}

	combo := MouseCombination{modifiers: mods}
	if dir, ok := wheelDirections[name]; ok {
		combo.Wheel = dir
		return combo, nil
	}
	base, double := strings.CutPrefix(name, "Double")
	button, ok := mouseButtons[base]
	if !ok {
		return MouseCombination{}, fmt.Errorf("unknown mouse input %q", name)
	}
	combo.Button, combo.Double = button, double
	return combo, nil
}

// DoubleClickTracker pairs two presses of the same button within a window
type DoubleClickTracker struct {
	button  ebiten.MouseButton
	at      time.Time
	pending bool
}

// press records a press at now and reports whether it completes a double click
func (t *DoubleClickTracker) press(button ebiten.MouseButton, now time.Time, window time.Duration) bool {
	if t.pending && t.button == button && now.Sub(t.at) <= window {
		t.pending = false
		return true
	}
	t.button, t.at, t.pending = button, now, true
	return false
}

// MousebindingManager matches mouse buttons and the wheel against the
// bindings table
type MousebindingManager struct {
	table    bindingTable[MouseCombination]
	settings MouseSettings
	doubles  DoubleClickTracker
}

func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{settings: settings}
	mm.table.set(mousebindings, parseMouseString)
	return mm
}

// fired reports whether combo happened this frame
func (mm *MousebindingManager) fired(combo MouseCombination) bool {
	if !combo.held() {
		return false
	}
	if combo.isWheel() {
		return combo.Wheel.matches(mm.settings.wheel())
	}
	if !inpututil.IsMouseButtonJustPressed(combo.Button) {
		return false
	}
	if combo.Double {
		return mm.doubles.press(combo.Button, time.Now(), mm.settings.doubleClickWindow())
	}
	return true
}

// CheckAction reports whether one of the action's mouse bindings fired
func (mm *MousebindingManager) CheckAction(action string) bool {
	return mm.settings.EnableMouse && mm.table.triggered(action, mm.fired)
}

// ExecuteAction runs the action if one of its mouse bindings fired
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	return mm.CheckAction(action) && ExecuteAction(action, inputActions, inputState)
}

// Bindings returns the configured mouse bindings for display
func (mm *MousebindingManager) Bindings() map[string][]string {
	return mm.table.raw
}

func (mm *MousebindingManager) Settings() MouseSettings {
	return mm.settings
}
