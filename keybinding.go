package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyMapping maps configuration key names to Ebiten keys
var keyMapping = map[string]ebiten.Key{
	// Letters
	"KeyA": ebiten.KeyA, "KeyB": ebiten.KeyB, "KeyC": ebiten.KeyC, "KeyD": ebiten.KeyD,
	"KeyE": ebiten.KeyE, "KeyF": ebiten.KeyF, "KeyG": ebiten.KeyG, "KeyH": ebiten.KeyH,
	"KeyI": ebiten.KeyI, "KeyJ": ebiten.KeyJ, "KeyK": ebiten.KeyK, "KeyL": ebiten.KeyL,
	"KeyM": ebiten.KeyM, "KeyN": ebiten.KeyN, "KeyO": ebiten.KeyO, "KeyP": ebiten.KeyP,
	"KeyQ": ebiten.KeyQ, "KeyR": ebiten.KeyR, "KeyS": ebiten.KeyS, "KeyT": ebiten.KeyT,
	"KeyU": ebiten.KeyU, "KeyV": ebiten.KeyV, "KeyW": ebiten.KeyW, "KeyX": ebiten.KeyX,
	"KeyY": ebiten.KeyY, "KeyZ": ebiten.KeyZ,

	// Numbers
	"Key0": ebiten.Key0, "Key1": ebiten.Key1, "Key2": ebiten.Key2, "Key3": ebiten.Key3,
	"Key4": ebiten.Key4, "Key5": ebiten.Key5, "Key6": ebiten.Key6, "Key7": ebiten.Key7,
	"Key8": ebiten.Key8, "Key9": ebiten.Key9,

	// Special keys
	"Space":      ebiten.KeySpace,
	"Backspace":  ebiten.KeyBackspace,
	"Enter":      ebiten.KeyEnter,
	"Escape":     ebiten.KeyEscape,
	"Tab":        ebiten.KeyTab,
	"Home":       ebiten.KeyHome,
	"End":        ebiten.KeyEnd,
	"PageUp":     ebiten.KeyPageUp,
	"PageDown":   ebiten.KeyPageDown,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,

	// Punctuation
	"Comma":     ebiten.KeyComma,
	"Period":    ebiten.KeyPeriod,
	"Slash":     ebiten.KeySlash,
	"Semicolon": ebiten.KeySemicolon,
	"Quote":     ebiten.KeyQuote,
	"Minus":     ebiten.KeyMinus,
	"Equal":     ebiten.KeyEqual,
}

// modifiers holds the modifier part of a key or mouse combination
type modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseModifiers reads "Shift", "Ctrl" and "Alt" prefixes
func parseModifiers(parts []string) (modifiers, error) {
	var m modifiers
	for _, p := range parts {
		switch strings.ToLower(p) {
		case "shift":
			m.Shift = true
		case "ctrl":
			m.Ctrl = true
		case "alt":
			m.Alt = true
		default:
			return m, fmt.Errorf("unknown modifier %q", p)
		}
	}
	return m, nil
}

// held reports whether exactly the wanted modifiers are down
func (m modifiers) held() bool {
	return m.Shift == ebiten.IsKeyPressed(ebiten.KeyShift) &&
		m.Ctrl == ebiten.IsKeyPressed(ebiten.KeyControl) &&
		m.Alt == ebiten.IsKeyPressed(ebiten.KeyAlt)
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key ebiten.Key
	modifiers
}

// parseKeyString parses a key string like "Shift+KeyB"
func parseKeyString(keyStr string) (KeyCombination, error) {
	parts := strings.Split(keyStr, "+")
	keyName := parts[len(parts)-1]
	key, exists := keyMapping[keyName]
	if !exists {
		return KeyCombination{}, fmt.Errorf("unknown key %q", keyName)
	}
	mods, err := parseModifiers(parts[:len(parts)-1])
	if err != nil {
		return KeyCombination{}, err
	}
	return KeyCombination{Key: key, modifiers: mods}, nil
}

// pressed reports whether the combination went down this frame
func (k KeyCombination) pressed() bool {
	return inpututil.IsKeyJustPressed(k.Key) && k.held()
}

// KeybindingManager matches key presses against the bindings table
type KeybindingManager struct {
	table bindingTable[KeyCombination]
}

func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{}
	km.table.set(keybindings, parseKeyString)
	return km
}

// CheckAction reports whether one of the action's keys was pressed this frame
func (km *KeybindingManager) CheckAction(action string) bool {
	return km.table.triggered(action, KeyCombination.pressed)
}

// ExecuteAction runs the action if one of its keys was pressed
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	return km.CheckAction(action) && ExecuteAction(action, inputActions, inputState)
}

// Bindings returns the configured key bindings for display
func (km *KeybindingManager) Bindings() map[string][]string {
	return km.table.raw
}
