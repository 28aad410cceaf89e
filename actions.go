package main

// action is one bindable command with its default inputs
type action struct {
	name        string
	keys        []string
	mouse       []string
	description string
	// movesTrack actions are refused while a drag holds the track
	movesTrack bool
	run        func(InputActions)
}

// actions lists every bindable command in help order. Left click is not
// bindable: it drives dragging and click navigation on the track.
var actions = []action{
	{
		name:        "next",
		keys:        []string{"Space", "KeyN", "ArrowRight", "PageDown"},
		mouse:       []string{"WheelDown", "Forward"},
		description: "Next slide",
		movesTrack:  true,
		run:         InputActions.NavigateNext,
	},
	{
		name:        "previous",
		keys:        []string{"Backspace", "KeyP", "ArrowLeft", "PageUp"},
		mouse:       []string{"WheelUp", "Back"},
		description: "Previous slide",
		movesTrack:  true,
		run:         InputActions.NavigatePrevious,
	},
	{
		name:        "jump_first",
		keys:        []string{"Home", "Shift+Comma"},
		description: "Jump to first slide",
		movesTrack:  true,
		run:         func(a InputActions) { a.JumpToSlide(0) },
	},
	{
		name:        "jump_last",
		keys:        []string{"End", "Shift+Period"},
		description: "Jump to last slide",
		movesTrack:  true,
		run: func(a InputActions) {
			if n := a.SlideCount(); n > 0 {
				a.JumpToSlide(n - 1)
			}
		},
	},
	{
		name:        "toggle_autoplay",
		keys:        []string{"KeyA"},
		mouse:       []string{"MiddleClick"},
		description: "Start/stop autoplay",
		run:         InputActions.ToggleAutoplay,
	},
	{
		name:        "cycle_sort",
		keys:        []string{"Shift+KeyS"},
		mouse:       []string{"Alt+MiddleClick"},
		description: "Cycle sort method (Natural/Simple/Entry)",
		movesTrack:  true,
		run:         InputActions.CycleSortMethod,
	},
	{
		name:        "fullscreen",
		keys:        []string{"Enter", "KeyF"},
		mouse:       []string{"DoubleRightClick"},
		description: "Toggle fullscreen",
		run:         InputActions.ToggleFullscreen,
	},
	{
		name:        "info",
		keys:        []string{"KeyI"},
		description: "Show/hide slide info",
		run:         InputActions.ToggleInfo,
	},
	{
		name:        "help",
		keys:        []string{"Shift+Slash"},
		mouse:       []string{"Alt+RightClick"},
		description: "Show/hide help",
		run:         InputActions.ToggleHelp,
	},
	{
		name:        "exit",
		keys:        []string{"Escape", "KeyQ"},
		description: "Quit",
		run:         InputActions.Exit,
	},
}

func lookupAction(name string) (action, bool) {
	for _, a := range actions {
		if a.name == name {
			return a, true
		}
	}
	return action{}, false
}

func isKnownAction(name string) bool {
	_, ok := lookupAction(name)
	return ok
}

// ExecuteAction runs the named action and reports whether it ran
func ExecuteAction(name string, inputActions InputActions, inputState InputState) bool {
	a, ok := lookupAction(name)
	if !ok {
		return false
	}
	if a.movesTrack && inputState.IsDragging() {
		return false
	}
	a.run(inputActions)
	return true
}

func defaultBindings(inputs func(action) []string) map[string][]string {
	bindings := make(map[string][]string, len(actions))
	for _, a := range actions {
		bindings[a.name] = append([]string{}, inputs(a)...)
	}
	return bindings
}

// GetDefaultKeybindings returns a fresh copy of the default key bindings
func GetDefaultKeybindings() map[string][]string {
	return defaultBindings(func(a action) []string { return a.keys })
}

// GetDefaultMousebindings returns a fresh copy of the default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	return defaultBindings(func(a action) []string { return a.mouse })
}

// bindingTable holds a bindings map as configured and as parsed into
// combinations of type C
type bindingTable[C any] struct {
	raw    map[string][]string
	parsed map[string][]C
}

// set replaces the table. Bindings are validated at config load, so entries
// that fail to parse are skipped here.
func (t *bindingTable[C]) set(bindings map[string][]string, parse func(string) (C, error)) {
	t.raw = bindings
	t.parsed = make(map[string][]C, len(bindings))
	for name, inputs := range bindings {
		for _, in := range inputs {
			combo, err := parse(in)
			if err != nil {
				debugLog("skipping binding %q for %s: %v", in, name, err)
				continue
			}
			t.parsed[name] = append(t.parsed[name], combo)
		}
	}
}

// triggered reports whether fired holds for one of the action's combinations
func (t *bindingTable[C]) triggered(name string, fired func(C) bool) bool {
	for _, combo := range t.parsed[name] {
		if fired(combo) {
			return true
		}
	}
	return false
}
