package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"slideview/carousel"
)

// Window size constants
const (
	defaultWidth  = 1024
	defaultHeight = 640
	minWidth      = 400
	minHeight     = 300
)

// Cache and loader limits
const (
	defaultCacheSize   = 32
	maxCacheSize       = 256
	defaultMaxParallel = 4
	maxParallelLimit   = 16
)

// Built-in control names
const (
	controlDots   = "dots"
	controlArrows = "arrows"
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	Path     string
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

func (r *ConfigLoadResult) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("Warning: %s", msg)
	r.Warnings = append(r.Warnings, msg)
	if r.Status == "OK" {
		r.Status = "Warning"
	}
}

// CarouselConfig holds the carousel options as written in the config file
type CarouselConfig struct {
	InitialSlide       int               `json:"initial_slide" toml:"initial_slide"`
	Infinite           bool              `json:"infinite" toml:"infinite"`
	Transition         string            `json:"transition" toml:"transition"`
	TransitionDuration carousel.Duration `json:"transition_duration" toml:"transition_duration"`
	Easing             string            `json:"easing" toml:"easing"`
	Autoplay           bool              `json:"autoplay" toml:"autoplay"`
	AutoplaySpeed      carousel.Duration `json:"autoplay_speed" toml:"autoplay_speed"`
	Draggable          bool              `json:"draggable" toml:"draggable"`
	DragThreshold      float64           `json:"drag_threshold" toml:"drag_threshold"`
	ClickToNavigate    bool              `json:"click_to_navigate" toml:"click_to_navigate"`
	PauseOnHover       bool              `json:"pause_on_hover" toml:"pause_on_hover"`
	HoverGrace         carousel.Duration `json:"hover_grace" toml:"hover_grace"`
	LazyLoad           bool              `json:"lazy_load" toml:"lazy_load"`
	ImagesToPrefetch   int               `json:"images_to_prefetch" toml:"images_to_prefetch"`
	MaxRenderedSlides  int               `json:"max_rendered_slides" toml:"max_rendered_slides"`
	SlideAlignment     string            `json:"slide_alignment" toml:"slide_alignment"`
	CellPadding        float64           `json:"cell_padding" toml:"cell_padding"`

	Width          SizeSpec `json:"width" toml:"width"`
	Height         SizeSpec `json:"height" toml:"height"`
	ViewportWidth  SizeSpec `json:"viewport_width" toml:"viewport_width"`
	ViewportHeight SizeSpec `json:"viewport_height" toml:"viewport_height"`
	SlideWidth     SizeSpec `json:"slide_width" toml:"slide_width"`
	SlideHeight    SizeSpec `json:"slide_height" toml:"slide_height"`

	Controls []string `json:"controls" toml:"controls"`
	Dots     bool     `json:"dots" toml:"dots"`
	Arrows   bool     `json:"arrows" toml:"arrows"`
}

type Config struct {
	WindowWidth      int                 `json:"window_width" toml:"window_width"`
	WindowHeight     int                 `json:"window_height" toml:"window_height"`
	Fullscreen       bool                `json:"fullscreen" toml:"fullscreen"`
	HelpFontSize     float64             `json:"help_font_size" toml:"help_font_size"`
	SortMethod       int                 `json:"sort_method" toml:"sort_method"`
	CacheSize        int                 `json:"cache_size" toml:"cache_size"`
	MaxParallelLoads int                 `json:"max_parallel_loads" toml:"max_parallel_loads"`
	ShowInfo         bool                `json:"show_info" toml:"show_info"`
	Keybindings      map[string][]string `json:"keybindings" toml:"keybindings"`
	Mousebindings    map[string][]string `json:"mousebindings" toml:"mousebindings"`
	MouseSettings    MouseSettings       `json:"mouse_settings" toml:"mouse_settings"`
	Carousel         CarouselConfig      `json:"carousel" toml:"carousel"`
}

func defaultCarouselConfig() CarouselConfig {
	opts := carousel.DefaultOptions()
	return CarouselConfig{
		InitialSlide:       opts.InitialSlide,
		Infinite:           opts.Infinite,
		Transition:         string(opts.Transition),
		TransitionDuration: carousel.Duration(opts.TransitionDuration),
		Easing:             string(opts.Easing),
		Autoplay:           opts.Autoplay,
		AutoplaySpeed:      carousel.Duration(opts.AutoplaySpeed),
		Draggable:          opts.Draggable,
		DragThreshold:      opts.DragThreshold,
		ClickToNavigate:    opts.ClickToNavigate,
		PauseOnHover:       opts.PauseOnHover,
		HoverGrace:         carousel.Duration(opts.HoverGrace),
		LazyLoad:           opts.LazyLoad,
		ImagesToPrefetch:   opts.ImagesToPrefetch,
		MaxRenderedSlides:  opts.MaxRenderedSlides,
		SlideAlignment:     string(opts.SlideAlignment),
		CellPadding:        opts.CellPadding,
		Width:              "100%",
		Height:             "100%",
		ViewportWidth:      "100%",
		ViewportHeight:     "100%",
		SlideWidth:         "auto",
		SlideHeight:        "auto",
		Dots:               true,
		Arrows:             true,
	}
}

func defaultConfig() Config {
	return Config{
		WindowWidth:      defaultWidth,
		WindowHeight:     defaultHeight,
		HelpFontSize:     24.0,
		SortMethod:       SortNatural,
		CacheSize:        defaultCacheSize,
		MaxParallelLoads: defaultMaxParallel,
		ShowInfo:         false,
		Keybindings:      GetDefaultKeybindings(),
		Mousebindings:    GetDefaultMousebindings(),
		MouseSettings:    GetDefaultMouseSettings(),
		Carousel:         defaultCarouselConfig(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "slideview.json"
	}
	return filepath.Join(homeDir, ".slideview.json")
}

// expandPath resolves a leading ~ to the home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

func isTOMLPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()
	result := ConfigLoadResult{
		Config:   config,
		Path:     configPath,
		Warnings: []string{},
		Status:   "OK",
	}

	path, err := expandPath(configPath)
	if err != nil {
		result.Status = "Default"
		return result
	}
	result.Path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: Cannot read config file %s, using defaults: %v", path, err)
		}
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if isTOMLPath(path) {
		err = toml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", path, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	validateConfig(&config, &result)
	result.Config = config
	return result
}

// validateConfig clamps out-of-range values, recording a warning for each
// correction that changes behaviour
func validateConfig(config *Config, result *ConfigLoadResult) {
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate help font size (minimum 12px for readability)
	if config.HelpFontSize <= 12.0 {
		config.HelpFontSize = 24.0
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		result.warn("unknown sort method %d, using natural", config.SortMethod)
		config.SortMethod = SortNatural
	}

	if config.CacheSize < 1 {
		config.CacheSize = defaultCacheSize
	} else if config.CacheSize > maxCacheSize {
		config.CacheSize = maxCacheSize
	}

	if config.MaxParallelLoads < 1 {
		config.MaxParallelLoads = defaultMaxParallel
	} else if config.MaxParallelLoads > maxParallelLimit {
		config.MaxParallelLoads = maxParallelLimit
	}

	validateBindings(config, result)
	validateMouseSettings(&config.MouseSettings)
	validateCarouselConfig(&config.Carousel, result)
}

func validateBindings(config *Config, result *ConfigLoadResult) {
	defaults := GetDefaultKeybindings()
	if config.Keybindings == nil {
		config.Keybindings = defaults
	} else {
		// Fill in missing keybindings with defaults
		for action, keys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = keys
			}
		}
		if err := validateKeybindings(config.Keybindings); err != nil {
			result.warn("invalid keybindings, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
		}
	}

	mouseDefaults := GetDefaultMousebindings()
	if config.Mousebindings == nil {
		config.Mousebindings = mouseDefaults
		return
	}
	for action, buttons := range mouseDefaults {
		if _, exists := config.Mousebindings[action]; !exists {
			config.Mousebindings[action] = buttons
		}
	}
	if err := validateMousebindings(config.Mousebindings); err != nil {
		result.warn("invalid mouse bindings, using defaults: %v", err)
		config.Mousebindings = GetDefaultMousebindings()
	}
}

// validateKeybindings checks key names and rejects keys bound to two actions
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	for action, keys := range keybindings {
		if !isKnownAction(action) {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			if _, err := parseKeyString(keyStr); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}
			if existing, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existing, action)
			}
			keyToAction[keyStr] = action
		}
	}
	return nil
}

func validateMousebindings(mousebindings map[string][]string) error {
	seen := make(map[string]string)
	for action, inputs := range mousebindings {
		if !isKnownAction(action) {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, in := range inputs {
			if _, err := parseMouseString(in); err != nil {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s': %w", in, action, err)
			}
			if existing, exists := seen[in]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", in, existing, action)
			}
			seen[in] = action
		}
	}
	return nil
}

func validateMouseSettings(s *MouseSettings) {
	if s.WheelSensitivity <= 0 {
		s.WheelSensitivity = 1.0
	}
	if s.DoubleClickTime < 100 || s.DoubleClickTime > 2000 {
		s.DoubleClickTime = 300
	}
}

func validateCarouselConfig(c *CarouselConfig, result *ConfigLoadResult) {
	opts := c.baseOptions()
	for _, w := range opts.Normalize() {
		result.warn("carousel: %s", w)
	}
	c.InitialSlide = opts.InitialSlide
	c.Transition = string(opts.Transition)
	c.TransitionDuration = carousel.Duration(opts.TransitionDuration)
	c.Easing = string(opts.Easing)
	c.AutoplaySpeed = carousel.Duration(opts.AutoplaySpeed)
	c.DragThreshold = opts.DragThreshold
	c.HoverGrace = carousel.Duration(opts.HoverGrace)
	c.ImagesToPrefetch = opts.ImagesToPrefetch
	c.MaxRenderedSlides = opts.MaxRenderedSlides
	c.SlideAlignment = string(opts.SlideAlignment)
	c.CellPadding = opts.CellPadding

	defaults := defaultCarouselConfig()
	sizes := []struct {
		name string
		spec *SizeSpec
		def  SizeSpec
	}{
		{"width", &c.Width, defaults.Width},
		{"height", &c.Height, defaults.Height},
		{"viewport_width", &c.ViewportWidth, defaults.ViewportWidth},
		{"viewport_height", &c.ViewportHeight, defaults.ViewportHeight},
		{"slide_width", &c.SlideWidth, defaults.SlideWidth},
		{"slide_height", &c.SlideHeight, defaults.SlideHeight},
	}
	for _, s := range sizes {
		if _, err := s.spec.Parse(); err != nil {
			result.warn("carousel: %s: %v, using %q", s.name, err, s.def)
			*s.spec = s.def
		}
	}

	var controls []string
	for _, name := range c.Controls {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != controlDots && name != controlArrows {
			result.warn("carousel: unknown control %q ignored", name)
			continue
		}
		controls = append(controls, name)
	}
	c.Controls = controls
}

// baseOptions maps the file values onto carousel options without resolving
// sizes that depend on the window
func (c CarouselConfig) baseOptions() carousel.Options {
	opts := carousel.DefaultOptions()
	opts.InitialSlide = c.InitialSlide
	opts.Infinite = c.Infinite
	opts.Transition = carousel.TransitionStyle(strings.ToLower(c.Transition))
	opts.TransitionDuration = c.TransitionDuration.Std()
	opts.Easing = carousel.Easing(strings.ToLower(c.Easing))
	opts.Autoplay = c.Autoplay
	opts.AutoplaySpeed = c.AutoplaySpeed.Std()
	opts.Draggable = c.Draggable
	opts.DragThreshold = c.DragThreshold
	opts.ClickToNavigate = c.ClickToNavigate
	opts.PauseOnHover = c.PauseOnHover
	opts.HoverGrace = c.HoverGrace.Std()
	opts.LazyLoad = c.LazyLoad
	opts.ImagesToPrefetch = c.ImagesToPrefetch
	opts.MaxRenderedSlides = c.MaxRenderedSlides
	opts.SlideAlignment = carousel.Alignment(strings.ToLower(c.SlideAlignment))
	opts.CellPadding = c.CellPadding
	return opts
}

// Options returns the carousel options. Pixel slide sizes are passed to the
// carousel; relative sizes are resolved by the track layout.
func (c CarouselConfig) Options() carousel.Options {
	opts := c.baseOptions()
	if s, err := c.SlideWidth.Parse(); err == nil && s.Absolute() {
		opts.SlideWidth = s.Value
	}
	if s, err := c.SlideHeight.Parse(); err == nil && s.Absolute() {
		opts.SlideHeight = s.Value
	}
	return opts
}

// ControlNames returns the controls to mount, in drawing order
func (c CarouselConfig) ControlNames() []string {
	names := append([]string(nil), c.Controls...)
	has := func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}
	if c.Dots && !has(controlDots) {
		names = append(names, controlDots)
	}
	if c.Arrows && !has(controlArrows) {
		names = append(names, controlArrows)
	}
	return names
}

// mustSize parses a validated size spec
func mustSize(spec SizeSpec) Size {
	s, err := spec.Parse()
	if err != nil {
		return Size{}
	}
	return s
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}

func saveConfigToPath(config Config, configPath string) error {
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		return fmt.Errorf("not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
	}

	var data []byte
	var err error
	if isTOMLPath(configPath) {
		data, err = toml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("save config to %s: %w", configPath, err)
	}
	return nil
}
