package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"slideview/carousel"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name           string
		configJSON     string
		expectedWidth  int
		expectedHeight int
		expectedCache  int
		expectedStatus string
	}{
		{
			name:           "Valid config",
			configJSON:     `{"window_width": 1000, "window_height": 800, "cache_size": 64}`,
			expectedWidth:  1000,
			expectedHeight: 800,
			expectedCache:  64,
			expectedStatus: "OK",
		},
		{
			name:           "Width too small",
			configJSON:     `{"window_width": 200, "window_height": 600}`,
			expectedWidth:  defaultWidth,
			expectedHeight: 600,
			expectedCache:  defaultCacheSize,
			expectedStatus: "OK",
		},
		{
			name:           "Height too small",
			configJSON:     `{"window_width": 800, "window_height": 100}`,
			expectedWidth:  800,
			expectedHeight: defaultHeight,
			expectedCache:  defaultCacheSize,
			expectedStatus: "OK",
		},
		{
			name:           "Cache size clamped",
			configJSON:     `{"cache_size": 100000}`,
			expectedWidth:  defaultWidth,
			expectedHeight: defaultHeight,
			expectedCache:  maxCacheSize,
			expectedStatus: "OK",
		},
		{
			name:           "Unknown sort method",
			configJSON:     `{"sort_method": 7}`,
			expectedWidth:  defaultWidth,
			expectedHeight: defaultHeight,
			expectedCache:  defaultCacheSize,
			expectedStatus: "Warning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, "slideview.json", tt.configJSON))
			config := result.Config

			if config.WindowWidth != tt.expectedWidth {
				t.Errorf("Expected width %d, got %d", tt.expectedWidth, config.WindowWidth)
			}
			if config.WindowHeight != tt.expectedHeight {
				t.Errorf("Expected height %d, got %d", tt.expectedHeight, config.WindowHeight)
			}
			if config.CacheSize != tt.expectedCache {
				t.Errorf("Expected cache size %d, got %d", tt.expectedCache, config.CacheSize)
			}
			if result.Status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s (warnings: %v)", tt.expectedStatus, result.Status, result.Warnings)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "missing.json"))
	if result.Status != "Default" {
		t.Errorf("Expected Default status, got %s", result.Status)
	}
	if result.HasError {
		t.Error("Missing config file should not be an error")
	}
	if !reflect.DeepEqual(result.Config, defaultConfig()) {
		t.Error("Missing config file should produce the defaults")
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"Broken JSON", "slideview.json", `{"window_width": `},
		{"Broken TOML", "slideview.toml", "window_width = \n[carousel"},
		{"Bad duration", "slideview.json", `{"carousel": {"transition_duration": "soon"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.filename, tt.content))
			if !result.HasError || result.Status != "Error" {
				t.Errorf("Expected Error status, got %s (HasError=%v)", result.Status, result.HasError)
			}
			if len(result.Warnings) == 0 {
				t.Error("Expected a warning describing the parse error")
			}
			if result.Config.WindowWidth != defaultWidth {
				t.Errorf("Expected default width, got %d", result.Config.WindowWidth)
			}
		})
	}
}

func TestLoadCarouselConfigJSON(t *testing.T) {
	path := writeConfig(t, "slideview.json", `{
		"carousel": {
			"initial_slide": 3,
			"infinite": false,
			"transition": "fade",
			"transition_duration": 750,
			"autoplay": true,
			"autoplay_speed": "2.5s",
			"easing": "linear",
			"slide_width": 480,
			"slide_height": "60%",
			"cell_padding": 8,
			"images_to_prefetch": 3,
			"controls": ["arrows"],
			"dots": false
		}
	}`)
	result := loadConfigFromPath(path)
	if result.Status != "OK" {
		t.Fatalf("Expected OK status, got %s: %v", result.Status, result.Warnings)
	}

	c := result.Config.Carousel
	opts := c.Options()
	if opts.InitialSlide != 3 || opts.Infinite {
		t.Errorf("InitialSlide/Infinite = %d/%v", opts.InitialSlide, opts.Infinite)
	}
	if opts.Transition != carousel.TransitionFade {
		t.Errorf("Transition = %q", opts.Transition)
	}
	if opts.TransitionDuration != 750*time.Millisecond {
		t.Errorf("TransitionDuration = %v", opts.TransitionDuration)
	}
	if opts.AutoplaySpeed != 2500*time.Millisecond || !opts.Autoplay {
		t.Errorf("Autoplay = %v every %v", opts.Autoplay, opts.AutoplaySpeed)
	}
	if opts.Easing != carousel.Linear {
		t.Errorf("Easing = %q", opts.Easing)
	}
	// Pixel sizes reach the carousel; relative sizes stay with the layout
	if opts.SlideWidth != 480 || opts.SlideHeight != 0 {
		t.Errorf("SlideWidth/Height = %v/%v, want 480/0", opts.SlideWidth, opts.SlideHeight)
	}
	if opts.CellPadding != 8 || opts.ImagesToPrefetch != 3 {
		t.Errorf("CellPadding/ImagesToPrefetch = %v/%d", opts.CellPadding, opts.ImagesToPrefetch)
	}
	if got := c.ControlNames(); !reflect.DeepEqual(got, []string{"arrows"}) {
		t.Errorf("ControlNames() = %v", got)
	}

	// Defaults survive for keys that were not given
	if !opts.Draggable || !opts.PauseOnHover || opts.MaxRenderedSlides != 5 {
		t.Errorf("defaults lost: draggable=%v pauseOnHover=%v maxRendered=%d",
			opts.Draggable, opts.PauseOnHover, opts.MaxRenderedSlides)
	}
}

func TestLoadCarouselConfigTOML(t *testing.T) {
	path := writeConfig(t, "slideview.toml", `
window_width = 1280
window_height = 720
sort_method = 1

[carousel]
transition_duration = "300ms"
hover_grace = "1s"
slide_alignment = "left"
max_rendered_slides = 3
viewport_width = "80%"
`)
	result := loadConfigFromPath(path)
	if result.Status != "OK" {
		t.Fatalf("Expected OK status, got %s: %v", result.Status, result.Warnings)
	}
	config := result.Config
	if config.WindowWidth != 1280 || config.WindowHeight != 720 {
		t.Errorf("window = %dx%d", config.WindowWidth, config.WindowHeight)
	}
	if config.SortMethod != SortSimple {
		t.Errorf("SortMethod = %d", config.SortMethod)
	}

	opts := config.Carousel.Options()
	if opts.TransitionDuration != 300*time.Millisecond || opts.HoverGrace != time.Second {
		t.Errorf("durations = %v, %v", opts.TransitionDuration, opts.HoverGrace)
	}
	if opts.SlideAlignment != carousel.AlignLeft || opts.MaxRenderedSlides != 3 {
		t.Errorf("alignment/maxRendered = %q/%d", opts.SlideAlignment, opts.MaxRenderedSlides)
	}
	if vw := mustSize(config.Carousel.ViewportWidth); vw != (Size{Value: 80, Unit: SizePercent}) {
		t.Errorf("viewport width = %v", vw)
	}
}

func TestCarouselConfigClamping(t *testing.T) {
	path := writeConfig(t, "slideview.json", `{
		"carousel": {
			"initial_slide": -4,
			"transition": "spin",
			"easing": "bounce",
			"drag_threshold": 3,
			"images_to_prefetch": 0,
			"slide_alignment": "middle",
			"slide_width": "wide",
			"controls": ["dots", "thumbnails"]
		}
	}`)
	result := loadConfigFromPath(path)
	if result.Status != "Warning" {
		t.Errorf("Expected Warning status, got %s", result.Status)
	}
	// One warning per corrected field
	if len(result.Warnings) != 8 {
		t.Errorf("Expected 8 warnings, got %d: %v", len(result.Warnings), result.Warnings)
	}

	c := result.Config.Carousel
	defaults := defaultCarouselConfig()
	if c.InitialSlide != 0 || c.Transition != defaults.Transition || c.Easing != defaults.Easing {
		t.Errorf("enum fields not reset: %+v", c)
	}
	if c.DragThreshold != defaults.DragThreshold || c.ImagesToPrefetch != 1 {
		t.Errorf("DragThreshold/ImagesToPrefetch = %v/%d", c.DragThreshold, c.ImagesToPrefetch)
	}
	if c.SlideAlignment != defaults.SlideAlignment || c.SlideWidth != defaults.SlideWidth {
		t.Errorf("SlideAlignment/SlideWidth = %q/%q", c.SlideAlignment, c.SlideWidth)
	}
	if !reflect.DeepEqual(c.Controls, []string{"dots"}) {
		t.Errorf("Controls = %v", c.Controls)
	}
}

func TestKeybindingValidation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantKey string
		want    []string
		status  string
	}{
		{
			name:    "Custom binding kept",
			json:    `{"keybindings": {"next": ["KeyJ"]}}`,
			wantKey: "next",
			want:    []string{"KeyJ"},
			status:  "OK",
		},
		{
			name:    "Missing actions filled",
			json:    `{"keybindings": {"next": ["KeyJ"]}}`,
			wantKey: "exit",
			want:    []string{"Escape", "KeyQ"},
			status:  "OK",
		},
		{
			name:    "Conflict falls back to defaults",
			json:    `{"keybindings": {"next": ["KeyQ"]}}`,
			wantKey: "next",
			want:    GetDefaultKeybindings()["next"],
			status:  "Warning",
		},
		{
			name:    "Unknown key falls back to defaults",
			json:    `{"keybindings": {"next": ["Hyper+KeyJ"]}}`,
			wantKey: "next",
			want:    GetDefaultKeybindings()["next"],
			status:  "Warning",
		},
		{
			name:    "Unknown action falls back to defaults",
			json:    `{"keybindings": {"zoom_in": ["KeyZ"]}}`,
			wantKey: "next",
			want:    GetDefaultKeybindings()["next"],
			status:  "Warning",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, "slideview.json", tt.json))
			if got := result.Config.Keybindings[tt.wantKey]; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keybindings[%s] = %v, want %v", tt.wantKey, got, tt.want)
			}
			if result.Status != tt.status {
				t.Errorf("Expected status %s, got %s", tt.status, result.Status)
			}
		})
	}
}

func TestMousebindingValidation(t *testing.T) {
	result := loadConfigFromPath(writeConfig(t, "slideview.json",
		`{"mousebindings": {"next": ["LeftClick"]}}`))
	if result.Status != "Warning" {
		t.Errorf("LeftClick is reserved; expected Warning, got %s", result.Status)
	}
	if !reflect.DeepEqual(result.Config.Mousebindings, GetDefaultMousebindings()) {
		t.Errorf("Expected default mouse bindings, got %v", result.Config.Mousebindings)
	}
}

func TestDefaultBindingsAreValid(t *testing.T) {
	if err := validateKeybindings(GetDefaultKeybindings()); err != nil {
		t.Errorf("default keybindings: %v", err)
	}
	if err := validateMousebindings(GetDefaultMousebindings()); err != nil {
		t.Errorf("default mouse bindings: %v", err)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"slideview.json", "slideview.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			config := defaultConfig()
			config.WindowWidth = 1111
			config.Carousel.Autoplay = true
			config.Carousel.AutoplaySpeed = carousel.Duration(1500 * time.Millisecond)
			config.Carousel.SlideHeight = "75%"

			if err := saveConfigToPath(config, path); err != nil {
				t.Fatalf("saveConfigToPath: %v", err)
			}
			result := loadConfigFromPath(path)
			if result.Status != "OK" {
				t.Fatalf("reload status %s: %v", result.Status, result.Warnings)
			}
			got := result.Config
			if got.WindowWidth != 1111 || !got.Carousel.Autoplay {
				t.Errorf("reloaded width=%d autoplay=%v", got.WindowWidth, got.Carousel.Autoplay)
			}
			if got.Carousel.AutoplaySpeed.Std() != 1500*time.Millisecond {
				t.Errorf("reloaded autoplay speed %v", got.Carousel.AutoplaySpeed)
			}
			if got.Carousel.SlideHeight != "75%" {
				t.Errorf("reloaded slide height %q", got.Carousel.SlideHeight)
			}
		})
	}
}

func TestSaveConfigRejectsInvalidWindow(t *testing.T) {
	config := defaultConfig()
	config.WindowWidth = 10
	if err := saveConfigToPath(config, filepath.Join(t.TempDir(), "c.json")); err == nil {
		t.Error("Expected an error for an invalid window size")
	}
}
