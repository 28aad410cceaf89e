package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"slideview/carousel"
)

// debugMode enables verbose logging, set by -debug or SLIDEVIEW_DEBUG=1
var debugMode bool

func debugLog(format string, args ...any) {
	if debugMode {
		log.Printf("DEBUG: "+format, args...)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] <image|directory|archive>...\n\nOptions:\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to a JSON or TOML config file (default ~/.slideview.json)")
	sortName := flag.String("sort", "", "sort order: natural, simple or entry (overrides config)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	debugMode = *debug || os.Getenv("SLIDEVIEW_DEBUG") == "1"
	if debugMode {
		carousel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var status ConfigLoadResult
	if *configPath != "" {
		status = loadConfigFromPath(*configPath)
	} else {
		status = loadConfig()
	}
	debugLog("Config %s: %s", status.Path, status.Status)

	if *sortName != "" {
		method, ok := ParseSortMethod(*sortName)
		if !ok {
			log.Fatalf("unknown sort order %q", *sortName)
		}
		status.Config.SortMethod = method
	}

	// Collect in entry order; the game applies the sort strategy so it can
	// switch strategies at runtime
	paths, err := collectImages(flag.Args(), SortEntryOrder)
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatal("no image files specified")
	}

	if err := LoadFonts(); err != nil {
		log.Fatalf("load fonts: %v", err)
	}

	g := NewGame(paths, status)
	defer g.Close()

	config := status.Config
	ebiten.SetWindowTitle("slideview")
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if config.Fullscreen {
		g.savedWinW, g.savedWinH = config.WindowWidth, config.WindowHeight
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
