package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/semaphore"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"slideview/carousel"
)

// Error placeholder size used when a source cannot be decoded
const (
	errorImageWidth  = 400
	errorImageHeight = 300
)

type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// Panels converts image paths into carousel panels keyed by path
func Panels(paths []ImagePath) []carousel.Panel {
	panels := make([]carousel.Panel, len(paths))
	for i, p := range paths {
		panels[i] = carousel.Panel{Source: p.Path, Content: p}
	}
	return panels
}

// LoaderStats provides statistics about image loading
type LoaderStats struct {
	CacheHits   int
	CacheMisses int
	Decoded     int
	Failed      int
}

// ImageManager decodes panel sources for the carousel and keeps the decoded
// images in an LRU cache. It implements carousel.Loader; Load is called from
// the tracker's goroutines and GetImage from the render loop.
type ImageManager struct {
	mu    sync.RWMutex
	paths map[string]ImagePath
	cache *lru.Cache[string, *ebiten.Image]
	sem   *semaphore.Weighted
	stats LoaderStats
}

var _ carousel.Loader = (*ImageManager)(nil)

func newImageCache(size int) *lru.Cache[string, *ebiten.Image] {
	evict := func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](size, evict)
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, evict)
	}
	return cache
}

// NewImageManager creates an ImageManager holding up to cacheSize decoded
// images and decoding at most maxParallel sources at a time
func NewImageManager(cacheSize, maxParallel int) *ImageManager {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &ImageManager{
		paths: make(map[string]ImagePath),
		cache: newImageCache(cacheSize),
		sem:   semaphore.NewWeighted(int64(maxParallel)),
	}
}

// SetPaths registers the sources the manager can load. Cached images are kept
// since sources are keyed by path.
func (m *ImageManager) SetPaths(paths []ImagePath) {
	m.mu.Lock()
	m.paths = make(map[string]ImagePath, len(paths))
	for _, p := range paths {
		m.paths[p.Path] = p
	}
	m.mu.Unlock()
	debugLog("SetPaths: %d sources, cache preserved (%d items)", len(paths), m.cache.Len())
}

func (m *ImageManager) lookup(source string) (ImagePath, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.paths[source]
	return p, ok
}

func (m *ImageManager) count(f func(s *LoaderStats)) {
	m.mu.Lock()
	f(&m.stats)
	m.mu.Unlock()
}

// Stats returns a copy of the loading counters
func (m *ImageManager) Stats() LoaderStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// CacheLen returns the number of decoded images held
func (m *ImageManager) CacheLen() int {
	return m.cache.Len()
}

// Load decodes source and reports its natural size. On failure an error
// placeholder is cached for the source so the renderer has something to show.
func (m *ImageManager) Load(ctx context.Context, source string) (carousel.Dimensions, error) {
	if img, ok := m.cache.Get(source); ok {
		m.count(func(s *LoaderStats) { s.CacheHits++ })
		b := img.Bounds()
		return carousel.Dimensions{Width: b.Dx(), Height: b.Dy()}, nil
	}

	if err := m.sem.Acquire(ctx, 1); err != nil {
		return carousel.Dimensions{}, fmt.Errorf("waiting to decode %s: %w", source, err)
	}
	defer m.sem.Release(1)

	img, err := m.decode(source)
	if err != nil {
		m.count(func(s *LoaderStats) { s.Failed++ })
		log.Printf("Warning: Failed to load %s: %v", source, err)
		m.cache.Add(source, ErrorImage(source, err))
		return carousel.Dimensions{}, err
	}
	m.count(func(s *LoaderStats) { s.Decoded++ })
	m.cache.Add(source, ebiten.NewImageFromImage(img))

	b := img.Bounds()
	debugLog("Loaded %s (%dx%d, cache: %d items)", source, b.Dx(), b.Dy(), m.cache.Len())
	return carousel.Dimensions{Width: b.Dx(), Height: b.Dy()}, nil
}

func (m *ImageManager) decode(source string) (image.Image, error) {
	p, ok := m.lookup(source)
	if !ok {
		return nil, fmt.Errorf("unknown source %s", source)
	}
	return decodeImagePath(p)
}

// GetImage returns the decoded image for source, decoding it synchronously if
// it was evicted from the cache
func (m *ImageManager) GetImage(source string) *ebiten.Image {
	if img, ok := m.cache.Get(source); ok {
		return img
	}
	m.count(func(s *LoaderStats) { s.CacheMisses++ })

	img, err := m.decode(source)
	if err != nil {
		log.Printf("Error: Failed to load image %s: %v", source, err)
		errImg := ErrorImage(source, err)
		m.cache.Add(source, errImg)
		return errImg
	}
	eimg := ebiten.NewImageFromImage(img)
	m.cache.Add(source, eimg)

	debugLog("decoded %s on demand, %d images cached", source, m.cache.Len())
	return eimg
}

// Close drops every cached image
func (m *ImageManager) Close() {
	m.cache.Purge()
}

// Decoding

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	}
	return false
}

// decodeImagePath decodes a regular file or an archive entry
func decodeImagePath(p ImagePath) (image.Image, error) {
	name := p.Path
	var data []byte
	var err error
	if p.ArchivePath != "" {
		name = p.EntryPath
		data, err = readArchiveEntry(p.ArchivePath, p.EntryPath)
	} else {
		data, err = os.ReadFile(p.Path)
	}
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// Collection

// imagesIn returns what one file contributes to the slide list: itself,
// the sorted image entries of an archive, or nothing. Unreadable archives
// are skipped with a warning.
func imagesIn(path string, sortMethod int) []ImagePath {
	if isSupportedExt(path) {
		return []ImagePath{{Path: path}}
	}
	if !isArchiveExt(path) {
		return nil
	}
	entries, err := listArchive(path)
	if err != nil {
		log.Printf("Warning: Skipping archive %s: %v", path, err)
		return nil
	}
	return GetSortStrategy(sortMethod).Sort(entries)
}

// collectImages expands files, directories and archives into image paths.
// Directory contents are sorted with sortMethod; argument order is kept.
func collectImages(args []string, sortMethod int) ([]ImagePath, error) {
	var list []ImagePath
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			list = append(list, imagesIn(arg, sortMethod)...)
			continue
		}

		var found []ImagePath
		walkErr := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				found = append(found, imagesIn(path, sortMethod)...)
			}
			return err
		})
		if walkErr != nil {
			return nil, fmt.Errorf("scanning %s: %w", arg, walkErr)
		}
		list = append(list, GetSortStrategy(sortMethod).Sort(found)...)
	}
	return list, nil
}
