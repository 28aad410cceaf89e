package main

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func writeZip(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

func TestSupportedExtensions(t *testing.T) {
	tests := []struct {
		path    string
		image   bool
		archive bool
	}{
		{"a.png", true, false},
		{"a.JPG", true, false},
		{"a.jpeg", true, false},
		{"a.webp", true, false},
		{"a.bmp", true, false},
		{"a.gif", true, false},
		{"a.zip", false, true},
		{"a.RAR", false, true},
		{"a.7z", false, true},
		{"a.txt", false, false},
		{"noext", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isSupportedExt(tt.path); got != tt.image {
				t.Errorf("isSupportedExt(%q) = %v, want %v", tt.path, got, tt.image)
			}
			if got := isArchiveExt(tt.path); got != tt.archive {
				t.Errorf("isArchiveExt(%q) = %v, want %v", tt.path, got, tt.archive)
			}
		})
	}
}

func TestCollectImages(t *testing.T) {
	dir := t.TempDir()
	img := pngBytes(t, 2, 2)

	for _, name := range []string{"img10.png", "img2.png", "img1.jpg", "notes.txt", "sub/img3.gif"} {
		writeFile(t, filepath.Join(dir, name), img)
	}
	archive := filepath.Join(dir, "book.zip")
	writeZip(t, archive, map[string][]byte{
		"p2.png":    img,
		"p10.png":   img,
		"readme.md": []byte("not an image"),
	})
	writeFile(t, filepath.Join(dir, "broken.zip"), []byte("not a zip"))

	paths, err := collectImages([]string{dir}, SortNatural)
	if err != nil {
		t.Fatalf("collectImages failed: %v", err)
	}

	expected := []string{
		archive + ":p2.png",
		archive + ":p10.png",
		filepath.Join(dir, "img1.jpg"),
		filepath.Join(dir, "img2.png"),
		filepath.Join(dir, "img10.png"),
		filepath.Join(dir, "sub", "img3.gif"),
	}
	if got := pathsToStrings(paths); !reflect.DeepEqual(got, expected) {
		t.Errorf("collectImages order mismatch")
		t.Logf("Expected: %v", expected)
		t.Logf("Got:      %v", got)
	}

	for _, p := range paths {
		if p.ArchivePath == archive && p.EntryPath == "" {
			t.Errorf("archive entry without entry path: %+v", p)
		}
	}
}

func TestCollectImagesKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	b := filepath.Join(dir, "b.png")
	a := filepath.Join(dir, "a.png")
	writeFile(t, b, pngBytes(t, 1, 1))
	writeFile(t, a, pngBytes(t, 1, 1))

	paths, err := collectImages([]string{b, a}, SortNatural)
	if err != nil {
		t.Fatalf("collectImages failed: %v", err)
	}
	if got := pathsToStrings(paths); !reflect.DeepEqual(got, []string{b, a}) {
		t.Errorf("Expected argument order, got %v", got)
	}
}

func TestCollectImagesMissingPath(t *testing.T) {
	if _, err := collectImages([]string{filepath.Join(t.TempDir(), "missing")}, SortNatural); err == nil {
		t.Error("Expected an error for a missing path")
	}
}

func TestDecodeImagePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "wide.png")
	writeFile(t, file, pngBytes(t, 40, 10))
	archive := filepath.Join(dir, "set.zip")
	writeZip(t, archive, map[string][]byte{"tall.png": pngBytes(t, 10, 30)})

	tests := []struct {
		name  string
		path  ImagePath
		w, h  int
		isErr bool
	}{
		{"file", ImagePath{Path: file}, 40, 10, false},
		{"zip entry", archiveEntry(archive, "tall.png"), 10, 30, false},
		{"missing entry", archiveEntry(archive, "gone.png"), 0, 0, true},
		{"missing file", ImagePath{Path: filepath.Join(dir, "gone.png")}, 0, 0, true},
		{"unknown archive", ImagePath{Path: "x.tar:a.png", ArchivePath: "x.tar", EntryPath: "a.png"}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := decodeImagePath(tt.path)
			if (err != nil) != tt.isErr {
				t.Fatalf("decodeImagePath error = %v, wantErr %v", err, tt.isErr)
			}
			if tt.isErr {
				return
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestPanels(t *testing.T) {
	paths := []ImagePath{{Path: "a.png"}, archiveEntry("b.zip", "c.png")}
	panels := Panels(paths)
	if len(panels) != 2 || panels[0].Source != "a.png" || panels[1].Source != "b.zip:c.png" {
		t.Errorf("Panels = %+v", panels)
	}
	if p, ok := panels[1].Content.(ImagePath); !ok || p.EntryPath != "c.png" {
		t.Errorf("panel content = %#v", panels[1].Content)
	}
}

func TestImageManagerLookup(t *testing.T) {
	m := NewImageManager(4, 1)
	m.SetPaths([]ImagePath{{Path: "a.png"}})

	if _, ok := m.lookup("a.png"); !ok {
		t.Error("registered source not found")
	}
	if _, err := m.decode("unknown.png"); err == nil {
		t.Error("Expected an error for an unregistered source")
	}

	// Replacing the paths drops the old registrations
	m.SetPaths([]ImagePath{{Path: "b.png"}})
	if _, ok := m.lookup("a.png"); ok {
		t.Error("stale source still registered")
	}
}

func TestImageManagerLoadCancelled(t *testing.T) {
	m := NewImageManager(4, 1)
	m.SetPaths([]ImagePath{{Path: "a.png"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Load(ctx, "a.png"); err == nil {
		t.Error("Expected Load to give up on a cancelled context")
	}
	if s := m.Stats(); s.Decoded != 0 || s.Failed != 0 {
		t.Errorf("cancelled load should not decode: %+v", s)
	}
}

func TestListArchiveKeepsStoredOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordered.zip")
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"z.png", "pages/", "pages/a.png", "notes.txt", "b.jpg"} {
		if _, err := zw.Create(name); err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	writeFile(t, path, buf.Bytes())

	images, err := listArchive(path)
	if err != nil {
		t.Fatalf("listArchive failed: %v", err)
	}
	expected := []string{path + ":z.png", path + ":pages/a.png", path + ":b.jpg"}
	if got := pathsToStrings(images); !reflect.DeepEqual(got, expected) {
		t.Errorf("listArchive = %v, want %v", got, expected)
	}

	if _, err := readArchiveEntry(path, "pages/"); err == nil {
		t.Error("Expected a directory entry to be unreadable")
	}
	if _, err := listArchive(filepath.Join(t.TempDir(), "a.tar")); err == nil {
		t.Error("Expected an error for an unsupported archive")
	}
}
