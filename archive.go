package main

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// entryVisitor sees one archive entry. open is only valid during the call.
// Returning stop ends the walk early.
type entryVisitor func(name string, isDir bool, open func() (io.ReadCloser, error)) (stop bool, err error)

func isArchiveExt(path string) bool {
	_, ok := archiveWalkers[strings.ToLower(filepath.Ext(path))]
	return ok
}

var archiveWalkers = map[string]func(string, entryVisitor) error{
	".zip": walkZip,
	".rar": walkRar,
	".7z":  walk7z,
}

// walkArchive visits the entries of the archive at path in stored order
func walkArchive(path string, visit entryVisitor) error {
	ext := strings.ToLower(filepath.Ext(path))
	walk, ok := archiveWalkers[ext]
	if !ok {
		return fmt.Errorf("unsupported archive format: %s", ext)
	}
	return walk(path, visit)
}

func walkZip(path string, visit entryVisitor) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if stop, err := visit(f.Name, f.FileInfo().IsDir(), f.Open); stop || err != nil {
			return err
		}
	}
	return nil
}

func walk7z(path string, visit entryVisitor) error {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if stop, err := visit(f.Name, f.FileInfo().IsDir(), f.Open); stop || err != nil {
			return err
		}
	}
	return nil
}

// walkRar streams the archive; each entry's data is readable only until the
// next header
func walkRar(path string, visit entryVisitor) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return err
	}
	open := func() (io.ReadCloser, error) { return io.NopCloser(r), nil }
	for {
		header, err := r.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if stop, err := visit(header.Name, header.IsDir, open); stop || err != nil {
			return err
		}
	}
}

// listArchive returns the image entries of an archive in stored order
func listArchive(path string) ([]ImagePath, error) {
	var images []ImagePath
	err := walkArchive(path, func(name string, isDir bool, _ func() (io.ReadCloser, error)) (bool, error) {
		if !isDir && isSupportedExt(name) {
			images = append(images, archiveEntry(path, name))
		}
		return false, nil
	})
	return images, err
}

// readArchiveEntry returns the bytes of one named entry
func readArchiveEntry(path, entry string) ([]byte, error) {
	var data []byte
	found := false
	err := walkArchive(path, func(name string, isDir bool, open func() (io.ReadCloser, error)) (bool, error) {
		if isDir || name != entry {
			return false, nil
		}
		found = true
		rc, err := open()
		if err != nil {
			return true, err
		}
		defer rc.Close()
		data, err = io.ReadAll(rc)
		return true, err
	})
	switch {
	case err != nil:
		return nil, err
	case !found:
		return nil, fmt.Errorf("entry %s not found in %s", entry, path)
	}
	return data, nil
}

func archiveEntry(archivePath, name string) ImagePath {
	return ImagePath{
		Path:        archivePath + ":" + name,
		ArchivePath: archivePath,
		EntryPath:   name,
	}
}
