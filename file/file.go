package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoMidiFiles = errors.New("no MIDI files found")

// FindMidiFiles lists the names of files ending in ext in each existing dir.
// Results keep dir order and are not deduplicated. Missing dirs are skipped.
func FindMidiFiles(dirs []string, ext string) ([]string, error) {
	res := []string{}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not read dir %v: %w", dir, err)
		}
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), ext) {
				continue
			}
			if isRegularFile(dir, entry) {
				res = append(res, entry.Name())
			}
		}
	}
	return res, nil
}

// isRegularFile follows symlinks. Broken links are skipped.
func isRegularFile(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// RequireMidiFiles is FindMidiFiles that treats an empty result as ErrNoMidiFiles.
func RequireMidiFiles(dirs []string, ext string) ([]string, error) {
	names, err := FindMidiFiles(dirs, ext)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoMidiFiles
	}
	return names, nil
}
