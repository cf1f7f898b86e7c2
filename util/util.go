package util

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// GetKeys returns the keys of m in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Chunk splits items into consecutive groups of at most size elements.
func Chunk[A any](items []A, size int) [][]A {
	if size < 1 {
		panic("chunk size must be positive")
	}
	var res [][]A
	for len(items) > size {
		res = append(res, items[:size:size])
		items = items[size:]
	}
	if len(items) > 0 {
		res = append(res, items)
	}
	return res
}

// WriteFileAtomic replaces path with data. The bytes land in a sibling temp
// file first so readers never see a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("could not create temp file in %v: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not write %v: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not close %v: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not chmod %v: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not move output into place at %v: %w", path, err)
	}
	return nil
}
