package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{}, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mid", "b.mid", "c.txt")

	names, err := FindMidiFiles([]string{dir}, ".mid")

	assert := assert.New(t)
	assert.Nil(err)
	assert.ElementsMatch([]string{"a.mid", "b.mid"}, names)
}

func TestExtensionIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "loud.MID", "quiet.mid", "mid", "x.midi")

	names, err := FindMidiFiles([]string{dir}, ".mid")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal([]string{"quiet.mid"}, names)
}

func TestSkipsMissingDirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mid")
	missing := filepath.Join(dir, "midi song")

	names, err := FindMidiFiles([]string{missing, dir}, ".mid")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal([]string{"a.mid"}, names)
}

func TestConcatenatesInDirOrderWithDuplicates(t *testing.T) {
	base := t.TempDir()
	songs := filepath.Join(base, "midi song")
	assert := assert.New(t)
	assert.Nil(os.Mkdir(songs, 0755))
	touch(t, songs, "tune.mid")
	touch(t, base, "tune.mid")

	names, err := FindMidiFiles([]string{songs, base}, ".mid")

	assert.Nil(err)
	assert.Equal([]string{"tune.mid", "tune.mid"}, names)
}

func TestIgnoresDirectoriesNamedLikeMidi(t *testing.T) {
	dir := t.TempDir()
	assert := assert.New(t)
	assert.Nil(os.Mkdir(filepath.Join(dir, "folder.mid"), 0755))

	names, err := FindMidiFiles([]string{dir}, ".mid")
	assert.Nil(err)
	assert.Empty(names)
}

func TestIncludesSymlinkedMidiFiles(t *testing.T) {
	library := t.TempDir()
	touch(t, library, "real.mid")
	assert := assert.New(t)
	assert.Nil(os.Mkdir(filepath.Join(library, "album"), 0755))

	dir := t.TempDir()
	touch(t, dir, "a.mid")
	assert.Nil(os.Symlink(filepath.Join(library, "real.mid"), filepath.Join(dir, "link.mid")))
	assert.Nil(os.Symlink(filepath.Join(library, "album"), filepath.Join(dir, "album.mid")))
	assert.Nil(os.Symlink(filepath.Join(library, "gone.mid"), filepath.Join(dir, "broken.mid")))

	names, err := FindMidiFiles([]string{dir}, ".mid")

	assert.Nil(err)
	assert.ElementsMatch([]string{"a.mid", "link.mid"}, names)
}

func TestEmptyResults(t *testing.T) {
	assert := assert.New(t)

	names, err := FindMidiFiles(nil, ".mid")
	assert.Nil(err)
	assert.Empty(names)

	names, err = FindMidiFiles([]string{filepath.Join(t.TempDir(), "gone")}, ".mid")
	assert.Nil(err)
	assert.Empty(names)

	_, err = RequireMidiFiles([]string{t.TempDir()}, ".mid")
	assert.ErrorIs(err, ErrNoMidiFiles)
}
