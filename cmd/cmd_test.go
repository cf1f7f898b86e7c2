package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/melodygen/file"
	"github.com/jsphweid/melodygen/midi"
	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	baseDir, outPath, length, seed, logLevel = "", "", 0, 0, "error"
	source, plotPath, play, portName, inspectPlot = "", "", false, "", ""
	t.Setenv("MELODY_OUTPUT_PATH", "")
	t.Setenv("MELODY_CATALOG_ENDPOINT", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func songsDir(t *testing.T, names ...string) string {
	t.Helper()
	base := t.TempDir()
	songs := filepath.Join(base, "midi song")
	if err := os.Mkdir(songs, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(songs, name), []byte{}, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func TestListCommand(t *testing.T) {
	base := songsDir(t, "a.mid", "b.txt")
	out, err := run(t, "list", "--base-dir", base)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Contains(out, "Found 1 MIDI files!")
	assert.Contains(out, "a.mid")
	assert.NotContains(out, "b.txt")
}

func TestListWithoutSongs(t *testing.T) {
	out, err := run(t, "list", "--base-dir", songsDir(t))

	assert := assert.New(t)
	assert.ErrorIs(err, file.ErrNoMidiFiles)
	assert.Contains(out, "No MIDI files found!")
}

func TestGenerateAndInspect(t *testing.T) {
	base := songsDir(t, "a.mid")
	plot := filepath.Join(base, "plot.png")
	out, err := run(t, "generate", "--base-dir", base, "-n", "6", "--seed", "5", "--plot", plot)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Contains(out, "Generating melody inspired by: a.mid")
	_, err = os.Stat(plot)
	assert.Nil(err)

	melody, err := midi.ReadMelody(filepath.Join(base, "generated_music.mid"))
	assert.Nil(err)
	assert.Len(melody, 6)

	inspected, err := run(t, "inspect", "--base-dir", base)
	assert.Nil(err)
	assert.Contains(inspected, "6 notes")
	// generate and inspect print the same note table
	table := strings.SplitN(inspected, "\n", 2)[1]
	assert.Contains(out, table)
}

func TestGenerateWithoutSongs(t *testing.T) {
	base := songsDir(t)
	out, err := run(t, "generate", "--base-dir", base)

	assert := assert.New(t)
	assert.ErrorIs(err, file.ErrNoMidiFiles)
	assert.Contains(out, "No MIDI files found!")
	_, statErr := os.Stat(filepath.Join(base, "generated_music.mid"))
	assert.True(os.IsNotExist(statErr))
}

func TestGenerateUnwritableOutput(t *testing.T) {
	base := songsDir(t, "a.mid")
	_, err := run(t, "generate", "--base-dir", base, "--out", filepath.Join(base, "nope", "x.mid"))
	assert.NotNil(t, err)
}
