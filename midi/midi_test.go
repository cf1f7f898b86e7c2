package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/melodygen/generator"
	"github.com/jsphweid/melodygen/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func note(name string, d model.DurationValue) model.NoteEvent {
	for _, p := range model.Pitches {
		if p.Name == name {
			return model.NoteEvent{Pitch: p, Duration: d}
		}
	}
	panic("no pitch " + name)
}

func TestRoundTripThroughFile(t *testing.T) {
	melody, err := generator.Generate(generator.NewSource(11), 24, model.Pitches, model.Durations)
	assert := assert.New(t)
	assert.Nil(err)

	path := filepath.Join(t.TempDir(), "generated_music.mid")
	assert.Nil(WriteMelody(path, melody))

	decoded, err := ReadMelody(path)
	assert.Nil(err)
	assert.Equal(melody, decoded)
}

func TestRoundTripSingleNote(t *testing.T) {
	melody := model.Melody{note("B", 0.25)}

	var buf bytes.Buffer
	assert := assert.New(t)
	assert.Nil(EncodeMelody(&buf, melody))

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.Nil(err)
	decoded, err := DecodeMelody(s, model.Pitches, model.Durations)
	assert.Nil(err)
	assert.Equal(melody, decoded)
}

func TestRepeatedPitchesKeepOrder(t *testing.T) {
	melody := model.Melody{note("C", 1), note("C", 0.5), note("E", 0.25), note("C", 0.25)}

	var buf bytes.Buffer
	assert := assert.New(t)
	assert.Nil(EncodeMelody(&buf, melody))

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.Nil(err)
	decoded, err := DecodeMelody(s, model.Pitches, model.Durations)
	assert.Nil(err)
	assert.Equal(melody, decoded)
}

func TestNotesAreSequentialAtQuarterResolution(t *testing.T) {
	melody := model.Melody{note("C", 1), note("D", 0.5)}
	s, err := BuildSMF(melody)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(smf.MetricTicks(960), s.TimeFormat)
	assert.Len(s.Tracks, 1)

	var absTicks uint32
	var ons, offs []uint32
	for _, ev := range s.Tracks[0] {
		absTicks += ev.Delta
		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel):
			ons = append(ons, absTicks)
		case ev.Message.GetNoteOff(&ch, &key, &vel):
			offs = append(offs, absTicks)
		}
	}
	assert.Equal([]uint32{0, 960}, ons)
	assert.Equal([]uint32{960, 1440}, offs)
}

func TestOverwritesPreviousOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	assert := assert.New(t)
	assert.Nil(os.WriteFile(path, []byte("stale bytes that are not midi"), 0644))

	melody := model.Melody{note("G", 0.5)}
	assert.Nil(WriteMelody(path, melody))

	decoded, err := ReadMelody(path)
	assert.Nil(err)
	assert.Equal(melody, decoded)
}

func TestWriteToUnwritablePathFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.mid")
	err := WriteMelody(path, model.Melody{note("A", 1)})

	assert := assert.New(t)
	assert.NotNil(err)
	_, statErr := os.Stat(path)
	assert.True(os.IsNotExist(statErr))
}

func TestDecodeRejectsUnknownKey(t *testing.T) {
	sharp := model.PitchClass{Name: "C#", Rank: 8, Key: 61}
	s, err := BuildSMF(model.Melody{{Pitch: sharp, Duration: 1}})

	assert := assert.New(t)
	assert.Nil(err)
	_, err = DecodeMelody(s, model.Pitches, model.Durations)
	assert.ErrorIs(err, ErrUnknownKey)
}

func TestDecodeRejectsUnknownDuration(t *testing.T) {
	s, err := BuildSMF(model.Melody{note("C", 2)})

	assert := assert.New(t)
	assert.Nil(err)
	_, err = DecodeMelody(s, model.Pitches, model.Durations)
	assert.ErrorIs(err, ErrUnknownDuration)
}

func TestReadMidiFileErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.mid")
	assert := assert.New(t)
	assert.Nil(os.WriteFile(garbage, []byte("definitely not a midi file"), 0644))

	_, err := ReadMidiFile(garbage)
	assert.NotNil(err)

	_, err = ReadMidiFile(filepath.Join(dir, "absent.mid"))
	assert.NotNil(err)
}
