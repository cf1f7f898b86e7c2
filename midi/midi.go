package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/melodygen/constants"
	"github.com/jsphweid/melodygen/model"
	"github.com/jsphweid/melodygen/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrUnknownKey = errors.New("key is not part of the pitch palette")

var ErrUnknownDuration = errors.New("note length is not part of the duration palette")

const channel = 0

const trackName = "Generated Melody"

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("parsing %v panicked: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}

	return res, nil
}

func durationTicks(ticks smf.MetricTicks, d model.DurationValue) uint32 {
	return uint32(float64(d) * float64(ticks.Ticks4th()))
}

// BuildSMF lays the melody out as a single track of back to back notes.
func BuildSMF(m model.Melody) (*smf.SMF, error) {
	ticks := smf.MetricTicks(constants.TicksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(trackName))
	track.Add(0, smf.MetaMeter(4, 4))
	track.Add(0, smf.MetaTempo(constants.DefaultTempoBPM))
	for i, note := range m {
		length := durationTicks(ticks, note.Duration)
		if length == 0 {
			return nil, fmt.Errorf("note %v: %w", i, ErrUnknownDuration)
		}
		track.Add(0, midi.NoteOn(channel, note.Pitch.Key, constants.DefaultVelocity))
		track.Add(length, midi.NoteOff(channel, note.Pitch.Key))
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = ticks
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}
	return s, nil
}

func EncodeMelody(w io.Writer, m model.Melody) error {
	s, err := BuildSMF(m)
	if err != nil {
		return err
	}
	if _, err = s.WriteTo(w); err != nil {
		return fmt.Errorf("could not encode melody: %w", err)
	}
	return nil
}

// WriteMelody encodes m and replaces whatever is at path.
func WriteMelody(path string, m model.Melody) error {
	var buf bytes.Buffer
	if err := EncodeMelody(&buf, m); err != nil {
		return err
	}
	return util.WriteFileAtomic(path, buf.Bytes())
}

func findPitch(pitches []model.PitchClass, key uint8) (model.PitchClass, bool) {
	for _, p := range pitches {
		if p.Key == key {
			return p, true
		}
	}
	return model.PitchClass{}, false
}

func findDuration(durations []model.DurationValue, ticks smf.MetricTicks, length uint32) (model.DurationValue, bool) {
	for _, d := range durations {
		if durationTicks(ticks, d) == length {
			return d, true
		}
	}
	return 0, false
}

// DecodeMelody reads notes back out of s, in start order. Every key and note
// length has to map onto the given palettes.
func DecodeMelody(s *smf.SMF, pitches []model.PitchClass, durations []model.DurationValue) (model.Melody, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", s.TimeFormat)
	}

	type started struct {
		pitch model.PitchClass
		at    uint64
		index int
	}

	var res model.Melody
	for _, track := range s.Tracks {
		pressed := make(map[uint8]started)
		var absTicks uint64
		for _, event := range track {
			absTicks += uint64(event.Delta)
			msg := midi.Message(event.Message)
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				pitch, found := findPitch(pitches, key)
				if !found {
					return nil, fmt.Errorf("key %v: %w", key, ErrUnknownKey)
				}
				pressed[key] = started{pitch: pitch, at: absTicks, index: len(res)}
				res = append(res, model.NoteEvent{Pitch: pitch})
			case msg.GetNoteEnd(&ch, &key):
				on, found := pressed[key]
				if !found {
					continue
				}
				delete(pressed, key)
				d, found := findDuration(durations, ticks, uint32(absTicks-on.at))
				if !found {
					return nil, fmt.Errorf("note %v lasting %v ticks: %w", on.index, absTicks-on.at, ErrUnknownDuration)
				}
				res[on.index].Duration = d
			}
		}
		if len(pressed) > 0 {
			return nil, fmt.Errorf("%v notes never released", len(pressed))
		}
	}
	return res, nil
}

func ReadMelody(path string) (model.Melody, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeMelody(s, model.Pitches, model.Durations)
}
