package model

import "fmt"

type PitchClass struct {
	Name string
	// 1-based position in the palette, only used for plotting
	Rank uint8
	Key  uint8
}

// DurationValue is a note length in quarter notes.
type DurationValue float64

type NoteEvent struct {
	Pitch    PitchClass
	Duration DurationValue
}

func (n NoteEvent) String() string {
	return fmt.Sprintf("%v(%v)", n.Pitch.Name, float64(n.Duration))
}

type Melody = []NoteEvent

// Pitches are the natural notes of C major in octave 4.
var Pitches = []PitchClass{
	{Name: "C", Rank: 1, Key: 60},
	{Name: "D", Rank: 2, Key: 62},
	{Name: "E", Rank: 3, Key: 64},
	{Name: "F", Rank: 4, Key: 65},
	{Name: "G", Rank: 5, Key: 67},
	{Name: "A", Rank: 6, Key: 69},
	{Name: "B", Rank: 7, Key: 71},
}

var Durations = []DurationValue{0.25, 0.5, 1.0}

func PitchNames(pitches []PitchClass) []string {
	names := make([]string, 0, len(pitches))
	for _, p := range pitches {
		names = append(names, p.Name)
	}
	return names
}
