package generator

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/jsphweid/melodygen/model"
)

var ErrInvalidLength = errors.New("melody length must be at least 1")

var ErrEmptyPalette = errors.New("pitch and duration palettes must not be empty")

// NewSource returns a PCG-backed generator fully determined by seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource seeds from the clock.
func NewRandomSource() *rand.Rand {
	return NewSource(uint64(time.Now().UnixNano()))
}

// Generate draws n notes. Pitch and duration are picked independently and
// uniformly for every position.
func Generate(r *rand.Rand, n int, pitches []model.PitchClass, durations []model.DurationValue) (model.Melody, error) {
	if n < 1 {
		return nil, ErrInvalidLength
	}
	if len(pitches) == 0 || len(durations) == 0 {
		return nil, ErrEmptyPalette
	}

	melody := make(model.Melody, 0, n)
	for i := 0; i < n; i++ {
		melody = append(melody, model.NoteEvent{
			Pitch:    pitches[r.IntN(len(pitches))],
			Duration: durations[r.IntN(len(durations))],
		})
	}
	return melody, nil
}
