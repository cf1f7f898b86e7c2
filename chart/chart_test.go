package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/jsphweid/melodygen/generator"
	"github.com/jsphweid/melodygen/model"
	"github.com/stretchr/testify/assert"
)

func TestSingleNoteProjection(t *testing.T) {
	melody := model.Melody{{Pitch: model.Pitches[4], Duration: 0.5}}
	c := Project(melody, model.Pitches)

	assert := assert.New(t)
	assert.Equal([]Point{{X: 0, Y: 5}}, c.Points)
	assert.Len(c.YTicks, 7)
}

func TestTicksFollowPaletteOrder(t *testing.T) {
	c := Project(nil, model.Pitches)

	assert := assert.New(t)
	assert.Empty(c.Points)
	for i, tick := range c.YTicks {
		assert.Equal(i+1, tick.Value)
		assert.Equal(model.Pitches[i].Name, tick.Label)
	}
}

func TestProjectionDoesNotMutateMelody(t *testing.T) {
	melody, err := generator.Generate(generator.NewSource(5), 24, model.Pitches, model.Durations)
	assert := assert.New(t)
	assert.Nil(err)
	before := append(model.Melody(nil), melody...)

	c := Project(melody, model.Pitches)

	assert.Equal(before, melody)
	assert.Len(c.Points, 24)
	for i, pt := range c.Points {
		assert.Equal(i, pt.X)
		assert.Equal(int(melody[i].Pitch.Rank), pt.Y)
	}
}

func TestRenderProducesPng(t *testing.T) {
	for _, n := range []int{1, 24} {
		melody, err := generator.Generate(generator.NewSource(9), n, model.Pitches, model.Durations)
		assert.Nil(t, err)

		var buf bytes.Buffer
		assert.Nil(t, Render(Project(melody, model.Pitches), &buf))

		img, err := png.Decode(&buf)
		assert.Nil(t, err)
		assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())
	}
}
