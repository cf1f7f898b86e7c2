package chart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jsphweid/melodygen/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	Title  = "Melody Visualization"
	XLabel = "Note Index"
	YLabel = "Pitch"
)

var lineColor = color.RGBA{R: 0xff, G: 0x5f, B: 0x6d, A: 0xff}

const (
	width  = 9 * vg.Inch
	height = 3 * vg.Inch
)

type Point struct {
	X int
	Y int
}

type Tick struct {
	Value int
	Label string
}

// Chart is the plot of a melody before it is drawn.
type Chart struct {
	Points []Point
	YTicks []Tick
}

// Project places note i at (i, rank of its pitch). Y ticks follow the palette
// order so every pitch gets a row even when the melody never uses it.
func Project(m model.Melody, pitches []model.PitchClass) Chart {
	var c Chart
	for _, p := range pitches {
		c.YTicks = append(c.YTicks, Tick{Value: int(p.Rank), Label: p.Name})
	}
	for i, note := range m {
		c.Points = append(c.Points, Point{X: i, Y: int(note.Pitch.Rank)})
	}
	return c
}

func (c Chart) plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	xys := make(plotter.XYs, len(c.Points))
	for i, pt := range c.Points {
		xys[i].X = float64(pt.X)
		xys[i].Y = float64(pt.Y)
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("could not build plot lines: %w", err)
	}
	line.Color = lineColor
	points.Color = lineColor
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points, plotter.NewGrid())

	ticks := make([]plot.Tick, 0, len(c.YTicks))
	for _, t := range c.YTicks {
		ticks = append(ticks, plot.Tick{Value: float64(t.Value), Label: t.Label})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	if len(c.YTicks) > 0 {
		p.Y.Min = float64(c.YTicks[0].Value) - 0.5
		p.Y.Max = float64(c.YTicks[len(c.YTicks)-1].Value) + 0.5
	}
	// a lone note would otherwise collapse the x axis to zero width
	p.X.Min = -0.5
	p.X.Max = float64(len(c.Points)) - 0.5

	return p, nil
}

// Render draws c as a PNG.
func Render(c Chart, w io.Writer) error {
	p, err := c.plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("could not create png canvas: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("could not render chart: %w", err)
	}
	return nil
}
