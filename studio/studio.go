package studio

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jsphweid/melodygen/chart"
	"github.com/jsphweid/melodygen/constants"
	"github.com/jsphweid/melodygen/db"
	"github.com/jsphweid/melodygen/file"
	"github.com/jsphweid/melodygen/generator"
	"github.com/jsphweid/melodygen/midi"
	"github.com/jsphweid/melodygen/model"
	"github.com/jsphweid/melodygen/playback"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

var ErrUnknownSource = errors.New("selected file was not found in the search directories")

type Options struct {
	SearchDirs []string
	OutputPath string
	Length     int
	// zero draws a fresh seed for every run
	Seed     uint64
	Embedder playback.Embedder
	Catalog  db.Catalog
	Logger   *zap.Logger
}

// Studio runs the generate pipeline. It holds configuration only; every call
// re-derives what it needs from disk.
type Studio struct {
	opts Options
	log  *zap.Logger
}

type Result struct {
	RunID      string
	Source     string
	Melody     model.Melody
	Chart      chart.Chart
	PlotPNG    []byte
	PlotErr    error
	Embed      playback.EmbedResult
	OutputPath string
}

func New(opts Options) *Studio {
	if opts.Length == 0 {
		opts.Length = constants.DefaultMelodyLength
	}
	if opts.Embedder == nil {
		opts.Embedder = playback.NewDataURIEmbedder()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Studio{opts: opts, log: log}
}

func (s *Studio) OutputPath() string {
	return s.opts.OutputPath
}

// Sources lists the songs the user can pick from. An empty list is not an
// error here; callers decide how to halt.
func (s *Studio) Sources() ([]model.SourceFile, error) {
	names, err := file.FindMidiFiles(s.opts.SearchDirs, constants.MidiExtension)
	if err != nil {
		return nil, err
	}
	files, err := db.Label(s.opts.Catalog, names)
	if err != nil {
		s.log.Warn("could not load song metadata", zap.Error(err))
	}
	return files, nil
}

func (s *Studio) resolveSource(selected string) (string, error) {
	names, err := file.RequireMidiFiles(s.opts.SearchDirs, constants.MidiExtension)
	if err != nil {
		return "", err
	}
	if selected == "" {
		return names[0], nil
	}
	if !slices.Contains(names, selected) {
		return "", fmt.Errorf("%v: %w", selected, ErrUnknownSource)
	}
	return selected, nil
}

// Generate makes a new melody, writes it over the output file, charts it and
// prepares it for playback. selected only labels the run.
func (s *Studio) Generate(ctx context.Context, selected string) (Result, error) {
	source, err := s.resolveSource(selected)
	if err != nil {
		return Result{}, err
	}
	if err = ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{RunID: uuid.New().String(), Source: source, OutputPath: s.opts.OutputPath}
	log := s.log.With(zap.String("run_id", res.RunID), zap.String("source", source))

	r := generator.NewRandomSource()
	if s.opts.Seed != 0 {
		r = generator.NewSource(s.opts.Seed)
	}
	res.Melody, err = generator.Generate(r, s.opts.Length, model.Pitches, model.Durations)
	if err != nil {
		return Result{}, err
	}

	if err = midi.WriteMelody(s.opts.OutputPath, res.Melody); err != nil {
		log.Error("could not write generated melody", zap.String("path", s.opts.OutputPath), zap.Error(err))
		return Result{}, fmt.Errorf("could not write generated melody: %w", err)
	}

	res.Chart = chart.Project(res.Melody, model.Pitches)
	var buf bytes.Buffer
	if res.PlotErr = chart.Render(res.Chart, &buf); res.PlotErr != nil {
		log.Warn("could not render melody chart", zap.Error(res.PlotErr))
	} else {
		res.PlotPNG = buf.Bytes()
	}

	res.Embed = s.opts.Embedder.Embed(s.opts.OutputPath)
	if !res.Embed.OK() {
		log.Warn("inline playback unavailable", zap.Stringer("status", res.Embed.Status), zap.Error(res.Embed.Err))
	}

	log.Info("generated melody", zap.Int("notes", len(res.Melody)), zap.String("path", s.opts.OutputPath))
	return res, nil
}
