package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jsphweid/melodygen/file"
	"github.com/jsphweid/melodygen/model"
	"github.com/jsphweid/melodygen/playback"
	"github.com/spf13/cobra"
)

var (
	source   string
	plotPath string
	play     bool
	portName string
)

func init() {
	generateCmd.Flags().StringVarP(&source, "source", "s", "", "song the melody is labelled as inspired by (default first found)")
	generateCmd.Flags().StringVar(&plotPath, "plot", "", "also write the pitch chart as PNG to this path")
	generateCmd.Flags().BoolVar(&play, "play", false, "play the result on a MIDI output port")
	generateCmd.Flags().StringVar(&portName, "port", "", "MIDI output port name (default first port)")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a melody",
	Long:  `Generates a melody, writes it over the output file and prints its notes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return generate(ctx, cmd.OutOrStdout())
	},
}

func printMelody(w io.Writer, m model.Melody) {
	for i, n := range m {
		fmt.Fprintf(w, "%3d  %-2v %v\n", i, n.Pitch.Name, float64(n.Duration))
	}
}

func generate(ctx context.Context, w io.Writer) error {
	log := newLogger()
	defer log.Sync()

	st, _, err := newStudio(log)
	if err != nil {
		return err
	}

	res, err := st.Generate(ctx, source)
	if errors.Is(err, file.ErrNoMidiFiles) {
		fmt.Fprintln(w, "No MIDI files found! Please add some .mid files and try again.")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Generating melody inspired by: %v\n", res.Source)
	printMelody(w, res.Melody)
	fmt.Fprintf(w, "Wrote %v\n", res.OutputPath)

	if plotPath != "" {
		if res.PlotErr != nil {
			fmt.Fprintf(w, "Could not draw the melody: %v\n", res.PlotErr)
		} else if err = os.WriteFile(plotPath, res.PlotPNG, 0644); err != nil {
			return fmt.Errorf("could not write plot: %w", err)
		} else {
			fmt.Fprintf(w, "Wrote %v\n", plotPath)
		}
	}

	if play {
		defer playback.CloseDriver()
		reportPlay(w, playback.NewPortPlayer(portName).Play(ctx, res.OutputPath))
	}
	return nil
}

// reportPlay prints the outcome. Playback never fails the command; the file is
// already on disk either way.
func reportPlay(w io.Writer, res playback.PlayResult) {
	switch res.Status {
	case playback.Played:
		fmt.Fprintf(w, "Played on %v\n", res.Port)
	case playback.PlayUnsupported:
		fmt.Fprintf(w, "Playback not available (%v), the file is still at the output path\n", res.Err)
	default:
		fmt.Fprintf(w, "Playback failed: %v\n", res.Err)
	}
}
