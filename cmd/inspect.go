package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/melodygen/chart"
	"github.com/jsphweid/melodygen/midi"
	"github.com/jsphweid/melodygen/model"
	"github.com/spf13/cobra"
)

var inspectPlot string

func init() {
	inspectCmd.Flags().StringVar(&inspectPlot, "plot", "", "write the pitch chart as PNG to this path")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Inspects a generated melody",
	Long:  `Decodes a MIDI file written by generate and prints its notes.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			path = s.outputPath
		}

		melody, err := midi.ReadMelody(path)
		if err != nil {
			return fmt.Errorf("could not inspect %v: %w", path, err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%v: %v notes\n", path, len(melody))
		printMelody(w, melody)

		if inspectPlot == "" {
			return nil
		}
		f, err := os.Create(inspectPlot)
		if err != nil {
			return err
		}
		defer f.Close()
		return chart.Render(chart.Project(melody, model.Pitches), f)
	},
}
