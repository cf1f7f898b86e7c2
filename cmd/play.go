package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jsphweid/melodygen/playback"
	"github.com/spf13/cobra"
)

var playPort string

func init() {
	playCmd.Flags().StringVar(&playPort, "port", "", "MIDI output port name (default first port)")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Plays a MIDI file",
	Long:  `Plays a MIDI file, by default the last generated melody, on a MIDI output port.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer playback.CloseDriver()

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

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		res := playback.NewPortPlayer(playPort).Play(ctx, path)
		reportPlay(cmd.OutOrStdout(), res)
		if res.Status != playback.Played {
			return fmt.Errorf("could not play %v: %w", path, res.Err)
		}
		return nil
	},
}
