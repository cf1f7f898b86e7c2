package cmd

import (
	"fmt"

	"github.com/jsphweid/melodygen/file"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists songs",
	Long:  `Lists the songs found in the search directories.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		st, _, err := newStudio(log)
		if err != nil {
			return err
		}
		files, err := st.Sources()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(w, "No MIDI files found! Please add some .mid files and try again.")
			return file.ErrNoMidiFiles
		}
		fmt.Fprintf(w, "Found %v MIDI files!\n", len(files))
		for _, f := range files {
			fmt.Fprintln(w, f.Label())
		}
		return nil
	},
}
