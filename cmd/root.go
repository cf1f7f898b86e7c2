package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	baseDir  string
	outPath  string
	length   int
	seed     uint64
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "melodygen",
	Short: "Random melody studio",
	Long: `Generates random melodies from a fixed seven note palette, writes them as
MIDI, plots them, and plays or serves them for download.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&baseDir, "base-dir", "", "directory holding songs and the generated file (default $MELODY_BASE_DIR or cwd)")
	flags.StringVar(&outPath, "out", "", "where the generated MIDI file is written (default <base-dir>/generated_music.mid)")
	flags.IntVarP(&length, "length", "n", 0, "number of notes per melody (default 24)")
	flags.Uint64Var(&seed, "seed", 0, "fixed random seed, 0 picks a new one per run")
	flags.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
}

func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}
