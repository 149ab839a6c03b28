package cli

import (
	"github.com/Tairraos/srtseg/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "srtseg",
	Short: "Split SRT subtitles into one-word entries",
	Long: `Srtseg rewrites SRT subtitle files so that each displayed entry
is a single word instead of a full sentence.

A sentence's total on-screen time is preserved: it is spread across the
sentence's words in proportion to their length, within configurable
per-word bounds. A smoothing pass then softens abrupt duration jumps
between neighboring words.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
