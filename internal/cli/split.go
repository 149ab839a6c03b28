package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tairraos/srtseg/internal/allocate"
	"github.com/Tairraos/srtseg/internal/config"
	"github.com/Tairraos/srtseg/internal/segment"
	"github.com/Tairraos/srtseg/internal/subtitle"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split [subtitle_file]",
	Short: "Rewrite an SRT file with one word per entry",
	Long: `Rewrite an SRT subtitle file so each entry displays a single word.

Each sentence's words share its original on-screen time in proportion to
their length, clamped to the configured per-word bounds; the last word of
every sentence absorbs rounding leftovers so the sentence still ends
exactly on time. A final smoothing pass evens out abrupt duration jumps
between neighboring words.

Examples:
  srtseg split video.srt
  srtseg split video.srt -o words.srt --min-duration 150
  srtseg split video.srt --config srtseg.yaml --concurrency 4
  srtseg split video.srt --no-smooth`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().
		Int64("min-duration", 200, "Minimum display time per word in milliseconds")
	splitCmd.Flags().
		Int64("max-duration", 3000, "Maximum display time per word in milliseconds")
	splitCmd.Flags().
		Int("concurrency", 1, "Number of parallel allocation workers")
	splitCmd.Flags().
		String("config", "", "Path to a YAML config file")
	splitCmd.Flags().
		Bool("no-smooth", false, "Skip the duration smoothing pass")
}

func runSplit(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	minDuration, _ := cmd.Flags().GetInt64("min-duration")
	maxDuration, _ := cmd.Flags().GetInt64("max-duration")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	configPath, _ := cmd.Flags().GetString("config")
	noSmooth, _ := cmd.Flags().GetBool("no-smooth")
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	ext := strings.ToLower(filepath.Ext(subtitlePath))
	if ext != ".srt" {
		return fmt.Errorf("unsupported subtitle format %q: use .srt", ext)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	// explicit flags win over the config file
	if cmd.Flags().Changed("min-duration") {
		cfg.MinWordMillis = minDuration
	}
	if cmd.Flags().Changed("max-duration") {
		cfg.MaxWordMillis = maxDuration
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(subtitlePath)
	}

	logger.Infow("Starting word split",
		"input", subtitlePath,
		"output", outputPath,
		"min_duration_ms", cfg.MinWordMillis,
		"max_duration_ms", cfg.MaxWordMillis,
		"concurrency", cfg.Concurrency,
		"smooth", !noSmooth,
	)

	logger.Infow("Parsing subtitle file")
	entries, err := subtitle.ParseFile(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("subtitle file contains no entries")
	}

	logger.Infow("Parsed subtitle file", "entries", len(entries))

	seg := segment.NewSegmenter()
	tokenLists := make([][]segment.Word, len(entries))
	for i, entry := range entries {
		tokenLists[i] = seg.Words(entry.Text)
	}

	allocator := allocate.New(cfg.MinWordMillis, cfg.MaxWordMillis, logger)

	var words []allocate.WordInterval
	if cfg.Concurrency > 1 {
		words, err = allocator.AllocateAllConcurrent(ctx, entries, tokenLists, cfg.Concurrency)
	} else {
		words, err = allocator.AllocateAll(entries, tokenLists)
	}
	if err != nil {
		return fmt.Errorf("allocation failed: %w", err)
	}

	logger.Infow("Allocated word intervals", "words", len(words))

	if !noSmooth {
		words, err = allocate.Smooth(words)
		if err != nil {
			return fmt.Errorf("smoothing failed: %w", err)
		}
	}

	logger.Infow("Writing output file")
	if err := subtitle.WriteFile(wordEntries(words), outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles split successfully: %s\n", absOutput)
	fmt.Printf("  Sentences: %d\n", len(entries))
	fmt.Printf("  Words: %d\n", len(words))

	return nil
}

// defaultOutputPath derives <base>.words.srt next to the input file.
func defaultOutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + ".words.srt"
}

// wordEntries converts allocated word intervals into writable entries,
// one word per entry, keeping the batch numbering.
func wordEntries(words []allocate.WordInterval) []subtitle.Entry {
	entries := make([]subtitle.Entry, len(words))
	for i, w := range words {
		entries[i] = subtitle.Entry{
			Index: w.Index,
			Start: w.Start,
			End:   w.End,
			Text:  w.Word,
		}
	}
	return entries
}
