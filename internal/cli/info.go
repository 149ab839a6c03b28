package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Tairraos/srtseg/internal/segment"
	"github.com/Tairraos/srtseg/internal/subtitle"
	"github.com/Tairraos/srtseg/internal/timecode"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [subtitle_file]",
	Short: "Show timing statistics for an SRT file",
	Long: `Show entry, word, and timing statistics for an SRT subtitle file.

Examples:
  srtseg info video.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	ext := strings.ToLower(filepath.Ext(subtitlePath))
	if ext != ".srt" {
		return fmt.Errorf("unsupported subtitle format %q: use .srt", ext)
	}

	entries, err := subtitle.ParseFile(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("subtitle file contains no entries")
	}

	var totalMs int64
	for _, entry := range entries {
		d, err := timecode.DurationMillis(entry.Start, entry.End)
		if err != nil {
			return fmt.Errorf("entry %d has a bad timing line: %w", entry.Index, err)
		}
		totalMs += d
	}

	spannedMs, err := timecode.DurationMillis(entries[0].Start, entries[len(entries)-1].End)
	if err != nil {
		return fmt.Errorf("failed to measure file span: %w", err)
	}

	seg := segment.NewSegmenter()
	wordCount := 0
	for _, entry := range entries {
		wordCount += len(seg.Words(entry.Text))
	}

	avgMs := totalMs / int64(len(entries))

	fmt.Printf("File: %s\n", subtitlePath)
	fmt.Printf("  Entries: %d\n", len(entries))
	fmt.Printf("  Words: %d\n", wordCount)
	fmt.Printf("  First start: %s\n", entries[0].Start)
	fmt.Printf("  Last end: %s\n", entries[len(entries)-1].End)
	fmt.Printf("  Spanned time: %v\n", time.Duration(spannedMs)*time.Millisecond)
	fmt.Printf("  Total display time: %v\n", time.Duration(totalMs)*time.Millisecond)
	fmt.Printf("  Average entry: %v\n", time.Duration(avgMs)*time.Millisecond)

	return nil
}
