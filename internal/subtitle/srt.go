package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFile reads an SRT file into entries. Timestamps are kept as the raw
// trimmed text from each side of the arrow; anything malformed surfaces
// later, when the timecode package first parses them.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	var current *Entry
	var textLines []string
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			if current != nil && len(textLines) > 0 {
				current.Text = strings.Join(textLines, "\n")
				entries = append(entries, *current)
			}
			// a blank line always closes the block, so a textless entry
			// is dropped instead of swallowing the next entry's lines
			current = nil
			textLines = nil
			continue
		}

		if current == nil {
			index, err := strconv.Atoi(strings.TrimSpace(line))
			if err == nil {
				current = &Entry{Index: index}
				continue
			}
		}

		if current != nil && current.Start == "" && current.End == "" {
			if before, after, ok := strings.Cut(line, "-->"); ok {
				current.Start = strings.TrimSpace(before)
				current.End = strings.TrimSpace(after)
				continue
			}
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}

	if current != nil && len(textLines) > 0 {
		current.Text = strings.Join(textLines, "\n")
		entries = append(entries, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}

	return entries, nil
}
