package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile renders entries in SubRip form and writes them to path,
// creating parent directories as needed. Each entry is written with its
// own index, so callers control the numbering.
func WriteFile(entries []Entry, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("%d\n", entry.Index))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", entry.Start, entry.End))
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
