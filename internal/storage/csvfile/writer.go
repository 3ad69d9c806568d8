package csvfile

import (
	"fmt"
	"os"
)

// Writer persists the feed artifact as a single whole-file write. The file
// is created, written in full, and closed in one operation, so an aborted
// run leaves no truncated artifact behind.
type Writer struct{}

// NewWriter creates a writer.
func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write feed file: %w", err)
	}
	return nil
}
