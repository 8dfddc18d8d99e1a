package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabesx/Code-churn/internal/domain"
)

// Logger is a minimal logging interface.
// Follows Interface Segregation Principle - only the method we need.
type Logger interface {
	Printf(format string, v ...interface{})
}

// FileWriter persists a rendered report to disk.
// Follows Single Responsibility Principle - only handles file output.
type FileWriter struct {
	path     string
	renderer Renderer
	logger   Logger
}

// NewFileWriter creates a new file writer.
// Follows Dependency Injection pattern.
func NewFileWriter(path string, renderer Renderer, logger Logger) *FileWriter {
	return &FileWriter{
		path:     path,
		renderer: renderer,
		logger:   logger,
	}
}

// Write renders the reports and replaces the target file atomically:
// the content goes to a temporary file first, then a rename swaps it
// in, so a failed run never leaves a truncated report behind.
func (fw *FileWriter) Write(reports []domain.MergeRequestReport) error {
	var buf bytes.Buffer
	if err := fw.renderer.Render(&buf, reports); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(fw.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempFile := fw.path + ".tmp"
	if err := os.WriteFile(tempFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempFile, fw.path); err != nil {
		os.Remove(tempFile) // Cleanup temp file
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	fw.logger.Printf("Report: wrote %d row(s) to %s", len(reports), fw.path)
	return nil
}
