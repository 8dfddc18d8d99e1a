package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabesx/Code-churn/internal/domain"
)

type testLogger struct {
	messages []string
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, v...))
}

type failingRenderer struct{}

func (r *failingRenderer) Render(w io.Writer, reports []domain.MergeRequestReport) error {
	return errors.New("render failure")
}

func TestFileWriter_Write(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "out", "churn.csv")
	writer := NewFileWriter(path, NewCSVRenderer(), &testLogger{})

	// Act
	err := writer.Write(sampleReports())

	// Assert
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "iid,source_branch")
	assert.Contains(t, string(content), "main.go: +3/-1")

	_, statErr := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "temp file must not survive a successful write")
}

func TestFileWriter_Write_ReplacesExisting(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "churn.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content"), 0644))

	writer := NewFileWriter(path, NewCSVRenderer(), &testLogger{})

	// Act
	err := writer.Write(sampleReports())

	// Assert
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale content")
	assert.Contains(t, string(content), "feature/login")
}

func TestFileWriter_Write_RendererError(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "churn.csv")
	writer := NewFileWriter(path, &failingRenderer{}, &testLogger{})

	// Act
	err := writer.Write(nil)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no output file may appear when rendering fails")
}
