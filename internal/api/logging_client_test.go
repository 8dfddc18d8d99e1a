package api

import (
	"context"
	"errors"
	"testing"

	"github.com/gabesx/Code-churn/internal/domain"
)

// mockInnerClient is a minimal mock for testing.
type mockInnerClient struct {
	listResult    ListResult
	changes       []domain.FileChange
	changesErr    error
	changesCalled int
}

func (m *mockInnerClient) ListMergeRequests(ctx context.Context, projectID string) ListResult {
	return m.listResult
}

func (m *mockInnerClient) GetMergeRequestChanges(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error) {
	m.changesCalled++
	return m.changes, m.changesErr
}

// recordingLogger captures debug messages.
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(msg interface{}, keyvals ...interface{}) {
	if s, ok := msg.(string); ok {
		l.messages = append(l.messages, s)
	}
}

// TestLoggingClient_ListMergeRequests tests that results pass through
// unchanged and the call is logged.
func TestLoggingClient_ListMergeRequests(t *testing.T) {
	// Arrange
	inner := &mockInnerClient{
		listResult: ListResult{
			MergeRequests: []domain.MergeRequestSummary{{IID: 1}, {IID: 2}},
			Complete:      true,
			PagesFetched:  1,
		},
	}
	logger := &recordingLogger{}
	client := NewLoggingClient(inner, logger)

	// Act
	result := client.ListMergeRequests(context.Background(), "42")

	// Assert
	if len(result.MergeRequests) != 2 {
		t.Errorf("expected 2 merge requests passed through, got %d", len(result.MergeRequests))
	}

	if !result.Complete {
		t.Error("expected Complete to pass through")
	}

	if len(logger.messages) != 1 {
		t.Fatalf("expected 1 debug message, got %d", len(logger.messages))
	}
}

// TestLoggingClient_GetMergeRequestChanges tests error pass-through.
func TestLoggingClient_GetMergeRequestChanges(t *testing.T) {
	// Arrange
	inner := &mockInnerClient{changesErr: errors.New("API error")}
	logger := &recordingLogger{}
	client := NewLoggingClient(inner, logger)

	// Act
	changes, err := client.GetMergeRequestChanges(context.Background(), "42", 7)

	// Assert
	if err == nil {
		t.Fatal("expected error to pass through")
	}

	if changes != nil {
		t.Errorf("expected nil changes, got %v", changes)
	}

	if inner.changesCalled != 1 {
		t.Errorf("expected exactly 1 delegated call, got %d", inner.changesCalled)
	}

	if len(logger.messages) != 1 {
		t.Fatalf("expected 1 debug message, got %d", len(logger.messages))
	}

	if logger.messages[0] != "changes fetch failed" {
		t.Errorf("expected failure message, got %q", logger.messages[0])
	}
}
