package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabesx/Code-churn/internal/api"
	"github.com/gabesx/Code-churn/internal/domain"
)

// mockClient is a test double for api.Client.
// Follows FIRST principles - Independent tests.
type mockClient struct {
	listFunc    func(ctx context.Context, projectID string) api.ListResult
	changesFunc func(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error)
}

func (m *mockClient) ListMergeRequests(ctx context.Context, projectID string) api.ListResult {
	if m.listFunc != nil {
		return m.listFunc(ctx, projectID)
	}
	return api.ListResult{Complete: true}
}

func (m *mockClient) GetMergeRequestChanges(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error) {
	if m.changesFunc != nil {
		return m.changesFunc(ctx, projectID, iid)
	}
	return nil, nil
}

type testLogger struct {
	messages []string
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.messages = append(l.messages, fmt.Sprintf(format, v...))
}

func summaries(iids ...int) []domain.MergeRequestSummary {
	out := make([]domain.MergeRequestSummary, len(iids))
	for i, iid := range iids {
		out[i] = domain.MergeRequestSummary{IID: iid, Author: "dev", State: "merged", SourceBranch: "branch"}
	}
	return out
}

func TestCollectProject(t *testing.T) {
	// Arrange
	var requestedIIDs []int
	client := &mockClient{
		listFunc: func(ctx context.Context, projectID string) api.ListResult {
			return api.ListResult{
				MergeRequests: summaries(2, 1),
				Complete:      true,
				PagesFetched:  1,
			}
		},
		changesFunc: func(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error) {
			requestedIIDs = append(requestedIIDs, iid)
			if iid == 2 {
				return []domain.FileChange{
					{Path: "main.go", Added: 3, Removed: 1},
					{Path: "util.go", Added: 5, Removed: 0},
				}, nil
			}
			return []domain.FileChange{{Path: "README.md", Added: 1, Removed: 1}}, nil
		},
	}

	svc := NewChurnService(client, &testLogger{})

	// Act
	reports, stats := svc.CollectProject(context.Background(), "42")

	// Assert
	require.Len(t, reports, 2)

	// Changes are fetched once per merge request, in listing order
	assert.Equal(t, []int{2, 1}, requestedIIDs)

	assert.Equal(t, 2, reports[0].IID)
	assert.Equal(t, 8, reports[0].TotalAdded)
	assert.Equal(t, 1, reports[0].TotalRemoved)
	assert.Len(t, reports[0].Files, 2)

	assert.Equal(t, 1, reports[1].IID)
	assert.Equal(t, 1, reports[1].TotalAdded)
	assert.Equal(t, 1, reports[1].TotalRemoved)

	assert.Equal(t, 2, stats.MergeRequests)
	assert.Equal(t, 1, stats.PagesFetched)
	assert.True(t, stats.ListingComplete)
	assert.Zero(t, stats.ChangesFailed)
}

func TestCollectProject_ChangesFailureDegrades(t *testing.T) {
	// Arrange
	logger := &testLogger{}
	client := &mockClient{
		listFunc: func(ctx context.Context, projectID string) api.ListResult {
			return api.ListResult{
				MergeRequests: summaries(3, 2, 1),
				Complete:      true,
				PagesFetched:  1,
			}
		},
		changesFunc: func(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error) {
			if iid == 2 {
				return nil, errors.New("API error")
			}
			return []domain.FileChange{{Path: "a.go", Added: 1}}, nil
		},
	}

	svc := NewChurnService(client, logger)

	// Act
	reports, stats := svc.CollectProject(context.Background(), "42")

	// Assert
	require.Len(t, reports, 3, "a failed changes lookup must not drop the merge request")

	failed := reports[1]
	assert.Equal(t, 2, failed.IID)
	assert.Empty(t, failed.Files)
	assert.Zero(t, failed.TotalAdded)
	assert.Zero(t, failed.TotalRemoved)

	// The run continued past the failure
	assert.Equal(t, 1, reports[2].TotalAdded)

	assert.Equal(t, 1, stats.ChangesFailed)
	require.NotEmpty(t, logger.messages)
	assert.Contains(t, logger.messages[0], "!2")
}

func TestCollectProject_PartialListing(t *testing.T) {
	// Arrange
	logger := &testLogger{}
	client := &mockClient{
		listFunc: func(ctx context.Context, projectID string) api.ListResult {
			return api.ListResult{
				MergeRequests: summaries(5),
				Complete:      false,
				PagesFetched:  1,
				Err:           errors.New("page 2: status 502"),
			}
		},
	}

	svc := NewChurnService(client, logger)

	// Act
	reports, stats := svc.CollectProject(context.Background(), "42")

	// Assert
	require.Len(t, reports, 1, "already fetched merge requests are still reported")
	assert.False(t, stats.ListingComplete)
	assert.Equal(t, 1, stats.PagesFetched)

	require.NotEmpty(t, logger.messages)
	assert.Contains(t, logger.messages[0], "incomplete")
}

func TestCollectProject_EmptyProject(t *testing.T) {
	// Arrange
	changesCalled := false
	client := &mockClient{
		listFunc: func(ctx context.Context, projectID string) api.ListResult {
			return api.ListResult{Complete: true, PagesFetched: 1}
		},
		changesFunc: func(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error) {
			changesCalled = true
			return nil, nil
		},
	}

	svc := NewChurnService(client, &testLogger{})

	// Act
	reports, stats := svc.CollectProject(context.Background(), "42")

	// Assert
	assert.Empty(t, reports)
	assert.False(t, changesCalled)
	assert.Zero(t, stats.MergeRequests)
}
