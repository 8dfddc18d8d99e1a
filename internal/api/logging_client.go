package api

import (
	"context"
	"time"

	"github.com/gabesx/Code-churn/internal/domain"
)

// DebugLogger is the leveled logging interface the wrapper needs.
type DebugLogger interface {
	Debug(msg interface{}, keyvals ...interface{})
}

// LoggingClient wraps a Client with per-call debug logging.
// Follows Decorator pattern to add logging without modifying the underlying client.
type LoggingClient struct {
	client Client
	logger DebugLogger
}

// NewLoggingClient creates a new logging client wrapper.
func NewLoggingClient(client Client, logger DebugLogger) *LoggingClient {
	return &LoggingClient{
		client: client,
		logger: logger,
	}
}

// ListMergeRequests delegates to the wrapped client and logs the outcome.
func (c *LoggingClient) ListMergeRequests(ctx context.Context, projectID string) ListResult {
	start := time.Now()
	result := c.client.ListMergeRequests(ctx, projectID)

	c.logger.Debug("listed merge requests",
		"project", projectID,
		"count", len(result.MergeRequests),
		"pages", result.PagesFetched,
		"complete", result.Complete,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return result
}

// GetMergeRequestChanges delegates to the wrapped client and logs the outcome.
func (c *LoggingClient) GetMergeRequestChanges(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error) {
	start := time.Now()
	changes, err := c.client.GetMergeRequestChanges(ctx, projectID, iid)

	if err != nil {
		c.logger.Debug("changes fetch failed",
			"project", projectID,
			"iid", iid,
			"elapsed", time.Since(start).Round(time.Millisecond),
			"error", err,
		)
		return changes, err
	}

	c.logger.Debug("fetched merge request changes",
		"project", projectID,
		"iid", iid,
		"files", len(changes),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return changes, nil
}
