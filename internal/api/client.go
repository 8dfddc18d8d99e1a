package api

import (
	"context"

	"github.com/gabesx/Code-churn/internal/domain"
)

// DefaultPageSize is the number of items requested per listing page.
const DefaultPageSize = 100

// Client defines the interface for code-review API clients.
// Consumers depend on this interface, not on a concrete implementation.
type Client interface {
	// ListMergeRequests returns merge request summaries for a project
	// across every page the server exposes. See ListResult for the
	// partial-result semantics.
	ListMergeRequests(ctx context.Context, projectID string) ListResult

	// GetMergeRequestChanges returns the per-file change statistics for
	// one merge request.
	GetMergeRequestChanges(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error)
}

// ListResult is the outcome of one paginated listing run.
//
// MergeRequests always holds whatever was accumulated before the
// listing stopped, in the order the server returned it. When a page
// request fails, pagination stops and the items fetched so far are
// kept: Complete is false and Err records why. Partial results are the
// accepted degradation, not an error. Callers branch on Complete
// explicitly instead of discarding the payload.
type ListResult struct {
	MergeRequests []domain.MergeRequestSummary
	Complete      bool
	PagesFetched  int
	Err           error // reason the listing stopped early; nil when Complete
}

// ClientConfig holds common configuration for API clients.
type ClientConfig struct {
	BaseURL  string
	Token    string // PRIVATE-TOKEN value; empty when the HTTP client carries the credential
	PageSize int    // items per listing page; DefaultPageSize when zero
	State    string // lifecycle state filter for listings; "all" when empty
}
