package service

import (
	"context"
	"time"

	"github.com/gabesx/Code-churn/internal/api"
	"github.com/gabesx/Code-churn/internal/domain"
)

// Logger is a minimal logging interface.
// Follows Interface Segregation Principle - only the method we need.
type Logger interface {
	Printf(format string, v ...interface{})
}

// CollectStats summarizes one collection run.
type CollectStats struct {
	MergeRequests   int
	PagesFetched    int
	ListingComplete bool
	ChangesFailed   int
	Elapsed         time.Duration
}

// ChurnService handles business logic for churn collection.
// Follows Single Responsibility Principle - orchestrates listing and
// per-merge-request diff retrieval.
type ChurnService struct {
	client api.Client
	logger Logger
}

// NewChurnService creates a new churn service.
// Follows Dependency Injection pattern.
func NewChurnService(client api.Client, logger Logger) *ChurnService {
	return &ChurnService{
		client: client,
		logger: logger,
	}
}

// CollectProject builds one churn report per merge request of the project.
//
// Failures degrade instead of aborting: an incomplete listing yields
// reports for the pages already fetched, and a failed changes lookup
// yields a report with zero line counts and no files.
func (s *ChurnService) CollectProject(ctx context.Context, projectID string) ([]domain.MergeRequestReport, CollectStats) {
	start := time.Now()

	listing := s.client.ListMergeRequests(ctx, projectID)
	if !listing.Complete {
		s.logger.Printf("Churn: listing incomplete after %d page(s): %v", listing.PagesFetched, listing.Err)
	}

	stats := CollectStats{
		MergeRequests:   len(listing.MergeRequests),
		PagesFetched:    listing.PagesFetched,
		ListingComplete: listing.Complete,
	}

	reports := make([]domain.MergeRequestReport, 0, len(listing.MergeRequests))
	for _, mr := range listing.MergeRequests {
		files, err := s.client.GetMergeRequestChanges(ctx, projectID, mr.IID)
		if err != nil {
			s.logger.Printf("Churn: failed to fetch changes for !%d: %v", mr.IID, err)
			stats.ChangesFailed++
			files = nil
		}

		reports = append(reports, domain.NewMergeRequestReport(mr, files))
	}

	stats.Elapsed = time.Since(start)
	return reports, stats
}
