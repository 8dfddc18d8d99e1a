package domain

import "time"

// MergeRequestSummary represents a merge request as returned by the
// code-review API listing. This is a domain model (part of business logic).
//
// State carries the API value verbatim ("opened", "merged", "closed", ...).
// The API may introduce new values at any time, so it is an opaque string
// rather than a closed enum.
type MergeRequestSummary struct {
	IID          int // project-scoped sequence number
	Author       string
	CreatedAt    time.Time
	State        string
	MergedAt     *time.Time // nil while the merge request is not merged
	SourceBranch string
}
