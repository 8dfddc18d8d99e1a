package domain

// MergeRequestReport combines a merge request summary with its per-file
// change statistics. Derived once via NewMergeRequestReport, never
// mutated afterwards.
type MergeRequestReport struct {
	MergeRequestSummary

	Files        []FileChange
	TotalAdded   int
	TotalRemoved int
}

// NewMergeRequestReport builds the report for one merge request. The
// totals are computed here so that they always equal the sum of the
// per-file counts.
func NewMergeRequestReport(summary MergeRequestSummary, files []FileChange) MergeRequestReport {
	report := MergeRequestReport{
		MergeRequestSummary: summary,
		Files:               files,
	}

	for _, f := range files {
		report.TotalAdded += f.Added
		report.TotalRemoved += f.Removed
	}

	return report
}
