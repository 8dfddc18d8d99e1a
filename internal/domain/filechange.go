package domain

// FileChange holds the added/removed line counts for one changed file
// within a merge request.
//
// Path carries the API's old_path field. For files added or renamed by
// the merge request it may be empty or the pre-rename path; that is the
// defined behavior of the report, not something to correct downstream.
type FileChange struct {
	Path    string
	Added   int
	Removed int
}
