package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gabesx/Code-churn/internal/domain"
)

// Renderer turns churn reports into one output format.
// This interface follows Interface Segregation Principle (SOLID-I).
type Renderer interface {
	Render(w io.Writer, reports []domain.MergeRequestReport) error
}

var csvHeader = []string{
	"iid", "source_branch", "author", "created_at", "state",
	"merged_at", "lines_added", "lines_removed", "changed_files",
}

// CSVRenderer implements Renderer for the flat CSV report.
type CSVRenderer struct{}

// NewCSVRenderer creates a new CSV renderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) Render(w io.Writer, reports []domain.MergeRequestReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, report := range reports {
		record := []string{
			strconv.Itoa(report.IID),
			report.SourceBranch,
			report.Author,
			formatTime(report.CreatedAt),
			report.State,
			formatNullableTime(report.MergedAt),
			strconv.Itoa(report.TotalAdded),
			strconv.Itoa(report.TotalRemoved),
			FormatFileChanges(report.Files),
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// TableRenderer implements Renderer for an aligned console table. The
// last column carries the changed-file count instead of the per-file
// summary string, which would be unreadable in a terminal.
type TableRenderer struct{}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer() *TableRenderer {
	return &TableRenderer{}
}

func (r *TableRenderer) Render(w io.Writer, reports []domain.MergeRequestReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "IID\tBRANCH\tAUTHOR\tCREATED\tSTATE\tMERGED\t+LINES\t-LINES\tFILES")

	for _, report := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			report.IID,
			report.SourceBranch,
			report.Author,
			formatTime(report.CreatedAt),
			report.State,
			formatNullableTime(report.MergedAt),
			report.TotalAdded,
			report.TotalRemoved,
			len(report.Files),
		)
	}

	return tw.Flush()
}

// FormatFileChanges flattens per-file statistics into one summary
// string, e.g. "main.go: +3/-1; util.go: +5/-0".
func FormatFileChanges(files []domain.FileChange) string {
	parts := make([]string, len(files))
	for i, f := range files {
		parts[i] = fmt.Sprintf("%s: +%d/-%d", f.Path, f.Added, f.Removed)
	}

	return strings.Join(parts, "; ")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatNullableTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
