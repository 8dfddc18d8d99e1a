package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gabesx/Code-churn/internal/api"
	"github.com/gabesx/Code-churn/internal/diff"
	"github.com/gabesx/Code-churn/internal/domain"
)

// DefaultBaseURL is the public GitLab v4 API endpoint.
const DefaultBaseURL = "https://gitlab.com/api/v4"

// nextPageHeader signals that another listing page exists; an empty or
// absent value means the current page is the last one.
const nextPageHeader = "X-Next-Page"

// Client implements api.Client for GitLab.
// Only handles GitLab API communication.
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	state      string
	httpClient HTTPClient
}

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient creates a new GitLab client.
// Uses dependency injection for HTTPClient, which also carries the
// credential in OAuth mode (config.Token empty).
func NewClient(config api.ClientConfig, httpClient HTTPClient) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	pageSize := config.PageSize
	if pageSize <= 0 {
		pageSize = api.DefaultPageSize
	}

	state := config.State
	if state == "" {
		state = "all"
	}

	return &Client{
		baseURL:    baseURL,
		token:      config.Token,
		pageSize:   pageSize,
		state:      state,
		httpClient: httpClient,
	}
}

// ListMergeRequests pages through the merge request listing for a
// project, starting at page 1, until the server stops signaling a next
// page. A failed page terminates the loop and yields the summaries
// accumulated so far (ListResult.Complete false); an empty project
// yields an empty, complete result.
func (c *Client) ListMergeRequests(ctx context.Context, projectID string) api.ListResult {
	var all []domain.MergeRequestSummary

	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/projects/%s/merge_requests?state=%s&scope=all&per_page=%d&page=%d",
			c.baseURL, url.PathEscape(projectID), url.QueryEscape(c.state), c.pageSize, page)

		var glMRs []gitlabMergeRequest
		header, err := c.getJSON(ctx, endpoint, &glMRs)
		if err != nil {
			return api.ListResult{
				MergeRequests: all,
				Complete:      false,
				PagesFetched:  page - 1,
				Err:           fmt.Errorf("failed to list merge requests page %d: %w", page, err),
			}
		}

		all = append(all, convertMergeRequests(glMRs)...)

		if header.Get(nextPageHeader) == "" {
			return api.ListResult{
				MergeRequests: all,
				Complete:      true,
				PagesFetched:  page,
			}
		}
	}
}

// GetMergeRequestChanges retrieves the changes sub-resource for one
// merge request and converts each changed file into a domain.FileChange.
func (c *Client) GetMergeRequestChanges(ctx context.Context, projectID string, iid int) ([]domain.FileChange, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/merge_requests/%d/changes",
		c.baseURL, url.PathEscape(projectID), iid)

	var response gitlabChangesResponse
	if _, err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to get changes for merge request %d: %w", iid, err)
	}

	return convertChanges(response.Changes), nil
}

// getJSON performs a GET request against the GitLab API and decodes the
// JSON response into result. The response header is returned so callers
// can inspect the pagination signal.
func (c *Client) getJSON(ctx context.Context, endpoint string, result interface{}) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// In OAuth mode the injected HTTP client adds the Authorization
	// header itself and token is empty.
	if c.token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.Header, nil
}

// convertMergeRequests converts GitLab merge requests to domain models.
func convertMergeRequests(glMRs []gitlabMergeRequest) []domain.MergeRequestSummary {
	summaries := make([]domain.MergeRequestSummary, len(glMRs))
	for i, mr := range glMRs {
		summaries[i] = domain.MergeRequestSummary{
			IID:          mr.IID,
			Author:       mr.Author.Username,
			CreatedAt:    mr.CreatedAt,
			State:        mr.State,
			MergedAt:     mr.MergedAt,
			SourceBranch: mr.SourceBranch,
		}
	}
	return summaries
}

// convertChanges converts GitLab change entries to domain file changes.
// Path is taken from old_path: for files added or renamed by the merge
// request it may be empty or the pre-rename path, which is the defined
// behavior of the report.
func convertChanges(glChanges []gitlabChange) []domain.FileChange {
	changes := make([]domain.FileChange, len(glChanges))
	for i, ch := range glChanges {
		stats := diff.Count(ch.Diff)
		changes[i] = domain.FileChange{
			Path:    ch.OldPath,
			Added:   stats.Added,
			Removed: stats.Removed,
		}
	}
	return changes
}

// GitLab API response types
type gitlabMergeRequest struct {
	IID          int          `json:"iid"`
	State        string       `json:"state"`
	SourceBranch string       `json:"source_branch"`
	CreatedAt    time.Time    `json:"created_at"`
	MergedAt     *time.Time   `json:"merged_at"`
	Author       gitlabAuthor `json:"author"`
}

type gitlabAuthor struct {
	Username string `json:"username"`
}

type gitlabChangesResponse struct {
	Changes []gitlabChange `json:"changes"`
}

type gitlabChange struct {
	OldPath     string `json:"old_path"`
	NewPath     string `json:"new_path"`
	Diff        string `json:"diff"`
	NewFile     bool   `json:"new_file"`
	RenamedFile bool   `json:"renamed_file"`
	DeletedFile bool   `json:"deleted_file"`
}
