package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.notion.com"

	// Pinned API revision; property payload shapes depend on it.
	notionVersion = "2022-06-28"

	requestTimeout = 15 * time.Second
)

// APIError is returned for any non-success response from the Notion API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error: %d %s", e.StatusCode, e.Body)
}

// Client talks to the Notion HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
}

func NewClient(token, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    DefaultBaseURL,
		token:      token,
		userAgent:  userAgent,
	}
}

// QueryDatabase returns the pages of a database matching the filter. A nil
// filter returns every page. Continuation cursors are not followed; the
// databases this service manages stay within a single result page.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter *Filter) ([]Page, error) {
	payload := map[string]interface{}{}
	if filter != nil {
		payload["filter"] = filter.payload()
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", payload)
	if err != nil {
		return nil, err
	}

	var response queryResponseJSON
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	if response.HasMore {
		slog.Warn("Query result truncated, continuation cursor not followed", "database", databaseID)
	}

	pages := make([]Page, 0, len(response.Results))
	for _, raw := range response.Results {
		pages = append(pages, normalizePage(raw))
	}

	return pages, nil
}

// CreatePage creates a page in the database with the given properties.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties Properties) (*Page, error) {
	payload := map[string]interface{}{
		"parent":     map[string]interface{}{"database_id": databaseID},
		"properties": properties,
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/pages", payload)
	if err != nil {
		return nil, err
	}

	var raw pageJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode created page: %w", err)
	}

	page := normalizePage(raw)
	return &page, nil
}

// UpdatePage patches the named properties of a page. Properties absent from
// the map keep their current values.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties Properties) (*Page, error) {
	payload := map[string]interface{}{
		"properties": properties,
	}

	body, err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, payload)
	if err != nil {
		return nil, err
	}

	var raw pageJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode updated page: %w", err)
	}

	page := normalizePage(raw)
	return &page, nil
}

// PagePlainText concatenates the plain text of the page's paragraph blocks
// in document order, joined by newlines. Any fetch or decode failure yields
// an empty string; body text is an optional input for the summarize
// pipeline, not a hard dependency.
func (c *Client) PagePlainText(ctx context.Context, pageID string) string {
	body, err := c.do(ctx, http.MethodGet, "/v1/blocks/"+pageID+"/children?page_size=100", nil)
	if err != nil {
		slog.Debug("Failed to fetch page blocks", "page", pageID, "error", err)
		return ""
	}

	var response blockChildrenJSON
	if err := json.Unmarshal(body, &response); err != nil {
		slog.Debug("Failed to decode page blocks", "page", pageID, "error", err)
		return ""
	}

	var lines []string
	for _, block := range response.Results {
		if block.Type != "paragraph" || block.Paragraph == nil {
			continue
		}
		var parts []string
		for _, rt := range block.Paragraph.RichText {
			parts = append(parts, rt.PlainText)
		}
		if line := strings.Join(parts, ""); line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}

func normalizePage(raw pageJSON) Page {
	page := Page{
		ID:             raw.ID,
		CreatedTime:    raw.CreatedTime,
		LastEditedTime: raw.LastEditedTime,
		Properties:     make(map[string]Property, len(raw.Properties)),
	}

	for name, prop := range raw.Properties {
		normalized := Property{Type: prop.Type, Number: prop.Number}

		switch prop.Type {
		case "title":
			normalized.Text = joinPlainText(prop.Title)
		case "rich_text":
			normalized.Text = joinPlainText(prop.RichText)
		case "select":
			if prop.Select != nil {
				normalized.Select = prop.Select.Name
			}
		case "multi_select":
			for _, option := range prop.MultiSelect {
				normalized.MultiSelect = append(normalized.MultiSelect, option.Name)
			}
		case "files":
			for _, file := range prop.Files {
				if file.External != nil && file.External.URL != "" {
					normalized.Files = append(normalized.Files, file.External.URL)
				} else if file.File != nil && file.File.URL != "" {
					normalized.Files = append(normalized.Files, file.File.URL)
				}
			}
		}

		page.Properties[name] = normalized
	}

	return page
}

func joinPlainText(parts []richTextJSON) string {
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(part.PlainText)
	}
	return sb.String()
}
