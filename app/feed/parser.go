package feed

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/hyericho/backkeeper/app/config"
)

const (
	fetchTimeout = 20 * time.Second

	// Used when neither name column carries a value; the row is still an
	// order that must not be dropped.
	namePlaceholder = "unnamed"
)

// Fetcher pulls the order feed over HTTP and parses it into rows.
type Fetcher struct {
	httpClient *http.Client
	columns    config.FeedColumns
	userAgent  string
}

func NewFetcher(columns config.FeedColumns, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: fetchTimeout},
		columns:    columns,
		userAgent:  userAgent,
	}
}

// Fetch downloads the feed and parses it. Network errors and non-success
// statuses are hard failures; the order-ingest run cannot proceed without
// the feed.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	return f.Parse(data)
}

// Parse decodes data as UTF-8 (invalid sequences replaced, not fatal; the
// feed export occasionally mangles Korean product names) and parses it as
// header-mapped CSV.
func (f *Fetcher) Parse(data []byte) ([]Row, error) {
	decoded, _, err := transform.Bytes(xunicode.UTF8.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, Row{
			Name:     f.resolveName(header, record),
			Quantity: parseQuantity(f.resolve(header, record, f.columns.Quantity)),
			Price:    ParsePrice(f.resolve(header, record, f.columns.Price)),
		})
	}

	return rows, nil
}

func (f *Fetcher) resolveName(header map[string]int, record []string) string {
	if name := f.resolve(header, record, f.columns.Name); name != "" {
		return name
	}
	return namePlaceholder
}

// resolve returns the first non-empty cell among the aliased columns.
func (f *Fetcher) resolve(header map[string]int, record []string, aliases []string) string {
	for _, alias := range aliases {
		index, ok := header[strings.ToLower(alias)]
		if !ok || index >= len(record) {
			continue
		}
		if value := strings.TrimSpace(record[index]); value != "" {
			return value
		}
	}
	return ""
}

// parseQuantity defaults to 1: a missing or malformed quantity still means
// at least one item was ordered.
func parseQuantity(value string) int {
	if value == "" {
		return 1
	}
	quantity, err := strconv.Atoi(value)
	if err != nil || quantity < 0 {
		return 1
	}
	return quantity
}

// ParsePrice strips every non-digit rune before parsing, so currency-marked
// values like "₩12,000" come out as 12000. No digits at all parses to 0.
func ParsePrice(value string) int {
	var sb strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return 0
	}
	price, err := strconv.Atoi(sb.String())
	if err != nil {
		return 0
	}
	return price
}
