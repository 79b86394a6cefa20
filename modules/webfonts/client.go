package webfonts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/guarzo/webfonts/common"
	"github.com/guarzo/webfonts/common/model"
)

// DefaultBaseURL is the public webfonts listing endpoint.
const DefaultBaseURL = "https://www.googleapis.com/webfonts/v1/webfonts"

var (
	ErrRemoteUnavailable = errors.New("webfonts: remote catalog unavailable")
	ErrMalformedResponse = errors.New("webfonts: malformed catalog response")
	ErrInvalidSortOrder  = errors.New("webfonts: invalid sort order")
)

// CatalogClient is a lower-level interface for fetching the flat font list.
type CatalogClient interface {
	Fetch(ctx context.Context, sort SortOrder, apiKey string) ([]model.FontRecord, error)
	CatalogURL(sort SortOrder, apiKey string) (string, error)
	Stats() ClientStats
}

// ClientStats counts catalog requests.
type ClientStats struct {
	Total   int64
	Success int64
	Failed  int64
}

// catalogClient implements CatalogClient.
type catalogClient struct {
	BaseURL string
	Client  common.HttpClient

	totalCalls   int64
	successCount int64
	failCount    int64
}

// NewCatalogClient constructs a catalogClient. The baseURL is typically DefaultBaseURL.
func NewCatalogClient(baseURL string, client common.HttpClient) CatalogClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &catalogClient{
		BaseURL: baseURL,
		Client:  client,
	}
}

// Stats returns a snapshot of the request counters.
func (c *catalogClient) Stats() ClientStats {
	return ClientStats{
		Total:   atomic.LoadInt64(&c.totalCalls),
		Success: atomic.LoadInt64(&c.successCount),
		Failed:  atomic.LoadInt64(&c.failCount),
	}
}

// CatalogURL merges the base URL with the key and sort parameters.
// The key parameter is left out when apiKey is empty.
func (c *catalogClient) CatalogURL(sort SortOrder, apiKey string) (string, error) {
	sort, err := ParseSortOrder(string(sort))
	if err != nil {
		return "", err
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	q := base.Query()
	if apiKey != "" {
		q.Set("key", apiKey)
	}
	q.Set("sort", string(sort))
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// Fetch issues one GET against the catalog and decodes its items. There are no retries.
func (c *catalogClient) Fetch(ctx context.Context, sort SortOrder, apiKey string) ([]model.FontRecord, error) {
	requestURL, err := c.CatalogURL(sort, apiKey)
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&c.totalCalls, 1)
	data, err := c.doGet(ctx, requestURL)
	if err != nil {
		atomic.AddInt64(&c.failCount, 1)
		return nil, err
	}

	records, err := decodeCatalog(data)
	if err != nil {
		atomic.AddInt64(&c.failCount, 1)
		return nil, err
	}
	atomic.AddInt64(&c.successCount, 1)
	return records, nil
}

// doGet executes the actual HTTP request and returns the body of a 200 response.
func (c *catalogClient) doGet(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrRemoteUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, &common.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       data,
		})
	}
	return data, nil
}

// wireFont mirrors model.FontRecord with pointers so absent fields can be told
// apart from empty ones.
type wireFont struct {
	Family   *string            `json:"family"`
	Category *string            `json:"category"`
	Variants *[]string          `json:"variants"`
	Subsets  *[]string          `json:"subsets"`
	Files    *map[string]string `json:"files"`
}

type wireCatalog struct {
	Items *[]*wireFont `json:"items"`
}

func decodeCatalog(data []byte) ([]model.FontRecord, error) {
	var body wireCatalog
	if err := model.JSONUnmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if body.Items == nil {
		return nil, fmt.Errorf("%w: missing items", ErrMalformedResponse)
	}

	records := make([]model.FontRecord, 0, len(*body.Items))
	for i, item := range *body.Items {
		if item == nil || item.Family == nil || item.Category == nil ||
			item.Variants == nil || item.Subsets == nil || item.Files == nil {
			return nil, fmt.Errorf("%w: item %d is missing required fields", ErrMalformedResponse, i)
		}
		records = append(records, model.FontRecord{
			Family:   *item.Family,
			Category: *item.Category,
			Variants: *item.Variants,
			Subsets:  *item.Subsets,
			Files:    *item.Files,
		})
	}
	return records, nil
}
