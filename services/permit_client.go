// services/permit_client.go
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"jobtract-backend/permits"

	"go.uber.org/zap"
)

const (
	defaultPermitAPIBaseURL = "https://vancouver.aws-ec2-ca-central-1.opendatasoft.com/api/explore/v2.1/catalog/datasets/issued-building-permits"

	// The upstream API caps a single request at 100 rows.
	permitBatchSize = 100

	// Overall bound when batching through result pages.
	maxPermitRecords = 1000

	permitCacheTTL = 5 * time.Minute
)

// PermitSearchParams are the filters the permit search form exposes.
type PermitSearchParams struct {
	Search         string
	GeographicArea string
	WorkType       string
	PropertyUse    string
	SpecificUse    string
	Year           string
	MaxRecords     int
}

// PermitSearchResult is the raw upstream batch handed to the normalizer.
type PermitSearchResult struct {
	Records    []permits.RawRecord
	TotalCount int
}

type cacheEntry struct {
	data      permitResponse
	expiresAt time.Time
}

type permitResponse struct {
	Results    []permits.RawRecord `json:"results"`
	TotalCount int                 `json:"total_count"`
}

// PermitClient queries the City of Vancouver issued-building-permits
// dataset with response caching. Safe for concurrent use.
type PermitClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func NewPermitClient(logger *zap.Logger) *PermitClient {
	baseURL := os.Getenv("PERMIT_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultPermitAPIBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PermitClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		cache:      make(map[string]cacheEntry),
	}
}

// Search runs a filtered permit search, batching upstream requests of 100
// rows until the max-records bound or the end of the result set.
func (c *PermitClient) Search(params PermitSearchParams) (*PermitSearchResult, error) {
	query := c.buildQuery(params)

	maxRecords := params.MaxRecords
	if maxRecords <= 0 || maxRecords > maxPermitRecords {
		maxRecords = maxPermitRecords
	}

	var all []permits.RawRecord
	totalCount := 0
	offset := 0

	for len(all) < maxRecords {
		rows := permitBatchSize
		if remaining := maxRecords - len(all); remaining < rows {
			rows = remaining
		}

		batch, err := c.fetch(query, rows, offset)
		if err != nil {
			if offset == 0 {
				return nil, err
			}
			// A mid-batch failure keeps what we already have.
			c.logger.Warn("permit batch failed, returning partial results",
				zap.Int("offset", offset), zap.Error(err))
			break
		}

		totalCount = batch.TotalCount
		all = append(all, batch.Results...)

		if len(batch.Results) < rows {
			break
		}
		offset += rows
	}

	if totalCount == 0 {
		totalCount = len(all)
	}
	return &PermitSearchResult{Records: all, TotalCount: totalCount}, nil
}

func (c *PermitClient) buildQuery(params PermitSearchParams) url.Values {
	query := url.Values{}

	var where []string
	if params.GeographicArea != "" {
		where = append(where, fmt.Sprintf("geolocalarea=%q", params.GeographicArea))
	}
	if params.WorkType != "" {
		where = append(where, fmt.Sprintf("typeofwork=%q", params.WorkType))
	}
	if params.PropertyUse != "" {
		where = append(where, fmt.Sprintf("propertyuse=%q", params.PropertyUse))
	}
	if params.SpecificUse != "" {
		where = append(where, fmt.Sprintf("specificusecategory=%q", params.SpecificUse))
	}
	if params.Year != "" {
		where = append(where, fmt.Sprintf("issueyear=%q", params.Year))
	} else {
		// Recent years only, to keep result sets manageable.
		where = append(where, `issueyear IN ("2021", "2022", "2023", "2024", "2025")`)
	}

	if params.Search != "" {
		query.Set("q", params.Search)
	}
	if len(where) > 0 {
		query.Set("where", strings.Join(where, " AND "))
	}
	query.Set("order_by", "issuedate DESC")
	return query
}

func (c *PermitClient) fetch(query url.Values, rows, offset int) (*permitResponse, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("rows", fmt.Sprintf("%d", rows))
	q.Set("start", fmt.Sprintf("%d", offset))

	requestURL := c.baseURL + "/records?" + q.Encode()

	if cached, ok := c.getCached(requestURL); ok {
		return cached, nil
	}

	resp, err := c.httpClient.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("permit API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("permit API returned status %d", resp.StatusCode)
	}

	var decoded permitResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("permit API response decode failed: %w", err)
	}

	c.setCached(requestURL, decoded)
	return &decoded, nil
}

func (c *PermitClient) getCached(key string) (*permitResponse, bool) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.cache, key)
		c.mu.Unlock()
		return nil, false
	}
	data := entry.data
	return &data, true
}

func (c *PermitClient) setCached(key string, data permitResponse) {
	c.mu.Lock()
	c.cache[key] = cacheEntry{data: data, expiresAt: time.Now().Add(permitCacheTTL)}
	c.mu.Unlock()
}
