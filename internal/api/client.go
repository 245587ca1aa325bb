// Package api fetches reference timings from the Al Adhan web service, used
// to cross-check locally computed schedules.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// methodIDs maps local method names to Al Adhan method ids.
var methodIDs = map[string]int{
	"Jafari":  0,
	"Karachi": 1,
	"ISNA":    2,
	"MWL":     3,
	"Makkah":  4,
	"Egypt":   5,
	"Tehran":  7,
}

// MethodID returns the Al Adhan id for a local method name.
func MethodID(name string) (int, bool) {
	id, ok := methodIDs[name]
	return id, ok
}

// Query describes one day of reference timings.
type Query struct {
	Date      prayer.Date
	Latitude  float64
	Longitude float64
	Method    string
	Asr       prayer.Juristic
	Timezone  string // optional IANA name; the service infers one otherwise
}

// School returns the Al Adhan school parameter: 0 Standard, 1 Hanafi.
func (q Query) School() int {
	if q.Asr == prayer.Hanafi {
		return 1
	}
	return 0
}

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// FetchTimings fetches reference timings for q.
func (c *Client) FetchTimings(ctx context.Context, q Query) (*Response, error) {
	id, ok := MethodID(q.Method)
	if !ok {
		return nil, fmt.Errorf("method %q has no Al Adhan equivalent", q.Method)
	}

	dateStr := fmt.Sprintf("%02d-%02d-%04d", q.Date.Day, int(q.Date.Month), q.Date.Year)
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, dateStr)

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', 6, 64))
	params.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', 6, 64))
	params.Set("method", strconv.Itoa(id))
	params.Set("school", strconv.Itoa(q.School()))
	if q.Timezone != "" {
		params.Set("timezonestring", q.Timezone)
	}

	return c.doRequest(ctx, endpoint, params)
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())
	log.Debug().Str("url", reqURL).Msg("fetching reference timings")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building API request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}

	if apiResp.Code != 200 {
		return nil, fmt.Errorf("API error: code=%d status=%s", apiResp.Code, apiResp.Status)
	}

	return &apiResp, nil
}
