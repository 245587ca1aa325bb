// Package geo detects an approximate location from the public IP address.
// Detection only runs when the user asks for it; nothing falls back to it.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrDetectFailed is returned when the service answers but cannot place the
// caller, e.g. for a private address range.
var ErrDetectFailed = errors.New("geolocation failed")

// Location is a detected position with its IANA timezone.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// Label returns "City, Country", or whichever part is known.
func (l Location) Label() string {
	switch {
	case l.City != "" && l.Country != "":
		return l.City + ", " + l.Country
	case l.City != "":
		return l.City
	default:
		return l.Country
	}
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

const defaultURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone"

// Detector queries ip-api.com, a free service that needs no API key.
type Detector struct {
	httpClient *http.Client
	// URL is the service endpoint. Exported for testing with httptest.
	URL string
}

// NewDetector returns a Detector with a short timeout.
func NewDetector() *Detector {
	return &Detector{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		URL:        defaultURL,
	}
}

// Detect looks up the caller's location.
func (d *Detector) Detect(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building geolocation request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrDetectFailed, result.Message)
	}

	loc := &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}
	log.Debug().Float64("lat", loc.Latitude).Float64("lon", loc.Longitude).
		Str("timezone", loc.Timezone).Msg("detected location")
	return loc, nil
}
