// Package geo resolves coordinates to display addresses through the
// Nominatim reverse-geocoding API.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const userAgent = "civic-reporting/1.0"

// Client queries a Nominatim-compatible endpoint. Any lookup failure falls
// back to a formatted coordinate string rather than an error, so address
// resolution never blocks a submission.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for baseURL (e.g. https://nominatim.openstreetmap.org).
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode resolves lat/lng to a display address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return c.fallback(lat, lng, err), nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fallback(lat, lng, err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fallback(lat, lng, fmt.Errorf("status %d", resp.StatusCode)), nil
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.fallback(lat, lng, err), nil
	}
	if body.DisplayName == "" {
		return c.fallback(lat, lng, nil), nil
	}
	return body.DisplayName, nil
}

func (c *Client) fallback(lat, lng float64, cause error) string {
	c.log.Debug().Err(cause).Float64("lat", lat).Float64("lng", lng).Msg("reverse geocode fell back to coordinates")
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
