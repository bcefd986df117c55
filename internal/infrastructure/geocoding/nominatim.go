// Package geocoding resolves addresses and coordinates through a Nominatim
// (OpenStreetMap) endpoint.
package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/oksasatya/geo-region-service/internal/domain/entity"
	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim is a Geocoder. The public service allows one request per second
// and requires an identifying User-Agent, so every call waits on limiter.
type Nominatim struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
	limiter   *rate.Limiter
}

func NewNominatim(baseURL, userAgent string, perSecond float64, timeout time.Duration) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Nominatim{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Forward returns the first match for address, or nil when there is none.
func (n *Nominatim) Forward(ctx context.Context, address string) (*entity.Coordinates, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")

	var results []searchResult
	if err := n.get(ctx, "/search", q, &results); err != nil {
		return nil, errs.Geocoding("geocoding.Forward", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return nil, errs.Geocoding("geocoding.Forward", fmt.Errorf("malformed coordinates %q,%q", results[0].Lat, results[0].Lon))
	}
	return &entity.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// Reverse returns the display address for c, or "" when nothing is there.
func (n *Nominatim) Reverse(ctx context.Context, c entity.Coordinates) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	q.Set("format", "jsonv2")

	var res reverseResult
	if err := n.get(ctx, "/reverse", q, &res); err != nil {
		return "", errs.Geocoding("geocoding.Reverse", err)
	}
	if res.Error != "" {
		return "", nil
	}
	return res.DisplayName, nil
}

func (n *Nominatim) get(ctx context.Context, path string, q url.Values, dest any) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if n.UserAgent != "" {
		req.Header.Set("User-Agent", n.UserAgent)
	}
	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
