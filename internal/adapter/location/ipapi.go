package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lodestar-geo/place-search-service/internal/domain"
)

// IPAPIProvider geolocates the service's public IP via the ip-api.com JSON
// endpoint. City-level accuracy at best, but it needs no credentials and no
// hardware.
type IPAPIProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewIPAPIProvider creates an ip-api.com backed provider.
func NewIPAPIProvider(baseURL string, timeout time.Duration) *IPAPIProvider {
	return &IPAPIProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (p *IPAPIProvider) CurrentLocation(ctx context.Context) (domain.Coordinate, error) {
	reqURL := p.baseURL + "/json?fields=status,message,lat,lon"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("ip geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("ip-api error: status %d", resp.StatusCode)
	}

	var body struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinate{}, fmt.Errorf("decode response: %w", err)
	}
	if body.Status != "success" {
		return domain.Coordinate{}, fmt.Errorf("ip-api lookup failed: %s", body.Message)
	}

	return domain.Coordinate{Lat: body.Lat, Lon: body.Lon}, nil
}
