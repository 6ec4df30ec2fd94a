package geocode

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const userAgent = "citizen-report-client/1.0"

// Client - обратный геокодер Nominatim
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// LocationName возвращает display_name для координат.
// При любой ошибке возвращается строка "lat, lon".
func (c *Client) LocationName(ctx context.Context, lat, lon float64) string {
	fallback := FormatCoordinates(lat, lon)
	log := c.logger.WithFields(logrus.Fields{"lat": lat, "lon": lon})

	name, err := c.reverse(ctx, lat, lon)
	if err != nil {
		log.WithError(err).Warn("Reverse geocoding failed, using coordinates")
		return fallback
	}
	if name == "" {
		return fallback
	}
	return name
}

func (c *Client) reverse(ctx context.Context, lat, lon float64) (string, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read geocoder response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("geocoder returned invalid json")
	}
	return gjson.GetBytes(body, "display_name").String(), nil
}

// FormatCoordinates форматирует координаты как "lat, lon"
func FormatCoordinates(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lon, 'f', -1, 64)
}
