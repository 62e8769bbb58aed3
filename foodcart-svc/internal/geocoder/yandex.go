package geocoder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"foodcart/foodcart-svc/internal/domain"
)

const DefaultBaseURL = "https://geocode-maps.yandex.ru/1.x"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client resolves free-text addresses through the Yandex geocoder HTTP API.
// Every failure is reported as "not found".
type Client struct {
	config Config
	client HTTPClient
}

func NewClient(config Config, client HTTPClient) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Client{config: config, client: client}
}

type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Resolve takes the first, most relevant, match for address.
func (c *Client) Resolve(ctx context.Context, address string) (domain.Coordinates, bool) {
	logger := log.WithField("address", address)

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	params := url.Values{}
	params.Set("geocode", address)
	params.Set("apikey", c.config.APIKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		logger.WithError(err).Warn("geocoder: build request")
		return domain.Coordinates{}, false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.WithError(err).Warn("geocoder: request failed")
		return domain.Coordinates{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.WithField("status", resp.StatusCode).Warn("geocoder: unexpected status")
		return domain.Coordinates{}, false
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.WithError(err).Warn("geocoder: malformed response")
		return domain.Coordinates{}, false
	}

	found := payload.Response.GeoObjectCollection.FeatureMember
	if len(found) == 0 {
		logger.Debug("geocoder: address not found")
		return domain.Coordinates{}, false
	}

	coords, err := parsePos(found[0].GeoObject.Point.Pos)
	if err != nil {
		logger.WithError(err).Warn("geocoder: malformed point")
		return domain.Coordinates{}, false
	}
	return coords, true
}

// parsePos parses the provider's "longitude latitude" pair.
func parsePos(pos string) (domain.Coordinates, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return domain.Coordinates{}, &strconv.NumError{Func: "parsePos", Num: pos, Err: strconv.ErrSyntax}
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.Coordinates{}, err
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.Coordinates{}, err
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
