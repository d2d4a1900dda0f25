package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Endpoint string
	APIKey   string
	Units    string
	Lang     string
	Timeout  time.Duration
}

// Client queries the OpenWeatherMap current weather endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	units      string
	lang       string
	httpClient http.Client
}

func NewClient(config Config) *Client {
	return &Client{
		endpoint: config.Endpoint,
		apiKey:   config.APIKey,
		units:    config.Units,
		lang:     config.Lang,
		httpClient: http.Client{
			Timeout: config.Timeout,
		},
	}
}

// FetchWeather makes a single request for city and returns the decoded JSON
// body as is. Numbers are kept as json.Number.
func (c *Client) FetchWeather(ctx context.Context, city string) (any, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("city", city).Msg("requesting weather")

	reqURL, err := c.createWeatherURL(city)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &APIError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Err: fmt.Errorf("error making get request: %w", redactURL(err))}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Reason:     statusReason(resp),
		}
	}

	var payload any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err = dec.Decode(&payload); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("invalid json body: %v", err)}
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Interface("body", payload).
		Msg("weather api answered")

	return payload, nil
}

func (c *Client) createWeatherURL(city string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to parse endpoint: %w", err)
	}

	query := u.Query()
	query.Set("q", city)
	query.Set("appid", c.apiKey)
	query.Set("units", c.units)
	query.Set("lang", c.lang)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// statusReason returns the reason phrase sent by the server, which may be
// one net/http does not know.
func statusReason(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		return http.StatusText(resp.StatusCode)
	}
	return reason
}

// redactURL drops the query, and with it the api key, from transport errors.
func redactURL(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		urlErr.URL = u.String()
	} else {
		urlErr.URL = ""
	}
	return err
}
