// Package weather wraps a WeatherAPI-style current-conditions endpoint
// behind a TTL cache, so store dashboards can show local conditions
// without hammering the upstream API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/retailpulse/backend/internal/config"
	"github.com/rs/zerolog/log"
)

// ErrMissingAPIKey indicates the client was constructed without credentials.
var ErrMissingAPIKey = errors.New("weather: api key not configured")

// Conditions is the trimmed-down payload dashboards consume.
type Conditions struct {
	Location  string  `json:"location"`
	Region    string  `json:"region"`
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
	IsDay     bool    `json:"is_day"`
	Code      int     `json:"code"`
}

type apiResponse struct {
	Location struct {
		Name   string `json:"name"`
		Region string `json:"region"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		IsDay     int     `json:"is_day"`
		Condition struct {
			Text string `json:"text"`
			Code int    `json:"code"`
		} `json:"condition"`
	} `json:"current"`
}

// Client fetches current conditions with a per-query TTL cache. The clock
// is injected so expiry is testable.
type Client struct {
	apiKey  string
	baseURL string
	ttl     time.Duration
	http    *http.Client
	now     func() time.Time
	cache   *ttlCache
}

func NewClient(cfg config.WeatherConfig) *Client {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		ttl:     ttl,
		http:    &http.Client{Timeout: 5 * time.Second},
		now:     time.Now,
		cache:   newTTLCache(),
	}
}

// Current returns conditions for a query like "Istanbul" or "41.0,29.0".
// On upstream failure a stale cached entry is served if one exists.
func (c *Client) Current(ctx context.Context, query string) (*Conditions, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	key := cacheKey(query)
	if cond, ok := c.cache.get(key, c.now(), c.ttl); ok {
		return cond, nil
	}

	cond, err := c.fetch(ctx, query)
	if err != nil {
		if stale, ok := c.cache.getStale(key); ok {
			log.Warn().Err(err).Str("query", query).Msg("weather fetch failed, serving stale cache")
			return stale, nil
		}
		return nil, err
	}

	c.cache.set(key, cond, c.now())
	return cond, nil
}

func (c *Client) fetch(ctx context.Context, query string) (*Conditions, error) {
	u := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather fetch: unexpected status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("weather decode: %w", err)
	}

	return &Conditions{
		Location:  payload.Location.Name,
		Region:    payload.Location.Region,
		TempC:     payload.Current.TempC,
		Condition: payload.Current.Condition.Text,
		IsDay:     payload.Current.IsDay == 1,
		Code:      payload.Current.Condition.Code,
	}, nil
}
