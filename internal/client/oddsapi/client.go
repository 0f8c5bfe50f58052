// Package oddsapi wraps The Odds API v4 for upcoming games and totals lines.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	host       string
	apiKey     string
	sport      string
	regions    string
	httpClient *http.Client
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("odds API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, apiKey, sport, regions string) *Client {
	if host == "" {
		host = "https://api.the-odds-api.com"
	}
	if sport == "" {
		sport = "basketball_nba"
	}
	if regions == "" {
		regions = "us"
	}
	return &Client{
		host:       strings.TrimRight(host, "/"),
		apiKey:     apiKey,
		sport:      sport,
		regions:    regions,
		httpClient: httpClient,
	}
}

type Event struct {
	ID           string      `json:"id"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point"`
}

// UpcomingEvents fetches the current odds board with totals markets.
func (c *Client) UpcomingEvents(ctx context.Context) ([]Event, error) {
	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("regions", c.regions)
	query.Set("markets", "totals")
	query.Set("oddsFormat", "american")
	path := fmt.Sprintf("/v4/sports/%s/odds/", url.PathEscape(c.sport))

	fullURL := c.host + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to decode odds board: %w", err)
	}
	return events, nil
}

// GameTotal extracts the full-game Over line from the preferred bookmaker,
// falling back to the first bookmaker that carries a totals market.
func GameTotal(ev Event, preferred string) *float64 {
	var fallback *float64
	for _, bm := range ev.Bookmakers {
		point := overPoint(bm)
		if point == nil {
			continue
		}
		if preferred != "" && strings.Contains(strings.ToLower(bm.Key), strings.ToLower(preferred)) {
			return point
		}
		if fallback == nil {
			fallback = point
		}
	}
	return fallback
}

func overPoint(bm Bookmaker) *float64 {
	for _, m := range bm.Markets {
		if m.Key != "totals" {
			continue
		}
		for _, o := range m.Outcomes {
			if o.Name == "Over" && o.Point != nil {
				return o.Point
			}
		}
	}
	return nil
}
