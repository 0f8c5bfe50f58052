package oddsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const boardFixture = `[
  {
    "id": "abc123",
    "commence_time": "2026-01-05T23:30:00Z",
    "home_team": "New York Knicks",
    "away_team": "Boston Celtics",
    "bookmakers": [
      {
        "key": "fanduel",
        "markets": [
          {"key": "totals", "outcomes": [
            {"name": "Over", "price": -110, "point": 225.5},
            {"name": "Under", "price": -110, "point": 225.5}
          ]}
        ]
      },
      {
        "key": "draftkings",
        "markets": [
          {"key": "totals", "outcomes": [
            {"name": "Over", "price": -112, "point": 224.5},
            {"name": "Under", "price": -108, "point": 224.5}
          ]}
        ]
      }
    ]
  },
  {
    "id": "def456",
    "commence_time": "2026-01-06T00:00:00Z",
    "home_team": "Chicago Bulls",
    "away_team": "Detroit Pistons",
    "bookmakers": []
  }
]`

func TestUpcomingEvents(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"apiKey":     r.URL.Query().Get("apiKey"),
			"regions":    r.URL.Query().Get("regions"),
			"markets":    r.URL.Query().Get("markets"),
			"oddsFormat": r.URL.Query().Get("oddsFormat"),
		}
		if r.URL.Path != "/v4/sports/basketball_nba/odds/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(boardFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "secret", "", "")
	events, err := c.UpcomingEvents(context.Background())
	if err != nil {
		t.Fatalf("upcoming events: %v", err)
	}
	if gotQuery["apiKey"] != "secret" || gotQuery["markets"] != "totals" || gotQuery["regions"] != "us" || gotQuery["oddsFormat"] != "american" {
		t.Fatalf("query: %v", gotQuery)
	}
	if len(events) != 2 {
		t.Fatalf("events=%d want 2", len(events))
	}
	if events[0].AwayTeam != "Boston Celtics" || events[0].HomeTeam != "New York Knicks" {
		t.Fatalf("teams: %+v", events[0])
	}
}

func TestGameTotalPrefersBookmaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(boardFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "secret", "", "")
	events, err := c.UpcomingEvents(context.Background())
	if err != nil {
		t.Fatalf("upcoming events: %v", err)
	}

	total := GameTotal(events[0], "draftkings")
	if total == nil || *total != 224.5 {
		t.Fatalf("preferred bookmaker total: %v", total)
	}
	// Preferred book absent: first totals market wins.
	total = GameTotal(events[0], "betmgm")
	if total == nil || *total != 225.5 {
		t.Fatalf("fallback total: %v", total)
	}
	if GameTotal(events[1], "draftkings") != nil {
		t.Fatalf("event without bookmakers should have no total")
	}
}

func TestUpcomingEventsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "wrong", "", "")
	_, err := c.UpcomingEvents(context.Background())
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("status=%d want 401", apiErr.Status)
	}
}
