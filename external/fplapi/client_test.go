package fplapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SiddigHope/sanfpl/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	})
	return client, server
}

func TestClientBootstrap(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bootstrap-static/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"elements": [{"id": 1, "web_name": "Saka", "team": 1, "element_type": 3, "now_cost": 87, "form": "6.2"}],
			"teams": [{"id": 1, "name": "Arsenal", "short_name": "ARS"}],
			"events": [{"id": 7, "name": "Gameweek 7", "is_current": true}]
		}`))
	}))

	bootstrap, err := client.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bootstrap.Players) != 1 || bootstrap.Players[0].WebName != "Saka" {
		t.Fatalf("unexpected players: %+v", bootstrap.Players)
	}
	if bootstrap.Players[0].Form != "6.2" {
		t.Fatalf("unexpected form: %q", bootstrap.Players[0].Form)
	}
	gw, ok := bootstrap.CurrentGameweek()
	if !ok || gw.ID != 7 {
		t.Fatalf("unexpected current gameweek: got=%d ok=%v", gw.ID, ok)
	}
}

func TestClientFixtures(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
			{"id": 10, "event": 7, "team_h": 1, "team_a": 2, "team_h_difficulty": 2, "team_a_difficulty": 4}
		]`))
	}))

	fixtures, err := client.Fixtures(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fixtures) != 1 || fixtures[0].Gameweek != 7 {
		t.Fatalf("unexpected fixtures: %+v", fixtures)
	}
	if got := fixtures[0].DifficultyFor(2); got != 4 {
		t.Fatalf("unexpected away difficulty: got=%d want=%d", got, 4)
	}
}

func TestClientEntryPicks(t *testing.T) {
	t.Parallel()

	t.Run("decodes the pick set", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/entry/42/event/7/picks/" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			_, _ = w.Write([]byte(`{
				"picks": [{"element": 1, "position": 1, "multiplier": 1, "is_captain": false, "is_vice_captain": false}],
				"entry_history": {"points": 61, "total_points": 402, "bank": 15, "value": 1003}
			}`))
		}))

		picks, found, err := client.EntryPicks(context.Background(), 42, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found {
			t.Fatalf("expected picks to be found")
		}
		if len(picks.Picks) != 1 || picks.Picks[0].PlayerID != 1 {
			t.Fatalf("unexpected picks: %+v", picks.Picks)
		}
		if picks.EntryHistory.Bank != 15 {
			t.Fatalf("unexpected bank: got=%d want=%d", picks.EntryHistory.Bank, 15)
		}
	})

	t.Run("missing picks report absence without error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))

		_, found, err := client.EntryPicks(context.Background(), 42, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found {
			t.Fatalf("expected picks to be absent")
		}
	})

	t.Run("rejects non-positive identifiers", func(t *testing.T) {
		client := NewClient(ClientConfig{})
		if _, _, err := client.EntryPicks(context.Background(), 0, 7); err == nil {
			t.Fatalf("expected an error for entry id 0")
		}
		if _, _, err := client.EntryPicks(context.Background(), 42, 0); err == nil {
			t.Fatalf("expected an error for gameweek 0")
		}
	})
}

func TestClientElementSummary(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/element-summary/99/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"history": [{"round": 6, "opponent_team": 3, "was_home": true, "total_points": 12, "minutes": 90}]
		}`))
	}))

	summary, err := client.ElementSummary(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.History) != 1 || summary.History[0].TotalPoints != 12 {
		t.Fatalf("unexpected history: %+v", summary.History)
	}
}

func TestClientRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	client.maxRetries = 1

	if _, err := client.Fixtures(context.Background()); err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("unexpected call count: got=%d want=%d", got, 2)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	client.maxRetries = 3

	if _, err := client.Fixtures(context.Background()); err == nil {
		t.Fatalf("expected an error for a 400 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("unexpected call count: got=%d want=%d", got, 1)
	}
}

func TestClientCircuitBreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	client.circuitEnabled = true
	client.breaker = resilience.NewCircuitBreaker(2, time.Minute, 1)

	for i := 0; i < 2; i++ {
		if _, err := client.Fixtures(context.Background()); err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
	}

	if err := client.breaker.Allow(); err == nil {
		t.Fatalf("expected the breaker to be open")
	}
}
