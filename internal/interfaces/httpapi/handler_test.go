package httpapi

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/evaluation"
	"github.com/SiddigHope/sanfpl/internal/infrastructure/repository/memory"
	"github.com/SiddigHope/sanfpl/internal/platform/cache"
	"github.com/SiddigHope/sanfpl/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	heuristics := evaluation.DefaultHeuristics()

	dataService := usecase.NewDataService(
		memory.NewSeededSource(),
		memory.NewSnapshotRepository(),
		cache.NewStore(time.Minute),
		logger,
	)
	playerService := usecase.NewPlayerService(dataService, heuristics, 4, logger)
	priceService := usecase.NewPriceService(dataService, heuristics, logger)
	squadService := usecase.NewSquadService(dataService, heuristics, logger)
	transferService := usecase.NewTransferService(dataService, heuristics, logger)
	dashboardService := usecase.NewDashboardService(dataService, playerService, priceService, logger)

	handler := NewHandler(dataService, playerService, priceService, squadService, transferService, dashboardService, logger)
	return NewRouter(handler, logger, true, []string{"*"}, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func dataObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response, got %v", body)
	}
	return data
}

func dataArray(t *testing.T, rec *httptest.ResponseRecorder) []any {
	t.Helper()

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected data array in response, got %v", body)
	}
	return data
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	data := dataObject(t, rec)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health status: %v", data["status"])
	}
}

func TestGetCurrentGameweek(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/gameweeks/current", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	data := dataObject(t, rec)
	if got := data["id"].(float64); got != 7 {
		t.Fatalf("unexpected gameweek id: got=%v want=7", got)
	}
	if data["isCurrent"] != true {
		t.Fatalf("expected isCurrent=true, got %v", data["isCurrent"])
	}
}

func TestListPlayers(t *testing.T) {
	router := newTestRouter(t)

	t.Run("position filter", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/players?position=GK", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
		}
		items := dataArray(t, rec)
		if len(items) == 0 {
			t.Fatalf("expected at least one goalkeeper")
		}
		for _, raw := range items {
			item := raw.(map[string]any)
			if item["position"] != "GK" {
				t.Fatalf("unexpected position in filtered list: %v", item["position"])
			}
		}
	})

	t.Run("sort and limit", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/players?sort=captain&limit=3", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
		}
		items := dataArray(t, rec)
		if len(items) != 3 {
			t.Fatalf("unexpected list size: got=%d want=3", len(items))
		}
		scores := make([]float64, 0, len(items))
		for _, raw := range items {
			scores = append(scores, raw.(map[string]any)["captainScore"].(float64))
		}
		for i := 1; i < len(scores); i++ {
			if scores[i] > scores[i-1] {
				t.Fatalf("captain scores not in descending order: %v", scores)
			}
		}
	})

	t.Run("unknown sort key", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/players?sort=unknown", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("non-integer team", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/players?team=abc", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestGetPlayer(t *testing.T) {
	router := newTestRouter(t)

	t.Run("known player", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/players/9", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
		}
		data := dataObject(t, rec)
		player := data["player"].(map[string]any)
		if player["webName"] != "Salah" {
			t.Fatalf("unexpected player: %v", player["webName"])
		}
		if data["valueScore"].(float64) <= 0 {
			t.Fatalf("expected positive value score, got %v", data["valueScore"])
		}
		history, ok := data["history"].([]any)
		if !ok || len(history) == 0 {
			t.Fatalf("expected non-empty history, got %v", data["history"])
		}
	})

	t.Run("unknown player", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/players/9999", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("non-integer id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/players/abc", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestListPriceChanges(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/price-changes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	items := dataArray(t, rec)
	if len(items) == 0 {
		t.Fatalf("expected at least one price movement")
	}
	for _, raw := range items {
		item := raw.(map[string]any)
		if item["status"] == "stable" {
			t.Fatalf("stable movement leaked into default listing: %v", item)
		}
	}
}

func TestGetSquadAnalysis(t *testing.T) {
	router := newTestRouter(t)

	t.Run("default formation", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/entries/1/squad", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
		}
		data := dataObject(t, rec)
		if data["formation"] != "3-4-3" {
			t.Fatalf("unexpected formation: %v", data["formation"])
		}
		if got := len(data["starting"].([]any)); got != 11 {
			t.Fatalf("unexpected starting XI size: got=%d want=11", got)
		}
		if got := len(data["bench"].([]any)); got != 4 {
			t.Fatalf("unexpected bench size: got=%d want=4", got)
		}
		if data["rating"].(float64) <= 0 {
			t.Fatalf("expected positive rating, got %v", data["rating"])
		}
	})

	t.Run("explicit formation", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/entries/1/squad?formation=4-4-2", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
		}
		data := dataObject(t, rec)
		if data["formation"] != "4-4-2" {
			t.Fatalf("unexpected formation: %v", data["formation"])
		}
	})

	t.Run("bad formation", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/entries/1/squad?formation=9-9-9", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown entry", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/v1/entries/9999/squad", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestGetTransferAdvice(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/entries/1/transfers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	data := dataObject(t, rec)
	transfers, ok := data["transfers"].([]any)
	if !ok || len(transfers) == 0 {
		t.Fatalf("expected at least one transfer suggestion, got %v", data["transfers"])
	}
	first := transfers[0].(map[string]any)
	if first["reason"] == "" {
		t.Fatalf("expected a reason on the first suggestion")
	}
	sell := first["sell"].(map[string]any)
	buy := first["buy"].(map[string]any)
	if sell["position"] != buy["position"] {
		t.Fatalf("sell and buy positions differ: %v vs %v", sell["position"], buy["position"])
	}
}

func TestPlanSquad(t *testing.T) {
	router := newTestRouter(t)

	t.Run("valid plan", func(t *testing.T) {
		body := `{"playerIds":[1,2,3,4,5,6,7,8,9,10,11,12,13,14,15],"formation":"4-4-2"}`
		rec := doRequest(t, router, http.MethodPost, "/v1/squads/plan", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
		}
		data := dataObject(t, rec)
		if data["formation"] != "4-4-2" {
			t.Fatalf("unexpected formation: %v", data["formation"])
		}
		if got := len(data["starting"].([]any)); got != 11 {
			t.Fatalf("unexpected starting XI size: got=%d want=11", got)
		}
	})

	t.Run("short pick list rejected", func(t *testing.T) {
		body := `{"playerIds":[1,2,3]}`
		rec := doRequest(t, router, http.MethodPost, "/v1/squads/plan", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed payload rejected", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/v1/squads/plan", `{"playerIds":`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestGetDashboard(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	data := dataObject(t, rec)
	if data["gameweekName"] != "Gameweek 7" {
		t.Fatalf("unexpected gameweek name: %v", data["gameweekName"])
	}
	if got := len(data["topCaptains"].([]any)); got != 5 {
		t.Fatalf("unexpected captain shortlist size: got=%d want=5", got)
	}
	if got := len(data["topValue"].([]any)); got != 5 {
		t.Fatalf("unexpected value list size: got=%d want=5", got)
	}
}

func TestRefreshGameData(t *testing.T) {
	router := newTestRouter(t)

	t.Run("without token", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/refresh-data", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("with token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-data", strings.NewReader(""))
		req.Header.Set("X-Internal-Job-Token", testJobToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
		}
		data := dataObject(t, rec)
		if data["status"] != "refreshed" {
			t.Fatalf("unexpected refresh status: %v", data["status"])
		}
	})
}

func TestOpenAPIServed(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/openapi.yaml", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "openapi: 3.0.3") {
		t.Fatalf("expected OpenAPI document in response")
	}
}
