package fplapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SiddigHope/sanfpl/internal/domain/fpl"
	"github.com/SiddigHope/sanfpl/internal/platform/logging"
	"github.com/SiddigHope/sanfpl/internal/platform/resilience"
	"github.com/SiddigHope/sanfpl/internal/usecase"
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

const defaultBaseURL = "https://fantasy.premierleague.com/api"

var errFPLTransient = crerr.New("fpl transient failure")

// ErrNoEntryPicks marks a 404 on the picks endpoint: the entry exists
// but has no picks for the requested gameweek, or the entry id is bad.
var ErrNoEntryPicks = crerr.New("entry picks not found")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Bootstrap fetches the static payload: players, teams, and gameweeks.
func (c *Client) Bootstrap(ctx context.Context) (fpl.Bootstrap, error) {
	var out fpl.Bootstrap
	if err := c.doJSON(ctx, "/bootstrap-static/", &out); err != nil {
		return fpl.Bootstrap{}, fmt.Errorf("fetch bootstrap: %w", err)
	}
	return out, nil
}

// Fixtures fetches the full season fixture list.
func (c *Client) Fixtures(ctx context.Context) ([]fpl.Fixture, error) {
	var out []fpl.Fixture
	if err := c.doJSON(ctx, "/fixtures/", &out); err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}
	return out, nil
}

// EntryPicks fetches a manager's squad for a gameweek. A 404 reports
// absence without error.
func (c *Client) EntryPicks(ctx context.Context, entryID, gameweek int) (fpl.PickSet, bool, error) {
	if entryID <= 0 {
		return fpl.PickSet{}, false, fmt.Errorf("entry id must be greater than zero")
	}
	if gameweek <= 0 {
		return fpl.PickSet{}, false, fmt.Errorf("gameweek must be greater than zero")
	}

	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gameweek)
	var out fpl.PickSet
	err := c.doJSON(ctx, path, &out)
	if err != nil {
		if stderrors.Is(err, ErrNoEntryPicks) {
			return fpl.PickSet{}, false, nil
		}
		return fpl.PickSet{}, false, fmt.Errorf("fetch entry picks entry_id=%d gameweek=%d: %w", entryID, gameweek, err)
	}
	return out, true, nil
}

// ElementSummary fetches a player's match-by-match season history.
func (c *Client) ElementSummary(ctx context.Context, playerID int) (fpl.ElementSummary, error) {
	if playerID <= 0 {
		return fpl.ElementSummary{}, fmt.Errorf("player id must be greater than zero")
	}

	path := fmt.Sprintf("/element-summary/%d/", playerID)
	var out fpl.ElementSummary
	if err := c.doJSON(ctx, path, &out); err != nil {
		return fpl.ElementSummary{}, fmt.Errorf("fetch element summary player_id=%d: %w", playerID, err)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: game data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isFPLCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFPLTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: url=%s", ErrNoEntryPicks, fullURL)
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isFPLCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFPLTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
