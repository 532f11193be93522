package statsapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pitchcount/internal/domain/game"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
	"github.com/riskibarqy/pitchcount/internal/platform/metrics"
	"github.com/riskibarqy/pitchcount/internal/platform/resilience"
	"github.com/riskibarqy/pitchcount/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL  = "https://statsapi.mlb.com/api/v1"
	maxResponseSize = 16 << 20
	maxErrorBody    = 256
)

const (
	EndpointBoxscore   = "boxscore"
	EndpointPlayByPlay = "playByPlay"
	EndpointGameLog    = "gameLog"
	EndpointPerson     = "person"
)

var errTransient = crerr.New("stats api transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	// Timeout of zero leaves requests unbounded.
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Metrics        *metrics.Recorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public MLB stats API. It implements game.Provider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	metrics        *metrics.Recorder
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         singleflight.Group
}

var _ game.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	recorder := cfg.Metrics
	userHook := breakerCfg.OnStateChange
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		recorder.SetBreakerState(string(to))
		if userHook != nil {
			userHook(from, to)
		}
	}
	if breakerCfg.Enabled {
		recorder.SetBreakerState(string(resilience.CircuitStateClosed))
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		metrics:        recorder,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchBoxscore(ctx context.Context, gameID int64) (game.Roster, error) {
	if gameID <= 0 {
		return game.Roster{}, crerr.Newf("game id must be greater than zero, got %d", gameID)
	}

	var payload boxscoreEnvelope
	path := "/game/" + strconv.FormatInt(gameID, 10) + "/boxscore"
	if err := c.doJSON(ctx, EndpointBoxscore, path, nil, &payload); err != nil {
		return game.Roster{}, crerr.Wrapf(err, "fetch boxscore game_id=%d", gameID)
	}
	if payload.Teams == nil {
		return game.Roster{}, crerr.Newf("boxscore game_id=%d: missing teams", gameID)
	}
	return payload.toRoster(), nil
}

func (c *Client) FetchPlayByPlay(ctx context.Context, gameID int64) (game.PlayByPlay, error) {
	if gameID <= 0 {
		return game.PlayByPlay{}, crerr.Newf("game id must be greater than zero, got %d", gameID)
	}

	var payload playByPlayEnvelope
	path := "/game/" + strconv.FormatInt(gameID, 10) + "/playByPlay"
	if err := c.doJSON(ctx, EndpointPlayByPlay, path, nil, &payload); err != nil {
		return game.PlayByPlay{}, crerr.Wrapf(err, "fetch play-by-play game_id=%d", gameID)
	}
	return payload.toPlayByPlay(gameID), nil
}

func (c *Client) FetchPlayerSeasonGames(ctx context.Context, playerID int64, season int) ([]int64, error) {
	if playerID <= 0 {
		return nil, crerr.Newf("player id must be greater than zero, got %d", playerID)
	}
	if season <= 0 {
		return nil, crerr.Newf("season must be greater than zero, got %d", season)
	}

	var payload gameLogEnvelope
	path := "/people/" + strconv.FormatInt(playerID, 10) + "/stats"
	query := map[string]string{
		"stats":  "gameLog",
		"season": strconv.Itoa(season),
	}
	if err := c.doJSON(ctx, EndpointGameLog, path, query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch game log player_id=%d season=%d", playerID, season)
	}
	return payload.toGameIDs(), nil
}

func (c *Client) FetchPerson(ctx context.Context, playerID int64) (game.Person, error) {
	if playerID <= 0 {
		return game.Person{}, crerr.Newf("player id must be greater than zero, got %d", playerID)
	}

	var payload peopleEnvelope
	path := "/people/" + strconv.FormatInt(playerID, 10)
	if err := c.doJSON(ctx, EndpointPerson, path, nil, &payload); err != nil {
		return game.Person{}, crerr.Wrapf(err, "fetch person player_id=%d", playerID)
	}
	person, ok := payload.toPerson(playerID)
	if !ok {
		return game.Person{}, crerr.Wrapf(usecase.ErrNotFound, "person player_id=%d not in payload", playerID)
	}
	return person, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stats api circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			return crerr.Wrapf(usecase.ErrDependencyUnavailable, "stats api circuit %s", c.breaker.State())
		}
	}

	fullURL := c.buildURL(path, query)
	// The shared request outlives any single waiter; each waiter still honors its own ctx.
	flightCtx := context.WithoutCancel(ctx)
	results := c.flight.DoChan(fullURL, func() (any, error) {
		started := time.Now()
		raw, reqErr := c.executeRequest(flightCtx, fullURL)
		c.metrics.ObserveRequest(endpoint, time.Since(started))
		if c.circuitEnabled {
			c.breaker.Record(reqErr != nil && crerr.Is(reqErr, errTransient))
		}
		return raw, reqErr
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return crerr.Wrapf(ctx.Err(), "wait for stats api %s", endpoint)
	case res = <-results:
	}
	if res.Err != nil {
		return res.Err
	}

	raw, ok := res.Val.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", res.Val)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode stats api payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, retryable, err := c.send(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxRetries {
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

	c.logger.DebugContext(ctx, "stats api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, fullURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, false, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseSize)); err != nil {
		return nil, true, crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		raw := make([]byte, buf.Len())
		copy(raw, buf.B)
		return raw, false, nil
	}

	statusErr := crerr.Newf("stats api status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
	if isRetryableStatus(resp.StatusCode) {
		return nil, true, crerr.Mark(statusErr, errTransient)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, false, crerr.Wrapf(usecase.ErrNotFound, "stats api status=%d", resp.StatusCode)
	}
	return nil, false, statusErr
}

// buildURL encodes query keys in sorted order so identical requests share a singleflight key.
func (c *Client) buildURL(path string, query map[string]string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)

	if len(query) > 0 {
		keys := make([]string, 0, len(query))
		for key := range query {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for i, key := range keys {
			if i == 0 {
				_ = buf.WriteByte('?')
			} else {
				_ = buf.WriteByte('&')
			}
			_, _ = buf.WriteString(url.QueryEscape(key))
			_ = buf.WriteByte('=')
			_, _ = buf.WriteString(url.QueryEscape(query[key]))
		}
	}
	return buf.String()
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// abbreviateBody keeps at most maxErrorBody bytes without splitting a rune.
func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxErrorBody {
		return text
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
