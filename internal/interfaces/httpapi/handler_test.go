package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pitchcount/internal/domain/game"
	gamemock "github.com/riskibarqy/pitchcount/internal/mocks/domain/game"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
	"github.com/riskibarqy/pitchcount/internal/usecase"
	"github.com/stretchr/testify/mock"
)

const (
	testGameID  = int64(777130)
	testPitcher = int64(605400)
)

func newTestRouter(t *testing.T, provider game.Provider) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	service := usecase.NewMatrixService(provider, usecase.MatrixServiceConfig{MaxWorkers: 2}, logger, nil)
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	return NewRouter(NewHandler(service, logger), logger, []string{"*"}, metricsHandler)
}

func serve(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal %s response: %v body=%s", target, err, rec.Body.String())
	}
	return rec, body
}

func expectGameFixture(provider *gamemock.Provider) {
	provider.
		On("FetchBoxscore", mock.Anything, testGameID).
		Return(game.Roster{HomePitchers: []int64{testPitcher}}, nil).
		Once()
	provider.
		On("FetchPlayerSeasonGames", mock.Anything, testPitcher, 2024).
		Return([]int64{testGameID}, nil).
		Once()
	provider.
		On("FetchPlayByPlay", mock.Anything, testGameID).
		Return(game.PlayByPlay{GameID: testGameID, Plays: []game.Play{{
			PitcherID: testPitcher,
			Events: []game.PlayEvent{
				{Balls: 0, Strikes: 0, IsPitch: true, Description: "Ball"},
				{Balls: 1, Strikes: 0, IsPitch: true, Description: "In play, out(s)"},
			},
		}}}, nil).
		Once()
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, gamemock.NewProvider(t))
	rec, body := serve(t, router, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected healthz payload: %v", body)
	}
}

func TestHandler_MetricsRouted(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, gamemock.NewProvider(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "# metrics\n" {
		t.Fatalf("unexpected metrics response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandler_GetGameMatrices(t *testing.T) {
	t.Parallel()

	provider := gamemock.NewProvider(t)
	expectGameFixture(provider)
	provider.
		On("FetchPerson", mock.Anything, testPitcher).
		Return(game.Person{ID: testPitcher, FullName: "Aaron Nola"}, nil).
		Once()

	rec, body := serve(t, newTestRouter(t, provider), "/v1/games/777130/seasons/2024/matrices?include=names")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	data, _ := body["data"].(map[string]any)
	states, _ := data["states"].([]any)
	if len(states) != 13 || states[0] != "0-0" || states[12] != "X" {
		t.Fatalf("unexpected states: %v", states)
	}
	matrices, _ := data["matrices"].([]any)
	if len(matrices) != 1 {
		t.Fatalf("expected one matrix, got %v", data["matrices"])
	}
	item, _ := matrices[0].(map[string]any)
	if item["player_name"] != "Aaron Nola" {
		t.Fatalf("expected resolved player name, got %v", item["player_name"])
	}
	matrix, _ := item["matrix"].(map[string]any)
	values, _ := matrix["values"].([]any)
	if len(values) != 13 {
		t.Fatalf("expected 13 rows, got %d", len(values))
	}
	// row 0-0 moves to 1-0 with certainty; 1-0 sits at index 3 in a 3-strike-wide grid
	row, _ := values[0].([]any)
	if got, _ := row[3].(float64); got != 1 {
		t.Fatalf("expected P(0-0 -> 1-0)=1, got %v", row)
	}
}

func TestHandler_GetGameAnalysis_WithPitches(t *testing.T) {
	t.Parallel()

	provider := gamemock.NewProvider(t)
	expectGameFixture(provider)

	rec, body := serve(t, newTestRouter(t, provider), "/v1/games/777130/seasons/2024/analysis?include=pitches")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	data, _ := body["data"].(map[string]any)
	coverage, _ := data["coverage_games"].([]any)
	if len(coverage) != 1 {
		t.Fatalf("unexpected coverage: %v", data["coverage_games"])
	}
	players, _ := data["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("expected one player, got %v", data["players"])
	}
	player, _ := players[0].(map[string]any)
	pitches, _ := player["pitches"].([]any)
	if len(pitches) != 2 {
		t.Fatalf("expected two pitches, got %v", player["pitches"])
	}
	last, _ := pitches[1].(map[string]any)
	if last["before"] != "1-0" || last["after"] != "X" || last["outcome"] != "in_play" {
		t.Fatalf("unexpected last pitch: %v", last)
	}
}

func TestHandler_GetGameMatrices_InvalidPath(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, gamemock.NewProvider(t))
	for _, target := range []string{
		"/v1/games/abc/seasons/2024/matrices",
		"/v1/games/777130/seasons/0/matrices",
		"/v1/games/-4/seasons/2024/analysis",
	} {
		rec, body := serve(t, router, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, rec.Code)
		}
		errorObj, _ := body["error"].(map[string]any)
		if errorObj["status"] != "INVALID_ARGUMENT" {
			t.Fatalf("%s: unexpected error payload: %v", target, body)
		}
	}
}

func TestHandler_GetPlayerSeasonMatrix_NotFound(t *testing.T) {
	t.Parallel()

	provider := gamemock.NewProvider(t)
	provider.
		On("FetchPlayerSeasonGames", mock.Anything, testPitcher, 2024).
		Return([]int64{}, nil).
		Once()

	rec, _ := serve(t, newTestRouter(t, provider), "/v1/players/605400/seasons/2024/matrix")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_GetPlayer(t *testing.T) {
	t.Parallel()

	provider := gamemock.NewProvider(t)
	provider.
		On("FetchPerson", mock.Anything, testPitcher).
		Return(game.Person{ID: testPitcher, FullName: "Aaron Nola"}, nil).
		Once()
	provider.
		On("FetchPerson", mock.Anything, int64(1)).
		Return(game.Person{}, errors.New("status=404")).
		Once()
	router := newTestRouter(t, provider)

	rec, body := serve(t, router, "/v1/players/605400")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if data["full_name"] != "Aaron Nola" {
		t.Fatalf("unexpected player payload: %v", data)
	}

	rec, _ = serve(t, router, "/v1/players/1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown player, got %d", rec.Code)
	}
}
