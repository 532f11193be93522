package usecase

import (
	"context"

	"github.com/riskibarqy/pitchcount/internal/domain/game"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
	"github.com/riskibarqy/pitchcount/internal/platform/metrics"
)

const (
	fetchBoxscore    = "boxscore"
	fetchPlayByPlay  = "playByPlay"
	fetchSeasonGames = "gameLog"
	fetchPerson      = "person"
)

// DataGateway wraps a game.Provider so that every fetch failure is logged and
// replaced by an empty value. Nothing returned from it is an error.
type DataGateway struct {
	provider game.Provider
	logger   *logging.Logger
	metrics  *metrics.Recorder
}

func NewDataGateway(provider game.Provider, logger *logging.Logger, recorder *metrics.Recorder) *DataGateway {
	if logger == nil {
		logger = logging.Default()
	}
	return &DataGateway{
		provider: provider,
		logger:   logger,
		metrics:  recorder,
	}
}

func (g *DataGateway) Boxscore(ctx context.Context, gameID int64) game.Roster {
	roster, err := g.provider.FetchBoxscore(ctx, gameID)
	g.metrics.ObserveFetch(fetchBoxscore, err != nil)
	if err != nil {
		g.logger.WarnContext(ctx, "fetch boxscore failed, using empty roster", "game_id", gameID, "error", err)
		return game.Roster{}
	}
	return roster
}

func (g *DataGateway) PlayByPlay(ctx context.Context, gameID int64) game.PlayByPlay {
	data, err := g.provider.FetchPlayByPlay(ctx, gameID)
	g.metrics.ObserveFetch(fetchPlayByPlay, err != nil)
	if err != nil {
		g.logger.WarnContext(ctx, "fetch play-by-play failed, using empty play list", "game_id", gameID, "error", err)
		return game.PlayByPlay{GameID: gameID}
	}
	data.GameID = gameID
	return data
}

func (g *DataGateway) SeasonGames(ctx context.Context, playerID int64, season int) []int64 {
	games, err := g.provider.FetchPlayerSeasonGames(ctx, playerID, season)
	g.metrics.ObserveFetch(fetchSeasonGames, err != nil)
	if err != nil {
		g.logger.WarnContext(ctx, "fetch season games failed, using empty set", "player_id", playerID, "season", season, "error", err)
		return nil
	}
	return games
}

func (g *DataGateway) Person(ctx context.Context, playerID int64) game.Person {
	person, err := g.provider.FetchPerson(ctx, playerID)
	g.metrics.ObserveFetch(fetchPerson, err != nil)
	if err != nil {
		g.logger.WarnContext(ctx, "fetch person failed, using empty person", "player_id", playerID, "error", err)
		return game.Person{ID: playerID}
	}
	return person
}
