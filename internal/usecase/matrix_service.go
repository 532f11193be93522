package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/pitchcount/internal/domain/game"
	"github.com/riskibarqy/pitchcount/internal/domain/pitchcount"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
	"github.com/riskibarqy/pitchcount/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	aggregationGame   = "game"
	aggregationPlayer = "player"
)

type MatrixServiceConfig struct {
	MaxWorkers     int
	ExcludedCounts []pitchcount.CountState
	InPlayPrefixes []string
	TerminalTypes  []string
}

// PlayerAnalysis is everything one aggregation run learned about one pitcher.
type PlayerAnalysis struct {
	PlayerID    int64
	Matrix      pitchcount.TransitionMatrix
	Transitions int
	Pitches     []pitchcount.Pitch
	// Outcomes is keyed by CountState.Key of the count before the pitch.
	Outcomes map[string]pitchcount.OutcomeTally
}

type Analysis struct {
	GameID          int64
	Season          int
	StartingPlayers []int64
	CoverageGames   []int64
	Players         map[int64]PlayerAnalysis
}

// Matrices projects the analysis onto player transition matrices.
func (a Analysis) Matrices() map[int64]pitchcount.TransitionMatrix {
	out := make(map[int64]pitchcount.TransitionMatrix, len(a.Players))
	for id, item := range a.Players {
		out[id] = item.Matrix
	}
	return out
}

type MatrixService struct {
	gateway    *DataGateway
	space      *pitchcount.StateSpace
	extractor  *pitchcount.Extractor
	maxWorkers int
	logger     *logging.Logger
	metrics    *metrics.Recorder
}

func NewMatrixService(provider game.Provider, cfg MatrixServiceConfig, logger *logging.Logger, recorder *metrics.Recorder) *MatrixService {
	if logger == nil {
		logger = logging.Default()
	}

	space := pitchcount.DefaultStateSpace()
	if len(cfg.ExcludedCounts) > 0 {
		space = pitchcount.NewStateSpace(cfg.ExcludedCounts...)
	}

	return &MatrixService{
		gateway: NewDataGateway(provider, logger, recorder),
		space:   space,
		extractor: pitchcount.NewExtractor(space, pitchcount.ExtractorConfig{
			InPlayPrefixes: cfg.InPlayPrefixes,
			TerminalTypes:  cfg.TerminalTypes,
		}),
		maxWorkers: cfg.MaxWorkers,
		logger:     logger,
		metrics:    recorder,
	}
}

func (s *MatrixService) StateSpace() *pitchcount.StateSpace {
	return s.space
}

// ComputeMatrices builds a transition matrix for every starting player of the
// game that has pitching transitions in the season.
func (s *MatrixService) ComputeMatrices(ctx context.Context, gameID int64, season int) (map[int64]pitchcount.TransitionMatrix, error) {
	analysis, err := s.Analyze(ctx, gameID, season)
	if err != nil {
		return nil, err
	}
	return analysis.Matrices(), nil
}

func (s *MatrixService) Analyze(ctx context.Context, gameID int64, season int) (Analysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatrixService.Analyze",
		attribute.Int64("game.id", gameID),
		attribute.Int("season", season),
	)
	defer span.End()

	if gameID <= 0 || season <= 0 {
		s.logger.WarnContext(ctx, "invalid game or season, returning empty result", "game_id", gameID, "season", season)
		return emptyAnalysis(gameID, season, nil), nil
	}

	started := time.Now()
	roster := s.gateway.Boxscore(ctx, gameID)
	starting := roster.PlayerIDs()
	if len(starting) == 0 {
		s.logger.WarnContext(ctx, "no starting players found for game", "game_id", gameID, "season", season)
		return emptyAnalysis(gameID, season, nil), nil
	}

	analysis, err := s.aggregate(ctx, starting, season)
	if err != nil {
		return Analysis{}, err
	}
	analysis.GameID = gameID

	s.metrics.ObserveAggregation(aggregationGame, time.Since(started), len(analysis.Players))
	s.logger.InfoContext(ctx, "season aggregation finished",
		"game_id", gameID,
		"season", season,
		"starting_players", len(starting),
		"coverage_games", len(analysis.CoverageGames),
		"matrices", len(analysis.Players),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return analysis, nil
}

// ComputePlayerMatrix runs the season pipeline for a single pitcher.
func (s *MatrixService) ComputePlayerMatrix(ctx context.Context, playerID int64, season int) (PlayerAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatrixService.ComputePlayerMatrix",
		attribute.Int64("player.id", playerID),
		attribute.Int("season", season),
	)
	defer span.End()

	if playerID <= 0 {
		return PlayerAnalysis{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}
	if season <= 0 {
		return PlayerAnalysis{}, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	started := time.Now()
	analysis, err := s.aggregate(ctx, []int64{playerID}, season)
	if err != nil {
		return PlayerAnalysis{}, err
	}
	s.metrics.ObserveAggregation(aggregationPlayer, time.Since(started), len(analysis.Players))

	item, ok := analysis.Players[playerID]
	if !ok {
		return PlayerAnalysis{}, fmt.Errorf("%w: no pitch transitions for player_id=%d season=%d", ErrNotFound, playerID, season)
	}
	return item, nil
}

func (s *MatrixService) FetchPerson(ctx context.Context, playerID int64) (game.Person, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatrixService.FetchPerson", attribute.Int64("player.id", playerID))
	defer span.End()

	if playerID <= 0 {
		return game.Person{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}
	person := s.gateway.Person(ctx, playerID)
	if person.FullName == "" {
		return game.Person{}, fmt.Errorf("%w: player_id=%d", ErrNotFound, playerID)
	}
	return person, nil
}

// ResolvePlayerNames looks up display names; players without one are left out.
func (s *MatrixService) ResolvePlayerNames(ctx context.Context, playerIDs []int64) (map[int64]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatrixService.ResolvePlayerNames", attribute.Int("players", len(playerIDs)))
	defer span.End()

	people, err := fanOut(ctx, s.logger, playerIDs, s.maxWorkers, s.gateway.Person)
	if err != nil {
		return nil, fmt.Errorf("resolve player names: %w", err)
	}

	out := make(map[int64]string, len(people))
	for id, person := range people {
		if person.FullName == "" {
			continue
		}
		out[id] = person.FullName
	}
	return out, nil
}

type playerLog struct {
	transitions []pitchcount.Transition
	pitches     []pitchcount.Pitch
	outcomes    map[string]pitchcount.OutcomeTally
}

// aggregate resolves season games for the starting set, fetches every covered
// game, and extracts pitcher transitions in ascending game id order.
func (s *MatrixService) aggregate(ctx context.Context, starting []int64, season int) (Analysis, error) {
	seasonGames, err := fanOut(ctx, s.logger, starting, s.maxWorkers, func(ctx context.Context, playerID int64) []int64 {
		return s.gateway.SeasonGames(ctx, playerID, season)
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("fetch season games: %w", err)
	}

	coverage := coverageGames(seasonGames)
	if len(coverage) == 0 {
		s.logger.WarnContext(ctx, "no season games found for starting players", "season", season, "starting_players", len(starting))
		return emptyAnalysis(0, season, starting), nil
	}

	plays, err := fanOut(ctx, s.logger, coverage, s.maxWorkers, s.gateway.PlayByPlay)
	if err != nil {
		return Analysis{}, fmt.Errorf("fetch play-by-play: %w", err)
	}

	startingSet := make(map[int64]struct{}, len(starting))
	for _, id := range starting {
		startingSet[id] = struct{}{}
	}

	logs := make(map[int64]*playerLog, len(starting))
	for _, gameID := range coverage {
		data := plays[gameID]
		for _, pitcherID := range pitchersInOrder(data) {
			if _, ok := startingSet[pitcherID]; !ok {
				continue
			}
			extraction := s.extractor.Extract(data, pitcherID)
			if len(extraction.Transitions) == 0 {
				continue
			}

			entry := logs[pitcherID]
			if entry == nil {
				entry = &playerLog{outcomes: make(map[string]pitchcount.OutcomeTally)}
				logs[pitcherID] = entry
			}
			entry.transitions = append(entry.transitions, extraction.Transitions...)
			entry.pitches = append(entry.pitches, extraction.Pitches...)
			for _, pitch := range extraction.Pitches {
				if pitch.Outcome == pitchcount.OutcomeUnknown {
					continue
				}
				key := pitch.Before.Key()
				tally := entry.outcomes[key]
				tally.Add(pitch.Outcome)
				entry.outcomes[key] = tally
			}
		}
	}

	analysis := emptyAnalysis(0, season, starting)
	analysis.CoverageGames = coverage
	for _, playerID := range starting {
		entry := logs[playerID]
		if entry == nil || len(entry.transitions) == 0 {
			s.logger.WarnContext(ctx, "no pitch transitions for player, skipping matrix", "player_id", playerID, "season", season)
			continue
		}
		analysis.Players[playerID] = PlayerAnalysis{
			PlayerID:    playerID,
			Matrix:      pitchcount.BuildMatrix(s.space, entry.transitions),
			Transitions: len(entry.transitions),
			Pitches:     entry.pitches,
			Outcomes:    entry.outcomes,
		}
	}
	return analysis, nil
}

func emptyAnalysis(gameID int64, season int, starting []int64) Analysis {
	return Analysis{
		GameID:          gameID,
		Season:          season,
		StartingPlayers: starting,
		CoverageGames:   []int64{},
		Players:         make(map[int64]PlayerAnalysis),
	}
}

// coverageGames is the sorted, deduplicated union of every player's games.
func coverageGames(byPlayer map[int64][]int64) []int64 {
	seen := make(map[int64]struct{}, 256)
	out := make([]int64, 0, 256)
	for _, games := range byPlayer {
		for _, gameID := range games {
			if gameID <= 0 {
				continue
			}
			if _, ok := seen[gameID]; ok {
				continue
			}
			seen[gameID] = struct{}{}
			out = append(out, gameID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func pitchersInOrder(data game.PlayByPlay) []int64 {
	seen := make(map[int64]struct{}, 8)
	out := make([]int64, 0, 8)
	for _, play := range data.Plays {
		if play.PitcherID <= 0 {
			continue
		}
		if _, ok := seen[play.PitcherID]; ok {
			continue
		}
		seen[play.PitcherID] = struct{}{}
		out = append(out, play.PitcherID)
	}
	return out
}
