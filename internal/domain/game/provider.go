package game

import "context"

// Provider exposes the statistics service reads used to build transition matrices.
type Provider interface {
	FetchBoxscore(ctx context.Context, gameID int64) (Roster, error)
	FetchPlayByPlay(ctx context.Context, gameID int64) (PlayByPlay, error)
	FetchPlayerSeasonGames(ctx context.Context, playerID int64, season int) ([]int64, error)
	FetchPerson(ctx context.Context, playerID int64) (Person, error)
}
