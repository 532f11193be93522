package httpapi

import (
	"sort"

	"github.com/riskibarqy/pitchcount/internal/domain/pitchcount"
	"github.com/riskibarqy/pitchcount/internal/usecase"
)

type matrixDTO struct {
	RowLabels []string    `json:"row_labels"`
	ColLabels []string    `json:"col_labels"`
	Values    [][]float64 `json:"values"`
}

type outcomeTallyDTO struct {
	Ball   int `json:"ball"`
	Strike int `json:"strike"`
	InPlay int `json:"in_play"`
	Total  int `json:"total"`
}

type pitchDTO struct {
	GameID      int64  `json:"game_id"`
	AtBatIndex  int    `json:"at_bat_index"`
	Before      string `json:"before"`
	After       string `json:"after"`
	Outcome     string `json:"outcome,omitempty"`
	Description string `json:"description"`
}

type playerMatrixDTO struct {
	PlayerID    int64                      `json:"player_id"`
	PlayerName  string                     `json:"player_name,omitempty"`
	Transitions int                        `json:"transitions"`
	Matrix      matrixDTO                  `json:"matrix"`
	Outcomes    map[string]outcomeTallyDTO `json:"outcomes,omitempty"`
	Pitches     []pitchDTO                 `json:"pitches,omitempty"`
}

type gameMatricesDTO struct {
	GameID   int64             `json:"game_id"`
	Season   int               `json:"season"`
	States   []string          `json:"states"`
	Matrices []playerMatrixDTO `json:"matrices"`
}

type analysisDTO struct {
	GameID          int64             `json:"game_id"`
	Season          int               `json:"season"`
	StartingPlayers []int64           `json:"starting_players"`
	CoverageGames   []int64           `json:"coverage_games"`
	Players         []playerMatrixDTO `json:"players"`
}

type playerDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

func stateLabels(states []pitchcount.CountState) []string {
	out := make([]string, 0, len(states))
	for _, state := range states {
		out = append(out, state.Key())
	}
	return out
}

func matrixToDTO(m pitchcount.TransitionMatrix) matrixDTO {
	values := m.Values
	if values == nil {
		values = [][]float64{}
	}
	return matrixDTO{
		RowLabels: stateLabels(m.RowLabels),
		ColLabels: stateLabels(m.ColLabels),
		Values:    values,
	}
}

func playerMatrixToDTO(item usecase.PlayerAnalysis, name string) playerMatrixDTO {
	out := playerMatrixDTO{
		PlayerID:    item.PlayerID,
		PlayerName:  name,
		Transitions: item.Transitions,
		Matrix:      matrixToDTO(item.Matrix),
	}
	if len(item.Outcomes) > 0 {
		out.Outcomes = make(map[string]outcomeTallyDTO, len(item.Outcomes))
		for key, tally := range item.Outcomes {
			out.Outcomes[key] = outcomeTallyDTO{
				Ball:   tally.Ball,
				Strike: tally.Strike,
				InPlay: tally.InPlay,
				Total:  tally.Total(),
			}
		}
	}
	return out
}

func pitchesToDTO(pitches []pitchcount.Pitch) []pitchDTO {
	out := make([]pitchDTO, 0, len(pitches))
	for _, p := range pitches {
		out = append(out, pitchDTO{
			GameID:      p.GameID,
			AtBatIndex:  p.AtBatIndex,
			Before:      p.Before.Key(),
			After:       p.After.Key(),
			Outcome:     string(p.Outcome),
			Description: p.Description,
		})
	}
	return out
}

func analysisToDTO(analysis usecase.Analysis, names map[int64]string, withPitches bool) analysisDTO {
	starting := analysis.StartingPlayers
	if starting == nil {
		starting = []int64{}
	}
	coverage := analysis.CoverageGames
	if coverage == nil {
		coverage = []int64{}
	}

	players := make([]playerMatrixDTO, 0, len(analysis.Players))
	for _, playerID := range sortedPlayerIDs(analysis.Players) {
		item := analysis.Players[playerID]
		dto := playerMatrixToDTO(item, names[playerID])
		if withPitches {
			dto.Pitches = pitchesToDTO(item.Pitches)
		}
		players = append(players, dto)
	}

	return analysisDTO{
		GameID:          analysis.GameID,
		Season:          analysis.Season,
		StartingPlayers: starting,
		CoverageGames:   coverage,
		Players:         players,
	}
}

func sortedPlayerIDs(players map[int64]usecase.PlayerAnalysis) []int64 {
	out := make([]int64, 0, len(players))
	for id := range players {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
