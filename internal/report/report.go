// Package report renders transition matrices and pitch outcome tallies for the CLI.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/riskibarqy/pitchcount/internal/domain/pitchcount"
	"github.com/riskibarqy/pitchcount/internal/usecase"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintPlayerHeader prints the one-line banner above a player's tables.
func PrintPlayerHeader(w io.Writer, item usecase.PlayerAnalysis, name string) {
	label := strconv.FormatInt(item.PlayerID, 10)
	if name != "" {
		label = fmt.Sprintf("%s (%d)", name, item.PlayerID)
	}
	fmt.Fprintf(w, "\nPitcher: %s  |  Transitions: %d  |  Observed counts: %d\n\n",
		label, item.Transitions, len(item.Matrix.ObservedRows()))
}

// PrintMatrix prints one row per count before the pitch. Unobserved rows are
// rendered with dashes so they stand apart from genuine zero probabilities.
func PrintMatrix(w io.Writer, m pitchcount.TransitionMatrix) {
	table := newTable(w)

	header := make([]any, 0, len(m.ColLabels)+1)
	header = append(header, "FROM")
	for _, label := range m.ColLabels {
		header = append(header, label.Key())
	}
	table.Header(header...)

	for i, from := range m.RowLabels {
		observed := m.RowSum(i) > 0
		row := make([]any, 0, len(m.ColLabels)+1)
		row = append(row, from.Key())
		for j := range m.ColLabels {
			if !observed {
				row = append(row, "-")
				continue
			}
			row = append(row, formatProbability(m.Values[i][j]))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintOutcomeTable prints ball/strike/in-play tallies in state space order.
func PrintOutcomeTable(w io.Writer, space *pitchcount.StateSpace, outcomes map[string]pitchcount.OutcomeTally) {
	table := newTable(w)
	table.Header("COUNT", "BALL", "STRIKE", "IN_PLAY", "TOTAL", "IN_PLAY%")

	for _, state := range space.States() {
		if state.Terminal {
			continue
		}
		tally, ok := outcomes[state.Key()]
		if !ok || tally.Total() == 0 {
			continue
		}
		table.Append(
			state.Key(),
			strconv.Itoa(tally.Ball),
			strconv.Itoa(tally.Strike),
			strconv.Itoa(tally.InPlay),
			strconv.Itoa(tally.Total()),
			fmt.Sprintf("%.1f%%", float64(tally.InPlay)/float64(tally.Total())*100),
		)
	}
	table.Render()
}

// PrintAnalysisSummary lists every starting player and whether a matrix was built.
func PrintAnalysisSummary(w io.Writer, analysis usecase.Analysis, names map[int64]string) {
	fmt.Fprintf(w, "\nGame: %d  |  Season: %d  |  Coverage games: %d  |  Matrices: %d\n\n",
		analysis.GameID, analysis.Season, len(analysis.CoverageGames), len(analysis.Players))

	ids := append([]int64(nil), analysis.StartingPlayers...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	table := newTable(w)
	table.Header("PLAYER_ID", "NAME", "TRANSITIONS", "PITCHES", "MATRIX")
	for _, id := range ids {
		item, ok := analysis.Players[id]
		built := "no"
		if ok {
			built = "yes"
		}
		table.Append(
			strconv.FormatInt(id, 10),
			names[id],
			strconv.Itoa(item.Transitions),
			strconv.Itoa(len(item.Pitches)),
			built,
		)
	}
	table.Render()
}

type matrixJSON struct {
	PlayerID    int64       `json:"player_id"`
	PlayerName  string      `json:"player_name,omitempty"`
	Transitions int         `json:"transitions"`
	RowLabels   []string    `json:"row_labels"`
	ColLabels   []string    `json:"col_labels"`
	Values      [][]float64 `json:"values"`
}

// WriteJSON writes the matrices as a JSON array ordered by player id.
func WriteJSON(w io.Writer, players map[int64]usecase.PlayerAnalysis, names map[int64]string) error {
	ids := make([]int64, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]matrixJSON, 0, len(ids))
	for _, id := range ids {
		item := players[id]
		out = append(out, matrixJSON{
			PlayerID:    id,
			PlayerName:  names[id],
			Transitions: item.Transitions,
			RowLabels:   labels(item.Matrix.RowLabels),
			ColLabels:   labels(item.Matrix.ColLabels),
			Values:      item.Matrix.Values,
		})
	}

	encoder := sonic.ConfigDefault.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func labels(states []pitchcount.CountState) []string {
	out := make([]string, 0, len(states))
	for _, state := range states {
		out = append(out, state.Key())
	}
	return out
}

func formatProbability(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
