package main

import (
	"github.com/riskibarqy/pitchcount/internal/report"
	"github.com/spf13/cobra"
)

var withOutcomes bool

// matricesCmd computes a matrix for every starting player of a game.
var matricesCmd = &cobra.Command{
	Use:   "matrices <game-id> <season>",
	Short: "Season transition matrices for a game's starting players",
	Args:  cobra.ExactArgs(2),
	RunE:  runMatrices,
}

func init() {
	matricesCmd.Flags().BoolVar(&withOutcomes, "outcomes", false, "also print ball/strike/in-play tallies per count")
}

func runMatrices(cmd *cobra.Command, args []string) error {
	gameID, err := parseID("game id", args[0])
	if err != nil {
		return err
	}
	season, err := parseSeason(args[1])
	if err != nil {
		return err
	}

	service, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signalContext()
	defer stop()

	analysis, err := service.Analyze(ctx, gameID, season)
	if err != nil {
		return err
	}

	names := map[int64]string{}
	if withNames && len(analysis.Players) > 0 {
		ids := make([]int64, 0, len(analysis.Players))
		for id := range analysis.Players {
			ids = append(ids, id)
		}
		if names, err = service.ResolvePlayerNames(ctx, ids); err != nil {
			logger.Warn("resolve player names failed", "error", err)
			names = map[int64]string{}
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return report.WriteJSON(out, analysis.Players, names)
	}

	report.PrintAnalysisSummary(out, analysis, names)
	for _, id := range analysis.StartingPlayers {
		item, ok := analysis.Players[id]
		if !ok {
			continue
		}
		report.PrintPlayerHeader(out, item, names[id])
		report.PrintMatrix(out, item.Matrix)
		if withOutcomes {
			report.PrintOutcomeTable(out, service.StateSpace(), item.Outcomes)
		}
	}
	if len(analysis.Players) == 0 {
		cmd.PrintErrln("no matrices were built; check the log for fetch failures")
	}
	return nil
}
