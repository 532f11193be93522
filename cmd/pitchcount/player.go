package main

import (
	"github.com/riskibarqy/pitchcount/internal/report"
	"github.com/riskibarqy/pitchcount/internal/usecase"
	"github.com/spf13/cobra"
)

// playerCmd computes the season matrix of a single pitcher.
var playerCmd = &cobra.Command{
	Use:   "player <player-id> <season>",
	Short: "Season transition matrix for one pitcher",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	playerID, err := parseID("player id", args[0])
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

	item, err := service.ComputePlayerMatrix(ctx, playerID, season)
	if err != nil {
		return err
	}

	names := map[int64]string{}
	if withNames {
		if person, err := service.FetchPerson(ctx, playerID); err == nil {
			names[playerID] = person.FullName
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return report.WriteJSON(out, map[int64]usecase.PlayerAnalysis{playerID: item}, names)
	}

	report.PrintPlayerHeader(out, item, names[playerID])
	report.PrintMatrix(out, item.Matrix)
	report.PrintOutcomeTable(out, service.StateSpace(), item.Outcomes)
	return nil
}
