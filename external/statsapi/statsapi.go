package statsapi

import (
	"strings"

	"github.com/riskibarqy/pitchcount/internal/domain/game"
)

type boxscoreEnvelope struct {
	Teams *struct {
		Home *teamPlayers `json:"home"`
		Away *teamPlayers `json:"away"`
	} `json:"teams"`
}

type teamPlayers struct {
	Pitchers []int64 `json:"pitchers"`
	Batters  []int64 `json:"batters"`
}

type playByPlayEnvelope struct {
	AllPlays []playItem `json:"allPlays"`
}

type playItem struct {
	AtBatIndex *int `json:"atBatIndex"`
	About      *struct {
		AtBatIndex *int `json:"atBatIndex"`
	} `json:"about"`
	Matchup *struct {
		Pitcher *personRef `json:"pitcher"`
		Batter  *personRef `json:"batter"`
	} `json:"matchup"`
	PlayEvents []playEventItem `json:"playEvents"`
}

type personRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type playEventItem struct {
	Count *struct {
		Balls   *int `json:"balls"`
		Strikes *int `json:"strikes"`
	} `json:"count"`
	IsPitch *bool `json:"isPitch"`
	Details *struct {
		Description string `json:"description"`
		Type        *struct {
			Description string `json:"description"`
		} `json:"type"`
	} `json:"details"`
}

type gameLogEnvelope struct {
	Stats []struct {
		Splits []struct {
			Game *struct {
				GamePk int64 `json:"gamePk"`
			} `json:"game"`
		} `json:"splits"`
	} `json:"stats"`
}

type peopleEnvelope struct {
	People []personRef `json:"people"`
}

func (e boxscoreEnvelope) toRoster() game.Roster {
	var out game.Roster
	if e.Teams == nil {
		return out
	}
	if e.Teams.Home != nil {
		out.HomePitchers = positiveIDs(e.Teams.Home.Pitchers)
		out.HomeBatters = positiveIDs(e.Teams.Home.Batters)
	}
	if e.Teams.Away != nil {
		out.AwayPitchers = positiveIDs(e.Teams.Away.Pitchers)
		out.AwayBatters = positiveIDs(e.Teams.Away.Batters)
	}
	return out
}

// toPlayByPlay keeps plays with a known pitcher and events with a recorded count.
func (e playByPlayEnvelope) toPlayByPlay(gameID int64) game.PlayByPlay {
	out := game.PlayByPlay{
		GameID: gameID,
		Plays:  make([]game.Play, 0, len(e.AllPlays)),
	}

	for i, item := range e.AllPlays {
		if item.Matchup == nil || item.Matchup.Pitcher == nil || item.Matchup.Pitcher.ID <= 0 {
			continue
		}

		play := game.Play{
			AtBatIndex: resolveAtBatIndex(item, i),
			PitcherID:  item.Matchup.Pitcher.ID,
			Events:     make([]game.PlayEvent, 0, len(item.PlayEvents)),
		}
		if item.Matchup.Batter != nil {
			play.BatterID = item.Matchup.Batter.ID
		}

		for _, ev := range item.PlayEvents {
			mapped, ok := mapPlayEvent(ev)
			if !ok {
				continue
			}
			play.Events = append(play.Events, mapped)
		}
		out.Plays = append(out.Plays, play)
	}

	return out
}

func resolveAtBatIndex(item playItem, position int) int {
	if item.AtBatIndex != nil {
		return *item.AtBatIndex
	}
	if item.About != nil && item.About.AtBatIndex != nil {
		return *item.About.AtBatIndex
	}
	return position
}

func mapPlayEvent(ev playEventItem) (game.PlayEvent, bool) {
	if ev.Count == nil || ev.Count.Balls == nil || ev.Count.Strikes == nil {
		return game.PlayEvent{}, false
	}
	if *ev.Count.Balls < 0 || *ev.Count.Strikes < 0 {
		return game.PlayEvent{}, false
	}

	out := game.PlayEvent{
		Balls:   *ev.Count.Balls,
		Strikes: *ev.Count.Strikes,
		// older payloads omit isPitch and only carry pitch events
		IsPitch: ev.IsPitch == nil || *ev.IsPitch,
	}
	if ev.Details != nil {
		out.Description = strings.TrimSpace(ev.Details.Description)
		if ev.Details.Type != nil {
			out.TypeDescription = strings.TrimSpace(ev.Details.Type.Description)
		}
	}
	return out, true
}

func (e gameLogEnvelope) toGameIDs() []int64 {
	if len(e.Stats) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(e.Stats[0].Splits))
	out := make([]int64, 0, len(e.Stats[0].Splits))
	for _, split := range e.Stats[0].Splits {
		if split.Game == nil || split.Game.GamePk <= 0 {
			continue
		}
		if _, ok := seen[split.Game.GamePk]; ok {
			continue
		}
		seen[split.Game.GamePk] = struct{}{}
		out = append(out, split.Game.GamePk)
	}
	return out
}

func (e peopleEnvelope) toPerson(playerID int64) (game.Person, bool) {
	for _, p := range e.People {
		if p.ID == playerID || len(e.People) == 1 {
			return game.Person{ID: playerID, FullName: strings.TrimSpace(p.FullName)}, true
		}
	}
	return game.Person{}, false
}

func positiveIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}
