package game

// Roster lists the players credited in a game's boxscore.
type Roster struct {
	HomePitchers []int64
	HomeBatters  []int64
	AwayPitchers []int64
	AwayBatters  []int64
}

// PlayerIDs returns the union of pitchers and batters, first occurrence order.
func (r Roster) PlayerIDs() []int64 {
	groups := [][]int64{r.HomePitchers, r.AwayPitchers, r.HomeBatters, r.AwayBatters}

	seen := make(map[int64]struct{})
	out := make([]int64, 0)
	for _, group := range groups {
		for _, id := range group {
			if id <= 0 {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func (r Roster) IsEmpty() bool {
	return len(r.HomePitchers) == 0 && len(r.HomeBatters) == 0 &&
		len(r.AwayPitchers) == 0 && len(r.AwayBatters) == 0
}

// PlayByPlay is the ordered play list of one game.
type PlayByPlay struct {
	GameID int64
	Plays  []Play
}

// Play is one plate appearance.
type Play struct {
	AtBatIndex int
	PitcherID  int64
	BatterID   int64
	Events     []PlayEvent
}

// PlayEvent is a single event inside a plate appearance. Balls and Strikes hold
// the count recorded with the event.
type PlayEvent struct {
	Balls           int
	Strikes         int
	IsPitch         bool
	Description     string
	TypeDescription string
}

// Person is the public profile of a player.
type Person struct {
	ID       int64
	FullName string
}
