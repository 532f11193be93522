package pitchcount

import (
	"strings"

	"github.com/riskibarqy/pitchcount/internal/domain/game"
)

// Transition is one observed pitch: the count before it and the state after it.
type Transition struct {
	From CountState
	To   CountState
}

// Pitch is the raw record of one pitch thrown by the extraction target.
type Pitch struct {
	PlayerID    int64
	GameID      int64
	AtBatIndex  int
	Before      CountState
	After       CountState
	Outcome     Outcome
	Description string
}

// Extraction is the result of scanning one game for one pitcher.
type Extraction struct {
	Transitions []Transition
	Pitches     []Pitch
}

type ExtractorConfig struct {
	InPlayPrefixes []string
	TerminalTypes  []string
}

// Extractor turns play-by-play events into count transitions.
type Extractor struct {
	space          *StateSpace
	inPlayPrefixes []string
	terminalTypes  map[string]struct{}
}

func NewExtractor(space *StateSpace, cfg ExtractorConfig) *Extractor {
	if space == nil {
		space = DefaultStateSpace()
	}

	prefixes := normalizeList(cfg.InPlayPrefixes)
	if len(prefixes) == 0 {
		prefixes = normalizeList(DefaultInPlayPrefixes)
	}
	types := normalizeList(cfg.TerminalTypes)
	if len(types) == 0 {
		types = normalizeList(DefaultTerminalTypes)
	}
	terminalTypes := make(map[string]struct{}, len(types))
	for _, item := range types {
		terminalTypes[item] = struct{}{}
	}

	return &Extractor{
		space:          space,
		inPlayPrefixes: prefixes,
		terminalTypes:  terminalTypes,
	}
}

// Extract returns, in order, the transitions of every pitch the pitcher threw in the game.
func (e *Extractor) Extract(data game.PlayByPlay, pitcherID int64) Extraction {
	var out Extraction
	if pitcherID <= 0 {
		return out
	}

	for _, play := range data.Plays {
		if play.PitcherID != pitcherID {
			continue
		}

		pitches := pitchEvents(play.Events)
		for i, ev := range pitches {
			before := Count(ev.Balls, ev.Strikes)
			outcome := ClassifyOutcome(ev.Description, e.inPlayPrefixes)

			var after CountState
			switch {
			case e.isTerminal(ev):
				after = Terminal
			case i+1 < len(pitches):
				next := pitches[i+1]
				after = Count(next.Balls, next.Strikes)
			default:
				derived, ok := e.afterFromOutcome(before, outcome, ev.Description)
				if !ok {
					continue
				}
				after = derived
			}

			out.Transitions = append(out.Transitions, Transition{From: before, To: after})
			out.Pitches = append(out.Pitches, Pitch{
				PlayerID:    pitcherID,
				GameID:      data.GameID,
				AtBatIndex:  play.AtBatIndex,
				Before:      before,
				After:       after,
				Outcome:     outcome,
				Description: ev.Description,
			})
		}
	}

	return out
}

func (e *Extractor) isTerminal(ev game.PlayEvent) bool {
	if _, ok := e.terminalTypes[strings.TrimSpace(ev.TypeDescription)]; ok {
		return true
	}
	if isHitByPitch(ev.Description) {
		return true
	}
	return hasAnyPrefix(strings.TrimSpace(ev.Description), e.inPlayPrefixes)
}

// afterFromOutcome derives the next state for the last recorded pitch of an at-bat.
func (e *Extractor) afterFromOutcome(before CountState, outcome Outcome, description string) (CountState, bool) {
	switch outcome {
	case OutcomeBall:
		if before.Balls >= e.space.MaxBalls() {
			return Terminal, true
		}
		return Count(before.Balls+1, before.Strikes), true
	case OutcomeStrike:
		if before.Strikes < e.space.MaxStrikes() {
			return Count(before.Balls, before.Strikes+1), true
		}
		if isFoul(description) {
			return before, true
		}
		return Terminal, true
	case OutcomeInPlay:
		return Terminal, true
	default:
		return CountState{}, false
	}
}

func pitchEvents(events []game.PlayEvent) []game.PlayEvent {
	out := make([]game.PlayEvent, 0, len(events))
	for _, ev := range events {
		if ev.IsPitch {
			out = append(out, ev)
		}
	}
	return out
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		item := strings.TrimSpace(value)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
