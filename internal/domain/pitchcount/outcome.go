package pitchcount

import "strings"

// Outcome is the coarse result of a single pitch.
type Outcome string

const (
	OutcomeUnknown Outcome = ""
	OutcomeBall    Outcome = "ball"
	OutcomeStrike  Outcome = "strike"
	OutcomeInPlay  Outcome = "in_play"
)

// DefaultInPlayPrefixes are description prefixes that end a plate appearance with a ball in play.
var DefaultInPlayPrefixes = []string{"In play"}

// DefaultTerminalTypes are structured event types that end a plate appearance.
var DefaultTerminalTypes = []string{"In play", "Batter Interference", "Walk", "Strikeout"}

const hitByPitch = "Hit By Pitch"

var ballDescriptions = map[string]struct{}{
	"Ball":     {},
	hitByPitch: {},
	"Automatic Ball - Pitcher Pitch Timer Violation": {},
}

var strikeDescriptions = map[string]struct{}{
	"Called Strike":     {},
	"Swinging Strike":   {},
	"Foul":              {},
	"Foul Tip":          {},
	"Missed Bunt":       {},
	"Swinging Pitchout": {},
	"Foul Bunt":         {},
	"Foul Tip Bunt":     {},
	"Bunt Foul Tip":     {},
	"Bunt Foul":         {},
	"Strike":            {},
}

// a foul that is not a bunt or a caught tip cannot produce a third strike
var foulDescriptions = map[string]struct{}{
	"Foul": {},
}

// ClassifyOutcome maps a pitch description to ball, strike or in-play.
func ClassifyOutcome(description string, inPlayPrefixes []string) Outcome {
	value := strings.TrimSpace(description)
	if value == "" {
		return OutcomeUnknown
	}
	if hasAnyPrefix(value, inPlayPrefixes) {
		return OutcomeInPlay
	}
	if _, ok := ballDescriptions[value]; ok {
		return OutcomeBall
	}
	if _, ok := strikeDescriptions[value]; ok {
		return OutcomeStrike
	}
	return OutcomeUnknown
}

// isHitByPitch reports a pitch that is tallied as a ball but awards first base.
func isHitByPitch(description string) bool {
	return strings.TrimSpace(description) == hitByPitch
}

func isFoul(description string) bool {
	_, ok := foulDescriptions[strings.TrimSpace(description)]
	return ok
}

func hasAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// OutcomeTally counts pitch outcomes observed at one count state.
type OutcomeTally struct {
	Ball   int `json:"ball"`
	Strike int `json:"strike"`
	InPlay int `json:"in_play"`
}

func (t *OutcomeTally) Add(outcome Outcome) {
	switch outcome {
	case OutcomeBall:
		t.Ball++
	case OutcomeStrike:
		t.Strike++
	case OutcomeInPlay:
		t.InPlay++
	}
}

func (t OutcomeTally) Total() int {
	return t.Ball + t.Strike + t.InPlay
}
