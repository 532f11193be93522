package pitchcount

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const (
	// MaxBalls and MaxStrikes bound the counts that can be observed before a pitch.
	MaxBalls   = 3
	MaxStrikes = 2

	terminalKey = "X"
)

// CountState is the ball-strike count of an at-bat immediately before a pitch,
// or the terminal state that closes a plate appearance.
type CountState struct {
	Balls    int
	Strikes  int
	Terminal bool
}

// Terminal marks the end of a plate appearance.
var Terminal = CountState{Terminal: true}

func Count(balls, strikes int) CountState {
	return CountState{Balls: balls, Strikes: strikes}
}

// Key is the canonical identity of a state: "b-s" for counts, "X" for Terminal.
func (s CountState) Key() string {
	if s.Terminal {
		return terminalKey
	}
	return strconv.Itoa(s.Balls) + "-" + strconv.Itoa(s.Strikes)
}

func (s CountState) String() string {
	return s.Key()
}

// ParseCountState accepts "b-s" (or "b,s") and "X".
func ParseCountState(raw string) (CountState, error) {
	value := strings.TrimSpace(raw)
	if strings.EqualFold(value, terminalKey) {
		return Terminal, nil
	}

	parts := strings.FieldsFunc(value, func(r rune) bool { return r == '-' || r == ',' })
	if len(parts) != 2 {
		return CountState{}, fmt.Errorf("invalid count %q, expected balls-strikes", raw)
	}
	balls, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return CountState{}, fmt.Errorf("invalid balls in count %q: %w", raw, err)
	}
	strikes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return CountState{}, fmt.Errorf("invalid strikes in count %q: %w", raw, err)
	}
	if balls < 0 || strikes < 0 {
		return CountState{}, fmt.Errorf("invalid count %q: negative value", raw)
	}
	return Count(balls, strikes), nil
}

// StateSpace is the ordered set of count states used for matrix rows and columns.
// It is immutable after construction.
type StateSpace struct {
	states     []CountState
	index      map[string]int
	maxBalls   int
	maxStrikes int
}

// NewStateSpace enumerates every count with balls in [0,MaxBalls] and strikes in
// [0,MaxStrikes], drops the excluded counts and appends Terminal.
func NewStateSpace(excluded ...CountState) *StateSpace {
	skip := make(map[string]struct{}, len(excluded))
	for _, state := range excluded {
		if state.Terminal {
			continue
		}
		skip[state.Key()] = struct{}{}
	}

	states := make([]CountState, 0, (MaxBalls+1)*(MaxStrikes+1)+1)
	for balls := 0; balls <= MaxBalls; balls++ {
		for strikes := 0; strikes <= MaxStrikes; strikes++ {
			state := Count(balls, strikes)
			if _, ok := skip[state.Key()]; ok {
				continue
			}
			states = append(states, state)
		}
	}
	states = append(states, Terminal)

	index := make(map[string]int, len(states))
	for i, state := range states {
		index[state.Key()] = i
	}

	return &StateSpace{
		states:     states,
		index:      index,
		maxBalls:   MaxBalls,
		maxStrikes: MaxStrikes,
	}
}

var defaultStateSpace = sync.OnceValue(func() *StateSpace {
	return NewStateSpace()
})

// DefaultStateSpace returns the shared 13-state space with no excluded counts.
func DefaultStateSpace() *StateSpace {
	return defaultStateSpace()
}

func (s *StateSpace) Len() int {
	return len(s.states)
}

// States returns a copy of the ordered states.
func (s *StateSpace) States() []CountState {
	out := make([]CountState, len(s.states))
	copy(out, s.states)
	return out
}

func (s *StateSpace) IndexOf(state CountState) (int, bool) {
	i, ok := s.index[state.Key()]
	return i, ok
}

func (s *StateSpace) StateAt(i int) (CountState, bool) {
	if i < 0 || i >= len(s.states) {
		return CountState{}, false
	}
	return s.states[i], true
}

func (s *StateSpace) Contains(state CountState) bool {
	_, ok := s.index[state.Key()]
	return ok
}

func (s *StateSpace) MaxBalls() int {
	return s.maxBalls
}

func (s *StateSpace) MaxStrikes() int {
	return s.maxStrikes
}
