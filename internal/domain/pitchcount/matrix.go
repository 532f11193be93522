package pitchcount

// TransitionMatrix holds next-state probabilities. Row i is a distribution over
// ColLabels for the state RowLabels[i], or all zeros when that state was never observed.
type TransitionMatrix struct {
	Values    [][]float64
	RowLabels []CountState
	ColLabels []CountState
}

// BuildMatrix counts transitions over the state space and normalizes each row.
// Transitions that reference a state outside the space are dropped.
func BuildMatrix(space *StateSpace, transitions []Transition) TransitionMatrix {
	if space == nil {
		space = DefaultStateSpace()
	}

	n := space.Len()
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}

	for _, tr := range transitions {
		i, ok := space.IndexOf(tr.From)
		if !ok {
			continue
		}
		j, ok := space.IndexOf(tr.To)
		if !ok {
			continue
		}
		values[i][j]++
	}

	for i := range values {
		var sum float64
		for _, v := range values[i] {
			sum += v
		}
		if sum <= 0 {
			continue
		}
		for j := range values[i] {
			values[i][j] /= sum
		}
	}

	return TransitionMatrix{
		Values:    values,
		RowLabels: space.States(),
		ColLabels: space.States(),
	}
}

func (m TransitionMatrix) Size() int {
	return len(m.Values)
}

// Probability returns P(to | from), false when either state is not a label.
func (m TransitionMatrix) Probability(from, to CountState) (float64, bool) {
	i := labelIndex(m.RowLabels, from)
	j := labelIndex(m.ColLabels, to)
	if i < 0 || j < 0 || i >= len(m.Values) || j >= len(m.Values[i]) {
		return 0, false
	}
	return m.Values[i][j], true
}

func (m TransitionMatrix) RowSum(i int) float64 {
	if i < 0 || i >= len(m.Values) {
		return 0
	}
	var sum float64
	for _, v := range m.Values[i] {
		sum += v
	}
	return sum
}

// ObservedRows reports the row labels that carry a distribution.
func (m TransitionMatrix) ObservedRows() []CountState {
	out := make([]CountState, 0, len(m.RowLabels))
	for i, label := range m.RowLabels {
		if m.RowSum(i) > 0 {
			out = append(out, label)
		}
	}
	return out
}

func labelIndex(labels []CountState, state CountState) int {
	key := state.Key()
	for i, label := range labels {
		if label.Key() == key {
			return i
		}
	}
	return -1
}
