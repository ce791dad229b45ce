package match

// Tuning holds the fuzzy-score constants. The defaults are empirically
// tuned; they are kept in a table rather than inlined so callers can swap
// them from config without touching the algorithm.
type Tuning struct {
	DensityWeight     float64
	ConsecutiveWeight float64
	LengthWeight      float64
	StartBonus        float64
	Floor             float64
	Cap               float64
}

// DefaultTuning returns the stock fuzzy constants.
func DefaultTuning() Tuning {
	return Tuning{
		DensityWeight:     0.55,
		ConsecutiveWeight: 0.25,
		LengthWeight:      0.10,
		StartBonus:        0.08,
		Floor:             0.60,
		Cap:               0.84,
	}
}

// subsequencePositions greedily matches query as an ordered subsequence of
// candidate and returns the matched rune offsets, or nil when the query
// cannot be embedded. Both inputs are already normalized.
func subsequencePositions(query, candidate string) []int {
	q := []rune(query)
	if len(q) == 0 {
		return nil
	}
	positions := make([]int, 0, len(q))
	qi := 0
	ci := 0
	for _, r := range candidate {
		if qi < len(q) && r == q[qi] {
			positions = append(positions, ci)
			qi++
		}
		ci++
	}
	if qi < len(q) {
		return nil
	}
	return positions
}

// isSubsequence reports whether query occurs in order inside candidate.
func isSubsequence(query, candidate string) bool {
	return subsequencePositions(query, candidate) != nil
}

// fuzzyScore rates an ordered-subsequence match of query inside the full
// normalized name. Density rewards tight spans, consecutiveRatio rewards
// contiguous runs, lengthRatio rewards covering more of the name, and a
// start bonus applies when the first matched rune is the name's first rune.
// Matches whose raw score falls below the floor are discarded.
func (m *Matcher) fuzzyScore(query, candidate string) (float64, []int) {
	positions := subsequencePositions(query, candidate)
	if positions == nil {
		return 0, nil
	}

	queryLen := len(positions)
	span := positions[queryLen-1] - positions[0] + 1
	density := float64(queryLen) / float64(span)

	consecutive := 0
	for i := 1; i < queryLen; i++ {
		if positions[i] == positions[i-1]+1 {
			consecutive++
		}
	}
	consecutiveRatio := 0.0
	if queryLen > 1 {
		consecutiveRatio = float64(consecutive) / float64(queryLen-1)
	}

	candidateLen := runeLen(candidate)
	lengthRatio := float64(queryLen) / float64(candidateLen)

	raw := m.tuning.DensityWeight*density +
		m.tuning.ConsecutiveWeight*consecutiveRatio +
		m.tuning.LengthWeight*lengthRatio
	if positions[0] == 0 {
		raw += m.tuning.StartBonus
	}
	if raw < m.tuning.Floor {
		return 0, nil
	}
	if raw > m.tuning.Cap {
		raw = m.tuning.Cap
	}
	return raw, positions
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
