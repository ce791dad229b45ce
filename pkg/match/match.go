package match

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ferrith/lantern/pkg/index"
	"github.com/ferrith/lantern/pkg/norm"
)

// Matcher evaluates queries against NameIndex profiles. It is stateless
// apart from the fuzzy tuning table and safe for concurrent use.
type Matcher struct {
	tuning Tuning
}

// NewMatcher returns a Matcher with the given fuzzy tuning.
func NewMatcher(tuning Tuning) *Matcher {
	return &Matcher{tuning: tuning}
}

// Match returns the best candidate for query against idx, or nil when no
// strategy yields a usable score for the whole query or any of its tokens.
// An empty or whitespace-only query never matches anything.
func (m *Matcher) Match(query string, idx *index.NameIndex) *Candidate {
	if idx == nil || idx.Normalized == "" {
		return nil
	}
	q := norm.Normalize(query)
	if q == "" {
		return nil
	}

	best := m.evaluateToken(q, idx)

	// Per-token pass: each query token competes on its own, and full
	// coverage of a multi-token query earns a synthetic tokenAll candidate.
	tokenQueries := norm.Tokenize(query)
	matched := 0
	var bestToken *Candidate
	for _, tq := range tokenQueries {
		c := m.evaluateToken(tq, idx)
		if c == nil {
			continue
		}
		matched++
		if betterCandidate(c, bestToken) {
			bestToken = c
		}
	}
	if len(tokenQueries) > 1 && matched == len(tokenQueries) {
		tokenAll := &Candidate{Score: scoreTokenAll, Types: []Type{TypeTokenAll}}
		if betterCandidate(tokenAll, best) {
			best = tokenAll
		}
	}
	if betterCandidate(bestToken, best) {
		best = bestToken
	}
	if best == nil {
		return nil
	}

	// Coverage bonus: a multi-word query that touches several tokens of a
	// multi-word name ranks above the same strategy hit from one word, but
	// never displaces a stronger single-strategy match outright.
	if matched > 1 && len(tokenQueries) >= 2 {
		bonus := math.Min(coverageBonusCeil, coverageBonusStep*float64(matched-1))
		best.Score = math.Min(1.0, best.Score+bonus)
		best.Types = append(best.Types, TypeTokenBonus)
	}
	return best
}

// evaluateToken runs every strategy for a single normalized query against
// idx and keeps the strictly best-scoring result; exact ties resolve to the
// more specific strategy.
func (m *Matcher) evaluateToken(q string, idx *index.NameIndex) *Candidate {
	var best *Candidate
	consider := func(score float64, typ Type, positions []int) {
		c := &Candidate{Score: score, Types: []Type{typ}, Positions: positions}
		if betterCandidate(c, best) {
			best = c
		}
	}

	qLen := utf8.RuneCountInString(q)

	switch {
	case q == idx.Normalized:
		consider(scoreExact, TypeExact, posRange(0, qLen))
	case strings.HasPrefix(idx.Normalized, q):
		consider(scorePrefix, TypePrefix, posRange(0, qLen))
	default:
		if i := strings.Index(idx.Normalized, q); i >= 0 {
			start := utf8.RuneCountInString(idx.Normalized[:i])
			consider(scoreSubstring, TypeSubstring, posRange(start, qLen))
		}
	}

	for _, token := range idx.Tokens {
		if q == token {
			consider(scoreTokenExact, TypeToken, nil)
			break
		}
		if strings.HasPrefix(token, q) {
			consider(scoreTokenPrefix, TypeToken, nil)
		}
	}

	if idx.Acronym != "" {
		if q == idx.Acronym {
			consider(scoreAcronymExact, TypeAcronym, nil)
		} else if strings.HasPrefix(idx.Acronym, q) {
			consider(scoreAcronymPrefix, TypeAcronym, nil)
		}
	}

	if idx.PinyinFull != "" {
		if q == idx.PinyinFull {
			consider(scorePinyinFull, TypePinyinFull, nil)
		} else if strings.HasPrefix(idx.PinyinFull, q) {
			consider(scorePinyinFullPre, TypePinyinFull, nil)
		}
	}
	if idx.PinyinInitials != "" {
		if q == idx.PinyinInitials {
			consider(scorePinyinInit, TypePinyinInitials, nil)
		} else if strings.HasPrefix(idx.PinyinInitials, q) {
			consider(scorePinyinInitPre, TypePinyinInitials, nil)
		}
	}

	for _, alias := range idx.Aliases {
		if q == alias {
			consider(scoreAliasExact, TypeAlias, nil)
			break
		}
		if strings.HasPrefix(alias, q) {
			consider(scoreAliasPrefix, TypeAlias, nil)
		}
	}

	// Short queries get a cheap subsequence pass over individual ASCII
	// tokens; the first token that embeds the query wins.
	if qLen <= shortQueryMaxLength {
		for _, token := range idx.Tokens {
			if !isASCII(token) {
				continue
			}
			if isSubsequence(q, token) {
				consider(scoreShortSubseq, TypeToken, nil)
				break
			}
		}
	}

	if score, positions := m.fuzzyScore(q, idx.Normalized); score > 0 {
		consider(score, TypeFuzzy, positions)
	}

	return best
}

// betterCandidate reports whether a should replace b: strictly higher score
// wins, exact float equality falls back to the lower strategy priority.
func betterCandidate(a, b *Candidate) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Types[0] < b.Types[0]
}

func posRange(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
