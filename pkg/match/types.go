// Package match scores a query against a NameIndex through a set of
// independent strategies and fuses them into a single best candidate with a
// deterministic tie-break.
package match

// Type tags the strategy that produced a candidate. The ordinal doubles as
// the tie-break priority: when two candidates score exactly equal, the lower
// (more specific) Type wins.
type Type uint8

const (
	TypeExact Type = iota
	TypePrefix
	TypeSubstring
	TypeTokenAll
	TypeToken
	TypeAlias
	TypeAcronym
	TypePinyinFull
	TypePinyinInitials
	TypeFuzzy
	TypeTokenBonus
)

var typeNames = [...]string{
	"exact",
	"prefix",
	"substring",
	"tokenAll",
	"token",
	"alias",
	"acronym",
	"pinyinFull",
	"pinyinInitials",
	"fuzzy",
	"tokenBonus",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Candidate is the transient result of matching one query against one index.
type Candidate struct {
	// Score is in [0,1]; compared with plain float64 ordering, no epsilon.
	Score float64
	// Types lists the strategies applied, primary strategy first.
	Types []Type
	// Positions holds matched rune offsets into the normalized name for the
	// strategies that can localize their match; empty otherwise.
	Positions []int
}

// Is reports whether typ is among the candidate's applied strategies.
func (c *Candidate) Is(typ Type) bool {
	for _, t := range c.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// Strategy score table. The values are ordered so that more literal matches
// always outrank looser ones; fuzzy caps below the weakest literal strategy.
const (
	scoreExact          = 1.00
	scorePrefix         = 0.95
	scoreSubstring      = 0.90
	scoreTokenAll       = 0.88
	scoreTokenExact     = 0.88
	scoreTokenPrefix    = 0.85
	scoreAcronymExact   = 0.86
	scoreAcronymPrefix  = 0.84
	scorePinyinFull     = 0.85
	scorePinyinFullPre  = 0.82
	scorePinyinInit     = 0.83
	scorePinyinInitPre  = 0.80
	scoreAliasExact     = 0.86
	scoreAliasPrefix    = 0.84
	scoreShortSubseq    = 0.84
	coverageBonusStep   = 0.03
	coverageBonusCeil   = 0.08
	shortQueryMaxLength = 4
)
