// Package engine fans a query out to independent result providers and
// merges their output into one deterministically ordered list.
package engine

// Category groups results for the math-biased ordering policy: lower
// ordinals sort first when the query looks like arithmetic.
type Category uint8

const (
	CategoryCalculation Category = iota
	CategoryApplication
	CategoryCommand
	CategoryStandard
)

var categoryNames = [...]string{"calculation", "application", "command", "standard"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// ResultItem is one ranked result. Items are immutable values: providers
// build them once and the engine only re-sorts, never rewrites.
type ResultItem struct {
	Title      string
	Subtitle   string
	Icon       string
	Score      float64
	Action     string
	ProviderID string
	Category   Category
	IsPrefix   bool
	Preview    string
}
