package providers

import (
	"context"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/ferrith/lantern/pkg/engine"
)

// CalcID is the calculator provider's id.
const CalcID = "calc"

// Calc answers arithmetic queries with a single Calculation-category item.
// Anything that does not parse or evaluate cleanly yields no results; the
// provider never surfaces an error for garbage input.
type Calc struct{}

// NewCalc returns the calculator provider.
func NewCalc() *Calc { return &Calc{} }

// ID implements engine.Provider.
func (c *Calc) ID() string { return CalcID }

// Search implements engine.Provider.
func (c *Calc) Search(_ context.Context, query string, _ bool) ([]engine.ResultItem, error) {
	q := strings.TrimSpace(query)
	if !engine.IsMathQuery(q) {
		return nil, nil
	}
	exprText := strings.TrimSpace(strings.TrimPrefix(q, "="))
	if exprText == "" {
		return nil, nil
	}

	expr, err := govaluate.NewEvaluableExpression(exprText)
	if err != nil {
		return nil, nil
	}
	value, err := expr.Evaluate(nil)
	if err != nil {
		return nil, nil
	}
	result, ok := value.(float64)
	if !ok {
		return nil, nil
	}

	title := formatNumber(result)
	return []engine.ResultItem{{
		Title:      title,
		Subtitle:   exprText + " =",
		Score:      1.0,
		Action:     title,
		ProviderID: CalcID,
		Category:   engine.CategoryCalculation,
	}}, nil
}

// formatNumber renders integers without a trailing ".0" and everything else
// with minimal digits.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
