package providers

import (
	"context"
	"strings"

	"github.com/ferrith/lantern/pkg/engine"
	"github.com/ferrith/lantern/pkg/scope"
)

// PrefixesID is the prefix-suggestion provider's id.
const PrefixesID = "prefixes"

// Prefix-suggestion scores: an exact trigger hit ranks near literal app
// matches, a partial trigger or title hit stays below them.
const (
	prefixExactScore   = 0.89
	prefixPartialScore = 0.72
)

// Prefixes surfaces registry entries matching the global query as IsPrefix
// items, so the UI can offer entering a scope. It contributes nothing while
// already scoped.
type Prefixes struct {
	registry *scope.Registry
}

// NewPrefixes returns a prefix-suggestion provider over registry.
func NewPrefixes(registry *scope.Registry) *Prefixes {
	return &Prefixes{registry: registry}
}

// ID implements engine.Provider.
func (p *Prefixes) ID() string { return PrefixesID }

// Search implements engine.Provider.
func (p *Prefixes) Search(_ context.Context, query string, scoped bool) ([]engine.ResultItem, error) {
	if scoped {
		return nil, nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var items []engine.ResultItem
	for _, e := range p.registry.Entries() {
		id := strings.ToLower(e.ID)
		title := strings.ToLower(e.Title)
		score := 0.0
		switch {
		case q == id:
			score = prefixExactScore
		case strings.HasPrefix(id, q) || strings.HasPrefix(title, q):
			score = prefixPartialScore
		default:
			continue
		}
		items = append(items, engine.ResultItem{
			Title:      e.Title,
			Subtitle:   e.Subtitle,
			Icon:       e.Icon,
			Score:      score,
			Action:     e.ID,
			ProviderID: PrefixesID,
			Category:   engine.CategoryCommand,
			IsPrefix:   true,
		})
	}
	return items, nil
}
