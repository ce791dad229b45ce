// Package providers holds the concrete result providers wired into the
// engine: application search over a name index snapshot, a calculator, and
// registry-backed prefix suggestions.
package providers

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/ferrith/lantern/pkg/engine"
	"github.com/ferrith/lantern/pkg/index"
	"github.com/ferrith/lantern/pkg/match"
)

// AppsID is the application provider's id, also used as its scope target.
const AppsID = "apps"

// AppEntry is one launchable application as delivered by the scanning
// collaborator: display name, launch target and optional aliases.
type AppEntry struct {
	Name  string
	Path  string
	Icon  string
	Alias *index.AliasEntry
}

type indexedApp struct {
	entry AppEntry
	index *index.NameIndex
}

// Apps matches queries against the installed-application catalog. The
// catalog is an immutable snapshot swapped atomically by SetEntries, so
// searches never lock and never observe a half-built index.
type Apps struct {
	matcher *match.Matcher
	tr      index.Transliterator
	snap    atomic.Pointer[[]indexedApp]
	logger  *log.Logger
}

// NewApps returns an application provider with an empty catalog.
func NewApps(matcher *match.Matcher, tr index.Transliterator, logger *log.Logger) *Apps {
	if logger == nil {
		logger = log.Default()
	}
	a := &Apps{matcher: matcher, tr: tr, logger: logger}
	empty := make([]indexedApp, 0)
	a.snap.Store(&empty)
	return a
}

// ID implements engine.Provider.
func (a *Apps) ID() string { return AppsID }

// SetEntries rebuilds the catalog from entries and publishes it in one
// atomic swap. Indexes build in parallel; in-flight searches keep reading
// the previous snapshot until the swap lands.
func (a *Apps) SetEntries(entries []AppEntry) {
	sources := make([]index.Source, len(entries))
	for i, e := range entries {
		sources[i] = index.Source{Name: e.Name, Alias: e.Alias}
	}
	indexes := index.BuildAll(sources, a.tr)

	apps := make([]indexedApp, 0, len(entries))
	for i, e := range entries {
		if indexes[i].Normalized == "" {
			// A name that normalizes to nothing can never be matched.
			a.logger.Warn("skipping app with empty normalized name", "name", e.Name)
			continue
		}
		apps = append(apps, indexedApp{entry: e, index: indexes[i]})
	}
	a.snap.Store(&apps)
	a.logger.Debug("app catalog swapped", "entries", len(apps))
}

// Len reports the current catalog size.
func (a *Apps) Len() int {
	return len(*a.snap.Load())
}

// Search implements engine.Provider. Every catalog entry is scored by the
// matcher; only entries with a candidate make it into the result list. An
// empty query yields nothing even when scoped: there is no default list for
// applications. Cancellation is checked between batches so a large catalog
// scan stops early once the deadline passes.
func (a *Apps) Search(ctx context.Context, query string, _ bool) ([]engine.ResultItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	apps := *a.snap.Load()
	var items []engine.ResultItem
	for i, app := range apps {
		if i&63 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		c := a.matcher.Match(query, app.index)
		if c == nil {
			continue
		}
		items = append(items, engine.ResultItem{
			Title:      app.entry.Name,
			Subtitle:   app.entry.Path,
			Icon:       app.entry.Icon,
			Score:      c.Score,
			Action:     app.entry.Path,
			ProviderID: AppsID,
			Category:   engine.CategoryApplication,
		})
	}
	return items, nil
}
