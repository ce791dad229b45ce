package engine

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/panjf2000/ants/v2"
)

// Provider produces results for a query. Implementations must be safe to
// call concurrently with themselves and with other providers, must not
// retain the query beyond the call, and should keep their internal work
// sub-100ms to keep the whole search interactively fast.
type Provider interface {
	ID() string
	Search(ctx context.Context, query string, scoped bool) ([]ResultItem, error)
}

// Options configures an Engine.
type Options struct {
	// Workers caps the fan-out pool size; 0 lets ants pick its default.
	Workers int
	// ProviderTimeout bounds each provider call; 0 disables the bound and a
	// hung provider stalls its search call, as the original design did.
	// The bound is cooperative: it cancels the provider's context, so a
	// provider that never consults ctx still runs to completion.
	ProviderTimeout time.Duration
	// MaxResults truncates the merged list after ordering; 0 keeps all.
	MaxResults int
	Logger     *log.Logger
}

// Engine is the scatter-gather aggregator. Providers are injected at
// construction; there is no ambient registry.
type Engine struct {
	providers []Provider
	byID      map[string]Provider
	pool      *ants.Pool
	timeout   time.Duration
	limit     int
	logger    *log.Logger
}

// New builds an Engine over the given providers. Provider order is the
// concatenation order before sorting, so it should be deterministic.
func New(providers []Provider, opts Options) (*Engine, error) {
	size := opts.Workers
	if size <= 0 {
		size = ants.DefaultAntsPoolSize
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	byID := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byID[p.ID()] = p
	}
	return &Engine{
		providers: providers,
		byID:      byID,
		pool:      pool,
		timeout:   opts.ProviderTimeout,
		limit:     opts.MaxResults,
		logger:    logger,
	}, nil
}

// Close releases the worker pool.
func (e *Engine) Close() {
	e.pool.Release()
}

// Search fans query out to the active providers concurrently, waits for all
// of them, and returns the merged ordered list. With providerIDs given only
// those providers run; unknown ids are skipped. A global (unscoped) search
// with an empty trimmed query returns nothing without invoking anyone,
// while a scoped empty query passes through so the scoped provider can
// serve its default list.
func (e *Engine) Search(ctx context.Context, query string, scoped bool, providerIDs ...string) []ResultItem {
	if !scoped && strings.TrimSpace(query) == "" {
		return nil
	}

	active := e.providers
	if len(providerIDs) > 0 {
		active = make([]Provider, 0, len(providerIDs))
		for _, id := range providerIDs {
			if p, ok := e.byID[id]; ok {
				active = append(active, p)
			}
		}
	}
	if len(active) == 0 {
		return nil
	}

	// One slot per provider: no lock, and concatenation order stays the
	// provider order regardless of completion order.
	slots := make([][]ResultItem, len(active))
	var wg sync.WaitGroup
	for i, p := range active {
		i, p := i, p
		wg.Add(1)
		task := func() {
			defer wg.Done()
			slots[i] = e.callProvider(ctx, p, query, scoped)
		}
		if err := e.pool.Submit(task); err != nil {
			// Pool saturated or released: degrade to inline execution
			// rather than dropping the provider.
			e.logger.Warn("fan-out pool rejected task", "provider", p.ID(), "err", err)
			task()
		}
	}
	wg.Wait()

	var merged []ResultItem
	for _, items := range slots {
		merged = append(merged, items...)
	}
	sortResults(merged, IsMathQuery(query))
	if e.limit > 0 && len(merged) > e.limit {
		merged = merged[:e.limit]
	}
	return merged
}

// callProvider isolates one provider call: errors and panics are logged and
// replaced by an empty list so a failing provider can never corrupt or
// block the others.
func (e *Engine) callProvider(ctx context.Context, p Provider, query string, scoped bool) (items []ResultItem) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("provider panicked", "provider", p.ID(), "panic", r)
			items = nil
		}
	}()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	items, err := p.Search(ctx, query, scoped)
	if err != nil {
		e.logger.Error("provider failed", "provider", p.ID(), "err", err)
		return nil
	}
	return items
}

// sortResults applies the final ordering policy. Math-like queries order by
// category first so a calculator answer beats general matches at equal
// score; both policies fall through score, then title length, then the
// title itself so equal inputs always produce the same list.
func sortResults(items []ResultItem, mathQuery bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if mathQuery && a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Title) != len(b.Title) {
			return len(a.Title) < len(b.Title)
		}
		return a.Title < b.Title
	})
}
