package engine

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider returns a fixed list, or fails, or panics, depending on how
// the test wires it.
type fakeProvider struct {
	id     string
	items  []ResultItem
	err    error
	panics bool
	// delay sleeps before returning unless the context expires first.
	delay time.Duration

	calls int
}

func (p *fakeProvider) ID() string { return p.id }

func (p *fakeProvider) Search(ctx context.Context, query string, scoped bool) ([]ResultItem, error) {
	p.calls++
	if p.panics {
		panic("boom")
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.items, p.err
}

func item(title string, score float64) ResultItem {
	return ResultItem{Title: title, Score: score, Category: CategoryStandard}
}

func newTestEngine(t *testing.T, opts Options, providers ...Provider) *Engine {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	eng, err := New(providers, opts)
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng
}

func titles(items []ResultItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestSearchMergesAndOrdersByScore(t *testing.T) {
	a := &fakeProvider{id: "a", items: []ResultItem{item("low", 0.2), item("mid", 0.5)}}
	b := &fakeProvider{id: "b", items: []ResultItem{item("high", 0.9)}}
	eng := newTestEngine(t, Options{}, a, b)

	got := eng.Search(context.Background(), "q", false)
	assert.Equal(t, []string{"high", "mid", "low"}, titles(got))
}

func TestSearchTieBreakShorterTitleThenLex(t *testing.T) {
	a := &fakeProvider{id: "a", items: []ResultItem{item("zz", 0.5), item("longer name", 0.5)}}
	b := &fakeProvider{id: "b", items: []ResultItem{item("aa", 0.5)}}
	eng := newTestEngine(t, Options{}, a, b)

	got := eng.Search(context.Background(), "q", false)
	assert.Equal(t, []string{"aa", "zz", "longer name"}, titles(got))
}

func TestSearchMathQueryOrdersCalculationFirst(t *testing.T) {
	apps := &fakeProvider{id: "apps", items: []ResultItem{
		{Title: "2+2 Photo Tool", Score: 0.95, Category: CategoryApplication},
	}}
	calc := &fakeProvider{id: "calc", items: []ResultItem{
		{Title: "4", Score: 0.9, Category: CategoryCalculation},
	}}
	eng := newTestEngine(t, Options{}, apps, calc)

	got := eng.Search(context.Background(), "2+2", false)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].Title, "calculation outranks higher-scored app on math queries")

	// The same two items on a non-math query fall back to plain score order.
	got = eng.Search(context.Background(), "photo", false)
	assert.Equal(t, "2+2 Photo Tool", got[0].Title)
}

func TestSearchIsolatesFailures(t *testing.T) {
	errored := &fakeProvider{id: "bad", err: errors.New("index corrupt")}
	panicked := &fakeProvider{id: "worse", panics: true}
	healthy := &fakeProvider{id: "ok", items: []ResultItem{item("survivor", 0.7)}}
	eng := newTestEngine(t, Options{}, errored, panicked, healthy)

	got := eng.Search(context.Background(), "q", false)
	assert.Equal(t, []string{"survivor"}, titles(got))
}

func TestSearchEmptyGlobalQuerySkipsProviders(t *testing.T) {
	p := &fakeProvider{id: "a", items: []ResultItem{item("x", 1)}}
	eng := newTestEngine(t, Options{}, p)

	assert.Nil(t, eng.Search(context.Background(), "", false))
	assert.Nil(t, eng.Search(context.Background(), "   ", false))
	assert.Zero(t, p.calls)
}

func TestSearchEmptyScopedQueryReachesProvider(t *testing.T) {
	p := &fakeProvider{id: "clip", items: []ResultItem{item("latest entry", 0.5)}}
	eng := newTestEngine(t, Options{}, p)

	got := eng.Search(context.Background(), "", true, "clip")
	assert.Equal(t, []string{"latest entry"}, titles(got))
	assert.Equal(t, 1, p.calls)
}

func TestSearchProviderSubset(t *testing.T) {
	a := &fakeProvider{id: "a", items: []ResultItem{item("from a", 0.5)}}
	b := &fakeProvider{id: "b", items: []ResultItem{item("from b", 0.5)}}
	eng := newTestEngine(t, Options{}, a, b)

	got := eng.Search(context.Background(), "q", true, "b", "no-such-provider")
	assert.Equal(t, []string{"from b"}, titles(got))
	assert.Zero(t, a.calls)
}

func TestSearchMaxResultsTruncatesAfterOrdering(t *testing.T) {
	p := &fakeProvider{id: "a", items: []ResultItem{
		item("third", 0.3), item("first", 0.9), item("second", 0.6),
	}}
	eng := newTestEngine(t, Options{MaxResults: 2}, p)

	got := eng.Search(context.Background(), "q", false)
	assert.Equal(t, []string{"first", "second"}, titles(got))
}

func TestSearchProviderTimeout(t *testing.T) {
	slow := &fakeProvider{id: "slow", delay: 2 * time.Second, items: []ResultItem{item("late", 0.9)}}
	fast := &fakeProvider{id: "fast", items: []ResultItem{item("prompt", 0.5)}}
	eng := newTestEngine(t, Options{ProviderTimeout: 20 * time.Millisecond}, slow, fast)

	start := time.Now()
	got := eng.Search(context.Background(), "q", false)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, []string{"prompt"}, titles(got))
}

func TestSearchDeterministicAcrossRuns(t *testing.T) {
	a := &fakeProvider{id: "a", items: []ResultItem{item("alpha", 0.5), item("beta", 0.5)}}
	b := &fakeProvider{id: "b", items: []ResultItem{item("gamma", 0.5), item("al", 0.5)}}
	eng := newTestEngine(t, Options{}, a, b)

	first := titles(eng.Search(context.Background(), "q", false))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, titles(eng.Search(context.Background(), "q", false)))
	}
}
