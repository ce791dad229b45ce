// Package scope turns raw text-field edits into scoped or global search
// intent. A Registry maps short trigger tokens to providers; the Machine in
// state.go is the pure reducer over those triggers.
package scope

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Entry is one registered scope trigger.
type Entry struct {
	// ID is the trigger token the user types, matched ASCII
	// case-insensitively and only when followed by whitespace.
	ID string
	// ProviderID names the provider that owns the scope.
	ProviderID string
	Title      string
	Subtitle   string
	Icon       string
}

var (
	// ErrEmptyTrigger rejects registrations with a blank trigger token.
	ErrEmptyTrigger = errors.New("scope: empty trigger token")
	// ErrEmptyProvider rejects registrations without a provider id.
	ErrEmptyProvider = errors.New("scope: empty provider id")
)

// Registry holds the currently configured scope triggers. Registration
// happens at wiring time but is guarded anyway so providers can come and go
// at runtime without racing the input path.
type Registry struct {
	mu      sync.RWMutex
	trie    *patricia.Trie
	entries map[string]Entry
}

// NewRegistry returns an empty trigger registry.
func NewRegistry() *Registry {
	return &Registry{
		trie:    patricia.NewTrie(),
		entries: make(map[string]Entry),
	}
}

// Register adds or replaces a trigger. The token is stored lowercased; two
// triggers differing only in case collapse into one.
func (r *Registry) Register(e Entry) error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyTrigger
	}
	if e.ProviderID == "" {
		return ErrEmptyProvider
	}
	key := lowerASCII(e.ID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = e
	r.trie.Set(patricia.Prefix(key), e)
	return nil
}

// Unregister removes a trigger; unknown ids are a no-op.
func (r *Registry) Unregister(id string) {
	key := lowerASCII(id)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	r.trie.Delete(patricia.Prefix(key))
}

// Get returns the entry registered under id, matched ASCII
// case-insensitively like MatchInput matches triggers.
func (r *Registry) Get(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[lowerASCII(id)]
	return e, ok
}

// Entries returns the registered triggers sorted by token, for stable
// listings in UIs and prefix suggestions.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return lowerASCII(out[i].ID) < lowerASCII(out[j].ID) })
	return out
}

// MatchInput reports the longest trigger that prefixes text and is
// immediately followed by whitespace, together with the remaining query
// (trimmed). The trailing-whitespace requirement means a bare trigger with
// no separator is still ordinary text.
func (r *Registry) MatchInput(text string) (Entry, string, bool) {
	lowered := lowerASCII(text)

	r.mu.RLock()
	var found Entry
	foundLen := -1
	_ = r.trie.VisitPrefixes(patricia.Prefix(lowered), func(p patricia.Prefix, item patricia.Item) error {
		n := len(p)
		if n >= len(text) {
			return nil
		}
		next, _ := utf8.DecodeRuneInString(text[n:])
		if !unicode.IsSpace(next) {
			return nil
		}
		if n > foundLen {
			foundLen = n
			found = item.(Entry)
		}
		return nil
	})
	r.mu.RUnlock()

	if foundLen < 0 {
		return Entry{}, "", false
	}
	remainder := strings.TrimSpace(text[foundLen:])
	return found, remainder, true
}

// lowerASCII lowercases A-Z only, preserving byte offsets so trigger-length
// slicing stays valid on the original text.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
