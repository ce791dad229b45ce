// Package index builds the per-entity matching profile consumed by the
// matcher: normalized name, tokens, acronym, optional pinyin forms and
// aliases. A NameIndex is built once per entity, never mutated afterwards,
// and shared freely across concurrent readers.
package index

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ferrith/lantern/pkg/norm"
)

// NameIndex is the precomputed matching profile for one entity.
type NameIndex struct {
	// Original is the display name, untouched.
	Original string
	// Normalized is the full folded name.
	Normalized string
	// Tokens are the normalized sub-words of the name, in order.
	Tokens []string
	// Acronym concatenates the first character of every ASCII token.
	Acronym string
	// PinyinFull and PinyinInitials are set only for names containing CJK
	// ideographs. Alias-provided romanizations win over the Transliterator.
	PinyinFull     string
	PinyinInitials string
	// Aliases holds the remaining normalized synonyms, deduplicated and
	// sorted longest-first then lexicographically.
	Aliases []string
}

// Source is one entity's raw naming material as delivered by the scanning
// collaborator: the display name plus optional alias lists.
type Source struct {
	Name  string
	Alias *AliasEntry
}

// Build constructs the immutable NameIndex for one source. Empty normalized
// strings are treated as no signal and skipped so they can never match
// everything. tr may be nil to disable transliteration.
func Build(src Source, tr Transliterator) *NameIndex {
	tokens := norm.Tokenize(src.Name)
	idx := &NameIndex{
		Original:   src.Name,
		Normalized: norm.Normalize(src.Name),
		Tokens:     tokens,
		Acronym:    norm.Acronym(tokens),
	}

	if norm.ContainsCJK(src.Name) {
		if tr != nil {
			idx.PinyinFull, idx.PinyinInitials = tr.Transliterate(src.Name)
		}
		// Alias romanizations take precedence over the provider-supplied
		// pinyin: the first usable full/initials alias replaces it.
		if src.Alias != nil {
			if full := firstNormalized(src.Alias.Full); full != "" {
				idx.PinyinFull = full
			}
			if initials := firstNormalized(src.Alias.Initials); initials != "" {
				idx.PinyinInitials = initials
			}
		}
	}

	idx.Aliases = collectAliases(src.Alias, idx.PinyinFull, idx.PinyinInitials)
	return idx
}

// BuildAll builds an index per source, in parallel, preserving source order.
// The returned slice is fully formed before it is handed to the caller, so
// publishing it through an atomic swap needs no further synchronization.
func BuildAll(sources []Source, tr Transliterator) []*NameIndex {
	out := make([]*NameIndex, len(sources))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			out[i] = Build(src, tr)
			return nil
		})
	}
	// Build never fails; the group is used only for bounded fan-out.
	_ = g.Wait()
	return out
}

func firstNormalized(values []string) string {
	for _, v := range values {
		if n := norm.Normalize(v); n != "" {
			return n
		}
	}
	return ""
}

// collectAliases normalizes and deduplicates every alias list, dropping
// entries equal to the pinyin forms so a single synonym is never credited
// through two strategies.
func collectAliases(alias *AliasEntry, pinyinFull, pinyinInitials string) []string {
	if alias == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	add := func(values []string) {
		for _, v := range values {
			n := norm.Normalize(v)
			if n == "" || seen[n] || n == pinyinFull || n == pinyinInitials {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	add(alias.Full)
	add(alias.Initials)
	add(alias.Extra)

	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
