package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransliterator returns fixed romanizations regardless of input.
type fakeTransliterator struct {
	full     string
	initials string
}

func (f fakeTransliterator) Transliterate(string) (string, string) {
	return f.full, f.initials
}

func TestBuildASCIIName(t *testing.T) {
	idx := Build(Source{Name: "Adobe Photoshop"}, nil)

	assert.Equal(t, "Adobe Photoshop", idx.Original)
	assert.Equal(t, "adobephotoshop", idx.Normalized)
	assert.Equal(t, []string{"adobe", "photoshop"}, idx.Tokens)
	assert.Equal(t, "ap", idx.Acronym)
	assert.Empty(t, idx.PinyinFull, "no pinyin for pure ASCII names")
	assert.Empty(t, idx.PinyinInitials)
	assert.Empty(t, idx.Aliases)
}

func TestBuildUsesTransliteratorForCJK(t *testing.T) {
	tr := fakeTransliterator{full: "weixin", initials: "wx"}
	idx := Build(Source{Name: "微信"}, tr)

	assert.Equal(t, "weixin", idx.PinyinFull)
	assert.Equal(t, "wx", idx.PinyinInitials)
}

func TestBuildAliasOverridesPinyin(t *testing.T) {
	tr := fakeTransliterator{full: "weixin", initials: "wx"}
	alias := &AliasEntry{Full: []string{"WeChat"}, Initials: []string{"WC"}}
	idx := Build(Source{Name: "微信", Alias: alias}, tr)

	assert.Equal(t, "wechat", idx.PinyinFull, "alias full wins over transliterator")
	assert.Equal(t, "wc", idx.PinyinInitials, "alias initials win over transliterator")
	// The winning aliases moved into the pinyin slots and must not also
	// appear in the alias list.
	assert.NotContains(t, idx.Aliases, "wechat")
	assert.NotContains(t, idx.Aliases, "wc")
}

func TestBuildRealPinyin(t *testing.T) {
	idx := Build(Source{Name: "微信"}, NewPinyin())

	assert.Equal(t, "weixin", idx.PinyinFull)
	assert.Equal(t, "wx", idx.PinyinInitials)
}

func TestPinyinKeepsLatinRunes(t *testing.T) {
	full, initials := NewPinyin().Transliterate("QQ邮箱")

	assert.Equal(t, "qqyouxiang", full)
	assert.Equal(t, "qqyx", initials)
}

func TestBuildAliasesSortedLongestFirst(t *testing.T) {
	alias := &AliasEntry{Extra: []string{"ps", "photo", "edit", "ps"}}
	idx := Build(Source{Name: "Adobe Photoshop", Alias: alias}, nil)

	require.Equal(t, []string{"photo", "edit", "ps"}, idx.Aliases,
		"longest first, then lexicographic, duplicates removed")
}

func TestBuildSkipsEmptyAliasSignal(t *testing.T) {
	alias := &AliasEntry{Full: []string{"", "   ", "!!!"}, Extra: []string{"real"}}
	idx := Build(Source{Name: "Thing"}, nil)
	require.Empty(t, idx.Aliases)

	idx = Build(Source{Name: "Thing", Alias: alias}, nil)
	assert.Equal(t, []string{"real"}, idx.Aliases,
		"aliases normalizing to empty are no signal, not match-everything")
}

func TestAliasEntryMerge(t *testing.T) {
	builtin := &AliasEntry{Full: []string{"WeChat"}, Initials: []string{"wx"}}
	user := &AliasEntry{Full: []string{"WeChat", "Weixin"}, Extra: []string{"chat"}}

	merged := builtin.Merge(user)

	assert.Equal(t, []string{"WeChat", "Weixin"}, merged.Full, "union keeps built-ins first")
	assert.Equal(t, []string{"wx"}, merged.Initials, "user never removes built-ins")
	assert.Equal(t, []string{"chat"}, merged.Extra)

	assert.Same(t, user, (*AliasEntry)(nil).Merge(user))
	assert.Same(t, builtin, builtin.Merge(nil))
}

func TestBuildAllPreservesOrder(t *testing.T) {
	sources := []Source{
		{Name: "Alpha"}, {Name: "Beta"}, {Name: "Gamma"}, {Name: "Delta"},
	}
	indexes := BuildAll(sources, nil)

	require.Len(t, indexes, len(sources))
	for i, src := range sources {
		assert.Equal(t, src.Name, indexes[i].Original)
	}
}
