package norm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		desc     string
	}{
		{"Visual Studio Code", "visualstudiocode", "spaces dropped, case folded"},
		{"Café", "cafe", "diacritics folded"},
		{"ＦｕｌｌＷｉｄｔｈ１２３", "fullwidth123", "full-width folded"},
		{"e-mail_2.0!", "email20", "punctuation dropped, not replaced"},
		{"微信", "微信", "CJK ideographs retained"},
		{"QQ音乐", "qq音乐", "mixed latin and CJK"},
		{"Ω≈ç√∫", "c", "symbols dropped, foldable letters kept"},
		{"  \t\n ", "", "whitespace-only collapses to empty"},
		{"", "", "empty stays empty"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Normalize(tc.input), tc.desc)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Visual Studio Code", "Café au Lait", "微信", "ＷｉｄｅText",
		"e-mail@example.com", "IntelliJ IDEA 2024.1",
	}
	for _, s := range inputs {
		once := Normalize(s)
		require.Equal(t, once, Normalize(once), "normalize(%q) must be idempotent", s)
	}
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
		desc     string
	}{
		{"Visual Studio Code", []string{"visual", "studio", "code"}, "split on spaces"},
		{"e-mail_reader", []string{"e", "mail", "reader"}, "split on punctuation"},
		{"XMLHttpRequest", []string{"xml", "http", "request"}, "upper run followed by lower"},
		{"IntelliJ", []string{"intelli", "j"}, "lower to upper boundary"},
		{"word2vec", []string{"word2vec"}, "digits do not split"},
		{"ToDo List", []string{"to", "do", "list"}, "camel inside a word"},
		{"微信 Pay", []string{"微信", "pay"}, "CJK token survives"},
		{"---", nil, "separator-only text has no tokens"},
		{"", nil, "empty text has no tokens"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Tokenize(tc.input), tc.desc)
	}
}

func TestTokenizeStable(t *testing.T) {
	input := "Adobe Photoshop CC 2024"
	require.Equal(t, Tokenize(input), Tokenize(input))
}

func TestAcronym(t *testing.T) {
	testCases := []struct {
		tokens   []string
		expected string
		desc     string
	}{
		{[]string{"adobe", "photoshop"}, "ap", "basic"},
		{[]string{"visual", "studio", "code"}, "vsc", "three tokens"},
		{[]string{"微信", "pay"}, "p", "non-ASCII token skipped"},
		{[]string{"微信"}, "", "CJK-only name has no acronym"},
		{nil, "", "no tokens"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Acronym(tc.tokens), tc.desc)
	}
}

func TestIsCJK(t *testing.T) {
	assert.True(t, IsCJK('微'))
	assert.True(t, IsCJK('㐀')) // Extension A
	assert.False(t, IsCJK('a'))
	assert.False(t, IsCJK('я'))
	assert.True(t, ContainsCJK("QQ音乐"))
	assert.False(t, ContainsCJK("plain ascii"))
}
