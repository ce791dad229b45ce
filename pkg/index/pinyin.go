package index

import (
	"strings"

	"github.com/mozillazg/go-pinyin"

	"github.com/ferrith/lantern/pkg/norm"
)

// Transliterator converts a display name containing CJK ideographs into a
// romanized full form and an initials form. Implementations must be pure and
// safe for concurrent use; index building calls them from multiple
// goroutines.
type Transliterator interface {
	Transliterate(name string) (full, initials string)
}

// Pinyin transliterates Han characters with mozillazg/go-pinyin, keeping
// non-Han runes verbatim so mixed names like "QQ邮箱" yield "qqyouxiang"/"qqyx".
type Pinyin struct {
	args pinyin.Args
}

// NewPinyin returns a Transliterator using plain tone-less pinyin.
func NewPinyin() *Pinyin {
	return &Pinyin{args: pinyin.NewArgs()}
}

// Transliterate returns the full pinyin spelling and the per-character
// initials of name. Both outputs are normalized; either may be empty when
// the name carries no usable signal.
func (p *Pinyin) Transliterate(name string) (string, string) {
	var full, initials strings.Builder
	for _, r := range name {
		if norm.IsCJK(r) {
			readings := pinyin.SinglePinyin(r, p.args)
			if len(readings) == 0 || readings[0] == "" {
				continue
			}
			full.WriteString(readings[0])
			initials.WriteByte(readings[0][0])
			continue
		}
		full.WriteRune(r)
		initials.WriteRune(r)
	}
	return norm.Normalize(full.String()), norm.Normalize(initials.String())
}
