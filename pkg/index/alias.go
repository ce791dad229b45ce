package index

// AliasEntry carries the synonym lists for one entity. Full holds whole-name
// synonyms, Initials holds acronym-like synonyms, Extra holds free-form ones.
type AliasEntry struct {
	Full     []string
	Initials []string
	Extra    []string
}

// Merge unions user-supplied aliases into built-in ones, per field. User
// aliases augment built-ins and never replace them; order keeps built-ins
// first so precedence rules stay stable.
func (a *AliasEntry) Merge(user *AliasEntry) *AliasEntry {
	if a == nil {
		return user
	}
	if user == nil {
		return a
	}
	return &AliasEntry{
		Full:     unionStrings(a.Full, user.Full),
		Initials: unionStrings(a.Initials, user.Initials),
		Extra:    unionStrings(a.Extra, user.Extra),
	}
}

func unionStrings(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range base {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range extra {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
