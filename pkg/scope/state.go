package scope

import "strings"

// State is the launcher session's search state: the visible query plus the
// active scope. Scope is Prefixed exactly when Prefix is non-nil; a nil
// Prefix means global search. State is a value; transitions return a new
// State and never mutate the input.
type State struct {
	Query  string
	Prefix *Entry
}

// Initial returns the state a fresh session starts in: global, empty query.
func Initial() State {
	return State{}
}

// Scoped reports whether the state is inside a prefix scope.
func (s State) Scoped() bool {
	return s.Prefix != nil
}

// ProviderID returns the scoped provider id, or "" while global.
func (s State) ProviderID() string {
	if s.Prefix == nil {
		return ""
	}
	return s.Prefix.ProviderID
}

// Machine is the deterministic reducer over search states. It holds only
// the trigger registry; every transition is a pure function of
// (state, input) and is total over arbitrary strings.
type Machine struct {
	registry *Registry
}

// NewMachine returns a reducer backed by registry.
func NewMachine(registry *Registry) *Machine {
	return &Machine{registry: registry}
}

// HandleInputChange consumes the new full text-field content. While global
// it scans for a trigger followed by whitespace and enters that scope,
// leaving only the remainder visible; otherwise the text passes through
// verbatim. While already scoped the text never re-scans for triggers.
func (m *Machine) HandleInputChange(s State, text string) (State, string) {
	if s.Prefix != nil {
		s.Query = text
		return s, text
	}
	if entry, remainder, ok := m.registry.MatchInput(text); ok {
		return State{Query: remainder, Prefix: &entry}, remainder
	}
	s.Query = text
	return s, text
}

// SelectPrefix enters entry's scope unconditionally, e.g. when the user
// picks a prefix suggestion from the result list. With carry the typed
// remainder survives (trimmed); without it the query clears.
func (m *Machine) SelectPrefix(s State, entry Entry, carry bool) (State, string) {
	query := ""
	if carry {
		query = strings.TrimSpace(s.Query)
	}
	return State{Query: query, Prefix: &entry}, query
}

// HandleBackspace leaves the scope when the query is already empty,
// clearing the prefix. Any other state is returned unchanged: the actual
// character deletion is the caller's job.
func (m *Machine) HandleBackspace(s State) (State, string) {
	if s.Prefix != nil && s.Query == "" {
		return Initial(), ""
	}
	return s, s.Query
}

// HandleEscape drops the scope but keeps the typed text as the new global
// query, unlike backspace-to-empty which clears it.
func (m *Machine) HandleEscape(s State) (State, string) {
	if s.Prefix != nil {
		return State{Query: s.Query}, s.Query
	}
	return s, s.Query
}

