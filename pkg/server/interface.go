/*
Package server implements msgpack IPC for the Lantern search core.

The server provides a minimal interface for launcher frontends using msgpack
serialization over stdin/stdout. Messages are processed synchronously with
timing info included in responses.

# IPC

The server operates on a request response model where clients send
structured messages via stdin and receive responses through stdout. Each
message carries an ID, an op, and op-specific fields.

A direct search:

	{"id": "req_001", "op": "search", "q": "visual stu", "l": 16}

An input-field edit running through the scope state machine, so typing
"c foo" with a registered "c" trigger scopes the session and searches only
the clipboard provider:

	{"id": "req_002", "op": "input", "text": "c foo"}

Key ops drive the scoped-session transitions:

	{"id": "req_003", "op": "backspace"}
	{"id": "req_004", "op": "escape"}

Responses carry the merged ranked items plus the session's visible text and
scope so the frontend can mirror the state machine:

	{"id": "req_002", "items": [...], "c": 3, "t": 210, "text": "foo", "scope": "clipboard"}

Unknown ops and undecodable fields produce a status response with an error
string; the read loop itself only terminates on EOF or a broken stream.
*/
package server

// Request is an incoming frame from the client.
type Request struct {
	ID string `msgpack:"id"`
	// Op is one of: search, input, select, backspace, escape, reset,
	// health, stats.
	Op string `msgpack:"op"`
	// Query is used by the search op, bypassing the session state.
	Query  string `msgpack:"q,omitempty"`
	Scoped bool   `msgpack:"scoped,omitempty"`
	// Text is the full text-field content for the input op.
	Text string `msgpack:"text,omitempty"`
	// Prefix is the trigger token for the select op.
	Prefix string `msgpack:"prefix,omitempty"`
	Carry  bool   `msgpack:"carry,omitempty"`
	// Providers restricts a search op to the named providers.
	Providers []string `msgpack:"providers,omitempty"`
	Limit     int      `msgpack:"l,omitempty"`
}

// Item is one ranked result in a response.
type Item struct {
	Title    string  `msgpack:"title"`
	Subtitle string  `msgpack:"sub,omitempty"`
	Icon     string  `msgpack:"icon,omitempty"`
	Score    float64 `msgpack:"score"`
	Action   string  `msgpack:"action,omitempty"`
	Provider string  `msgpack:"provider"`
	Category string  `msgpack:"cat"`
	IsPrefix bool    `msgpack:"is_prefix,omitempty"`
	Preview  string  `msgpack:"preview,omitempty"`
}

// SearchResponse answers search, input, select, backspace and escape ops.
type SearchResponse struct {
	ID    string `msgpack:"id"`
	Items []Item `msgpack:"items"`
	Count int    `msgpack:"c"`
	// TimeTaken is the search duration in microseconds.
	TimeTaken int64 `msgpack:"t"`
	// Text is the session's visible text-field value after the op.
	Text string `msgpack:"text"`
	// Scope is the scoped provider id, empty while global.
	Scope string `msgpack:"scope,omitempty"`
}

// StatusResponse answers health, reset and failed ops.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
}

// StatsResponse reports session counters.
type StatsResponse struct {
	ID       string `msgpack:"id"`
	Requests int    `msgpack:"requests"`
	Scoped   bool   `msgpack:"scoped"`
	Triggers int    `msgpack:"triggers"`
}
