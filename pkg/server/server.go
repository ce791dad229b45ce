package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ferrith/lantern/pkg/engine"
	"github.com/ferrith/lantern/pkg/scope"
)

// Server handles the IPC for launcher searches. It owns one search session:
// the scope state machine's State lives here, mutated only through the
// reducer as ops arrive.
type Server struct {
	engine   *engine.Engine
	machine  *scope.Machine
	registry *scope.Registry
	state    scope.State
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
	out      *bufio.Writer
	requests int
	limit    int
}

// NewServer creates a search server using stdin/stdout for IPC.
func NewServer(eng *engine.Engine, registry *scope.Registry, limit int) *Server {
	return newServerWithIO(eng, registry, limit, os.Stdin, os.Stdout)
}

// newServerWithIO wires explicit streams; tests drive the loop through
// in-memory buffers.
func newServerWithIO(eng *engine.Engine, registry *scope.Registry, limit int, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		engine:   eng,
		machine:  scope.NewMachine(registry),
		registry: registry,
		state:    scope.Initial(),
		dec:      msgpack.NewDecoder(bufio.NewReader(r)),
		enc:      msgpack.NewEncoder(out),
		out:      out,
		limit:    limit,
	}
}

// Start begins listening for IPC requests. It returns nil on EOF and the
// underlying error when the stream breaks. A frame that decodes but is not a
// valid request gets an error response and the loop keeps serving.
func (s *Server) Start() error {
	log.Debug("Starting server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}
		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			log.Errorf("Decoding request: %v", err)
			s.sendError("", fmt.Sprintf("bad request frame: %v", err))
			continue
		}
		s.handleRequest(req)
	}
}

// handleRequest dispatches one decoded frame.
func (s *Server) handleRequest(req Request) {
	s.requests++
	switch req.Op {
	case "search":
		s.handleSearch(req)
	case "input":
		var text string
		s.state, text = s.machine.HandleInputChange(s.state, req.Text)
		s.respondSession(req.ID, text)
	case "select":
		entry, ok := s.registry.Get(req.Prefix)
		if !ok {
			s.sendError(req.ID, fmt.Sprintf("unknown prefix: %s", req.Prefix))
			return
		}
		var text string
		s.state, text = s.machine.SelectPrefix(s.state, entry, req.Carry)
		s.respondSession(req.ID, text)
	case "backspace":
		var text string
		s.state, text = s.machine.HandleBackspace(s.state)
		s.respondSession(req.ID, text)
	case "escape":
		var text string
		s.state, text = s.machine.HandleEscape(s.state)
		s.respondSession(req.ID, text)
	case "reset":
		s.state = scope.Initial()
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "stats":
		s.send(StatsResponse{
			ID:       req.ID,
			Requests: s.requests,
			Scoped:   s.state.Scoped(),
			Triggers: len(s.registry.Entries()),
		})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op))
	}
}

// handleSearch runs a stateless search, outside the session state machine.
func (s *Server) handleSearch(req Request) {
	start := time.Now()
	items := s.convert(s.engine.Search(context.Background(), req.Query, req.Scoped, req.Providers...), req.Limit)
	s.send(SearchResponse{
		ID:        req.ID,
		Items:     items,
		Count:     len(items),
		TimeTaken: time.Since(start).Microseconds(),
		Text:      req.Query,
	})
}

// respondSession searches with the session's current state and reports the
// new visible text plus scope alongside the items.
func (s *Server) respondSession(id, text string) {
	start := time.Now()
	var items []engine.ResultItem
	if s.state.Scoped() {
		items = s.engine.Search(context.Background(), s.state.Query, true, s.state.ProviderID())
	} else {
		items = s.engine.Search(context.Background(), s.state.Query, false)
	}
	converted := s.convert(items, 0)
	s.send(SearchResponse{
		ID:        id,
		Items:     converted,
		Count:     len(converted),
		TimeTaken: time.Since(start).Microseconds(),
		Text:      text,
		Scope:     s.state.ProviderID(),
	})
}

func (s *Server) effectiveLimit(reqLimit int) int {
	if reqLimit > 0 {
		return reqLimit
	}
	if s.limit > 0 {
		return s.limit
	}
	return int(^uint(0) >> 1)
}

func (s *Server) convert(items []engine.ResultItem, reqLimit int) []Item {
	limit := s.effectiveLimit(reqLimit)
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = Item{
			Title:    item.Title,
			Subtitle: item.Subtitle,
			Icon:     item.Icon,
			Score:    item.Score,
			Action:   item.Action,
			Provider: item.ProviderID,
			Category: item.Category.String(),
			IsPrefix: item.IsPrefix,
			Preview:  item.Preview,
		}
	}
	return out
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		log.Errorf("Flushing response: %v", err)
	}
}

func (s *Server) sendError(id, message string) {
	s.send(StatusResponse{ID: id, Status: "error", Error: message})
}
