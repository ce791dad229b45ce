// Package cli handles cmd line input and searches for DBG and testing various features
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ferrith/lantern/pkg/engine"
	"github.com/ferrith/lantern/pkg/scope"
)

// InputHandler drives an interactive search session from stdin. Every line
// is treated as the full text-field content and run through the scope state
// machine before searching, so typing "c foo" with a registered "c" trigger
// behaves exactly like the launcher UI would.
type InputHandler struct {
	eng          *engine.Engine
	machine      *scope.Machine
	state        scope.State
	suggestLimit int
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(eng *engine.Engine, registry *scope.Registry, limit int) *InputHandler {
	return &InputHandler{
		eng:          eng,
		machine:      scope.NewMachine(registry),
		state:        scope.Initial(),
		suggestLimit: limit,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and feeds it
// through the state machine and the engine. `:bs` and `:esc` simulate the
// backspace-at-empty and escape keys. Loop terminates on stdin error.
func (h *InputHandler) Start() error {
	log.Print("Lantern CLI [DBG]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a query and press Enter (:bs backspace, :esc escape, Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		h.handleInput(strings.TrimRight(line, "\r\n"))
	}
}

// handleInput processes a single line: key simulation or an input edit.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	var text string
	switch line {
	case ":bs":
		h.state, text = h.machine.HandleBackspace(h.state)
	case ":esc":
		h.state, text = h.machine.HandleEscape(h.state)
	default:
		h.state, text = h.machine.HandleInputChange(h.state, line)
	}

	if h.state.Scoped() {
		log.Printf("scope: %s  text: %q", h.state.ProviderID(), text)
	} else {
		log.Printf("scope: global  text: %q", text)
	}

	start := time.Now()
	var items []engine.ResultItem
	if h.state.Scoped() {
		items = h.eng.Search(context.Background(), h.state.Query, true, h.state.ProviderID())
	} else {
		items = h.eng.Search(context.Background(), h.state.Query, false)
	}
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s'", elapsed, h.state.Query)

	if len(items) == 0 {
		log.Warnf("No results for query: '%s'", h.state.Query)
		return
	}
	if len(items) > h.suggestLimit && h.suggestLimit > 0 {
		items = items[:h.suggestLimit]
	}

	log.Printf("Found %d results for query '%s':", len(items), h.state.Query)
	for i, item := range items {
		clTitle := fmt.Sprintf("\033[38;5;75m%s\033[0m", item.Title)
		log.Printf("%2d. %-40s (%.3f, %s/%s)", i+1, clTitle, item.Score, item.ProviderID, item.Category)
	}
}
