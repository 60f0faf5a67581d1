// Package cli runs wordhint interactively: it reads patterns from stdin, asks the corpus
// and prints the ranked words and letters.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordhint/pkg/hint"
	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/charmbracelet/log"
)

const helpText = `enter a pattern, optionally followed by the letters known to be absent:
  ??ai? er       wildcards are ?, . or *
  :mode <name>   WheelOfFortune, Crossword or Cryptogram
  :words         show or hide the remaining words
  :letters       show or hide the remaining letters
  :help          this text
  :quit          exit`

// InputHandler processes user input, one query or command per line.
type InputHandler struct {
	fetcher       hint.Fetcher
	assistant     hint.Assistant
	renderer      *Renderer
	mode          puzzle.Mode
	maxPatternLen int
	last          *hint.Report
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(fetcher hint.Fetcher, assistant hint.Assistant, mode puzzle.Mode, maxPatternLen int, out io.Writer) *InputHandler {
	return &InputHandler{
		fetcher:       fetcher,
		assistant:     assistant,
		renderer:      NewRenderer(out),
		mode:          mode,
		maxPatternLen: maxPatternLen,
	}
}

// Mode returns the mode new queries use.
func (h *InputHandler) Mode() puzzle.Mode {
	return h.mode
}

// Start runs the loop on stdin.
func (h *InputHandler) Start(ctx context.Context) error {
	h.renderer.Println("WordHint CLI")
	h.renderer.Println(fmt.Sprintf("mode: %s (type :help for commands, Ctrl+C to exit)", h.mode))
	return h.Run(ctx, os.Stdin)
}

// Run reads lines from r until it ends, ctx is done, or :quit is entered.
func (h *InputHandler) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		h.renderer.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !h.HandleLine(ctx, line) {
			return nil
		}
	}
}

// HandleLine runs one query or command. It returns false when the user quits.
func (h *InputHandler) HandleLine(ctx context.Context, line string) bool {
	if strings.HasPrefix(line, ":") {
		return h.handleCommand(line)
	}

	fields := strings.Fields(line)
	absent := ""
	if len(fields) > 1 {
		absent = strings.Join(fields[1:], "")
	}
	h.Query(ctx, fields[0], absent)
	return true
}

// Query asks for pattern and renders the outcome.
func (h *InputHandler) Query(ctx context.Context, pattern, absent string) {
	q := puzzle.NewQuery(h.mode, pattern, absent)
	if err := q.Validate(h.maxPatternLen); err != nil {
		h.renderer.RenderError(err)
		return
	}

	start := time.Now()
	report, err := h.assistant.Ask(ctx, h.fetcher, q)
	log.Debugf("Took [ %v ] for query %s", time.Since(start), q)
	if err != nil {
		h.last = nil
		h.renderer.RenderError(err)
		return
	}
	h.last = report
	h.renderer.Render(report)
}

func (h *InputHandler) handleCommand(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q", ":exit":
		return false
	case ":help", ":h":
		h.renderer.Println(helpText)
	case ":mode":
		if len(fields) < 2 {
			h.renderer.Println(fmt.Sprintf("mode: %s", h.mode))
			return true
		}
		mode, err := puzzle.ParseMode(fields[1])
		if err != nil {
			h.renderer.RenderError(err)
			return true
		}
		h.mode = mode
		h.last = nil
		h.renderer.Println(fmt.Sprintf("mode: %s", h.mode))
	case ":words":
		if h.last == nil {
			h.renderer.Println("nothing to show yet")
			return true
		}
		h.last.ToggleWords(!h.last.Words.Open)
		h.renderer.Render(h.last)
	case ":letters":
		if h.last == nil || !h.last.RanksLetters {
			h.renderer.Println("no letters to show")
			return true
		}
		h.last.ToggleLetters(!h.last.Letters.Open)
		h.renderer.Render(h.last)
	default:
		h.renderer.RenderError(fmt.Errorf("unknown command %s", fields[0]))
	}
	return true
}
