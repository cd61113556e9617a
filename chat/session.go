// Package chat provides the interactive read-eval-print session that feeds
// user queries to the orchestrator.
//
// One query fully completes, including all tool dispatch, before the next
// line is read. Query failures are reported on a single line and the loop
// continues; only end-of-input, a "quit" line, or context cancellation end
// the session.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// QueryHandler runs one user query to completion and returns the final
// answer text. [github.com/swingAnt/mcpchat/agent.Orchestrator] implements
// this interface.
type QueryHandler interface {
	HandleQuery(ctx context.Context, query string) (string, error)
}

// Session is the outer interactive loop of the chat client.
type Session struct {
	handler QueryHandler
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	prompt  string
}

// Option configures a Session.
type Option func(*Session)

// WithInput sets the reader queries are read from. Defaults to stdin.
func WithInput(r io.Reader) Option {
	return func(s *Session) { s.in = r }
}

// WithOutput sets the writer answers are printed to. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithErrorOutput sets the writer query errors are printed to. Defaults to
// stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(s *Session) { s.errOut = w }
}

// WithPrompt sets the prompt string printed before each read.
func WithPrompt(prompt string) Option {
	return func(s *Session) { s.prompt = prompt }
}

// New creates a Session over the given query handler.
func New(handler QueryHandler, opts ...Option) *Session {
	s := &Session{
		handler: handler,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		prompt:  "> ",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads queries line by line until end-of-input, a "quit" line
// (case-insensitive), or context cancellation. Each query runs to
// completion through the handler; a failed query is reported and the loop
// moves on to the next prompt.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Chat session started. Type your queries, or 'quit' to exit.")

	scanner := bufio.NewScanner(s.in)
	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(s.out, s.prompt)
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "quit") {
			break
		}

		answer, err := s.handler.HandleQuery(ctx, query)
		if err != nil {
			slog.Error("query failed", "error", err)
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(s.out, answer)
	}

	return scanner.Err()
}
