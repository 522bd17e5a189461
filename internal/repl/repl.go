// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"monkey-lang/impl/internal/config"
	"monkey-lang/impl/internal/evaluator"
	"monkey-lang/impl/internal/lexer"
	"monkey-lang/impl/internal/parser"
)

// ContinuePrompt is shown while an input has unclosed brackets.
const ContinuePrompt = ".. "

const help = `Commands:
  :help            Show this help
  :env             List the names bound at the top level
  :reset           Discard all bindings
  :quit / :exit    Exit the REPL`

// LineReader is the subset of *liner.State the loop needs.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Session is one REPL conversation. Bindings persist across inputs.
type Session struct {
	cfg    *config.Config
	out    io.Writer
	logger *slog.Logger
	opts   []evaluator.Option
	ev     *evaluator.Evaluator
	env    *evaluator.Environment
}

// NewSession creates a session writing results and program output to out.
// opts are passed on to the evaluator after the output option.
func NewSession(cfg *config.Config, out io.Writer, logger *slog.Logger, opts ...evaluator.Option) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	evOpts := append([]evaluator.Option{evaluator.WithOutput(out), evaluator.WithLogger(logger)}, opts...)
	return &Session{
		cfg:    cfg,
		out:    out,
		logger: logger,
		opts:   evOpts,
		ev:     evaluator.New(evOpts...),
		env:    evaluator.NewEnvironment(),
	}
}

// Incomplete reports whether src has more opening than closing brackets.
func Incomplete(src string) bool {
	depth := 0
	for _, tok := range lexer.Lex(src) {
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACE, lexer.LBRACKET:
			depth++
		case lexer.RPAREN, lexer.RBRACE, lexer.RBRACKET:
			depth--
		}
	}
	return depth > 0
}

// Read collects one complete input, prompting for continuation lines while
// brackets are open. Ctrl-C discards the pending input. ok is false at end of
// input.
func (s *Session) Read(r LineReader) (input string, ok bool) {
	var buf strings.Builder
	prompt := s.cfg.Prompt
	for {
		line, err := r.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			buf.Reset()
			prompt = s.cfg.Prompt
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Warn("read failed", "error", err)
			}
			return "", false
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		if !Incomplete(buf.String()) {
			return buf.String(), true
		}
		prompt = ContinuePrompt
	}
}

// Handle processes one complete input and reports whether the session
// should continue.
func (s *Session) Handle(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}

	p := parser.New(lexer.Lex(input))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(s.out, "parser errors:")
		for _, msg := range errs {
			fmt.Fprintf(s.out, "\t%s\n", msg)
		}
		return true
	}
	if s.cfg.ShowParseTree {
		fmt.Fprintln(s.out, prog.String())
	}

	s.logger.Debug("eval", "statements", len(prog.Statements))
	if result := s.ev.Eval(prog, s.env); result != nil {
		fmt.Fprintln(s.out, evaluator.Format(result))
	}
	return true
}

func (s *Session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":exit":
		return false
	case ":help":
		fmt.Fprintln(s.out, help)
	case ":env":
		for _, name := range s.env.Names() {
			fmt.Fprintln(s.out, name)
		}
	case ":reset":
		s.env = evaluator.NewEnvironment()
		s.ev = evaluator.New(s.opts...)
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return true
}

// Run reads and handles inputs until end of input or :quit.
func (s *Session) Run(r LineReader) {
	for {
		input, ok := s.Read(r)
		if !ok {
			fmt.Fprintln(s.out)
			return
		}
		if strings.TrimSpace(input) != "" {
			r.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		}
		if !s.Handle(input) {
			return
		}
	}
}

// Start runs an interactive session on the terminal, loading and saving the
// history file named in cfg.
func Start(cfg *config.Config, logger *slog.Logger) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	loadHistory(ln, cfg.HistoryFile, logger)

	// exit runs inside evaluation, so it has to restore the terminal itself.
	exit := func(code int) {
		saveHistory(ln, cfg.HistoryFile, logger)
		ln.Close()
		os.Exit(code)
	}

	fmt.Println("Monkey REPL. Type :help for commands.")
	NewSession(cfg, os.Stdout, logger, evaluator.WithExit(exit)).Run(ln)

	saveHistory(ln, cfg.HistoryFile, logger)
	ln.Close()
}

func loadHistory(ln *liner.State, path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("cannot open history", "path", path, "error", err)
		}
		return
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		logger.Warn("cannot read history", "path", path, "error", err)
	}
}

func saveHistory(ln *liner.State, path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("cannot write history", "path", path, "error", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		logger.Warn("cannot write history", "path", path, "error", err)
	}
}
