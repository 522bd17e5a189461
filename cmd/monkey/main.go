package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"monkey-lang/impl/internal/config"
	"monkey-lang/impl/internal/evaluator"
	"monkey-lang/impl/internal/lexer"
	"monkey-lang/impl/internal/parser"
	"monkey-lang/impl/internal/repl"
)

type tokenOut struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func printTokens(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	for _, t := range lexer.Lex(string(data)) {
		if err := enc.Encode(tokenOut{Type: string(t.Type), Value: t.Lit}); err != nil {
			return err
		}
	}
	return nil
}

// printAST dumps the program even when it has diagnostics; they are
// reported through the returned error.
func printAST(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	prog, perr := parser.Parse(string(data))
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prog); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return perr
}

// runProgram evaluates the file and prints the final value. It returns the
// process exit code.
func runProgram(out io.Writer, logger *slog.Logger, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[Error]", err)
		return 1
	}
	p := parser.New(lexer.Lex(string(data)))
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	ev := evaluator.New(evaluator.WithOutput(out), evaluator.WithLogger(logger))
	logger.Debug("running", "path", path, "statements", len(prog.Statements))
	val := ev.Eval(prog, evaluator.NewEnvironment())
	if val == nil {
		return 0
	}
	fmt.Fprintln(out, evaluator.Format(val))
	if _, ok := val.(evaluator.Error); ok {
		return 1
	}
	return 0
}

// checkFiles parses every path concurrently and reports diagnostics in
// argument order. It returns 1 when any file fails to read or parse.
func checkFiles(ctx context.Context, out io.Writer, logger *slog.Logger, paths []string) int {
	results := make([][]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("check %s: %w", path, err)
			}
			p := parser.New(lexer.Lex(string(data)))
			p.ParseProgram()
			results[i] = p.Errors()
			logger.Debug("checked", "path", path, "diagnostics", len(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(out, "[Error]", err)
		return 1
	}

	code := 0
	for i, path := range paths {
		if len(results[i]) == 0 {
			fmt.Fprintf(out, "%s: ok\n", path)
			continue
		}
		code = 1
		fmt.Fprintf(out, "%s:\n", path)
		for _, d := range results[i] {
			fmt.Fprintf(out, "\t%s\n", d)
		}
	}
	return code
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: %[1]s [flags] [command]

Commands:
  run <file>           Evaluate a program and print its final value
  tokens <file>        Print the token stream as JSON lines
  ast <file>           Print the syntax tree as JSON
  check <file>...      Report parse diagnostics for each file
  repl                 Start the interactive prompt (default)

Flags:
`, prog)
	flag.PrintDefaults()
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to a YAML config file (default $HOME/"+config.DefaultFileName+")")
	var logLevel = slog.LevelInfo
	flag.TextVar(&logLevel, "log-level", &logLevel, "log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[Error]", err)
		os.Exit(2)
	}
	levelSet := false
	flag.Visit(func(f *flag.Flag) { levelSet = levelSet || f.Name == "log-level" })
	if !levelSet {
		// Validate already rejected unparsable levels.
		logLevel, _ = cfg.Level()
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel}))
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	args := flag.Args()
	if len(args) == 0 {
		repl.Start(cfg, logger)
		return
	}

	needFile := func() string {
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		return args[1]
	}

	switch args[0] {
	case "repl":
		repl.Start(cfg, logger)
	case "run":
		os.Exit(runProgram(os.Stdout, logger, needFile()))
	case "tokens":
		if err := printTokens(os.Stdout, needFile()); err != nil {
			fmt.Fprintln(os.Stderr, "[Error]", err)
			os.Exit(1)
		}
	case "ast":
		if err := printAST(os.Stdout, needFile()); err != nil {
			fmt.Fprintln(os.Stderr, "[Error]", err)
			os.Exit(1)
		}
	case "check":
		needFile()
		os.Exit(checkFiles(context.Background(), os.Stdout, logger, args[1:]))
	default:
		// A bare file name runs it, as `monkey prog.mk`.
		os.Exit(runProgram(os.Stdout, logger, args[0]))
	}
}
