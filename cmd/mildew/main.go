package main

// This is the command-line driver for the Mildew scripting-language
// front end: an interactive prompt plus file-oriented debug subcommands
// for inspecting the token stream and the parsed tree.

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pillager86/gomildew/internal/mildew"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "mildew",
		Short: "Mildew scripting language front end",
		Long:  "Lexes and parses Mildew source. With no arguments an interactive prompt is started.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(runCmd(), tokenizeCmd(), parseCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger = zap.NewNop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return logger.Sugar()
}

// runPrompt reads lines from standard input, supporting a
// backslash-at-end-of-line continuation, and routes each accumulated
// program through the engine. It terminates on empty input or the
// literal `#exit` and returns nil in all non-fatal cases.
func runPrompt() error {
	logger := newLogger()
	defer logger.Sync()
	reporter := mildew.NewColorReporter(os.Stderr)
	engine := mildew.NewEngine(reporter)

	prompt := color.New(color.FgGreen)
	contPrompt := color.New(color.FgYellow)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(bufio.ScanLines)
	for {
		prompt.Print("mildew> ")
		var program strings.Builder
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasSuffix(line, "\\") {
				program.WriteString(strings.TrimSuffix(line, "\\"))
				program.WriteString("\n")
				contPrompt.Print("... ")
				continue
			}
			program.WriteString(line)
			break
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		code := program.String()
		if code == "" || code == "#exit" {
			return nil
		}
		logger.Debugw("evaluating", "bytes", len(code))
		engine.Evaluate(code, "<stdin>")
		reporter.Reset()
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Run the front end over a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()
			code, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			reporter := mildew.NewSimpleReporter(os.Stderr)
			engine := mildew.NewEngine(reporter)
			program := engine.Evaluate(string(code), args[0])
			if reporter.HadError() {
				os.Exit(65)
			}
			logger.Debugw("parsed", "file", args[0], "statements", len(program.StatementNodes))
			return nil
		},
	}
}

func tokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize FILE",
		Short: "Print the token stream for a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()
			code, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tokens, lexErrors := mildew.Tokenize(string(code))
			logger.Debugw("tokenized", "file", args[0], "tokens", len(tokens), "errors", len(lexErrors))
			for _, tok := range tokens {
				fmt.Println(tok)
			}
			for _, lexErr := range lexErrors {
				fmt.Fprintln(os.Stderr, lexErr)
			}
			if len(lexErrors) > 0 {
				os.Exit(65)
			}
			return nil
		},
	}
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the parsed tree for a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()
			code, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			reporter := mildew.NewSimpleReporter(os.Stderr)
			engine := mildew.NewEngine(reporter)
			program := engine.Evaluate(string(code), args[0])
			if reporter.HadError() {
				os.Exit(65)
			}
			logger.Debugw("parsed", "file", args[0], "statements", len(program.StatementNodes))
			printer := &mildew.AstPrinter{}
			fmt.Println(printer.PrintProgram(program))
			return nil
		},
	}
}
