// Command invocat is the CLI driver for the Invocat interpreter: flag
// parsing, one-shot file evaluation and a line-edited REPL are all external
// collaborators the interpreter package itself never depends on.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/peterh/liner"

	invocat "github.com/ninguid-owl/Invocat"
)

const (
	appName     = "invocat"
	historyFile = ".invocat_history"
	promptMain  = ">> "
)

func usage() {
	fmt.Fprintf(os.Stderr, `%s: aleatory text generator

Usage:
  %s [-s seed] file ...
  %s [-s seed] -i | --interactive

Flags:
  -s string           RNG seed string (default: a random uuid)
  -i, --interactive   start an interactive REPL
  --help              show this message and exit

With no file arguments and no -i, %s starts a REPL.

REPL commands:
  ??names              print the currently bound names, one per line
`, appName, appName, appName, appName)
}

func main() {
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-help" || a == "-h" {
			usage()
			os.Exit(0)
		}
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	seed := fs.String("s", "", "RNG seed string")
	interactive := fs.Bool("i", false, "start an interactive REPL")
	fs.BoolVar(interactive, "interactive", false, "start an interactive REPL")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("%s: %v", appName, err))
		usage()
		os.Exit(1)
	}

	if *seed == "" {
		*seed = uuid.NewString()
	}

	paths := fs.Args()
	in := invocat.New(*seed)

	if len(paths) == 0 || *interactive {
		os.Exit(runREPL(in))
	}
	os.Exit(runFiles(in, paths))
}

func runFiles(in *invocat.Interpreter, paths []string) int {
	code := 0
	for _, path := range paths {
		values, err := in.EvalFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
			code = 1
			continue
		}
		for _, v := range values {
			fmt.Println(v)
		}
	}
	return code
}

func runREPL(in *invocat.Interpreter) (exitCode int) {
	fmt.Println(color.CyanString("invocat REPL — Ctrl+D to exit, ??names to list bound names."))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			return 0
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(strings.TrimSpace(line), "??names") {
			for _, name := range in.Names() {
				fmt.Println(name)
			}
			continue
		}

		values, err := in.Eval(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
			continue
		}
		for _, v := range values {
			fmt.Println(color.GreenString(v))
		}
	}
}
