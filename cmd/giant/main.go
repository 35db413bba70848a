// Command giant runs the GIANT interpreter: with no arguments it starts the
// REPL, with a script path it executes the file and exits. Configuration
// (prompt, history location, explain mode) comes from built-in defaults
// overridden by GIANT_* environment variables and flags.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	giant "github.com/FFFF-0000h/GIANT-Language"
)

const appName = "giant"

var (
	conf     = koanf.New(".")
	explain  bool
	exitCode int
)

func main() {
	root := &cobra.Command{
		Use:   appName + " [script]",
		Short: "The GIANT relational programming language",
		Long: `GIANT is a small language built around relational values: numbers that
carry their offsets from named anchors. Run without arguments for a REPL,
or pass a script (conventionally *.naija) to execute it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			loadConfig()
			if cmd.Flags().Changed("explain") {
				return
			}
			explain = conf.Bool("explain")
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				exitCode = runFile(args[0])
				return
			}
			exitCode = runREPL()
		},
	}
	root.PersistentFlags().BoolVar(&explain, "explain", false, "render errors with a source snippet and caret")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the interpreter version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(giant.Version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(2)
	}
	os.Exit(exitCode)
}

// loadConfig layers GIANT_* environment variables over the defaults.
func loadConfig() {
	home, _ := os.UserHomeDir()
	_ = conf.Load(confmap.Provider(map[string]interface{}{
		"prompt":          "naija> ",
		"continue_prompt": "...... ",
		"history":         filepath.Join(home, ".giant_history"),
		"explain":         false,
	}, "."), nil)
	_ = conf.Load(env.Provider("GIANT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GIANT_"))
	}), nil)
}

// -----------------------------------------------------------------------------
// file mode
// -----------------------------------------------------------------------------

func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return 1
	}
	ip := giant.New()
	ip.SetExplain(explain)
	if ip.Execute(string(src)) > 0 {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func runREPL() int {
	fmt.Printf("GIANT %s — relational programming REPL. Type 'stop' to quit.\n", giant.Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := conf.String("history")
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ip := giant.NewWithOutput(os.Stdout, &colorWriter{w: os.Stderr, color: text.FgRed})
	ip.SetExplain(explain)

	prompt := conf.String("prompt")
	cont := conf.String("continue_prompt")
	for {
		code, ok := readStatement(ln, prompt, cont)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == "stop" {
			return 0
		}
		ip.Execute(code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement reads one logical statement. A header line ending in ':'
// opens a body: continuation lines are read until a blank line or a dedented
// line (the dedented line is kept; Execute handles multiple statements).
func readStatement(ln *liner.State, prompt, cont string) (string, bool) {
	first, err := ln.Prompt(prompt)
	if errors.Is(err, io.EOF) {
		return "", false
	}
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", true
	}
	if err != nil {
		return "", false
	}

	if !strings.HasSuffix(strings.TrimSpace(first), ":") {
		return first, true
	}

	var b strings.Builder
	b.WriteString(first)
	for {
		line, err := ln.Prompt(cont)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			break
		}
		if err != nil {
			break
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		b.WriteByte('\n')
		b.WriteString(line)
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			break
		}
	}
	return b.String(), true
}

// colorWriter tints everything written through it.
type colorWriter struct {
	w     io.Writer
	color text.Color
}

func (c *colorWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, c.color.Sprint(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
