package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/fbwin/input"
	"github.com/1broseidon/fbwin/internal/config"
	"github.com/1broseidon/fbwin/internal/keytable"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "demo":
		os.Exit(runDemo(os.Args[2:]))
	case "keys":
		os.Exit(runKeys(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fbwin <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  demo                Open two animated windows and print input events")
	fmt.Fprintln(w, "  keys                Print the native key table for this platform")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate the config file")
	fmt.Fprintln(w, "  config print        Print the effective config")
	fmt.Fprintln(w, "  config explain      Show a config value and where it came from")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'fbwin <command> --help' for command-specific options.")
}

// loadConfig reads the config from path, or from the default location when
// path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// newLogger writes text to a terminal and JSON everywhere else.
func newLogger(w *os.File, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(w.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  fbwin config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  fbwin config print [--path PATH] [--defaults]")
		fmt.Fprintln(os.Stderr, "  fbwin config explain [--path PATH] <yaml.path>")
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/fbwin/config.yaml)")

	switch args[0] {
	case "validate":
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("config: invalid"))
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(okStyle.Render("config: ok"))
		return 0

	case "print":
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			for _, f := range res.Files {
				fmt.Printf("# file: %s\n", f)
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", dimStyle.Render(formatSource(src)))
		fmt.Printf("value:\n%s", string(out))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	default:
		return "default"
	}
}

func runKeys(args []string) int {
	fs := flag.NewFlagSet("keys", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	goos := fs.String("os", runtime.GOOS, "Platform whose table to print (linux or windows)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	table, ok := nativeTable(*goos)
	if !ok {
		fmt.Fprintf(os.Stderr, "no key table for %s\n", *goos)
		return 1
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-14s %s", "KEY", "NATIVE")))
	printKeys(os.Stdout, table)
	return 0
}

func nativeTable(goos string) (*keytable.Table, bool) {
	switch goos {
	case "windows":
		return &keytable.Win32, true
	case "linux", "freebsd", "openbsd", "netbsd":
		return &keytable.X11, true
	}
	return nil, false
}

func printKeys(w io.Writer, table *keytable.Table) {
	for k := input.Key(0); k < input.KeyCount; k++ {
		fmt.Fprintf(w, "%-14s 0x%04x\n", k, table.Native(k))
	}
}
