package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/boringwm/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") && !isHelpArg(os.Args[1]) {
		os.Exit(runWM(os.Args[1:]))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runWM(os.Args[2:]))
	case "keys":
		os.Exit(runKeys(os.Args[2:], os.Stdout, os.Stderr))
	case "config":
		os.Exit(runConfig(os.Args[2:], os.Stdout, os.Stderr))
	case "version":
		fmt.Fprintf(os.Stdout, "boringwm %s\n", version)
		os.Exit(0)
	case "help", "-h", "-help", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "-help"
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: boringwm [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Run the window manager (default)")
	fmt.Fprintln(w, "  keys                Show key bindings")
	fmt.Fprintln(w, "  config print        Print the effective configuration")
	fmt.Fprintln(w, "  config validate     Validate command-line overrides")
	fmt.Fprintln(w, "  version             Print version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'boringwm <command> --help' for command-specific options.")
}

// runFlags are the options of the run command that are not configuration.
type runFlags struct {
	display string
	debug   bool
}

// parseConfigFlags parses args over the default configuration and validates
// the result. On failure it returns a nil config and the exit code.
func parseConfigFlags(name string, args []string, stderr io.Writer, extra func(*flag.FlagSet)) (*config.Config, int) {
	cfg := config.DefaultConfig()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.RegisterFlags(fs)
	if extra != nil {
		extra(fs)
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: boringwm %s [options]\n\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, 0
		}
		return nil, 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "%s takes no arguments\n", name)
		return nil, 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid option: %v\n", err)
		return nil, 2
	}
	return cfg, 0
}

func runConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || isHelpArg(args[0]) {
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  boringwm config print [options]")
		fmt.Fprintln(stderr, "  boringwm config validate [options]")
		return 2
	}

	switch args[0] {
	case "print":
		cfg, code := parseConfigFlags("config print", args[1:], stderr, nil)
		if cfg == nil {
			return code
		}
		if term := cfg.ResolveTerminal(); len(term) > 0 {
			fmt.Fprintf(stdout, "# resolved_terminal: %s\n", strings.Join(term, " "))
		}
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
		return 0

	case "validate":
		cfg, code := parseConfigFlags("config validate", args[1:], stderr, nil)
		if cfg == nil {
			return code
		}
		fmt.Fprintln(stdout, "config: ok")
		return 0

	default:
		fmt.Fprintf(stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}
