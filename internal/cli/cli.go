// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command line parsing for budgetchat.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdHistory
	CmdClear
	CmdStats
	CmdStatus
	CmdServe
	CmdTranscript
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdChat:
		return "chat"
	case CmdAsk:
		return "ask"
	case CmdHistory:
		return "history"
	case CmdClear:
		return "clear"
	case CmdStats:
		return "stats"
	case CmdStatus:
		return "status"
	case CmdServe:
		return "serve"
	case CmdTranscript:
		return "transcript"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	API        string
	ConfigPath string
	LogLevel   string
	NoColor    bool
	Quiet      bool

	// Command-specific
	Query      string
	Subcommand string
	ID         string
	JSON       bool
	Raw        bool
	Year       int
	Month      int
	Addr       string
	Limit      int
	Format     string
	OutputDir  string

	// Rest holds the arguments after the command name
	Rest []string
}

const usageText = `budgetchat - terminal client for the AI budget assistant
Version: %s

USAGE:
  budgetchat [command] [flags]

COMMANDS:
  tui                      Full-screen chat (default)
  chat                     Line-based chat with input history
  ask "text"               Send one message and print the reply
      --raw                  Print the reply without markdown rendering
      --json                 Print the raw backend response
  history [--json]         Print the conversation the backend remembers
  clear                    Clear the backend's conversation memory
  stats [--year Y] [--month M] [--json]
                           Print income, expenses and net for a month
  status [--json]          Probe backend health and MCP tools
  serve [--addr :8080]     Run the in-memory mock backend
  transcript [list|show <id>] [--limit N] [--json]
                           Read locally recorded conversations
  transcript export <id> [--format md|json] [--out DIR]
                           Write a recorded conversation to a file
  config [show|path|init]  Print, locate or create the config file
  version                  Print version information
  help                     Show this help

GLOBAL FLAGS:
  --api URL                Backend base URL (default http://localhost:8080/api)
  --config PATH            Config file to load
  --log-level LEVEL        debug, info, warn or error
  --no-color               Disable colored output (also NO_COLOR=1)
  -q, --quiet              Suppress informational output

ENVIRONMENT:
  BUDGETCHAT_API_BASE      Backend base URL (REACT_APP_API_BASE also read)
  BUDGETCHAT_HOME          Config directory (default ~/.budgetchat)

KEYS (tui):
  enter send, alt+enter new line, ctrl+b sidebar, alt+1..4 quick actions,
  ctrl+x clear memory, ctrl+r refresh stats, pgup/pgdown scroll, ctrl+c quit
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "budgetchat version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses command-line arguments (without the program name) and
// returns the command and args. Unknown commands yield CmdHelp and an error.
func Parse(argv []string) (Command, Args, error) {
	remaining, parsed, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, parsed, err
	}

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsed, nil
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Rest = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed, nil

	case "chat", "repl":
		return CmdChat, parsed, nil

	case "ask":
		err = parseAskArgs(&parsed, remaining)
		return CmdAsk, parsed, err

	case "history":
		parsed.JSON = NewArgParser(remaining, "json").BoolFlag("json")
		return CmdHistory, parsed, nil

	case "clear":
		return CmdClear, parsed, nil

	case "stats":
		err = parseStatsArgs(&parsed, remaining)
		return CmdStats, parsed, err

	case "status", "s":
		parsed.JSON = NewArgParser(remaining, "json").BoolFlag("json")
		return CmdStatus, parsed, nil

	case "serve", "server":
		parsed.Addr = NewArgParser(remaining).Flag("addr")
		return CmdServe, parsed, nil

	case "transcript", "transcripts":
		err = parseTranscriptArgs(&parsed, remaining)
		return CmdTranscript, parsed, err

	case "config":
		err = parseConfigArgs(&parsed, remaining)
		return CmdConfig, parsed, err

	case "version", "--version", "-v":
		return CmdVersion, parsed, nil

	case "help", "--help", "-h":
		return CmdHelp, parsed, nil

	default:
		return CmdHelp, parsed, NewValidationErrorWithExample("command", cmd,
			"unknown command", "budgetchat help")
	}
}

// parseGlobalFlags extracts global flags from anywhere in args and returns
// the remaining args.
func parseGlobalFlags(args []string) ([]string, Args, error) {
	var remaining []string
	var parsed Args

	valueOf := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", NewValidationError(name, "", "flag needs a value")
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		var err error

		switch {
		case arg == "--no-color":
			parsed.NoColor = true
		case arg == "-q" || arg == "--quiet":
			parsed.Quiet = true
		case arg == "--api":
			parsed.API, err = valueOf(&i, "--api")
		case arg == "--config":
			parsed.ConfigPath, err = valueOf(&i, "--config")
		case arg == "--log-level":
			parsed.LogLevel, err = valueOf(&i, "--log-level")
		case strings.HasPrefix(arg, "--api="):
			parsed.API = strings.TrimPrefix(arg, "--api=")
		case strings.HasPrefix(arg, "--config="):
			parsed.ConfigPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "--log-level="):
			parsed.LogLevel = strings.TrimPrefix(arg, "--log-level=")
		default:
			remaining = append(remaining, arg)
		}
		if err != nil {
			return remaining, parsed, err
		}
	}

	return remaining, parsed, nil
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) error {
	p := NewArgParser(remaining, "raw", "json")
	args.Raw = p.BoolFlag("raw")
	args.JSON = p.BoolFlag("json")
	args.Query = strings.TrimSpace(JoinPositionalArgs(p, 0))
	if args.Query == "" {
		return ErrMissingArgument("message", `budgetchat ask "Add $50 expense for groceries"`)
	}
	return nil
}

// parseStatsArgs parses --year and --month. Zero means the current period.
func parseStatsArgs(args *Args, remaining []string) error {
	p := NewArgParser(remaining, "json")
	args.JSON = p.BoolFlag("json")

	var err error
	if p.HasFlag("year") {
		if args.Year, err = ParseIntInRange(p.Flag("year"), "year", 1, 9999); err != nil {
			return err
		}
	}
	if p.HasFlag("month") {
		if args.Month, err = ParseIntInRange(p.Flag("month"), "month", 1, 12); err != nil {
			return err
		}
	}
	return nil
}

// parseTranscriptArgs parses "list" (default), "show <id>" and "export <id>".
func parseTranscriptArgs(args *Args, remaining []string) error {
	p := NewArgParser(remaining, "json")
	args.JSON = p.BoolFlag("json")
	args.Subcommand = strings.ToLower(p.Subcommand())
	if args.Subcommand == "" {
		args.Subcommand = "list"
	}

	if p.HasFlag("limit") {
		n, err := ParseIntInRange(p.Flag("limit"), "limit", 1, 10000)
		if err != nil {
			return err
		}
		args.Limit = n
	}

	switch args.Subcommand {
	case "list", "ls":
		args.Subcommand = "list"
	case "show":
		args.ID = p.Positional(1)
		if args.ID == "" {
			return ErrMissingArgument("session id", "budgetchat transcript show 3f2a")
		}
	case "export":
		args.ID = p.Positional(1)
		if args.ID == "" {
			return ErrMissingArgument("session id", "budgetchat transcript export 3f2a --format md")
		}
		args.Format = strings.ToLower(p.FlagOrDefault("format", "md"))
		switch args.Format {
		case "md", "markdown", "json":
		default:
			return NewValidationErrorWithExample("format", args.Format,
				"must be md or json", "budgetchat transcript export 3f2a --format json")
		}
		args.OutputDir = p.FlagOrDefault("out", ".")
	default:
		return NewValidationErrorWithExample("transcript subcommand", args.Subcommand,
			"must be list, show or export", "budgetchat transcript list")
	}
	return nil
}

// parseConfigArgs parses "show" (default), "path" and "init".
func parseConfigArgs(args *Args, remaining []string) error {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Subcommand())
	switch args.Subcommand {
	case "":
		args.Subcommand = "show"
	case "show", "path", "init":
	default:
		return NewValidationErrorWithExample("config subcommand", args.Subcommand,
			"must be show, path or init", "budgetchat config path")
	}
	return nil
}
