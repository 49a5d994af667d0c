// Package cmd implements the CLI command structure for taskdash.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/taskdash/internal/config"
	"github.com/nibzard/taskdash/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdash CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskdash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	globalArgs := args[:len(args)-len(remainingArgs)]
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	logger := logging.New(stderr, logOptions(cfg))

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(ctx, cfg, logger, remainingArgs, stdout)
	case "stats":
		return statsCommand(ctx, cfg, logger, remainingArgs, stdout)
	case "search":
		return searchCommand(ctx, cfg, logger, remainingArgs, stdout)
	case "doctor":
		return doctorCommand(cfg, globalArgs, remainingArgs, stdout)
	case "prefs":
		return prefsCommand(cfg, logger, remainingArgs, stdout)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs, stdout)
	case "version", "--version", "-v":
		return versionCommand(stdout)
	case "help", "--help", "-h":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func logOptions(cfg *config.Config) logging.Options {
	return logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskdash version %s\n", Version)
	return nil
}

// unexpectedArgs rejects positional arguments beyond max.
func unexpectedArgs(fs *flag.FlagSet, max int) error {
	if rest := fs.Args(); len(rest) > max {
		return fmt.Errorf("unexpected arguments: %v", rest[max:])
	}
	return nil
}

// newFlagSet returns a subcommand flag set that reports errors to stderr.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("taskdash "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskdash - a task dashboard for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdash [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui            Run the dashboard (default command)")
	fmt.Fprintln(w, "  ls             List tasks with filters and sorting")
	fmt.Fprintln(w, "  stats          Print task statistics")
	fmt.Fprintln(w, "  search <query> Search task titles and descriptions")
	fmt.Fprintln(w, "  doctor         Check config, state directory, preferences and seed file")
	fmt.Fprintln(w, "  prefs          Show or change interface preferences")
	fmt.Fprintln(w, "  tail           Tail the latest dashboard log")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (all|pending|in-progress|completed)")
	fmt.Fprintln(w, "  -search string")
	fmt.Fprintln(w, "        Case-insensitive text filter")
	fmt.Fprintln(w, "  -sort string")
	fmt.Fprintln(w, "        Sort field (createdAt|updatedAt|title|status|manual)")
	fmt.Fprintln(w, "  -dir string")
	fmt.Fprintln(w, "        Sort direction (asc|desc)")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text|json|yaml)")
	fmt.Fprintln(w, "  -columns string")
	fmt.Fprintln(w, "        Comma-separated text columns (id,title,status,description,createdAt,updatedAt)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    Show tasks and the source of every config value")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Prefs Usage:")
	fmt.Fprintln(w, "  taskdash prefs                 Show stored and effective preferences")
	fmt.Fprintln(w, "  taskdash prefs set <key> <val> Change a preference")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List recorded runs instead of tailing")
}
