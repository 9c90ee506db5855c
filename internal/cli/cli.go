// Package cli provides command-line interface functionality for bridgematrix.
package cli

import (
	"strings"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
)

// Version is set at build time.
var Version = "dev"

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		out.Hint("Run 'bridgematrix help' for usage.")
		return errors.GetExitCode(err)
	}

	cmd := "run"
	var cmdArgs []string
	if len(remaining) > 0 {
		cmd = remaining[0]
		cmdArgs = remaining[1:]
	}

	if opts.Help {
		if cmd == "completion" {
			printCompletionUsage()
		} else {
			printUsage()
		}
		return errors.ExitSuccess
	}
	if opts.Version {
		cmd = "version"
	}

	switch cmd {
	case "help":
		printUsage()
		return errors.ExitSuccess
	case "version":
		out.Println("bridgematrix %s", Version)
		return errors.ExitSuccess
	case "completion":
		return cmdCompletion(cmdArgs)
	case "run", "matrix", "check":
		if len(cmdArgs) > 0 {
			return usageError("%s: unexpected argument: %s", cmd, cmdArgs[0])
		}
	default:
		if strings.HasPrefix(cmd, "-") {
			return usageError("unknown flag: %s", cmd)
		}
		return usageError("unknown command: %s", cmd)
	}

	switch cmd {
	case "matrix":
		return cmdMatrix(opts)
	case "check":
		return cmdCheck(opts)
	default:
		return cmdRun(opts)
	}
}

// usageError reports an invalid command line and returns its exit code.
func usageError(format string, args ...interface{}) int {
	err := errors.Usagef(format, args...)
	out.ErrorPrefix("%v", err)
	out.Hint("Run 'bridgematrix help' for usage.")
	return err.ExitCode()
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	ConfigPath string
	Help       bool
	Version    bool
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Flags may appear before or after the command. Anything that is not a
// global flag is returned in order for the command to interpret, so
// command-specific flags such as completion's --alias pass through.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "-h" || arg == "--help":
			opts.Help = true
			i++
		case arg == "--version":
			opts.Version = true
			i++
		case arg == "--config":
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				return nil, nil, errors.Usage("--config requires a value")
			}
			opts.ConfigPath = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			if opts.ConfigPath == "" {
				return nil, nil, errors.Usage("--config requires a value")
			}
			i++
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if opts.Quiet && opts.Verbose {
		return nil, nil, errors.Usage("--quiet and --verbose are mutually exclusive")
	}

	out.SetQuiet(opts.Quiet)

	return opts, remaining, nil
}

func printUsage() {
	out.HelpTitle("bridgematrix - cross-chain bridge deposit/withdraw test matrix")

	out.HelpSection("Usage:")
	out.HelpUsage("bridgematrix [flags] [<command>]")

	out.HelpSection("Commands:")
	for _, c := range commandDescriptions {
		out.HelpCommand(c.name, c.description, helpCommandWidth)
	}

	out.HelpSection("Global Flags:")
	out.HelpFlag("-q, --quiet", "Suppress client output and warnings", helpFlagWidth)
	out.HelpFlag("-v, --verbose", "Enable debug logging", helpFlagWidth)
	out.HelpFlag("--config=<path>", "Use <path> instead of bridgematrix.yaml", helpFlagWidth)
	out.HelpFlag("-h, --help", "Show this help", helpFlagWidth)
	out.HelpFlag("--version", "Show version", helpFlagWidth)

	out.HelpSection("Environment:")
	out.HelpEnvVar("DERIVE_WALLET", "Smart-contract wallet address (required)", helpEnvWidth)
	out.HelpEnvVar("DERIVE_SIGNER_KEY_PATH", "Signer key file (default: ethereum_private_key.txt)", helpEnvWidth)
	out.HelpEnvVar("BRIDGEMATRIX_CONFIG", "Config file path", helpEnvWidth)
	out.HelpEnvVar("BRIDGEMATRIX_CONCURRENCY", "Number of cases run at once (default: 1)", helpEnvWidth)

	out.HelpSection("Exit Status:")
	out.Println("  0    every case passed")
	out.Println("  1    a case failed, or configuration is invalid")
	out.Println("  2    invalid command line")
	out.Println("  130  interrupted")

	out.HelpSection("Examples:")
	out.HelpExample("bridgematrix", "Run the full matrix")
	out.HelpExample("bridgematrix matrix -v", "Show every case with its client command line")
	out.HelpExample("bridgematrix check", "Validate configuration without running the client")
	out.HelpExample("bridgematrix --config=ci.yaml -q", "Run with another config, client output discarded")
	out.Println("")
}
