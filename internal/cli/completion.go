package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
)

// commandDescriptions lists the CLI commands in help order.
var commandDescriptions = []struct {
	name        string
	description string
}{
	{"run", "Execute every case in the matrix (default)"},
	{"matrix", "Print the resolved plan without executing it"},
	{"check", "Validate configuration, wallet, signer key, and amounts"},
	{"completion", "Generate shell completion (bash, zsh, fish)"},
	{"version", "Show version information"},
	{"help", "Show help"},
}

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return errors.ExitSuccess
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			return usageError("completion: --alias requires a value (--alias=<name>)")
		case strings.HasPrefix(arg, "-"):
			return usageError("completion: unknown flag: %s", arg)
		default:
			if shell != "" {
				return usageError("completion: unexpected argument: %s", arg)
			}
			shell = arg
		}
	}

	if shell == "" {
		return usageError("completion: shell required (bash, zsh, fish)")
	}

	cmdName := "bridgematrix"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		return usageError("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
	}

	return errors.ExitSuccess
}

func printCompletionUsage() {
	out.HelpTitle("bridgematrix completion - generate shell completion scripts")

	out.HelpSection("Usage:")
	out.HelpUsage("bridgematrix completion <shell> [--alias=<name>]")

	out.HelpSection("Options:")
	out.HelpFlag("--alias=<name>", "Generate completion for command alias", 14)
	out.HelpFlag("-h, --help", "Show this help", 14)

	out.HelpSection("Installation:")
	out.Println("  Bash:  eval \"$(bridgematrix completion bash)\"")
	out.Println("  Zsh:   eval \"$(bridgematrix completion zsh)\"")
	out.Println("  Fish:  bridgematrix completion fish | source")
	out.Println("")
}

func commandNames() []string {
	names := make([]string, len(commandDescriptions))
	for i, c := range commandDescriptions {
		names[i] = c.name
	}
	return names
}

// globalFlags returns the global CLI flags.
func globalFlags() []string {
	return []string{"--quiet", "--verbose", "--config", "--help", "--version"}
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"

	return fmt.Sprintf(`# %[1]s bash completion
# Add to ~/.bashrc: eval "$(bridgematrix completion bash)"

%[2]s() {
    local cur prev words cword
    _init_completion || return

    case "${prev}" in
        --config)
            _filedir 'y?(a)ml'
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "%[3]s" -- "${cur}"))
        return
    fi

    COMPREPLY=($(compgen -W "%[4]s" -- "${cur}"))
}

complete -F %[2]s %[1]s
`, cmdName, funcName, strings.Join(globalFlags(), " "), strings.Join(commandNames(), " "))
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var commands strings.Builder
	for _, c := range commandDescriptions {
		fmt.Fprintf(&commands, "        '%s:%s'\n", c.name, c.description)
	}

	return fmt.Sprintf(`#compdef %[1]s
# %[1]s zsh completion
# Add to ~/.zshrc: eval "$(bridgematrix completion zsh)"

%[2]s() {
    local -a commands
    commands=(
%[3]s    )

    _arguments -s \
        '(-q --quiet)'{-q,--quiet}'[Suppress client output and warnings]' \
        '(-v --verbose)'{-v,--verbose}'[Enable debug logging]' \
        '--config=[Path to bridgematrix.yaml]:config file:_files -g "*.y(a|)ml"' \
        '--help[Show help]' \
        '--version[Show version]' \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'command' commands
            ;;
        args)
            if [[ "${words[1]}" == completion ]]; then
                _values 'shell' bash zsh fish
            fi
            ;;
    esac
}

compdef %[2]s %[1]s
`, cmdName, funcName, commands.String())
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `# %[1]s fish completion
# Add to config: bridgematrix completion fish | source

# Disable file completion by default
complete -c %[1]s -f

`, cmdName)

	for _, c := range commandDescriptions {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n", cmdName, c.name, c.description)
	}

	sb.WriteString("\n# Global flags\n")
	fmt.Fprintf(&sb, "complete -c %s -s q -l quiet -d 'Suppress client output and warnings'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -s v -l verbose -d 'Enable debug logging'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l config -r -F -d 'Path to bridgematrix.yaml'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l help -d 'Show help'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l version -d 'Show version'\n", cmdName)

	sb.WriteString("\n# completion subcommands\n")
	for _, shell := range []string{"bash", "zsh", "fish"} {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from completion' -a '%s' -d 'Generate %s completion'\n", cmdName, shell, shell)
	}

	return sb.String()
}
