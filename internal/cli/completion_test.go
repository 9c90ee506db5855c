package cli

import (
	"strings"
	"testing"
)

func TestCmdCompletion_NoArgs_ReturnsError(t *testing.T) {
	_, _ = captureOutput(t)
	if exitCode := cmdCompletion([]string{}); exitCode != 2 {
		t.Errorf("cmdCompletion([]) = %d, want 2", exitCode)
	}
}

func TestCmdCompletion_Shells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _ := captureOutput(t)

			if exitCode := cmdCompletion([]string{shell}); exitCode != 0 {
				t.Fatalf("cmdCompletion([%s]) = %d, want 0", shell, exitCode)
			}
			script := stdout.String()
			for _, cmd := range []string{"run", "matrix", "check"} {
				if !strings.Contains(script, cmd) {
					t.Errorf("%s completion missing command %q", shell, cmd)
				}
			}
			if !strings.Contains(script, "bridgematrix") {
				t.Errorf("%s completion missing command name", shell)
			}
		})
	}
}

func TestCmdCompletion_UnknownShell_ReturnsError(t *testing.T) {
	_, stderr := captureOutput(t)
	if exitCode := cmdCompletion([]string{"powershell"}); exitCode != 2 {
		t.Errorf("cmdCompletion([powershell]) = %d, want 2", exitCode)
	}
	if !strings.Contains(stderr.String(), "unsupported shell") {
		t.Errorf("stderr = %q, want unsupported shell message", stderr.String())
	}
}

func TestCmdCompletion_Help_ReturnsZero(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		_, _ = captureOutput(t)
		if exitCode := cmdCompletion([]string{arg}); exitCode != 0 {
			t.Errorf("cmdCompletion([%s]) = %d, want 0", arg, exitCode)
		}
	}
}

func TestCmdCompletion_Alias(t *testing.T) {
	stdout, _ := captureOutput(t)

	if exitCode := cmdCompletion([]string{"bash", "--alias=bm"}); exitCode != 0 {
		t.Fatalf("cmdCompletion([bash, --alias=bm]) = %d, want 0", exitCode)
	}
	if !strings.Contains(stdout.String(), "complete -F _bm_completions bm") {
		t.Errorf("bash completion not generated for alias:\n%s", stdout.String())
	}
}

func TestCmdCompletion_AliasWithoutValue_ReturnsError(t *testing.T) {
	_, _ = captureOutput(t)
	if exitCode := cmdCompletion([]string{"--alias", "bash"}); exitCode != 2 {
		t.Errorf("cmdCompletion([--alias, bash]) = %d, want 2", exitCode)
	}
}

func TestCmdCompletion_ExtraArgument_ReturnsError(t *testing.T) {
	_, _ = captureOutput(t)
	if exitCode := cmdCompletion([]string{"bash", "zsh"}); exitCode != 2 {
		t.Errorf("cmdCompletion([bash, zsh]) = %d, want 2", exitCode)
	}
}
