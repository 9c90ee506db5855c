package executor

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// varPattern matches variable references in the format ${varname}.
var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// escapePlaceholder temporarily replaces escaped references ($${var}) during
// interpolation. NUL cannot appear in a process argument, so it never collides
// with a real value.
const escapePlaceholder = "\x00ESCAPED\x00"

// Placeholder names available in client arguments.
const (
	VarWallet        = "wallet"
	VarSignerKeyPath = "signer_key_path"
	VarMode          = "mode"
	VarChain         = "chain"
	VarChainID       = "chain_id"
	VarCurrency      = "currency"
	VarAmount        = "amount"
)

var knownVars = map[string]struct{}{
	VarWallet:        {},
	VarSignerKeyPath: {},
	VarMode:          {},
	VarChain:         {},
	VarChainID:       {},
	VarCurrency:      {},
	VarAmount:        {},
}

// Template is a validated client argument list.
type Template struct {
	args []string
}

// ParseTemplate checks that every ${name} in args is a known placeholder.
// The error names the offending argument index.
func ParseTemplate(args []string) (*Template, error) {
	for i, arg := range args {
		unescaped := strings.ReplaceAll(arg, "$${", escapePlaceholder)
		for _, m := range varPattern.FindAllStringSubmatch(unescaped, -1) {
			if _, ok := knownVars[m[1]]; !ok {
				return nil, &TemplateError{Index: i, Name: m[1]}
			}
		}
	}
	return &Template{args: append([]string(nil), args...)}, nil
}

// TemplateError reports an unknown placeholder.
type TemplateError struct {
	Index int
	Name  string
}

func (e *TemplateError) Error() string {
	names := make([]string, 0, len(knownVars))
	for name := range knownVars {
		names = append(names, "${"+name+"}")
	}
	sort.Strings(names)
	return fmt.Sprintf("client.args[%d]: unknown placeholder ${%s} (available: %s)", e.Index, e.Name, strings.Join(names, ", "))
}

// Render substitutes vars into every argument.
func (t *Template) Render(vars map[string]string) []string {
	out := make([]string, len(t.args))
	for i, arg := range t.args {
		out[i] = interpolateVars(arg, vars)
	}
	return out
}

// interpolateVars replaces ${var} with variable values.
// Escaping: $${var} becomes ${var} (literal).
func interpolateVars(s string, vars map[string]string) string {
	result := strings.ReplaceAll(s, "$${", escapePlaceholder)

	result = varPattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return val
		}
		return match
	})

	return strings.ReplaceAll(result, escapePlaceholder, "${")
}

// caseVars returns the placeholder values for one test case.
func caseVars(wallet, signerKeyPath string, tc model.TestCase) map[string]string {
	return map[string]string{
		VarWallet:        wallet,
		VarSignerKeyPath: signerKeyPath,
		VarMode:          tc.Mode.String(),
		VarChain:         tc.Chain.String(),
		VarChainID:       strconv.FormatUint(tc.Chain.ID(), 10),
		VarCurrency:      tc.Currency.String(),
		VarAmount:        tc.Amount.String(),
	}
}
