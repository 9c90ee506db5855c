// Package amounts maps (currency, mode) pairs to transfer amounts.
//
// Withdraw amounts are larger than the deposit amount for the same currency.
// A run withdraws first and then deposits back only a fraction, so each case
// stays self-contained and protocol fees and gas are absorbed by the margin.
package amounts

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
	"github.com/AndreyAkinshin/bridgematrix/internal/matrix"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// Pair is the lookup key of the amount table.
type Pair struct {
	Currency model.Currency
	Mode     model.Mode
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Currency, p.Mode)
}

// Table is an immutable (currency, mode) → amount policy.
type Table struct {
	entries map[Pair]decimal.Decimal
}

// NewTable builds a table. Every amount must be strictly positive.
func NewTable(entries map[Pair]decimal.Decimal) (*Table, error) {
	t := &Table{entries: make(map[Pair]decimal.Decimal, len(entries))}
	for p, amount := range entries {
		if !amount.IsPositive() {
			return nil, errors.Configf(fmt.Sprintf("amounts.%s.%s", p.Currency, p.Mode), "must be greater than zero, got %s", amount)
		}
		t.entries[p] = amount
	}
	return t, nil
}

// Default returns the built-in policy table.
func Default() *Table {
	d := decimal.RequireFromString
	return &Table{entries: map[Pair]decimal.Decimal{
		{Currency: "USDC", Mode: model.ModeDeposit}:  d("0.1"),
		{Currency: "USDC", Mode: model.ModeWithdraw}: d("1"),
		{Currency: "OLAS", Mode: model.ModeDeposit}:  d("1"),
		{Currency: "OLAS", Mode: model.ModeWithdraw}: d("10"),
		{Currency: "DRV", Mode: model.ModeDeposit}:   d("10"),
		{Currency: "DRV", Mode: model.ModeWithdraw}:  d("100"),
	}}
}

// Resolve looks up the amount for a currency and mode.
func (t *Table) Resolve(currency model.Currency, mode model.Mode) (decimal.Decimal, bool) {
	amount, ok := t.entries[Pair{Currency: currency, Mode: mode}]
	return amount, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Missing returns the pairs reachable by the matrix that have no entry, in
// matrix order and without repeats.
func (t *Table) Missing(m *matrix.Matrix) []Pair {
	var missing []Pair
	seen := make(map[Pair]bool)
	for k := range m.All() {
		p := Pair{Currency: k.Currency, Mode: k.Mode}
		if seen[p] {
			continue
		}
		seen[p] = true
		if _, ok := t.entries[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// Check verifies that every pair reachable by the matrix resolves.
func (t *Table) Check(m *matrix.Matrix) error {
	missing := t.Missing(m)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, p := range missing {
		names[i] = p.String()
	}
	return errors.AmountResolution(fmt.Sprintf("no amount configured for %s", strings.Join(names, ", ")))
}

// ResolveAll turns every matrix key into a test case. It fails before
// producing any case if a single pair is missing.
func (t *Table) ResolveAll(m *matrix.Matrix) ([]model.TestCase, error) {
	if err := t.Check(m); err != nil {
		return nil, err
	}
	cases := make([]model.TestCase, 0, m.Len())
	for k := range m.All() {
		amount, _ := t.Resolve(k.Currency, k.Mode)
		cases = append(cases, model.TestCase{Key: k, Amount: amount})
	}
	return cases, nil
}

// PolicyWarnings reports currencies in the matrix whose withdraw amount does
// not exceed the deposit amount. Such a run relies on a pre-existing balance.
func (t *Table) PolicyWarnings(m *matrix.Matrix) []string {
	var warnings []string
	for _, c := range m.Currencies() {
		dep, okDep := t.Resolve(c, model.ModeDeposit)
		wd, okWd := t.Resolve(c, model.ModeWithdraw)
		if !okDep || !okWd {
			continue
		}
		if wd.LessThanOrEqual(dep) {
			warnings = append(warnings, fmt.Sprintf("%s: withdraw amount %s does not exceed deposit amount %s", c, wd, dep))
		}
	}
	return warnings
}
