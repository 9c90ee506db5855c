// Package model provides the data types shared by the matrix, executor, and
// report packages. It exists so those packages can exchange test cases and
// results without importing each other.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Chain identifies a target network.
type Chain string

// Known chains. New networks are added here together with their chainIDs entry.
const (
	ChainETH      Chain = "ETH"
	ChainOptimism Chain = "OPTIMISM"
	ChainBase     Chain = "BASE"
	ChainMode     Chain = "MODE"
	ChainArbitrum Chain = "ARBITRUM"
	ChainBlast    Chain = "BLAST"
	ChainDerive   Chain = "DERIVE"
)

// chainIDs maps known chains to their EVM chain IDs.
var chainIDs = map[Chain]uint64{
	ChainETH:      1,
	ChainOptimism: 10,
	ChainDerive:   957,
	ChainBase:     8453,
	ChainMode:     34443,
	ChainArbitrum: 42161,
	ChainBlast:    81457,
}

// chainAliases maps alternative names to canonical chains.
var chainAliases = map[string]Chain{
	"LYRA":     ChainDerive,
	"ETHEREUM": ChainETH,
	"MAINNET":  ChainETH,
}

var upper = cases.Upper(language.Und)

// ParseChain resolves a chain name case-insensitively. Aliases such as LYRA
// resolve to their canonical chain.
func ParseChain(name string) (Chain, bool) {
	n := upper.String(strings.TrimSpace(name))
	if alias, ok := chainAliases[n]; ok {
		return alias, true
	}
	c := Chain(n)
	if _, ok := chainIDs[c]; ok {
		return c, true
	}
	return "", false
}

// ID returns the EVM chain ID, or 0 for an unknown chain.
func (c Chain) ID() uint64 {
	return chainIDs[c]
}

func (c Chain) String() string { return string(c) }

// KnownChains returns the canonical chain names ordered by chain ID.
func KnownChains() []Chain {
	return []Chain{ChainETH, ChainOptimism, ChainDerive, ChainBase, ChainMode, ChainArbitrum, ChainBlast}
}

// Currency is a token ticker such as USDC or weETH. Tickers are case-sensitive.
type Currency string

func (c Currency) String() string { return string(c) }

// Validate checks that the ticker can be rendered in a failure record.
func (c Currency) Validate() error {
	s := string(c)
	if s == "" {
		return fmt.Errorf("currency is empty")
	}
	if strings.ContainsAny(s, "| \t\r\n") {
		return fmt.Errorf("currency %q must not contain '|' or whitespace", s)
	}
	return nil
}

// Mode is the transfer direction.
type Mode string

const (
	ModeDeposit  Mode = "deposit"
	ModeWithdraw Mode = "withdraw"
)

var lower = cases.Lower(language.Und)

// ParseMode resolves a mode name case-insensitively.
func ParseMode(name string) (Mode, bool) {
	switch m := Mode(lower.String(strings.TrimSpace(name))); m {
	case ModeDeposit, ModeWithdraw:
		return m, true
	default:
		return "", false
	}
}

func (m Mode) String() string { return string(m) }

// Key identifies a test case within a matrix.
type Key struct {
	Chain    Chain
	Currency Currency
	Mode     Mode
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s %s", k.Mode, k.Chain, k.Currency)
}

// TestCase is one fully resolved cell of the matrix. Amount is derived from the
// amount table; cases are built by amounts.Table.ResolveAll and not by hand.
type TestCase struct {
	Key
	Amount decimal.Decimal
}

// ExitCodeUnexpected is the reserved status recorded when the client could not
// be started or was killed before reporting an exit status.
const ExitCodeUnexpected = -1

// ExecutionResult is the outcome of running one test case.
type ExecutionResult struct {
	Case     TestCase
	ExitCode int
	Success  bool
	Duration time.Duration
	Attempts int
	// Err describes why the client could not produce an exit status. It is set
	// only when ExitCode is ExitCodeUnexpected.
	Err error
}

// FailureRecord identifies a failed case and its exit status.
type FailureRecord struct {
	Mode     Mode
	Chain    Chain
	Currency Currency
	ExitCode int
}

// NewFailureRecord derives a failure record from a result.
func NewFailureRecord(r ExecutionResult) FailureRecord {
	return FailureRecord{
		Mode:     r.Case.Mode,
		Chain:    r.Case.Chain,
		Currency: r.Case.Currency,
		ExitCode: r.ExitCode,
	}
}

// String renders the record as mode|chain|currency|exit_code=N.
func (f FailureRecord) String() string {
	return fmt.Sprintf("%s|%s|%s|exit_code=%d", f.Mode, f.Chain, f.Currency, f.ExitCode)
}

// Summary is the aggregate outcome of a run.
type Summary struct {
	RunID    string
	Total    int
	Failures []FailureRecord
}

// Passed reports whether no case failed.
func (s Summary) Passed() bool {
	return len(s.Failures) == 0
}
