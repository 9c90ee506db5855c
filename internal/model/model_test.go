package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseChain(t *testing.T) {
	tests := []struct {
		input string
		want  Chain
		ok    bool
	}{
		{"BASE", ChainBase, true},
		{"base", ChainBase, true},
		{" Optimism ", ChainOptimism, true},
		{"arbitrum", ChainArbitrum, true},
		{"lyra", ChainDerive, true},
		{"ethereum", ChainETH, true},
		{"solana", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseChain(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChain_ID(t *testing.T) {
	assert.Equal(t, uint64(8453), ChainBase.ID())
	assert.Equal(t, uint64(10), ChainOptimism.ID())
	assert.Equal(t, uint64(42161), ChainArbitrum.ID())
	assert.Equal(t, uint64(957), ChainDerive.ID())
	assert.Equal(t, uint64(0), Chain("UNKNOWN").ID())
}

func TestKnownChains_AllHaveIDs(t *testing.T) {
	for _, c := range KnownChains() {
		assert.NotZero(t, c.ID(), "chain %s", c)
	}
	assert.Len(t, KnownChains(), len(chainIDs))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("Deposit")
	assert.True(t, ok)
	assert.Equal(t, ModeDeposit, m)

	m, ok = ParseMode("WITHDRAW")
	assert.True(t, ok)
	assert.Equal(t, ModeWithdraw, m)

	_, ok = ParseMode("transfer")
	assert.False(t, ok)
}

func TestCurrency_Validate(t *testing.T) {
	assert.NoError(t, Currency("USDC").Validate())
	assert.NoError(t, Currency("USDC.e").Validate())
	assert.Error(t, Currency("").Validate())
	assert.Error(t, Currency("US|DC").Validate())
	assert.Error(t, Currency("US DC").Validate())
}

func TestFailureRecord_String(t *testing.T) {
	r := ExecutionResult{
		Case: TestCase{
			Key:    Key{Chain: ChainBase, Currency: "USDC", Mode: ModeDeposit},
			Amount: decimal.RequireFromString("0.1"),
		},
		ExitCode: 2,
	}

	assert.Equal(t, "deposit|BASE|USDC|exit_code=2", NewFailureRecord(r).String())
}

func TestFailureRecord_UnexpectedSentinel(t *testing.T) {
	r := ExecutionResult{
		Case:     TestCase{Key: Key{Chain: ChainArbitrum, Currency: "DRV", Mode: ModeWithdraw}},
		ExitCode: ExitCodeUnexpected,
		Err:      errors.New("executable file not found"),
	}

	assert.Equal(t, "withdraw|ARBITRUM|DRV|exit_code=-1", NewFailureRecord(r).String())
}

func TestSummary_Passed(t *testing.T) {
	assert.True(t, Summary{Total: 2}.Passed())
	assert.False(t, Summary{Total: 2, Failures: []FailureRecord{{ExitCode: 1}}}.Passed())
}

func TestKey_String(t *testing.T) {
	k := Key{Chain: ChainOptimism, Currency: "OLAS", Mode: ModeWithdraw}
	assert.Equal(t, "withdraw OPTIMISM OLAS", k.String())
}
