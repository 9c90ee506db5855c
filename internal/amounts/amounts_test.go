package amounts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
	"github.com/AndreyAkinshin/bridgematrix/internal/matrix"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

func mustMatrix(t *testing.T, chains []model.Chain, currencies []model.Currency, modes []model.Mode) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(chains, currencies, modes)
	require.NoError(t, err)
	return m
}

var bothModes = []model.Mode{model.ModeWithdraw, model.ModeDeposit}

func TestDefault_WithdrawExceedsDeposit(t *testing.T) {
	table := Default()
	for _, c := range []model.Currency{"USDC", "OLAS", "DRV"} {
		dep, ok := table.Resolve(c, model.ModeDeposit)
		require.True(t, ok, "deposit %s", c)
		wd, ok := table.Resolve(c, model.ModeWithdraw)
		require.True(t, ok, "withdraw %s", c)
		assert.True(t, wd.Equal(dep.Mul(decimal.NewFromInt(10))), "%s withdraw should be 10x deposit", c)
	}
}

func TestResolveAll_Totality(t *testing.T) {
	m := mustMatrix(t,
		[]model.Chain{model.ChainBase, model.ChainOptimism, model.ChainArbitrum},
		[]model.Currency{"USDC", "OLAS", "DRV"},
		bothModes,
	)

	cases, err := Default().ResolveAll(m)
	require.NoError(t, err)
	require.Len(t, cases, m.Len())

	for i, k := range m.Keys() {
		assert.Equal(t, k, cases[i].Key)
		want, _ := Default().Resolve(k.Currency, k.Mode)
		assert.True(t, want.Equal(cases[i].Amount), "case %d", i)
	}
}

func TestResolveAll_ScenarioAmounts(t *testing.T) {
	m := mustMatrix(t, []model.Chain{model.ChainBase}, []model.Currency{"USDC"}, []model.Mode{model.ModeDeposit, model.ModeWithdraw})

	cases, err := Default().ResolveAll(m)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "0.1", cases[0].Amount.String())
	assert.Equal(t, "1", cases[1].Amount.String())
}

func TestCheck_MissingPairIsAmountResolutionError(t *testing.T) {
	table, err := NewTable(map[Pair]decimal.Decimal{
		{Currency: "USDC", Mode: model.ModeDeposit}:  decimal.RequireFromString("0.1"),
		{Currency: "USDC", Mode: model.ModeWithdraw}: decimal.RequireFromString("1"),
		{Currency: "OLAS", Mode: model.ModeWithdraw}: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	m := mustMatrix(t, []model.Chain{model.ChainBase, model.ChainOptimism}, []model.Currency{"USDC", "OLAS"}, bothModes)

	err = table.Check(m)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAmountResolution))
	assert.Equal(t, "no amount configured for OLAS/deposit", err.Error())

	cases, err := table.ResolveAll(m)
	assert.Error(t, err)
	assert.Nil(t, cases)
}

func TestMissing_OrderAndNoRepeats(t *testing.T) {
	table, err := NewTable(nil)
	require.NoError(t, err)

	m := mustMatrix(t, []model.Chain{model.ChainBase, model.ChainMode}, []model.Currency{"DRV", "USDC"}, bothModes)

	assert.Equal(t, []Pair{
		{Currency: "DRV", Mode: model.ModeWithdraw},
		{Currency: "DRV", Mode: model.ModeDeposit},
		{Currency: "USDC", Mode: model.ModeWithdraw},
		{Currency: "USDC", Mode: model.ModeDeposit},
	}, table.Missing(m))
}

func TestNewTable_RejectsNonPositive(t *testing.T) {
	for _, v := range []string{"0", "-1"} {
		t.Run(v, func(t *testing.T) {
			_, err := NewTable(map[Pair]decimal.Decimal{
				{Currency: "USDC", Mode: model.ModeDeposit}: decimal.RequireFromString(v),
			})
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindConfig))
			assert.Contains(t, err.Error(), "amounts.USDC.deposit")
		})
	}
}

func TestPolicyWarnings(t *testing.T) {
	table, err := NewTable(map[Pair]decimal.Decimal{
		{Currency: "USDC", Mode: model.ModeDeposit}:  decimal.RequireFromString("5"),
		{Currency: "USDC", Mode: model.ModeWithdraw}: decimal.RequireFromString("1"),
		{Currency: "OLAS", Mode: model.ModeDeposit}:  decimal.RequireFromString("1"),
		{Currency: "OLAS", Mode: model.ModeWithdraw}: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	m := mustMatrix(t, []model.Chain{model.ChainBase}, []model.Currency{"USDC", "OLAS"}, bothModes)

	warnings := table.PolicyWarnings(m)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "USDC")
	assert.Empty(t, Default().PolicyWarnings(m))
}
