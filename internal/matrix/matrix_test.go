package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

func key(chain model.Chain, currency model.Currency, mode model.Mode) model.Key {
	return model.Key{Chain: chain, Currency: currency, Mode: mode}
}

func TestNew_OrderIsChainCurrencyMode(t *testing.T) {
	m, err := New(
		[]model.Chain{model.ChainBase, model.ChainOptimism},
		[]model.Currency{"USDC", "OLAS"},
		[]model.Mode{model.ModeWithdraw, model.ModeDeposit},
	)
	require.NoError(t, err)

	want := []model.Key{
		key(model.ChainBase, "USDC", model.ModeWithdraw),
		key(model.ChainBase, "USDC", model.ModeDeposit),
		key(model.ChainBase, "OLAS", model.ModeWithdraw),
		key(model.ChainBase, "OLAS", model.ModeDeposit),
		key(model.ChainOptimism, "USDC", model.ModeWithdraw),
		key(model.ChainOptimism, "USDC", model.ModeDeposit),
		key(model.ChainOptimism, "OLAS", model.ModeWithdraw),
		key(model.ChainOptimism, "OLAS", model.ModeDeposit),
	}
	assert.Equal(t, want, m.Keys())
	assert.Equal(t, 8, m.Len())
}

func TestAll_IsRestartable(t *testing.T) {
	m, err := New(
		[]model.Chain{model.ChainBase, model.ChainArbitrum},
		[]model.Currency{"USDC"},
		[]model.Mode{model.ModeDeposit, model.ModeWithdraw},
	)
	require.NoError(t, err)

	var first, second []model.Key
	for k := range m.All() {
		first = append(first, k)
	}
	for k := range m.All() {
		second = append(second, k)
	}
	assert.Equal(t, first, second)
	assert.Len(t, first, m.Len())
}

func TestAll_StopsEarly(t *testing.T) {
	m, err := New(
		[]model.Chain{model.ChainBase, model.ChainArbitrum},
		[]model.Currency{"USDC", "DRV"},
		[]model.Mode{model.ModeDeposit},
	)
	require.NoError(t, err)

	n := 0
	for range m.All() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestNew_EmptyAxis(t *testing.T) {
	tests := []struct {
		name       string
		chains     []model.Chain
		currencies []model.Currency
		modes      []model.Mode
		field      string
	}{
		{"no chains", nil, []model.Currency{"USDC"}, []model.Mode{model.ModeDeposit}, "chains"},
		{"no currencies", []model.Chain{model.ChainBase}, nil, []model.Mode{model.ModeDeposit}, "currencies"},
		{"no modes", []model.Chain{model.ChainBase}, []model.Currency{"USDC"}, nil, "modes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.chains, tt.currencies, tt.modes)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindConfig))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestNew_DuplicateEntry(t *testing.T) {
	_, err := New(
		[]model.Chain{model.ChainBase},
		[]model.Currency{"USDC", "OLAS", "USDC"},
		[]model.Mode{model.ModeDeposit},
	)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))
	assert.Contains(t, err.Error(), "currencies[2]")
}

func TestNew_CopiesAxes(t *testing.T) {
	chains := []model.Chain{model.ChainBase}
	m, err := New(chains, []model.Currency{"USDC"}, []model.Mode{model.ModeDeposit})
	require.NoError(t, err)

	chains[0] = model.ChainBlast
	assert.Equal(t, []model.Chain{model.ChainBase}, m.Chains())
}
