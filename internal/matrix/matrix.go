// Package matrix generates the ordered set of test case keys for a run.
package matrix

import (
	"fmt"
	"iter"
	"slices"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// Matrix is the cross product of chains, currencies, and modes.
// Iteration order is fixed: chains outer, currencies middle, modes inner.
type Matrix struct {
	chains     []model.Chain
	currencies []model.Currency
	modes      []model.Mode
}

// New builds a matrix from three ordered axes. Each axis must be non-empty and
// free of duplicates.
func New(chains []model.Chain, currencies []model.Currency, modes []model.Mode) (*Matrix, error) {
	if err := checkAxis("chains", chains); err != nil {
		return nil, err
	}
	if err := checkAxis("currencies", currencies); err != nil {
		return nil, err
	}
	if err := checkAxis("modes", modes); err != nil {
		return nil, err
	}

	return &Matrix{
		chains:     slices.Clone(chains),
		currencies: slices.Clone(currencies),
		modes:      slices.Clone(modes),
	}, nil
}

func checkAxis[T comparable](name string, values []T) error {
	if len(values) == 0 {
		return errors.Config(name, "must contain at least one entry")
	}
	seen := make(map[T]int, len(values))
	for i, v := range values {
		if j, dup := seen[v]; dup {
			return errors.Configf(fmt.Sprintf("%s[%d]", name, i), "duplicate of %s[%d] (%v)", name, j, v)
		}
		seen[v] = i
	}
	return nil
}

// Len returns the number of cases in the matrix.
func (m *Matrix) Len() int {
	return len(m.chains) * len(m.currencies) * len(m.modes)
}

// All yields every key in matrix order. The sequence can be ranged over any
// number of times and always produces the same keys.
func (m *Matrix) All() iter.Seq[model.Key] {
	return func(yield func(model.Key) bool) {
		for _, chain := range m.chains {
			for _, currency := range m.currencies {
				for _, mode := range m.modes {
					if !yield(model.Key{Chain: chain, Currency: currency, Mode: mode}) {
						return
					}
				}
			}
		}
	}
}

// Keys returns every key in matrix order.
func (m *Matrix) Keys() []model.Key {
	keys := make([]model.Key, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Chains returns a copy of the chain axis.
func (m *Matrix) Chains() []model.Chain { return slices.Clone(m.chains) }

// Currencies returns a copy of the currency axis.
func (m *Matrix) Currencies() []model.Currency { return slices.Clone(m.currencies) }

// Modes returns a copy of the mode axis.
func (m *Matrix) Modes() []model.Mode { return slices.Clone(m.modes) }
