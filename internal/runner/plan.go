package runner

import (
	"github.com/AndreyAkinshin/bridgematrix/internal/config"
	"github.com/AndreyAkinshin/bridgematrix/internal/matrix"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
	"github.com/AndreyAkinshin/bridgematrix/internal/preflight"
)

// Plan is the fully resolved set of cases for a run.
type Plan struct {
	Matrix *matrix.Matrix
	Cases  []model.TestCase
	// Warnings are non-fatal observations about the wallet and amount table.
	Warnings []string
}

// Preflight checks the wallet and signer key configured in cfg.
func Preflight(cfg *config.Config) error {
	return preflight.Check(inputs(cfg))
}

// BuildPlan generates the matrix and resolves an amount for every case.
// It fails without producing any case when a (currency, mode) pair has no
// amount.
func BuildPlan(cfg *config.Config) (*Plan, error) {
	m, err := matrix.New(cfg.Chains, cfg.Currencies, cfg.Modes)
	if err != nil {
		return nil, err
	}
	cases, err := cfg.Amounts.ResolveAll(m)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Matrix:   m,
		Cases:    cases,
		Warnings: cfg.Amounts.PolicyWarnings(m),
	}, nil
}

// Prepare runs preflight checks and then builds the plan. Nothing is planned
// when preflight fails.
func Prepare(cfg *config.Config) (*Plan, error) {
	if err := Preflight(cfg); err != nil {
		return nil, err
	}
	plan, err := BuildPlan(cfg)
	if err != nil {
		return nil, err
	}
	plan.Warnings = append(preflight.Warnings(inputs(cfg)), plan.Warnings...)
	return plan, nil
}

func inputs(cfg *config.Config) preflight.Inputs {
	return preflight.Inputs{
		Wallet:        cfg.Wallet,
		SignerKeyPath: cfg.SignerKeyPath,
	}
}
