package config

import (
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// Default configuration values.
const (
	DefaultSignerKeyFile = "ethereum_private_key.txt"
	DefaultClientCommand = "drv"
	DefaultConcurrency   = 1
	DefaultRetryAttempts = 1
	DefaultLogLevel      = "warn"
)

// DefaultChains is the chain axis used when the config file sets none.
var DefaultChains = []model.Chain{model.ChainBase, model.ChainOptimism, model.ChainArbitrum}

// DefaultCurrencies is the currency axis used when the config file sets none.
var DefaultCurrencies = []model.Currency{"USDC", "OLAS", "DRV"}

// DefaultModes withdraws before depositing back, so no prior balance is assumed.
var DefaultModes = []model.Mode{model.ModeWithdraw, model.ModeDeposit}

// DefaultClientArgs is the argument template passed to the bridge client.
var DefaultClientArgs = []string{
	"--derive-sc-wallet", "${wallet}",
	"--signer-key-path", "${signer_key_path}",
	"bridge", "${mode}",
	"--chain-id", "${chain}",
	"--currency", "${currency}",
	"--amount", "${amount}",
}

// applyDefaults fills in default values for unset fields of the raw file.
// Amounts are not defaulted here: a file that sets amounts replaces the
// built-in table entirely, so a missing pair stays missing.
func applyDefaults(f *File) {
	if f.Client == nil {
		f.Client = &ClientFile{}
	}
	if f.Client.Command == "" {
		f.Client.Command = DefaultClientCommand
	}
	if f.Client.Args == nil {
		f.Client.Args = append([]string(nil), DefaultClientArgs...)
	}
	if f.Concurrency == 0 {
		f.Concurrency = DefaultConcurrency
	}
	if f.Retry == nil {
		f.Retry = &RetryFile{}
	}
	if f.Retry.Attempts == 0 {
		f.Retry.Attempts = DefaultRetryAttempts
	}
	if f.Log == nil {
		f.Log = &LogFile{}
	}
	if f.Log.Level == "" {
		f.Log.Level = DefaultLogLevel
	}
}
